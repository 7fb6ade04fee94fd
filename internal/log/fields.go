package log

// Common field names for structured logging
const (
	FieldComponent  = "component"
	FieldRequestID  = "request_id"
	FieldClientIP   = "client_ip"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldStatusCode = "status_code"
	FieldDuration   = "duration_ms"
	FieldError      = "error"
	FieldOperation  = "operation"
	FieldUserID     = "user_id"
	FieldYear       = "year"
	FieldMonth      = "month"
	FieldWeek       = "week"
	FieldGroupBy    = "group_by"
	FieldLang       = "lang"
	FieldRows       = "rows"
	FieldLimit      = "limit"
)

// Components defines standard component names
const (
	ComponentApp     = "app"
	ComponentHTTP    = "http"
	ComponentReport  = "report"
	ComponentStorage = "storage"
	ComponentTrace   = "trace"
)

// Operations defines standard operation names
const (
	OpMonthly      = "monthly"
	OpDaily        = "daily"
	OpWeekly       = "weekly"
	OpWeeklyByDate = "weekly_by_date"
	OpPeriod       = "period"
	OpYearly       = "yearly"
	OpOverview     = "overview"
	OpStartup      = "startup"
	OpShutdown     = "shutdown"
)
