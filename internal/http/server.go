package http

import (
	"context"
	"net/http"
	"time"

	"kakeibo/internal/aggregation"
	"kakeibo/internal/log"
	"kakeibo/internal/middleware/trace"
	"kakeibo/internal/services"
)

// Options carry the report defaults applied when a request omits the
// corresponding query parameter.
type Options struct {
	DefaultLang string
	WeekStart   aggregation.WeekStart
	YearStart   aggregation.YearStart
	ReportLimit int
}

type Server struct {
	http.Server

	reports *services.ReportService
	opts    Options
	logger  *log.Logger
}

// NewServer configures routes and middleware, returning a ready-to-run http.Server.
func NewServer(addr string, reports *services.ReportService, opts Options, logger *log.Logger) *Server {
	if opts.DefaultLang == "" {
		opts.DefaultLang = "en"
	}
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}

	mux := http.NewServeMux()
	tracer := trace.NewMiddleware(logger)

	s := &Server{
		Server: http.Server{
			Addr:         addr,
			Handler:      tracer.Middleware(mux),
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		reports: reports,
		opts:    opts,
		logger:  logger.WithComponent(log.ComponentHTTP),
	}

	mux.HandleFunc("/healthz", handleHealth)
	mux.HandleFunc("/readyz", handleReady)

	mux.HandleFunc("/api/reports/monthly", s.requireGET(s.handleMonthly))
	mux.HandleFunc("/api/reports/daily", s.requireGET(s.handleDaily))
	mux.HandleFunc("/api/reports/weekly", s.requireGET(s.handleWeekly))
	mux.HandleFunc("/api/reports/period", s.requireGET(s.handlePeriod))
	mux.HandleFunc("/api/reports/yearly", s.requireGET(s.handleYearly))
	mux.HandleFunc("/api/reports/overview", s.requireGET(s.handleOverview))

	return s
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.Server.Shutdown(ctx)
}

func (s *Server) requireGET(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.Header().Set("Allow", http.MethodGet)
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		next(w, r)
	}
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
