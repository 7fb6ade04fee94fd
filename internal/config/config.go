package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"kakeibo/internal/aggregation"
)

type Config struct {
	// HTTP Server
	Port string

	// Database
	SQLiteDBPath string

	// Reporting defaults
	DefaultLang string
	WeekStart   string
	YearStart   string
	ReportLimit int
}

func Load() *Config {
	return &Config{
		Port:         getEnv("PORT", "8081"),
		SQLiteDBPath: getEnv("SQLITE_DB_PATH", "./data/kakeibo.db"),

		DefaultLang: getEnv("DEFAULT_LANG", "en"),
		WeekStart:   getEnv("WEEK_START", "monday"),
		YearStart:   getEnv("YEAR_START", "january"),
		ReportLimit: getEnvInt("REPORT_LIMIT", 0),
	}
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errs []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errs = append(errs, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errs = append(errs, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	if c.SQLiteDBPath == "" {
		errs = append(errs, "sqlite db path must not be empty")
	}
	if c.DefaultLang == "" {
		errs = append(errs, "default language must not be empty")
	}
	if _, err := ParseWeekStart(c.WeekStart); err != nil {
		errs = append(errs, err.Error())
	}
	if _, err := ParseYearStart(c.YearStart); err != nil {
		errs = append(errs, err.Error())
	}
	if c.ReportLimit < 0 {
		errs = append(errs, fmt.Sprintf("invalid report limit %d: must not be negative", c.ReportLimit))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

// ParseWeekStart maps a config value to a reporting week start.
func ParseWeekStart(s string) (aggregation.WeekStart, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "sunday":
		return aggregation.Sunday, nil
	case "monday":
		return aggregation.Monday, nil
	default:
		return aggregation.Sunday, fmt.Errorf("invalid week start '%s': must be 'sunday' or 'monday'", s)
	}
}

// ParseYearStart maps a config value to a reporting year start.
func ParseYearStart(s string) (aggregation.YearStart, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "january":
		return aggregation.January, nil
	case "april":
		return aggregation.April, nil
	default:
		return aggregation.January, fmt.Errorf("invalid year start '%s': must be 'january' or 'april'", s)
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
