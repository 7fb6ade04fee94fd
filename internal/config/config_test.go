package config

import (
	"testing"

	"kakeibo/internal/aggregation"
)

func validConfig() *Config {
	return &Config{
		Port:         "8081",
		SQLiteDBPath: "./data/kakeibo.db",
		DefaultLang:  "en",
		WeekStart:    "monday",
		YearStart:    "january",
	}
}

func TestValidate(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad port", func(c *Config) { c.Port = "abc" }},
		{"port out of range", func(c *Config) { c.Port = "70000" }},
		{"empty db path", func(c *Config) { c.SQLiteDBPath = "" }},
		{"empty lang", func(c *Config) { c.DefaultLang = "" }},
		{"bad week start", func(c *Config) { c.WeekStart = "tuesday" }},
		{"bad year start", func(c *Config) { c.YearStart = "july" }},
		{"negative limit", func(c *Config) { c.ReportLimit = -1 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestParseWeekStart(t *testing.T) {
	if ws, err := ParseWeekStart("Sunday"); err != nil || ws != aggregation.Sunday {
		t.Fatalf("ParseWeekStart(Sunday) = %v, %v", ws, err)
	}
	if ws, err := ParseWeekStart(" monday "); err != nil || ws != aggregation.Monday {
		t.Fatalf("ParseWeekStart(monday) = %v, %v", ws, err)
	}
	if _, err := ParseWeekStart("friday"); err == nil {
		t.Fatal("expected error for friday")
	}
}

func TestParseYearStart(t *testing.T) {
	if ys, err := ParseYearStart("april"); err != nil || ys != aggregation.April {
		t.Fatalf("ParseYearStart(april) = %v, %v", ys, err)
	}
	if ys, err := ParseYearStart("January"); err != nil || ys != aggregation.January {
		t.Fatalf("ParseYearStart(January) = %v, %v", ys, err)
	}
	if _, err := ParseYearStart("march"); err == nil {
		t.Fatal("expected error for march")
	}
}

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "SQLITE_DB_PATH", "DEFAULT_LANG", "WEEK_START", "YEAR_START", "REPORT_LIMIT"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	if cfg.Port != "8081" {
		t.Errorf("default port = %s", cfg.Port)
	}
	if cfg.WeekStart != "monday" || cfg.YearStart != "january" {
		t.Errorf("default period config = %s/%s", cfg.WeekStart, cfg.YearStart)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}
