// kakeibo-report runs a single aggregation from the command line and
// prints the result as JSON. Useful for cron jobs and quick inspection
// of a database without starting the HTTP server.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"kakeibo/internal/aggregation"
	"kakeibo/internal/cli"
	"kakeibo/internal/config"
	"kakeibo/internal/log"
	"kakeibo/internal/services"
)

func main() {
	var (
		report  = flag.String("report", "monthly", "report type: monthly, daily, weekly, period, yearly, overview")
		userID  = flag.Int64("user", 0, "user ID (required)")
		year    = flag.Int("year", 0, "report year")
		month   = flag.Int("month", 0, "report month (1-12)")
		week    = flag.Int("week", 0, "report week (1-53)")
		date    = flag.String("date", "", "report date (YYYY-MM-DD) for daily and weekly reports")
		start   = flag.String("start", "", "period start date (YYYY-MM-DD)")
		end     = flag.String("end", "", "period end date (YYYY-MM-DD)")
		groupBy = flag.String("group-by", "category1", "axis: category1, category2, category3, account, shop, product, date")
		lang    = flag.String("lang", "", "label language code (defaults to DEFAULT_LANG)")
	)
	flag.Parse()

	cli.LoadEnvFile()
	logger := cli.SetupLogger()
	cfg := cli.LoadAndValidateConfig(logger)

	if *userID == 0 {
		fmt.Fprintln(os.Stderr, "-user is required")
		os.Exit(2)
	}
	if *lang == "" {
		*lang = cfg.DefaultLang
	}

	axis, err := parseGroupBy(*groupBy)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	repo := cli.InitSQLite(logger, cfg.SQLiteDBPath)
	defer repo.Close()

	reports := services.NewReportService(repo, aggregation.NewBuilder(), logger)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var out any
	switch *report {
	case "monthly":
		out, err = reports.Monthly(ctx, *userID, *year, *month, axis, *lang)
	case "daily":
		var d time.Time
		if d, err = parseDate(*date, "-date"); err == nil {
			out, err = reports.Daily(ctx, *userID, d, axis, *lang)
		}
	case "weekly":
		weekStart, _ := config.ParseWeekStart(cfg.WeekStart)
		if *date != "" {
			var d time.Time
			if d, err = parseDate(*date, "-date"); err == nil {
				out, err = reports.WeeklyByDate(ctx, *userID, d, weekStart, axis, *lang)
			}
		} else {
			out, err = reports.Weekly(ctx, *userID, *year, *week, weekStart, axis, *lang)
		}
	case "period":
		var from, to time.Time
		if from, err = parseDate(*start, "-start"); err == nil {
			if to, err = parseDate(*end, "-end"); err == nil {
				out, err = reports.Period(ctx, *userID, from, to, axis, *lang)
			}
		}
	case "yearly":
		yearStart, _ := config.ParseYearStart(cfg.YearStart)
		out, err = reports.Yearly(ctx, *userID, *year, yearStart, axis, *lang)
	case "overview":
		out, err = reports.MonthlyOverview(ctx, *userID, *year, *month, *lang)
	default:
		fmt.Fprintf(os.Stderr, "unknown report type %q\n", *report)
		os.Exit(2)
	}
	if err != nil {
		logger.Error("Report failed", log.FieldError, err, log.FieldOperation, *report)
		os.Exit(1)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		logger.Error("Encoding report failed", log.FieldError, err)
		os.Exit(1)
	}
}

func parseDate(v, flagName string) (time.Time, error) {
	if v == "" {
		return time.Time{}, fmt.Errorf("%s is required", flagName)
	}
	d, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s must be a YYYY-MM-DD date", flagName)
	}
	return d, nil
}

func parseGroupBy(v string) (aggregation.GroupBy, error) {
	switch v {
	case "category1":
		return aggregation.GroupByCategory1, nil
	case "category2":
		return aggregation.GroupByCategory2, nil
	case "category3":
		return aggregation.GroupByCategory3, nil
	case "account":
		return aggregation.GroupByAccount, nil
	case "shop":
		return aggregation.GroupByShop, nil
	case "product":
		return aggregation.GroupByProduct, nil
	case "date":
		return aggregation.GroupByDate, nil
	default:
		return 0, fmt.Errorf("unknown group-by %q", v)
	}
}
