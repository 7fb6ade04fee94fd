package services

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"kakeibo/internal/aggregation"
	"kakeibo/internal/log"
)

// Aggregator executes a compiled aggregation against the store.
type Aggregator interface {
	Aggregate(ctx context.Context, req aggregation.Request, lang string) ([]aggregation.Result, error)
}

// ReportService is the public surface of the aggregation engine: one
// entry point per period shape, each validating inputs through the
// period builders and running the compiled query against the store.
type ReportService struct {
	store   Aggregator
	builder *aggregation.Builder
	logger  *log.Logger
}

func NewReportService(store Aggregator, builder *aggregation.Builder, logger *log.Logger) *ReportService {
	if builder == nil {
		builder = aggregation.NewBuilder()
	}
	if logger == nil {
		logger = log.New(log.DefaultConfig()).WithComponent(log.ComponentReport)
	}
	return &ReportService{
		store:   store,
		builder: builder,
		logger:  logger,
	}
}

// Monthly aggregates one calendar month along the given axis.
func (s *ReportService) Monthly(ctx context.Context, userID int64, year, month int, groupBy aggregation.GroupBy, lang string) ([]aggregation.Result, error) {
	req, err := s.builder.Monthly(userID, year, month, groupBy)
	if err != nil {
		return nil, err
	}
	return s.run(ctx, log.OpMonthly, req, lang)
}

// MonthlyByCategory aggregates one month narrowed to a category code path.
func (s *ReportService) MonthlyByCategory(ctx context.Context, userID int64, year, month int, groupBy aggregation.GroupBy, category aggregation.CategoryFilter, lang string) ([]aggregation.Result, error) {
	req, err := s.builder.MonthlyByCategory(userID, year, month, groupBy, category)
	if err != nil {
		return nil, err
	}
	return s.run(ctx, log.OpMonthly, req, lang)
}

// MonthlyByAmount aggregates one month narrowed to an amount range.
func (s *ReportService) MonthlyByAmount(ctx context.Context, userID int64, year, month int, groupBy aggregation.GroupBy, amount aggregation.AmountFilter, lang string) ([]aggregation.Result, error) {
	req, err := s.builder.MonthlyByAmount(userID, year, month, groupBy, amount)
	if err != nil {
		return nil, err
	}
	return s.run(ctx, log.OpMonthly, req, lang)
}

// MonthlySorted aggregates one month with a caller-chosen sort.
func (s *ReportService) MonthlySorted(ctx context.Context, userID int64, year, month int, groupBy aggregation.GroupBy, orderBy aggregation.OrderField, sortOrder aggregation.SortOrder, lang string) ([]aggregation.Result, error) {
	req, err := s.builder.MonthlySorted(userID, year, month, groupBy, orderBy, sortOrder)
	if err != nil {
		return nil, err
	}
	return s.run(ctx, log.OpMonthly, req, lang)
}

// MonthlyFull aggregates one month with every optional knob applied.
func (s *ReportService) MonthlyFull(ctx context.Context, userID int64, year, month int, groupBy aggregation.GroupBy, opts aggregation.MonthlyOptions, lang string) ([]aggregation.Result, error) {
	req, err := s.builder.MonthlyFull(userID, year, month, groupBy, opts)
	if err != nil {
		return nil, err
	}
	return s.run(ctx, log.OpMonthly, req, lang)
}

// Daily aggregates a single date.
func (s *ReportService) Daily(ctx context.Context, userID int64, date time.Time, groupBy aggregation.GroupBy, lang string) ([]aggregation.Result, error) {
	req, err := s.builder.Daily(userID, date, groupBy)
	if err != nil {
		return nil, err
	}
	return s.run(ctx, log.OpDaily, req, lang)
}

// Weekly aggregates week `week` of `year`.
func (s *ReportService) Weekly(ctx context.Context, userID int64, year, week int, weekStart aggregation.WeekStart, groupBy aggregation.GroupBy, lang string) ([]aggregation.Result, error) {
	req, err := s.builder.Weekly(userID, year, week, weekStart, groupBy)
	if err != nil {
		return nil, err
	}
	return s.run(ctx, log.OpWeekly, req, lang)
}

// WeeklyByDate aggregates the week containing the reference date.
func (s *ReportService) WeeklyByDate(ctx context.Context, userID int64, reference time.Time, weekStart aggregation.WeekStart, groupBy aggregation.GroupBy, lang string) ([]aggregation.Result, error) {
	req, err := s.builder.WeeklyByDate(userID, reference, weekStart, groupBy)
	if err != nil {
		return nil, err
	}
	return s.run(ctx, log.OpWeeklyByDate, req, lang)
}

// Period aggregates an arbitrary inclusive date range.
func (s *ReportService) Period(ctx context.Context, userID int64, start, end time.Time, groupBy aggregation.GroupBy, lang string) ([]aggregation.Result, error) {
	req, err := s.builder.Period(userID, start, end, groupBy)
	if err != nil {
		return nil, err
	}
	return s.run(ctx, log.OpPeriod, req, lang)
}

// Yearly aggregates one calendar or fiscal year.
func (s *ReportService) Yearly(ctx context.Context, userID int64, year int, yearStart aggregation.YearStart, groupBy aggregation.GroupBy, lang string) ([]aggregation.Result, error) {
	req, err := s.builder.Yearly(userID, year, yearStart, groupBy)
	if err != nil {
		return nil, err
	}
	return s.run(ctx, log.OpYearly, req, lang)
}

// Overview is one month viewed along the three dashboard axes.
type Overview struct {
	ByCategory []aggregation.Result `json:"by_category"`
	ByAccount  []aggregation.Result `json:"by_account"`
	ByDate     []aggregation.Result `json:"by_date"`
}

// MonthlyOverview runs the category, account and date aggregations of
// one month concurrently. The requests are independent reads, so the
// first failure cancels the rest and fails the whole overview.
func (s *ReportService) MonthlyOverview(ctx context.Context, userID int64, year, month int, lang string) (Overview, error) {
	var overview Overview

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rows, err := s.Monthly(ctx, userID, year, month, aggregation.GroupByCategory1, lang)
		overview.ByCategory = rows
		return err
	})
	g.Go(func() error {
		rows, err := s.Monthly(ctx, userID, year, month, aggregation.GroupByAccount, lang)
		overview.ByAccount = rows
		return err
	})
	g.Go(func() error {
		rows, err := s.MonthlySorted(ctx, userID, year, month, aggregation.GroupByDate,
			aggregation.OrderByTransactionDate, aggregation.Asc, lang)
		overview.ByDate = rows
		return err
	})

	if err := g.Wait(); err != nil {
		return Overview{}, err
	}

	s.logger.InfoContext(ctx, "Monthly overview built",
		log.FieldUserID, userID,
		log.FieldYear, year,
		log.FieldMonth, month,
		log.FieldOperation, log.OpOverview)

	return overview, nil
}

func (s *ReportService) run(ctx context.Context, op string, req aggregation.Request, lang string) ([]aggregation.Result, error) {
	start := time.Now()
	results, err := s.store.Aggregate(ctx, req, lang)
	if err != nil {
		s.logger.ErrorContext(ctx, "Aggregation failed",
			log.FieldOperation, op,
			log.FieldUserID, req.UserID,
			log.FieldGroupBy, req.GroupBy.String(),
			log.FieldError, err)
		return nil, fmt.Errorf("%s aggregation: %w", op, err)
	}

	s.logger.DebugContext(ctx, "Aggregation completed",
		log.FieldOperation, op,
		log.FieldUserID, req.UserID,
		log.FieldGroupBy, req.GroupBy.String(),
		log.FieldLang, lang,
		log.FieldRows, len(results),
		log.FieldDuration, time.Since(start).Milliseconds())

	return results, nil
}
