// Package http exposes the aggregation reports as a JSON API.
//
// This file implements utilities for parsing and validating report
// query parameters and for writing JSON responses.
package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"kakeibo/internal/aggregation"
	"kakeibo/internal/log"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// writeReportError maps input validation failures to 400 and everything
// else to 500.
func (s *Server) writeReportError(w http.ResponseWriter, r *http.Request, err error) {
	if isValidationError(err) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.logger.ErrorContext(r.Context(), "Report request failed",
		log.FieldPath, r.URL.Path,
		log.FieldError, err)
	writeError(w, http.StatusInternalServerError, "internal error")
}

func isValidationError(err error) bool {
	var (
		yearErr  *aggregation.InvalidYearError
		monthErr *aggregation.InvalidMonthError
		weekErr  *aggregation.InvalidWeekError
		dayErr   *aggregation.InvalidDayError
		futErr   *aggregation.FutureDateError
		rangeErr *aggregation.InvalidDateRangeError
	)
	return errors.As(err, &yearErr) ||
		errors.As(err, &monthErr) ||
		errors.As(err, &weekErr) ||
		errors.As(err, &dayErr) ||
		errors.As(err, &futErr) ||
		errors.As(err, &rangeErr)
}

func queryInt(q url.Values, key string) (int, bool, error) {
	v := strings.TrimSpace(q.Get(key))
	if v == "" {
		return 0, false, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false, fmt.Errorf("parameter %q must be an integer", key)
	}
	return n, true, nil
}

func requireInt(q url.Values, key string) (int, error) {
	n, ok, err := queryInt(q, key)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, fmt.Errorf("parameter %q is required", key)
	}
	return n, nil
}

func queryInt64(q url.Values, key string) (int64, bool, error) {
	v := strings.TrimSpace(q.Get(key))
	if v == "" {
		return 0, false, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, false, fmt.Errorf("parameter %q must be an integer", key)
	}
	return n, true, nil
}

func requireUserID(q url.Values) (int64, error) {
	id, ok, err := queryInt64(q, "user_id")
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, errors.New(`parameter "user_id" is required`)
	}
	return id, nil
}

func queryDate(q url.Values, key string) (time.Time, bool, error) {
	v := strings.TrimSpace(q.Get(key))
	if v == "" {
		return time.Time{}, false, nil
	}
	d, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("parameter %q must be a YYYY-MM-DD date", key)
	}
	return d, true, nil
}

func requireDate(q url.Values, key string) (time.Time, error) {
	d, ok, err := queryDate(q, key)
	if err != nil {
		return time.Time{}, err
	}
	if !ok {
		return time.Time{}, fmt.Errorf("parameter %q is required", key)
	}
	return d, nil
}

func parseGroupBy(q url.Values) (aggregation.GroupBy, error) {
	switch strings.TrimSpace(q.Get("group_by")) {
	case "", "category1":
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
		return 0, fmt.Errorf("unknown group_by %q", q.Get("group_by"))
	}
}

func parseOrderBy(q url.Values) (aggregation.OrderField, bool, error) {
	switch strings.TrimSpace(q.Get("order_by")) {
	case "":
		return 0, false, nil
	case "date":
		return aggregation.OrderByTransactionDate, true, nil
	case "amount":
		return aggregation.OrderByAmount, true, nil
	case "category":
		return aggregation.OrderByCategoryName, true, nil
	case "shop":
		return aggregation.OrderByShopName, true, nil
	case "count":
		return aggregation.OrderByCount, true, nil
	case "key":
		return aggregation.OrderByGroupKey, true, nil
	default:
		return 0, false, fmt.Errorf("unknown order_by %q", q.Get("order_by"))
	}
}

func parseSortOrder(q url.Values) (aggregation.SortOrder, bool, error) {
	switch strings.ToLower(strings.TrimSpace(q.Get("sort"))) {
	case "":
		return 0, false, nil
	case "asc":
		return aggregation.Asc, true, nil
	case "desc":
		return aggregation.Desc, true, nil
	default:
		return 0, false, fmt.Errorf("unknown sort %q", q.Get("sort"))
	}
}

// parseCategoryFilter builds the deepest filter the caller supplied.
// category2 and category3 require the shallower levels to be present.
func parseCategoryFilter(q url.Values) (aggregation.CategoryFilter, error) {
	c1 := strings.TrimSpace(q.Get("category1"))
	c2 := strings.TrimSpace(q.Get("category2"))
	c3 := strings.TrimSpace(q.Get("category3"))

	switch {
	case c3 != "":
		if c1 == "" || c2 == "" {
			return aggregation.CategoryFilter{}, errors.New("category3 requires category1 and category2")
		}
		return aggregation.ByCategory3(c1, c2, c3), nil
	case c2 != "":
		if c1 == "" {
			return aggregation.CategoryFilter{}, errors.New("category2 requires category1")
		}
		return aggregation.ByCategory2(c1, c2), nil
	case c1 != "":
		return aggregation.ByCategory1(c1), nil
	default:
		return aggregation.CategoryFilter{}, nil
	}
}

func parseAmountFilter(q url.Values) (aggregation.AmountFilter, error) {
	min, hasMin, err := queryInt64(q, "min_amount")
	if err != nil {
		return aggregation.AmountFilter{}, err
	}
	max, hasMax, err := queryInt64(q, "max_amount")
	if err != nil {
		return aggregation.AmountFilter{}, err
	}

	switch {
	case hasMin && hasMax:
		return aggregation.AmountBetween(min, max), nil
	case hasMin:
		return aggregation.AmountGreaterThanOrEqual(min), nil
	case hasMax:
		return aggregation.AmountLessThanOrEqual(max), nil
	default:
		return aggregation.AmountFilter{}, nil
	}
}

func (s *Server) lang(q url.Values) string {
	if v := strings.TrimSpace(q.Get("lang")); v != "" {
		return v
	}
	return s.opts.DefaultLang
}

func parseWeekStart(q url.Values, fallback aggregation.WeekStart) (aggregation.WeekStart, error) {
	switch strings.ToLower(strings.TrimSpace(q.Get("week_start"))) {
	case "":
		return fallback, nil
	case "sunday":
		return aggregation.Sunday, nil
	case "monday":
		return aggregation.Monday, nil
	default:
		return fallback, fmt.Errorf("unknown week_start %q", q.Get("week_start"))
	}
}

func parseYearStart(q url.Values, fallback aggregation.YearStart) (aggregation.YearStart, error) {
	switch strings.ToLower(strings.TrimSpace(q.Get("year_start"))) {
	case "":
		return fallback, nil
	case "january":
		return aggregation.January, nil
	case "april":
		return aggregation.April, nil
	default:
		return fallback, fmt.Errorf("unknown year_start %q", q.Get("year_start"))
	}
}
