package http

import (
	"net/http"
	"net/url"

	"kakeibo/internal/aggregation"
)

type reportResponse struct {
	Results []aggregation.Result `json:"results"`
}

// handleMonthly serves one calendar month, optionally narrowed by
// category, amount range and shop, with caller-chosen sorting.
func (s *Server) handleMonthly(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	userID, err := requireUserID(q)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	year, err := requireInt(q, "year")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	month, err := requireInt(q, "month")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	groupBy, err := parseGroupBy(q)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	opts, err := s.monthlyOptions(q)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	results, err := s.reports.MonthlyFull(r.Context(), userID, year, month, groupBy, opts, s.lang(q))
	if err != nil {
		s.writeReportError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, reportResponse{Results: results})
}

func (s *Server) monthlyOptions(q url.Values) (aggregation.MonthlyOptions, error) {
	var opts aggregation.MonthlyOptions

	category, err := parseCategoryFilter(q)
	if err != nil {
		return opts, err
	}
	amount, err := parseAmountFilter(q)
	if err != nil {
		return opts, err
	}
	shopID, _, err := queryInt64(q, "shop_id")
	if err != nil {
		return opts, err
	}
	orderBy, hasOrder, err := parseOrderBy(q)
	if err != nil {
		return opts, err
	}
	sortOrder, hasSort, err := parseSortOrder(q)
	if err != nil {
		return opts, err
	}
	limit, hasLimit, err := queryInt(q, "limit")
	if err != nil {
		return opts, err
	}
	if !hasLimit {
		limit = s.opts.ReportLimit
	}

	opts.Category = category
	opts.Amount = amount
	opts.ShopID = shopID
	opts.Limit = limit
	opts.OrderBy = aggregation.OrderByAmount
	opts.SortOrder = aggregation.Desc
	if hasOrder {
		opts.OrderBy = orderBy
	}
	if hasSort {
		opts.SortOrder = sortOrder
	}
	return opts, nil
}

// handleDaily serves one date, given either as date=YYYY-MM-DD or as
// separate year/month/day parameters.
func (s *Server) handleDaily(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	userID, err := requireUserID(q)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	date, ok, err := queryDate(q, "date")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if !ok {
		year, err := requireInt(q, "year")
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		month, err := requireInt(q, "month")
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		day, err := requireInt(q, "day")
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		date, err = aggregation.NewDate(year, month, day)
		if err != nil {
			s.writeReportError(w, r, err)
			return
		}
	}
	groupBy, err := parseGroupBy(q)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	results, err := s.reports.Daily(r.Context(), userID, date, groupBy, s.lang(q))
	if err != nil {
		s.writeReportError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, reportResponse{Results: results})
}

// handleWeekly serves week N of a year, or the week containing `date`
// when that parameter is present instead of `week`.
func (s *Server) handleWeekly(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	userID, err := requireUserID(q)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	groupBy, err := parseGroupBy(q)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	weekStart, err := parseWeekStart(q, s.opts.WeekStart)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if date, ok, err := queryDate(q, "date"); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	} else if ok {
		results, err := s.reports.WeeklyByDate(r.Context(), userID, date, weekStart, groupBy, s.lang(q))
		if err != nil {
			s.writeReportError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, reportResponse{Results: results})
		return
	}

	year, err := requireInt(q, "year")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	week, err := requireInt(q, "week")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	results, err := s.reports.Weekly(r.Context(), userID, year, week, weekStart, groupBy, s.lang(q))
	if err != nil {
		s.writeReportError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, reportResponse{Results: results})
}

func (s *Server) handlePeriod(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	userID, err := requireUserID(q)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	start, err := requireDate(q, "start")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	end, err := requireDate(q, "end")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	groupBy, err := parseGroupBy(q)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	results, err := s.reports.Period(r.Context(), userID, start, end, groupBy, s.lang(q))
	if err != nil {
		s.writeReportError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, reportResponse{Results: results})
}

func (s *Server) handleYearly(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	userID, err := requireUserID(q)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	year, err := requireInt(q, "year")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	groupBy, err := parseGroupBy(q)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	yearStart, err := parseYearStart(q, s.opts.YearStart)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	results, err := s.reports.Yearly(r.Context(), userID, year, yearStart, groupBy, s.lang(q))
	if err != nil {
		s.writeReportError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, reportResponse{Results: results})
}

func (s *Server) handleOverview(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	userID, err := requireUserID(q)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	year, err := requireInt(q, "year")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	month, err := requireInt(q, "month")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	overview, err := s.reports.MonthlyOverview(r.Context(), userID, year, month, s.lang(q))
	if err != nil {
		s.writeReportError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, overview)
}
