package api

import (
	"net/http"
	"strconv"
	"time"

	"fjacquet/fintrack/internal/report"
	"fjacquet/fintrack/internal/store"

	"github.com/go-chi/chi/v5"
)

type reportHandlers struct {
	ResponseHandler ResponseHandler
	Transactions    TransactionLister
	Generator       *report.Generator
}

// NewReportHandlers builds the /reports handlers.
func NewReportHandlers(deps *Deps) *reportHandlers {
	return &reportHandlers{
		ResponseHandler: deps.ResponseHandler,
		Transactions:    deps.Transactions,
		Generator:       report.NewGenerator(deps.Logger),
	}
}

func (h *reportHandlers) ReportRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/summary", h.GetSummary)
	return r
}

// GetSummary totals stored transactions per category and institution.
// Query parameters: month (YYYY-MM), confirmed (bool), format (json or csv).
func (h *reportHandlers) GetSummary(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter, err := parseReportFilter(query.Get("month"), query.Get("confirmed"))
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	txs, err := h.Transactions.List(r.Context(), store.ListFilter{})
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	summary := report.Build(txs, filter)

	if query.Get("format") != report.FormatCSV {
		h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, summary)
		return
	}

	out, err := h.Generator.Generate(summary, report.FormatCSV)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	_, _ = w.Write(out)
}

func parseReportFilter(month, confirmed string) (report.Filter, error) {
	var filter report.Filter
	if month != "" {
		if _, err := time.Parse("2006-01", month); err != nil {
			return filter, badRequest("month must be YYYY-MM")
		}
		filter.Month = month
	}
	if confirmed != "" {
		value, err := strconv.ParseBool(confirmed)
		if err != nil {
			return filter, badRequest("confirmed must be a boolean")
		}
		filter.ConfirmedOnly = value
	}
	return filter, nil
}
