package api

import (
	"net/http"
	"time"

	"fjacquet/fintrack/internal/logging"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter mounts every resource under its own prefix.
func NewRouter(deps *Deps) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(deps.Logger))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		deps.ResponseHandler.WriteSuccess(w, r, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Mount("/imports", NewImportHandlers(deps).ImportRoutes())
	r.Mount("/transactions", NewTransactionHandlers(deps).TransactionRoutes())
	r.Mount("/rules", NewRuleHandlers(deps).RuleRoutes())
	r.Mount("/categories", NewCategoryHandlers(deps).CategoryRoutes())
	r.Mount("/reports", NewReportHandlers(deps).ReportRoutes())
	return r
}

func requestLogger(logger logging.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			logger.Debug("Request handled",
				logging.F(logging.FieldMethod, r.Method),
				logging.F(logging.FieldPath, r.URL.Path),
				logging.F(logging.FieldStatus, ww.Status()),
				logging.F("duration", time.Since(start).String()),
				logging.F("request_id", middleware.GetReqID(r.Context())))
		})
	}
}
