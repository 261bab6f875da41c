package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"fjacquet/fintrack/internal/logging"
	"fjacquet/fintrack/internal/models"

	"github.com/go-chi/chi/v5"
)

// CreateRuleRequest is the body of POST /rules. MatchType defaults to
// contains.
type CreateRuleRequest struct {
	Term        string `json:"term"`
	MatchType   string `json:"match_type"`
	Category    string `json:"category"`
	AutoConfirm bool   `json:"auto_confirm"`
	Institution string `json:"institution"`
	Type        string `json:"type"`
}

type ruleHandlers struct {
	ResponseHandler ResponseHandler
	Rules           RuleService
	Categories      CategoryService
	Logger          logging.Logger
}

// NewRuleHandlers builds the /rules handlers.
func NewRuleHandlers(deps *Deps) *ruleHandlers {
	return &ruleHandlers{
		ResponseHandler: deps.ResponseHandler,
		Rules:           deps.Rules,
		Categories:      deps.Categories,
		Logger:          deps.Logger,
	}
}

func (h *ruleHandlers) RuleRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ListRules)
	r.Post("/", h.CreateRule)
	r.Get("/export", h.ExportRules) // must be before /{ruleId}
	r.Post("/import", h.ImportRules)
	r.Delete("/{ruleId}", h.DeleteRule)
	return r
}

func (h *ruleHandlers) ListRules(w http.ResponseWriter, r *http.Request) {
	rules, err := h.Rules.GetAll(r.Context())
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	if rules == nil {
		rules = []models.CategoryRule{}
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, rules)
}

// CreateRule appends a rule after the existing ones and adds its category to
// the vocabulary.
func (h *ruleHandlers) CreateRule(w http.ResponseWriter, r *http.Request) {
	var req CreateRuleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ResponseHandler.HandleError(w, r, badRequest("invalid JSON body: "+err.Error()))
		return
	}

	rule := models.CategoryRule{
		Term:        req.Term,
		MatchType:   models.MatchType(strings.ToLower(strings.TrimSpace(req.MatchType))),
		Category:    req.Category,
		AutoConfirm: req.AutoConfirm,
		Institution: strings.TrimSpace(req.Institution),
	}
	if rule.MatchType == "" {
		rule.MatchType = models.MatchTypeContains
	}
	if strings.TrimSpace(req.Type) != "" {
		txType, err := models.ParseTransactionType(req.Type)
		if err != nil {
			h.ResponseHandler.HandleError(w, r, badRequest(err.Error()))
			return
		}
		rule.Type = txType
	}

	created, err := h.Rules.Create(r.Context(), rule)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	if err := h.Categories.Create(r.Context(), created.Category); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	h.Logger.Info("Rule created",
		logging.F(logging.FieldRuleID, created.ID),
		logging.F(logging.FieldCategory, created.Category))
	h.ResponseHandler.WriteSuccess(w, r, http.StatusCreated, created)
}

func (h *ruleHandlers) DeleteRule(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "ruleId")
	if err := h.Rules.Delete(r.Context(), id); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ExportRules streams the rules as CSV.
func (h *ruleHandlers) ExportRules(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="rules.csv"`)
	if err := h.Rules.ExportRules(r.Context(), w); err != nil {
		h.Logger.WithError(err).Error("Failed to export rules")
	}
}

// ImportRules reads a CSV request body and appends its rules.
func (h *ruleHandlers) ImportRules(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	created, err := h.Rules.ImportRules(r.Context(), r.Body)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusCreated, created)
}
