package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"fjacquet/fintrack/internal/models"
	"fjacquet/fintrack/internal/store"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

// CreateTransactionRequest is the body of POST /transactions. Amount accepts
// a JSON number or a string.
type CreateTransactionRequest struct {
	Date        string          `json:"date"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Type        string          `json:"type"`
	Institution string          `json:"institution"`
	Category    string          `json:"category"`
	Notes       string          `json:"notes"`
}

// ConfirmTransactionRequest is the body of POST /transactions/{id}/confirm.
type ConfirmTransactionRequest struct {
	Category   string `json:"category"`
	CreateRule bool   `json:"create_rule"`
}

// UpdateTransactionRequest is the body of PATCH /transactions/{id}. Absent
// fields are left unchanged.
type UpdateTransactionRequest struct {
	Date        *string          `json:"date"`
	Description *string          `json:"description"`
	Amount      *decimal.Decimal `json:"amount"`
	Type        *string          `json:"type"`
	Category    *string          `json:"category"`
	Institution *string          `json:"institution"`
	Notes       *string          `json:"notes"`
	IsPending   *bool            `json:"is_pending"`
}

// Patch converts the request into a store patch. Text fields are trimmed
// and the amount is kept positive.
func (req UpdateTransactionRequest) Patch() (models.TransactionPatch, error) {
	patch := models.TransactionPatch{
		Date:        trimmed(req.Date),
		Description: trimmed(req.Description),
		Category:    trimmed(req.Category),
		Institution: trimmed(req.Institution),
		Notes:       req.Notes,
		IsPending:   req.IsPending,
	}
	if req.Amount != nil {
		amount := req.Amount.Abs()
		patch.Amount = &amount
	}
	if req.Type != nil {
		txType, err := models.ParseTransactionType(*req.Type)
		if err != nil {
			return patch, err
		}
		patch.Type = &txType
	}
	return patch, nil
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}

// TransactionList is the payload of GET /transactions.
type TransactionList struct {
	Transactions []models.Transaction `json:"transactions"`
	Summary      models.Summary       `json:"summary"`
}

type transactionHandlers struct {
	ResponseHandler ResponseHandler
	Importer        ImportService
	Transactions    TransactionService
}

// NewTransactionHandlers builds the /transactions handlers.
func NewTransactionHandlers(deps *Deps) *transactionHandlers {
	return &transactionHandlers{
		ResponseHandler: deps.ResponseHandler,
		Importer:        deps.Importer,
		Transactions:    deps.Transactions,
	}
}

func (h *transactionHandlers) TransactionRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ListTransactions)
	r.Post("/", h.CreateTransaction)
	r.Delete("/", h.DeleteAllTransactions)
	r.Patch("/{transactionId}", h.UpdateTransaction)
	r.Delete("/{transactionId}", h.DeleteTransaction)
	r.Post("/{transactionId}/confirm", h.ConfirmTransaction)
	return r
}

// ListTransactions returns stored transactions, newest first. With
// ?pending=true only the transactions awaiting review are listed.
func (h *transactionHandlers) ListTransactions(w http.ResponseWriter, r *http.Request) {
	var filter store.ListFilter
	if pending := r.URL.Query().Get("pending"); pending != "" {
		value, err := strconv.ParseBool(pending)
		if err != nil {
			h.ResponseHandler.HandleError(w, r, badRequest("pending must be a boolean"))
			return
		}
		filter.PendingOnly = value
	}

	txs, err := h.Transactions.List(r.Context(), filter)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	summary, err := h.Transactions.Summary(r.Context())
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	if txs == nil {
		txs = []models.Transaction{}
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, TransactionList{Transactions: txs, Summary: summary})
}

func (h *transactionHandlers) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req CreateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ResponseHandler.HandleError(w, r, badRequest("invalid JSON body: "+err.Error()))
		return
	}

	txType, err := models.ParseTransactionType(req.Type)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, badRequest(err.Error()))
		return
	}

	tx := models.Transaction{
		Date:        strings.TrimSpace(req.Date),
		Description: strings.TrimSpace(req.Description),
		Amount:      req.Amount.Abs(),
		Type:        txType,
		Institution: strings.TrimSpace(req.Institution),
		Category:    strings.TrimSpace(req.Category),
		Notes:       req.Notes,
	}

	created, err := h.Importer.AddTransaction(r.Context(), tx)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusCreated, created)
}

func (h *transactionHandlers) ConfirmTransaction(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "transactionId")

	var req ConfirmTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ResponseHandler.HandleError(w, r, badRequest("invalid JSON body: "+err.Error()))
		return
	}

	tx, err := h.Importer.ConfirmTransaction(r.Context(), id, strings.TrimSpace(req.Category), req.CreateRule)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, tx)
}

func (h *transactionHandlers) UpdateTransaction(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "transactionId")

	var req UpdateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ResponseHandler.HandleError(w, r, badRequest("invalid JSON body: "+err.Error()))
		return
	}
	patch, err := req.Patch()
	if err != nil {
		h.ResponseHandler.HandleError(w, r, badRequest(err.Error()))
		return
	}
	if patch.IsEmpty() {
		h.ResponseHandler.HandleError(w, r, badRequest("nothing to update"))
		return
	}

	tx, err := h.Transactions.Update(r.Context(), id, patch)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, tx)
}

func (h *transactionHandlers) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	if err := h.Transactions.Delete(r.Context(), chi.URLParam(r, "transactionId")); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteAllTransactions clears the transaction table. Rules and categories
// are kept.
func (h *transactionHandlers) DeleteAllTransactions(w http.ResponseWriter, r *http.Request) {
	n, err := h.Transactions.DeleteAll(r.Context())
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, map[string]int{"deleted": n})
}
