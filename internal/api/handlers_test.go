package api

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"fjacquet/fintrack/internal/importer"
	"fjacquet/fintrack/internal/logging"
	"fjacquet/fintrack/internal/models"
	"fjacquet/fintrack/internal/parsererror"
	"fjacquet/fintrack/internal/report"
	"fjacquet/fintrack/internal/store"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Stubs ---

type stubImportService struct {
	importReq    importer.ImportRequest
	importBody   string
	importResult importer.ImportResult
	importErr    error

	added  models.Transaction
	addErr error

	confirmID         string
	confirmCategory   string
	confirmCreateRule bool
	confirmErr        error
}

func (s *stubImportService) Import(_ context.Context, req importer.ImportRequest) (importer.ImportResult, error) {
	s.importReq = req
	if req.Content != nil {
		body, _ := io.ReadAll(req.Content)
		s.importBody = string(body)
	}
	return s.importResult, s.importErr
}

func (s *stubImportService) AddTransaction(_ context.Context, tx models.Transaction) (models.Transaction, error) {
	s.added = tx
	tx.ID = "tx-1"
	return tx, s.addErr
}

func (s *stubImportService) ConfirmTransaction(_ context.Context, id, category string, createRule bool) (models.Transaction, error) {
	s.confirmID = id
	s.confirmCategory = category
	s.confirmCreateRule = createRule
	return models.Transaction{ID: id, Category: category}, s.confirmErr
}

type stubTransactionService struct {
	filter    store.ListFilter
	txs       []models.Transaction
	err       error
	updatedID string
	patch     models.TransactionPatch
	deletedID string
}

func (s *stubTransactionService) List(_ context.Context, filter store.ListFilter) ([]models.Transaction, error) {
	s.filter = filter
	return s.txs, s.err
}

func (s *stubTransactionService) Summary(_ context.Context) (models.Summary, error) {
	return models.Summarize(s.txs), nil
}

func (s *stubTransactionService) Update(_ context.Context, id string, patch models.TransactionPatch) (models.Transaction, error) {
	s.updatedID = id
	s.patch = patch
	return patch.Apply(models.Transaction{ID: id}), s.err
}

func (s *stubTransactionService) Delete(_ context.Context, id string) error {
	s.deletedID = id
	return s.err
}

func (s *stubTransactionService) DeleteAll(_ context.Context) (int, error) {
	return len(s.txs), s.err
}

type stubRuleService struct {
	rules     []models.CategoryRule
	created   models.CategoryRule
	createErr error
	deletedID string
	deleteErr error
	imported  string
}

func (s *stubRuleService) GetAll(_ context.Context) ([]models.CategoryRule, error) {
	return s.rules, nil
}

func (s *stubRuleService) Create(_ context.Context, rule models.CategoryRule) (models.CategoryRule, error) {
	s.created = rule
	rule.ID = "rule-1"
	return rule, s.createErr
}

func (s *stubRuleService) Delete(_ context.Context, id string) error {
	s.deletedID = id
	return s.deleteErr
}

func (s *stubRuleService) ExportRules(_ context.Context, w io.Writer) error {
	_, err := io.WriteString(w, "id,term\nrule-1,uber\n")
	return err
}

func (s *stubRuleService) ImportRules(_ context.Context, in io.Reader) ([]models.CategoryRule, error) {
	body, _ := io.ReadAll(in)
	s.imported = string(body)
	return []models.CategoryRule{{ID: "rule-2", Term: "ifood"}}, nil
}

type stubCategoryService struct {
	names   []string
	created []string
}

func (s *stubCategoryService) GetAll(_ context.Context) ([]string, error) {
	return s.names, nil
}

func (s *stubCategoryService) Create(_ context.Context, name string) error {
	s.created = append(s.created, name)
	return nil
}

type stubResponseHandler struct {
	writeSuccessCalled bool
	writeSuccessStatus int
	writeSuccessData   any

	handleErrorCalled bool
	handleError       error
}

func (s *stubResponseHandler) WriteSuccess(w http.ResponseWriter, _ *http.Request, status int, data any) {
	s.writeSuccessCalled = true
	s.writeSuccessStatus = status
	s.writeSuccessData = data
	w.WriteHeader(status)
}

func (s *stubResponseHandler) WriteError(w http.ResponseWriter, _ *http.Request, status int, _, _ string) {
	w.WriteHeader(status)
}

func (s *stubResponseHandler) HandleError(w http.ResponseWriter, _ *http.Request, err error) {
	s.handleErrorCalled = true
	s.handleError = err
	w.WriteHeader(http.StatusInternalServerError)
}

// withChiParam injects a chi URL parameter into the request context.
func withChiParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	ctx := context.WithValue(r.Context(), chi.RouteCtxKey, rctx)
	return r.WithContext(ctx)
}

func multipartUpload(t *testing.T, fileName, content string, fields map[string]string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if fileName != "" {
		part, err := mw.CreateFormFile("file", fileName)
		require.NoError(t, err)
		_, err = part.Write([]byte(content))
		require.NoError(t, err)
	}
	for key, value := range fields {
		require.NoError(t, mw.WriteField(key, value))
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/imports", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func newTestDeps(resp ResponseHandler) *Deps {
	return &Deps{
		Logger:             logging.NewMockLogger(),
		ResponseHandler:    resp,
		Importer:           &stubImportService{},
		Transactions:       &stubTransactionService{},
		Rules:              &stubRuleService{},
		Categories:         &stubCategoryService{},
		DefaultInstitution: models.InstitutionOther,
		DefaultAccountType: models.AccountTypeChecking,
	}
}

// --- Imports ---

func TestCreateImport_UsesFormFields(t *testing.T) {
	resp := &stubResponseHandler{}
	svc := &stubImportService{importResult: importer.ImportResult{Total: 1}}
	deps := newTestDeps(resp)
	deps.Importer = svc
	h := NewImportHandlers(deps)

	req := multipartUpload(t, "fatura.csv", "date,title,amount\n", map[string]string{
		"institution":  "nubank",
		"account_type": "credit_card",
	})
	rr := httptest.NewRecorder()
	h.CreateImport(rr, req)

	require.True(t, resp.writeSuccessCalled)
	assert.Equal(t, http.StatusCreated, resp.writeSuccessStatus)
	assert.Equal(t, "fatura.csv", svc.importReq.FileName)
	assert.Equal(t, models.InstitutionNubank, svc.importReq.Institution)
	assert.Equal(t, models.AccountTypeCreditCard, svc.importReq.AccountType)
	assert.Equal(t, "date,title,amount\n", svc.importBody)
	assert.False(t, svc.importReq.DryRun)
}

func TestCreateImport_DefaultsAndDryRun(t *testing.T) {
	resp := &stubResponseHandler{}
	svc := &stubImportService{importResult: importer.ImportResult{DryRun: true}}
	deps := newTestDeps(resp)
	deps.Importer = svc
	deps.DefaultInstitution = models.InstitutionInter
	h := NewImportHandlers(deps)

	rr := httptest.NewRecorder()
	h.CreateImport(rr, multipartUpload(t, "extrato.ofx", "<OFX/>", map[string]string{"dry_run": "true"}))

	assert.Equal(t, http.StatusOK, resp.writeSuccessStatus)
	assert.Equal(t, models.InstitutionInter, svc.importReq.Institution)
	assert.Equal(t, models.AccountTypeChecking, svc.importReq.AccountType)
	assert.True(t, svc.importReq.DryRun)
}

func TestCreateImport_BadRequests(t *testing.T) {
	tests := []struct {
		name string
		req  func(t *testing.T) *http.Request
	}{
		{"not multipart", func(t *testing.T) *http.Request {
			return httptest.NewRequest(http.MethodPost, "/imports", strings.NewReader("{}"))
		}},
		{"missing file", func(t *testing.T) *http.Request {
			return multipartUpload(t, "", "", map[string]string{"institution": "Nubank"})
		}},
		{"bad account type", func(t *testing.T) *http.Request {
			return multipartUpload(t, "a.csv", "x", map[string]string{"account_type": "savings"})
		}},
		{"bad dry run", func(t *testing.T) *http.Request {
			return multipartUpload(t, "a.csv", "x", map[string]string{"dry_run": "maybe"})
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := &stubResponseHandler{}
			svc := &stubImportService{}
			deps := newTestDeps(resp)
			deps.Importer = svc
			h := NewImportHandlers(deps)

			h.CreateImport(httptest.NewRecorder(), tt.req(t))

			require.True(t, resp.handleErrorCalled)
			assert.True(t, errors.Is(resp.handleError, parsererror.ErrValidation))
			assert.Empty(t, svc.importReq.FileName)
		})
	}
}

func TestCreateImport_ServiceError(t *testing.T) {
	resp := &stubResponseHandler{}
	deps := newTestDeps(resp)
	deps.Importer = &stubImportService{importErr: &parsererror.UnsupportedFormatError{FileName: "a.pdf", Extension: ".pdf"}}
	h := NewImportHandlers(deps)

	h.CreateImport(httptest.NewRecorder(), multipartUpload(t, "a.pdf", "x", nil))

	require.True(t, resp.handleErrorCalled)
	assert.True(t, errors.Is(resp.handleError, parsererror.ErrUnsupportedFormat))
	assert.False(t, resp.writeSuccessCalled)
}

// --- Transactions ---

func TestListTransactions_PendingFilter(t *testing.T) {
	resp := &stubResponseHandler{}
	lister := &stubTransactionService{txs: []models.Transaction{{ID: "a", IsPending: true}}}
	deps := newTestDeps(resp)
	deps.Transactions = lister
	h := NewTransactionHandlers(deps)

	h.ListTransactions(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/transactions?pending=true", nil))

	require.True(t, resp.writeSuccessCalled)
	assert.True(t, lister.filter.PendingOnly)
	list, ok := resp.writeSuccessData.(TransactionList)
	require.True(t, ok)
	assert.Len(t, list.Transactions, 1)
	assert.Equal(t, 1, list.Summary.Pending)
}

func TestListTransactions_EmptyIsNotNull(t *testing.T) {
	resp := &stubResponseHandler{}
	h := NewTransactionHandlers(newTestDeps(resp))

	h.ListTransactions(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/transactions", nil))

	list := resp.writeSuccessData.(TransactionList)
	assert.NotNil(t, list.Transactions)
	assert.Empty(t, list.Transactions)
}

func TestListTransactions_InvalidPending(t *testing.T) {
	resp := &stubResponseHandler{}
	h := NewTransactionHandlers(newTestDeps(resp))

	h.ListTransactions(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/transactions?pending=sometimes", nil))

	require.True(t, resp.handleErrorCalled)
	assert.True(t, errors.Is(resp.handleError, parsererror.ErrValidation))
}

func TestCreateTransaction(t *testing.T) {
	resp := &stubResponseHandler{}
	svc := &stubImportService{}
	deps := newTestDeps(resp)
	deps.Importer = svc
	h := NewTransactionHandlers(deps)

	body := `{"date":"2024-03-15","description":"  Padaria  ","amount":"-12.30","type":"saída","institution":"Nubank"}`
	h.CreateTransaction(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/transactions", strings.NewReader(body)))

	require.True(t, resp.writeSuccessCalled)
	assert.Equal(t, http.StatusCreated, resp.writeSuccessStatus)
	assert.Equal(t, "Padaria", svc.added.Description)
	assert.True(t, decimal.RequireFromString("12.30").Equal(svc.added.Amount))
	assert.Equal(t, models.TransactionTypeExpense, svc.added.Type)
	assert.Equal(t, "2024-03-15", svc.added.Date)
}

func TestCreateTransaction_BadBody(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"invalid json", `{"date":`},
		{"unknown type", `{"date":"2024-03-15","description":"x","amount":1,"type":"transfer"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := &stubResponseHandler{}
			h := NewTransactionHandlers(newTestDeps(resp))

			h.CreateTransaction(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/transactions", strings.NewReader(tt.body)))

			require.True(t, resp.handleErrorCalled)
			assert.True(t, errors.Is(resp.handleError, parsererror.ErrValidation))
		})
	}
}

func TestConfirmTransaction(t *testing.T) {
	resp := &stubResponseHandler{}
	svc := &stubImportService{}
	deps := newTestDeps(resp)
	deps.Importer = svc
	h := NewTransactionHandlers(deps)

	req := httptest.NewRequest(http.MethodPost, "/transactions/tx-9/confirm", strings.NewReader(`{"category":" Mercado ","create_rule":true}`))
	req = withChiParam(req, "transactionId", "tx-9")
	h.ConfirmTransaction(httptest.NewRecorder(), req)

	require.True(t, resp.writeSuccessCalled)
	assert.Equal(t, "tx-9", svc.confirmID)
	assert.Equal(t, "Mercado", svc.confirmCategory)
	assert.True(t, svc.confirmCreateRule)
}

func TestConfirmTransaction_NotFound(t *testing.T) {
	resp := &stubResponseHandler{}
	deps := newTestDeps(resp)
	deps.Importer = &stubImportService{confirmErr: store.ErrNotFound}
	h := NewTransactionHandlers(deps)

	req := withChiParam(httptest.NewRequest(http.MethodPost, "/transactions/nope/confirm", strings.NewReader(`{"category":"Lazer"}`)), "transactionId", "nope")
	h.ConfirmTransaction(httptest.NewRecorder(), req)

	require.True(t, resp.handleErrorCalled)
	assert.True(t, errors.Is(resp.handleError, store.ErrNotFound))
}

func TestUpdateTransaction(t *testing.T) {
	resp := &stubResponseHandler{}
	svc := &stubTransactionService{}
	deps := newTestDeps(resp)
	deps.Transactions = svc
	h := NewTransactionHandlers(deps)

	body := `{"description":"  Padaria Central ","amount":"-15.10","type":"entrada","is_pending":false}`
	req := withChiParam(httptest.NewRequest(http.MethodPatch, "/transactions/tx-3", strings.NewReader(body)), "transactionId", "tx-3")
	h.UpdateTransaction(httptest.NewRecorder(), req)

	require.True(t, resp.writeSuccessCalled)
	assert.Equal(t, http.StatusOK, resp.writeSuccessStatus)
	assert.Equal(t, "tx-3", svc.updatedID)
	require.NotNil(t, svc.patch.Description)
	assert.Equal(t, "Padaria Central", *svc.patch.Description)
	require.NotNil(t, svc.patch.Amount)
	assert.True(t, decimal.RequireFromString("15.10").Equal(*svc.patch.Amount))
	require.NotNil(t, svc.patch.Type)
	assert.Equal(t, models.TransactionTypeIncome, *svc.patch.Type)
	require.NotNil(t, svc.patch.IsPending)
	assert.False(t, *svc.patch.IsPending)
	assert.Nil(t, svc.patch.Date)
	assert.Nil(t, svc.patch.Category)
}

func TestUpdateTransaction_BadRequests(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"invalid json", `{"description":`},
		{"empty patch", `{}`},
		{"unknown type", `{"type":"transfer"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := &stubResponseHandler{}
			svc := &stubTransactionService{}
			deps := newTestDeps(resp)
			deps.Transactions = svc
			h := NewTransactionHandlers(deps)

			req := withChiParam(httptest.NewRequest(http.MethodPatch, "/transactions/tx-3", strings.NewReader(tt.body)), "transactionId", "tx-3")
			h.UpdateTransaction(httptest.NewRecorder(), req)

			require.True(t, resp.handleErrorCalled)
			assert.True(t, errors.Is(resp.handleError, parsererror.ErrValidation))
			assert.Empty(t, svc.updatedID)
		})
	}
}

func TestDeleteTransaction(t *testing.T) {
	resp := &stubResponseHandler{}
	svc := &stubTransactionService{}
	deps := newTestDeps(resp)
	deps.Transactions = svc
	h := NewTransactionHandlers(deps)

	rr := httptest.NewRecorder()
	h.DeleteTransaction(rr, withChiParam(httptest.NewRequest(http.MethodDelete, "/transactions/tx-4", nil), "transactionId", "tx-4"))

	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Equal(t, "tx-4", svc.deletedID)
	assert.False(t, resp.handleErrorCalled)
}

func TestDeleteTransaction_NotFound(t *testing.T) {
	resp := &stubResponseHandler{}
	deps := newTestDeps(resp)
	deps.Transactions = &stubTransactionService{err: store.ErrNotFound}
	h := NewTransactionHandlers(deps)

	h.DeleteTransaction(httptest.NewRecorder(), withChiParam(httptest.NewRequest(http.MethodDelete, "/transactions/nope", nil), "transactionId", "nope"))

	require.True(t, resp.handleErrorCalled)
	assert.True(t, errors.Is(resp.handleError, store.ErrNotFound))
}

func TestDeleteAllTransactions(t *testing.T) {
	resp := &stubResponseHandler{}
	deps := newTestDeps(resp)
	deps.Transactions = &stubTransactionService{txs: []models.Transaction{{ID: "a"}, {ID: "b"}}}
	h := NewTransactionHandlers(deps)

	h.DeleteAllTransactions(httptest.NewRecorder(), httptest.NewRequest(http.MethodDelete, "/transactions", nil))

	require.True(t, resp.writeSuccessCalled)
	assert.Equal(t, map[string]int{"deleted": 2}, resp.writeSuccessData)
}

// --- Rules ---

func TestCreateRule_DefaultsAndVocabulary(t *testing.T) {
	resp := &stubResponseHandler{}
	rules := &stubRuleService{}
	categories := &stubCategoryService{}
	deps := newTestDeps(resp)
	deps.Rules = rules
	deps.Categories = categories
	h := NewRuleHandlers(deps)

	body := `{"term":"ifood","category":"Alimentação","auto_confirm":true,"type":"expense"}`
	h.CreateRule(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/rules", strings.NewReader(body)))

	require.True(t, resp.writeSuccessCalled)
	assert.Equal(t, http.StatusCreated, resp.writeSuccessStatus)
	assert.Equal(t, models.MatchTypeContains, rules.created.MatchType)
	assert.Equal(t, models.TransactionTypeExpense, rules.created.Type)
	assert.True(t, rules.created.AutoConfirm)
	assert.Equal(t, []string{"Alimentação"}, categories.created)
}

func TestCreateRule_ValidationError(t *testing.T) {
	resp := &stubResponseHandler{}
	categories := &stubCategoryService{}
	deps := newTestDeps(resp)
	deps.Rules = &stubRuleService{createErr: &parsererror.ValidationError{Entity: "rule", Reason: "term is required"}}
	deps.Categories = categories
	h := NewRuleHandlers(deps)

	h.CreateRule(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/rules", strings.NewReader(`{"category":"Lazer"}`)))

	require.True(t, resp.handleErrorCalled)
	assert.Empty(t, categories.created)
}

func TestDeleteRule(t *testing.T) {
	resp := &stubResponseHandler{}
	rules := &stubRuleService{}
	deps := newTestDeps(resp)
	deps.Rules = rules
	h := NewRuleHandlers(deps)

	rr := httptest.NewRecorder()
	h.DeleteRule(rr, withChiParam(httptest.NewRequest(http.MethodDelete, "/rules/r1", nil), "ruleId", "r1"))

	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Equal(t, "r1", rules.deletedID)
}

func TestExportAndImportRules(t *testing.T) {
	resp := &stubResponseHandler{}
	rules := &stubRuleService{}
	deps := newTestDeps(resp)
	deps.Rules = rules
	h := NewRuleHandlers(deps)

	rr := httptest.NewRecorder()
	h.ExportRules(rr, httptest.NewRequest(http.MethodGet, "/rules/export", nil))
	assert.Equal(t, "text/csv; charset=utf-8", rr.Header().Get("Content-Type"))
	assert.Equal(t, "id,term\nrule-1,uber\n", rr.Body.String())

	h.ImportRules(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/rules/import", strings.NewReader("term,category\nifood,Alimentação\n")))
	assert.Equal(t, "term,category\nifood,Alimentação\n", rules.imported)
	assert.Equal(t, http.StatusCreated, resp.writeSuccessStatus)
}

// --- Categories ---

func TestCreateCategory(t *testing.T) {
	resp := &stubResponseHandler{}
	categories := &stubCategoryService{}
	deps := newTestDeps(resp)
	deps.Categories = categories
	h := NewCategoryHandlers(deps)

	h.CreateCategory(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/categories", strings.NewReader(`{"name":" Pets "}`)))
	assert.Equal(t, []string{"Pets"}, categories.created)

	resp2 := &stubResponseHandler{}
	deps.ResponseHandler = resp2
	NewCategoryHandlers(deps).CreateCategory(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/categories", strings.NewReader(`{"name":"  "}`)))
	require.True(t, resp2.handleErrorCalled)
	assert.True(t, errors.Is(resp2.handleError, parsererror.ErrValidation))
}

func TestListCategories_EmptyIsNotNull(t *testing.T) {
	resp := &stubResponseHandler{}
	h := NewCategoryHandlers(newTestDeps(resp))

	h.ListCategories(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/categories", nil))

	assert.Equal(t, []string{}, resp.writeSuccessData)
}

// --- Reports ---

func TestGetSummary(t *testing.T) {
	resp := &stubResponseHandler{}
	deps := newTestDeps(resp)
	deps.Transactions = &stubTransactionService{txs: []models.Transaction{
		{Date: "2024-03-05", Amount: decimal.RequireFromString("10"), Type: models.TransactionTypeExpense, Category: "Mercado"},
		{Date: "2024-04-05", Amount: decimal.RequireFromString("99"), Type: models.TransactionTypeExpense, Category: "Lazer"},
	}}
	h := NewReportHandlers(deps)

	h.GetSummary(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/reports/summary?month=2024-03", nil))

	require.True(t, resp.writeSuccessCalled)
	summary, ok := resp.writeSuccessData.(report.Summary)
	require.True(t, ok)
	assert.Equal(t, 1, summary.Count)
	require.Len(t, summary.ByCategory, 1)
	assert.Equal(t, "Mercado", summary.ByCategory[0].Key)
}

func TestGetSummary_CSV(t *testing.T) {
	resp := &stubResponseHandler{}
	deps := newTestDeps(resp)
	deps.Transactions = &stubTransactionService{txs: []models.Transaction{
		{Date: "2024-03-05", Amount: decimal.RequireFromString("10"), Type: models.TransactionTypeExpense, Category: "Mercado"},
	}}
	h := NewReportHandlers(deps)

	rr := httptest.NewRecorder()
	h.GetSummary(rr, httptest.NewRequest(http.MethodGet, "/reports/summary?format=csv", nil))

	assert.False(t, resp.writeSuccessCalled)
	assert.Equal(t, "text/csv; charset=utf-8", rr.Header().Get("Content-Type"))
	assert.Contains(t, rr.Body.String(), "category,Mercado,1,0.00,10.00,-10.00")
}

func TestGetSummary_BadQuery(t *testing.T) {
	for _, query := range []string{"?month=03-2024", "?confirmed=perhaps"} {
		resp := &stubResponseHandler{}
		h := NewReportHandlers(newTestDeps(resp))

		h.GetSummary(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/reports/summary"+query, nil))

		require.True(t, resp.handleErrorCalled, query)
		assert.True(t, errors.Is(resp.handleError, parsererror.ErrValidation), query)
	}
}
