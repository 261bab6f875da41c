package api

import (
	"net/http"
	"strconv"
	"strings"

	"fjacquet/fintrack/internal/importer"
	"fjacquet/fintrack/internal/models"

	"github.com/go-chi/chi/v5"
)

const maxUploadSize = 32 << 20

type importHandlers struct {
	ResponseHandler    ResponseHandler
	Importer           ImportService
	DefaultInstitution models.Institution
	DefaultAccountType models.AccountType
}

// NewImportHandlers builds the /imports handlers.
func NewImportHandlers(deps *Deps) *importHandlers {
	return &importHandlers{
		ResponseHandler:    deps.ResponseHandler,
		Importer:           deps.Importer,
		DefaultInstitution: deps.DefaultInstitution,
		DefaultAccountType: deps.DefaultAccountType,
	}
}

func (h *importHandlers) ImportRoutes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.CreateImport)
	return r
}

// CreateImport accepts a multipart upload with a "file" part and optional
// "institution", "account_type" and "dry_run" fields.
func (h *importHandlers) CreateImport(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		h.ResponseHandler.HandleError(w, r, badRequest("expected a multipart form: "+err.Error()))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		h.ResponseHandler.HandleError(w, r, badRequest("missing file part"))
		return
	}
	defer file.Close()

	req := importer.ImportRequest{
		FileName:    header.Filename,
		Content:     file,
		Institution: h.DefaultInstitution,
		AccountType: h.DefaultAccountType,
	}

	if institution := strings.TrimSpace(r.FormValue("institution")); institution != "" {
		req.Institution = models.ParseInstitution(institution)
	}
	if accountType := strings.TrimSpace(r.FormValue("account_type")); accountType != "" {
		req.AccountType, err = models.ParseAccountType(accountType)
		if err != nil {
			h.ResponseHandler.HandleError(w, r, badRequest(err.Error()))
			return
		}
	}
	if dryRun := r.FormValue("dry_run"); dryRun != "" {
		req.DryRun, err = strconv.ParseBool(dryRun)
		if err != nil {
			h.ResponseHandler.HandleError(w, r, badRequest("dry_run must be a boolean"))
			return
		}
	}

	result, err := h.Importer.Import(r.Context(), req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	status := http.StatusCreated
	if result.DryRun {
		status = http.StatusOK
	}
	h.ResponseHandler.WriteSuccess(w, r, status, result)
}
