package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

// CreateCategoryRequest is the body of POST /categories.
type CreateCategoryRequest struct {
	Name string `json:"name"`
}

type categoryHandlers struct {
	ResponseHandler ResponseHandler
	Categories      CategoryService
}

// NewCategoryHandlers builds the /categories handlers.
func NewCategoryHandlers(deps *Deps) *categoryHandlers {
	return &categoryHandlers{
		ResponseHandler: deps.ResponseHandler,
		Categories:      deps.Categories,
	}
}

func (h *categoryHandlers) CategoryRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ListCategories)
	r.Post("/", h.CreateCategory)
	return r
}

func (h *categoryHandlers) ListCategories(w http.ResponseWriter, r *http.Request) {
	names, err := h.Categories.GetAll(r.Context())
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	if names == nil {
		names = []string{}
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, names)
}

func (h *categoryHandlers) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req CreateCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ResponseHandler.HandleError(w, r, badRequest("invalid JSON body: "+err.Error()))
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		h.ResponseHandler.HandleError(w, r, badRequest("name is required"))
		return
	}
	if err := h.Categories.Create(r.Context(), name); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusCreated, CreateCategoryRequest{Name: name})
}
