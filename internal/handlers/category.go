package handlers

import (
	"net/http"

	"simaset/internal/model"
	"simaset/internal/service"

	"go.uber.org/zap"
)

// CategoryHandler — справочники: категории активов и произвольные типы отчётов.
type CategoryHandler struct {
	Categories  *service.CategoryService
	ReportTypes *service.CustomReportTypeService
	Logger      *zap.SugaredLogger
}

func NewCategoryHandler(categories *service.CategoryService, reportTypes *service.CustomReportTypeService, logger *zap.SugaredLogger) *CategoryHandler {
	return &CategoryHandler{Categories: categories, ReportTypes: reportTypes, Logger: logger}
}

func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	categories, err := h.Categories.ListActive(r.Context(), model.AssetKind(q.Get("kind")), q.Get("search"))
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"categories": categories})
}

type CategoryRequest struct {
	Name        string  `json:"name" validate:"required"`
	Kind        string  `json:"kind" validate:"required"`
	Description *string `json:"description,omitempty"`
}

func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CategoryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.Logger, err)
		return
	}
	category, err := h.Categories.Create(r.Context(), req.Name, model.AssetKind(req.Kind), req.Description)
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"category": category})
}

func (h *CategoryHandler) ListReportTypes(w http.ResponseWriter, r *http.Request) {
	types, err := h.ReportTypes.ListActive(r.Context())
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"customTypes": types})
}

type CustomReportTypeRequest struct {
	Name        string  `json:"name" validate:"required"`
	Description *string `json:"description,omitempty"`
}

func (h *CategoryHandler) CreateReportType(w http.ResponseWriter, r *http.Request) {
	var req CustomReportTypeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.Logger, err)
		return
	}
	created, err := h.ReportTypes.Create(r.Context(), req.Name, req.Description)
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"customType": created})
}
