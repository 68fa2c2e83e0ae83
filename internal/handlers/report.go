package handlers

import (
	"net/http"

	"simaset/internal/model"
	"simaset/internal/repo"
	"simaset/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ReportHandler — отчёты и их экспорт.
type ReportHandler struct {
	Service *service.ReportService
	Logger  *zap.SugaredLogger
}

func NewReportHandler(s *service.ReportService, logger *zap.SugaredLogger) *ReportHandler {
	return &ReportHandler{Service: s, Logger: logger}
}

func (h *ReportHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := repo.ReportFilter{
		Search:   q.Get("search"),
		Status:   model.ReportStatus(q.Get("status")),
		Type:     model.ReportType(q.Get("type")),
		PoldaID:  q.Get("poldaId"),
		PolresID: q.Get("polresId"),
	}
	reports, pg, err := h.Service.List(r.Context(), caller(r), f, pageFromQuery(r))
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"reports": reports, "pagination": pg})
}

func (h *ReportHandler) Get(w http.ResponseWriter, r *http.Request) {
	report, err := h.Service.Get(r.Context(), caller(r), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"report": report})
}

// Export отдаёт файл отчёта; ?format=pdf|excel.
func (h *ReportHandler) Export(w http.ResponseWriter, r *http.Request) {
	file, err := h.Service.Export(r.Context(), caller(r), chi.URLParam(r, "id"), r.URL.Query().Get("format"))
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	w.Header().Set("Content-Type", file.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+file.Filename+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(file.Data)
}

// ReportRequest — тело создания/частичного обновления отчёта.
// Автор всегда берётся из сессии.
type ReportRequest struct {
	Title       *string `json:"title,omitempty"`
	Type        *string `json:"type,omitempty"`
	CustomType  *string `json:"customType,omitempty"`
	Description *string `json:"description,omitempty"`
	Content     *string `json:"content,omitempty"`
	Status      *string `json:"status,omitempty"`
	PoldaID     *string `json:"poldaId,omitempty"`
	PolresID    *string `json:"polresId,omitempty"`
}

func (r ReportRequest) input() service.ReportInput {
	in := service.ReportInput{
		Title:       r.Title,
		CustomType:  r.CustomType,
		Description: r.Description,
		Content:     r.Content,
		PoldaID:     r.PoldaID,
		PolresID:    r.PolresID,
	}
	if r.Type != nil {
		t := model.ReportType(*r.Type)
		in.Type = &t
	}
	if r.Status != nil {
		s := model.ReportStatus(*r.Status)
		in.Status = &s
	}
	return in
}

func (h *ReportHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req ReportRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.Logger, err)
		return
	}
	report, err := h.Service.Create(r.Context(), caller(r), req.input())
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"report": report})
}

func (h *ReportHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req ReportRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.Logger, err)
		return
	}
	report, err := h.Service.Update(r.Context(), caller(r), chi.URLParam(r, "id"), req.input())
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"report": report})
}

func (h *ReportHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Delete(r.Context(), caller(r), chi.URLParam(r, "id")); err != nil {
		writeError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "Laporan berhasil dihapus"})
}
