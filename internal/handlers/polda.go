package handlers

import (
	"net/http"

	"simaset/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// PoldaHandler — CRUD по региональным управлениям.
type PoldaHandler struct {
	Service *service.PoldaService
	Logger  *zap.SugaredLogger
}

func NewPoldaHandler(s *service.PoldaService, logger *zap.SugaredLogger) *PoldaHandler {
	return &PoldaHandler{Service: s, Logger: logger}
}

func (h *PoldaHandler) List(w http.ResponseWriter, r *http.Request) {
	poldas, pg, err := h.Service.List(r.Context(), r.URL.Query().Get("search"), pageFromQuery(r))
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"poldas": poldas, "pagination": pg})
}

// ListSimple — краткий список id+name для выпадающих форм.
func (h *PoldaHandler) ListSimple(w http.ResponseWriter, r *http.Request) {
	poldas, err := h.Service.ListSimple(r.Context())
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	type item struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	out := make([]item, 0, len(poldas))
	for _, p := range poldas {
		out = append(out, item{ID: p.ID, Name: p.Name})
	}
	writeJSON(w, http.StatusOK, map[string]any{"poldas": out})
}

func (h *PoldaHandler) Get(w http.ResponseWriter, r *http.Request) {
	polda, err := h.Service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"polda": polda})
}

// PoldaRequest — тело создания/частичного обновления.
type PoldaRequest struct {
	Name    *string `json:"name,omitempty"`
	Address *string `json:"address,omitempty"`
	Phone   *string `json:"phone,omitempty"`
}

func (r PoldaRequest) input() service.PoldaInput {
	return service.PoldaInput{Name: r.Name, Address: r.Address, Phone: r.Phone}
}

func (h *PoldaHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req PoldaRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.Logger, err)
		return
	}
	polda, err := h.Service.Create(r.Context(), req.input())
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"polda": polda})
}

func (h *PoldaHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req PoldaRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.Logger, err)
		return
	}
	polda, err := h.Service.Update(r.Context(), chi.URLParam(r, "id"), req.input())
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"polda": polda})
}

func (h *PoldaHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "Polda berhasil dihapus"})
}
