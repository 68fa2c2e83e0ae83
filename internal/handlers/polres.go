package handlers

import (
	"net/http"

	"simaset/internal/middleware"
	"simaset/internal/scope"
	"simaset/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// PolresHandler — CRUD по территориальным подразделениям.
type PolresHandler struct {
	Service *service.PolresService
	Logger  *zap.SugaredLogger
}

func NewPolresHandler(s *service.PolresService, logger *zap.SugaredLogger) *PolresHandler {
	return &PolresHandler{Service: s, Logger: logger}
}

func caller(r *http.Request) scope.Caller {
	c, _ := middleware.GetCallerFromContext(r.Context())
	return c
}

func (h *PolresHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	polres, pg, err := h.Service.List(r.Context(), caller(r), q.Get("search"), q.Get("poldaId"), pageFromQuery(r))
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"polres": polres, "pagination": pg})
}

// ListSimple — краткий список id+name, опционально по poldaId.
func (h *PolresHandler) ListSimple(w http.ResponseWriter, r *http.Request) {
	polres, err := h.Service.ListSimple(r.Context(), caller(r), r.URL.Query().Get("poldaId"))
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	type item struct {
		ID      string `json:"id"`
		Name    string `json:"name"`
		PoldaID string `json:"poldaId"`
	}
	out := make([]item, 0, len(polres))
	for _, p := range polres {
		out = append(out, item{ID: p.ID, Name: p.Name, PoldaID: p.PoldaID})
	}
	writeJSON(w, http.StatusOK, map[string]any{"polres": out})
}

func (h *PolresHandler) Get(w http.ResponseWriter, r *http.Request) {
	polres, err := h.Service.Get(r.Context(), caller(r), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"polres": polres})
}

// PolresRequest — тело создания/частичного обновления.
type PolresRequest struct {
	Name    *string `json:"name,omitempty"`
	Address *string `json:"address,omitempty"`
	Phone   *string `json:"phone,omitempty"`
	PoldaID *string `json:"poldaId,omitempty"`
}

func (r PolresRequest) input() service.PolresInput {
	return service.PolresInput{Name: r.Name, Address: r.Address, Phone: r.Phone, PoldaID: r.PoldaID}
}

func (h *PolresHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req PolresRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.Logger, err)
		return
	}
	polres, err := h.Service.Create(r.Context(), req.input())
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"polres": polres})
}

func (h *PolresHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req PolresRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.Logger, err)
		return
	}
	polres, err := h.Service.Update(r.Context(), chi.URLParam(r, "id"), req.input())
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"polres": polres})
}

func (h *PolresHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "Polres berhasil dihapus"})
}
