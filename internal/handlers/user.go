package handlers

import (
	"net/http"

	"simaset/internal/model"
	"simaset/internal/repo"
	"simaset/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// UserHandler — управление аккаунтами и воркфлоу одобрения.
type UserHandler struct {
	Service *service.UserService
	Logger  *zap.SugaredLogger
}

func NewUserHandler(s *service.UserService, logger *zap.SugaredLogger) *UserHandler {
	return &UserHandler{Service: s, Logger: logger}
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := repo.UserFilter{
		Search:   q.Get("search"),
		Status:   model.UserStatus(q.Get("status")),
		Role:     model.Role(q.Get("role")),
		PoldaID:  q.Get("poldaId"),
		PolresID: q.Get("polresId"),
	}
	users, pg, err := h.Service.List(r.Context(), caller(r), f, pageFromQuery(r))
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"users": users, "pagination": pg})
}

// ListApproved — одобренные пользователи в зоне видимости (для форм активов).
func (h *UserHandler) ListApproved(w http.ResponseWriter, r *http.Request) {
	users, err := h.Service.ListApproved(r.Context(), caller(r))
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"users": users})
}

func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, err := h.Service.Get(r.Context(), caller(r), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"user": user})
}

// UserRequest — тело создания/частичного обновления аккаунта.
type UserRequest struct {
	NRP      *string `json:"nrp,omitempty"`
	Name     *string `json:"name,omitempty"`
	Email    *string `json:"email,omitempty" validate:"omitempty,email"`
	Password *string `json:"password,omitempty" validate:"omitempty,min=6"`
	Role     *string `json:"role,omitempty"`
	PoldaID  *string `json:"poldaId,omitempty"`
	PolresID *string `json:"polresId,omitempty"`
}

func (r UserRequest) input() service.UserInput {
	in := service.UserInput{
		NRP:      r.NRP,
		Name:     r.Name,
		Email:    r.Email,
		Password: r.Password,
		PoldaID:  r.PoldaID,
		PolresID: r.PolresID,
	}
	if r.Role != nil {
		role := model.Role(*r.Role)
		in.Role = &role
	}
	return in
}

func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req UserRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.Logger, err)
		return
	}
	user, err := h.Service.Create(r.Context(), req.input())
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"user": user})
}

func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req UserRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.Logger, err)
		return
	}
	user, err := h.Service.Update(r.Context(), caller(r), chi.URLParam(r, "id"), req.input())
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"user": user})
}

func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Delete(r.Context(), caller(r), chi.URLParam(r, "id")); err != nil {
		writeError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "User berhasil dihapus"})
}

func (h *UserHandler) Approve(w http.ResponseWriter, r *http.Request) {
	user, err := h.Service.Approve(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "User disetujui", "user": user})
}

func (h *UserHandler) Reject(w http.ResponseWriter, r *http.Request) {
	user, err := h.Service.Reject(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "User ditolak", "user": user})
}

// ResetPassword генерирует новый пароль и возвращает его открытым текстом
// один раз; хранится только хеш.
func (h *UserHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	password, err := h.Service.ResetPassword(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message":     "Password berhasil direset",
		"newPassword": password,
	})
}

func (h *UserHandler) PendingCount(w http.ResponseWriter, r *http.Request) {
	count, err := h.Service.PendingCount(r.Context())
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"count": count})
}
