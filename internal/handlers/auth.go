package handlers

import (
	"net/http"

	"simaset/internal/config"
	"simaset/internal/errs"
	"simaset/internal/middleware"
	"simaset/internal/model"
	"simaset/internal/scope"
	"simaset/internal/service"

	"go.uber.org/zap"
)

// AuthHandler — регистрация, вход/выход и bootstrap администратора.
type AuthHandler struct {
	Auth   *service.AuthService
	Users  *service.UserService
	Logger *zap.SugaredLogger
	Config *config.Config
}

func NewAuthHandler(auth *service.AuthService, users *service.UserService, logger *zap.SugaredLogger, cfg *config.Config) *AuthHandler {
	return &AuthHandler{Auth: auth, Users: users, Logger: logger, Config: cfg}
}

// RegisterRequest — заявка на регистрацию; аккаунт создаётся в статусе PENDING.
type RegisterRequest struct {
	NRP      string  `json:"nrp" validate:"required"`
	Name     string  `json:"name" validate:"required"`
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,min=6"`
	Role     string  `json:"role" validate:"required"`
	PoldaID  *string `json:"poldaId,omitempty"`
	PolresID *string `json:"polresId,omitempty"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.Logger, err)
		return
	}
	role := model.Role(req.Role)
	user, err := h.Auth.Register(r.Context(), service.UserInput{
		NRP:      &req.NRP,
		Name:     &req.Name,
		Email:    &req.Email,
		Password: &req.Password,
		Role:     &role,
		PoldaID:  req.PoldaID,
		PolresID: req.PolresID,
	})
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "Registrasi berhasil, menunggu persetujuan admin",
		"user":    user,
	})
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.Logger, err)
		return
	}
	user, err := h.Auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	if err := middleware.SetLoginCookie(w, callerOf(user), h.Config.AuthSecret); err != nil {
		writeError(w, h.Logger, errs.Internal(err))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"user": user})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	middleware.ClearLoginCookie(w)
	writeJSON(w, http.StatusOK, map[string]any{"message": "Logout berhasil"})
}

// Me возвращает профиль текущей сессии.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	c, _ := middleware.GetCallerFromContext(r.Context())
	user, err := h.Users.Get(r.Context(), c, c.UserID)
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"user": user})
}

type AdminSetupRequest struct {
	Name      string `json:"name" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required"`
	NRP       string `json:"nrp" validate:"required"`
	SecretKey string `json:"secretKey" validate:"required"`
}

func (h *AuthHandler) AdminSetup(w http.ResponseWriter, r *http.Request) {
	var req AdminSetupRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.Logger, err)
		return
	}
	user, err := h.Auth.AdminSetup(r.Context(), service.AdminSetupInput{
		Name:      req.Name,
		Email:     req.Email,
		Password:  req.Password,
		NRP:       req.NRP,
		SecretKey: req.SecretKey,
	})
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "Admin berhasil dibuat",
		"user":    user,
	})
}

func callerOf(u *model.User) scope.Caller {
	c := scope.Caller{UserID: u.ID, Role: u.Role}
	if u.PoldaID != nil {
		c.PoldaID = *u.PoldaID
	}
	if u.PolresID != nil {
		c.PolresID = *u.PolresID
	}
	return c
}
