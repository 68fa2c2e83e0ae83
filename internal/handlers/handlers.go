package handlers

import (
	"simaset/internal/config"
	"simaset/internal/middleware"
	"simaset/internal/model"
	"simaset/internal/service"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

type Handler struct {
	Router chi.Router
}

// Services — собранный сервисный слой для разводки роутов.
type Services struct {
	Auth        *service.AuthService
	Polda       *service.PoldaService
	Polres      *service.PolresService
	Users       *service.UserService
	Assets      *service.AssetService
	Reports     *service.ReportService
	Categories  *service.CategoryService
	ReportTypes *service.CustomReportTypeService
}

// NewHandler разводящий для хендлеров
func NewHandler(s Services, logger *zap.SugaredLogger, cfg *config.Config) *Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))
	r.Use(middleware.WithLogging)
	r.Use(middleware.WithAuth(cfg.AuthSecret))

	authHandler := NewAuthHandler(s.Auth, s.Users, logger, cfg)
	poldaHandler := NewPoldaHandler(s.Polda, logger)
	polresHandler := NewPolresHandler(s.Polres, logger)
	userHandler := NewUserHandler(s.Users, logger)
	assetHandler := NewAssetHandler(s.Assets, logger)
	reportHandler := NewReportHandler(s.Reports, logger)
	categoryHandler := NewCategoryHandler(s.Categories, s.ReportTypes, logger)

	// публичные роуты
	r.Post("/api/auth/register", authHandler.Register)
	r.Post("/api/auth/login", authHandler.Login)
	r.Post("/api/auth/logout", authHandler.Logout)
	r.Post("/api/admin/setup", authHandler.AdminSetup)

	orgAdmins := middleware.RequireRoles(model.RoleAdmin, model.RoleKorlantas)
	userAdmins := middleware.RequireRoles(model.RoleAdmin, model.RoleKorlantas, model.RolePolda)

	// всё остальное требует сессии
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)

		r.Get("/api/auth/me", authHandler.Me)

		r.Route("/api/polda", func(r chi.Router) {
			r.Get("/", poldaHandler.List)
			r.Get("/simple", poldaHandler.ListSimple)
			r.Get("/{id}", poldaHandler.Get)
			r.With(orgAdmins).Post("/", poldaHandler.Create)
			r.With(orgAdmins).Patch("/{id}", poldaHandler.Update)
			r.With(orgAdmins).Delete("/{id}", poldaHandler.Delete)
		})

		r.Route("/api/polres", func(r chi.Router) {
			r.Get("/", polresHandler.List)
			r.Get("/simple", polresHandler.ListSimple)
			r.Get("/{id}", polresHandler.Get)
			r.With(orgAdmins).Post("/", polresHandler.Create)
			r.With(orgAdmins).Patch("/{id}", polresHandler.Update)
			r.With(orgAdmins).Delete("/{id}", polresHandler.Delete)
		})

		r.Route("/api/users", func(r chi.Router) {
			r.Get("/approved", userHandler.ListApproved)
			r.Group(func(r chi.Router) {
				r.Use(userAdmins)
				r.Get("/", userHandler.List)
				r.Post("/", userHandler.Create)
				r.Get("/pending-count", userHandler.PendingCount)
				r.Get("/{id}", userHandler.Get)
				r.Patch("/{id}", userHandler.Update)
				r.Delete("/{id}", userHandler.Delete)
				r.Patch("/{id}/approve", userHandler.Approve)
				r.Patch("/{id}/reject", userHandler.Reject)
				r.Patch("/{id}/reset-password", userHandler.ResetPassword)
			})
		})

		r.Route("/api/assets", func(r chi.Router) {
			r.Get("/", assetHandler.List)
			r.Post("/", assetHandler.Create)
			r.Get("/{id}", assetHandler.Get)
			r.Get("/{id}/qr", assetHandler.QR)
			r.Patch("/{id}", assetHandler.Update)
			r.Delete("/{id}", assetHandler.Delete)
		})

		r.Route("/api/reports", func(r chi.Router) {
			r.Get("/", reportHandler.List)
			r.Post("/", reportHandler.Create)
			r.Get("/custom-types", categoryHandler.ListReportTypes)
			r.Post("/custom-types", categoryHandler.CreateReportType)
			r.Get("/{id}", reportHandler.Get)
			r.Get("/{id}/export", reportHandler.Export)
			r.Patch("/{id}", reportHandler.Update)
			r.Delete("/{id}", reportHandler.Delete)
		})

		r.Route("/api/categories", func(r chi.Router) {
			r.Get("/", categoryHandler.List)
			r.With(orgAdmins).Post("/", categoryHandler.Create)
		})
	})

	return &Handler{Router: r}
}
