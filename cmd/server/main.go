package main

import (
	"net/http"

	"simaset/internal/config"
	"simaset/internal/handlers"
	"simaset/internal/middleware"
	"simaset/internal/repo"
	"simaset/internal/service"

	"go.uber.org/zap"
)

func main() {
	cfg := config.NewConfig()

	// создаём предустановленный регистратор zap
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	sugar := logger.Sugar()
	middleware.SetLogger(sugar)
	defer func() {
		if err := logger.Sync(); err != nil {
			sugar.Errorw("Failed to sync logger", "error", err)
		}
	}()

	gormDB, err := repo.InitDB(cfg.DatabaseDSN)
	if err != nil {
		sugar.Fatalw("failed to initialize database", "error", err)
	}
	poldaRepo := repo.NewPoldaRepository(gormDB)
	polresRepo := repo.NewPolresRepository(gormDB)
	userRepo := repo.NewUserRepository(gormDB)
	assetRepo := repo.NewAssetRepository(gormDB)
	reportRepo := repo.NewReportRepository(gormDB)
	categoryRepo := repo.NewCategoryRepository(gormDB)
	reportTypeRepo := repo.NewCustomReportTypeRepository(gormDB)

	userService := service.NewUserService(userRepo, poldaRepo, polresRepo)

	h := handlers.NewHandler(handlers.Services{
		Auth:        service.NewAuthService(userService, userRepo, cfg.AdminSetupSecret),
		Polda:       service.NewPoldaService(poldaRepo),
		Polres:      service.NewPolresService(polresRepo, poldaRepo),
		Users:       userService,
		Assets:      service.NewAssetService(assetRepo, polresRepo, userRepo, categoryRepo),
		Reports:     service.NewReportService(reportRepo, polresRepo, poldaRepo),
		Categories:  service.NewCategoryService(categoryRepo),
		ReportTypes: service.NewCustomReportTypeService(reportTypeRepo),
	}, sugar, cfg)

	sugar.Infow("Starting server",
		"addr", cfg.RunAddress,
	)

	if err := http.ListenAndServe(cfg.RunAddress, h.Router); err != nil {
		sugar.Fatalw("Server failed", "error", err)
	}
}
