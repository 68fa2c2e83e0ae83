package main

import (
	"context"

	"simaset/internal/config"
	"simaset/internal/errs"
	"simaset/internal/model"
	"simaset/internal/repo"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Наполняет пустую базу стартовыми данными: один Polda, один Polres,
// одобренный администратор и три образца активов. Повторный запуск
// пропускается, если администратор уже существует.
func main() {
	cfg := config.NewConfig()

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	sugar := logger.Sugar()
	defer func() { _ = logger.Sync() }()

	gormDB, err := repo.InitDB(cfg.DatabaseDSN)
	if err != nil {
		sugar.Fatalw("failed to initialize database", "error", err)
	}
	ctx := context.Background()
	poldaRepo := repo.NewPoldaRepository(gormDB)
	polresRepo := repo.NewPolresRepository(gormDB)
	userRepo := repo.NewUserRepository(gormDB)
	assetRepo := repo.NewAssetRepository(gormDB)

	const adminEmail = "admin@police-inventory.com"
	existing, err := userRepo.GetByEmail(ctx, adminEmail)
	if err != nil && errs.KindOf(err) != errs.KindNotFound {
		sugar.Fatalw("seed check failed", "error", err)
	}
	if existing != nil {
		sugar.Infow("database already seeded", "admin", adminEmail)
		return
	}

	polda := &model.Polda{Name: "Polda Metro Jaya"}
	if err := poldaRepo.Create(ctx, polda); err != nil {
		sugar.Fatalw("seed polda failed", "error", err)
	}

	polres := &model.Polres{Name: "Polres Jakarta Selatan", PoldaID: polda.ID}
	if err := polresRepo.Create(ctx, polres); err != nil {
		sugar.Fatalw("seed polres failed", "error", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), 12)
	if err != nil {
		sugar.Fatalw("seed password hash failed", "error", err)
	}
	admin := &model.User{
		Name:     "Administrator",
		Email:    adminEmail,
		NRP:      "ADMIN001",
		Password: string(hash),
		Role:     model.RoleAdmin,
		Status:   model.StatusApproved,
		PoldaID:  &polda.ID,
		PolresID: &polres.ID,
	}
	if err := userRepo.Create(ctx, admin); err != nil {
		sugar.Fatalw("seed admin failed", "error", err)
	}

	samples := []model.Asset{
		{Name: "Mobil Patroli Toyota Avanza", Category: "KENDARAAN", Kind: model.AssetPhysical},
		{Name: "Senjata Pistol Glock 17", Category: "SENJATA", Kind: model.AssetPhysical},
		{Name: "Laptop Dell Latitude", Category: "KOMPUTER", Kind: model.AssetPhysical},
	}
	for i := range samples {
		a := samples[i]
		a.Status = model.AssetActive
		a.PoldaID = &polda.ID
		a.PolresID = &polres.ID
		if err := assetRepo.Create(ctx, &a); err != nil {
			sugar.Fatalw("seed asset failed", "name", a.Name, "error", err)
		}
	}

	sugar.Infow("database seeded",
		"admin", adminEmail,
		"polda", polda.Name,
		"polres", polres.Name,
		"assets", len(samples),
	)
}
