package service

import (
	"context"
	"strings"
	"testing"

	"simaset/internal/model"
	"simaset/internal/repo"
	"simaset/internal/scope"

	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite"
)

// testEnv — сервисный слой поверх in-memory SQLite; DSN уникален на тест.
type testEnv struct {
	db          *gorm.DB
	Polda       *PoldaService
	Polres      *PolresService
	Users       *UserService
	Auth        *AuthService
	Assets      *AssetService
	Reports     *ReportService
	Categories  *CategoryService
	ReportTypes *CustomReportTypeService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dial := gormsqlite.Dialector{DriverName: "sqlite", DSN: "file:" + name + "?mode=memory&cache=shared"}
	db, err := gorm.Open(dial, &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite (modernc): %v", err)
	}
	if err := repo.Migrate(db); err != nil {
		t.Fatalf("failed to automigrate: %v", err)
	}

	poldas := repo.NewPoldaRepository(db)
	polres := repo.NewPolresRepository(db)
	users := repo.NewUserRepository(db)
	assets := repo.NewAssetRepository(db)
	reports := repo.NewReportRepository(db)
	categories := repo.NewCategoryRepository(db)
	reportTypes := repo.NewCustomReportTypeRepository(db)

	userService := NewUserService(users, poldas, polres)
	return &testEnv{
		db:          db,
		Polda:       NewPoldaService(poldas),
		Polres:      NewPolresService(polres, poldas),
		Users:       userService,
		Auth:        NewAuthService(userService, users, "setup-secret"),
		Assets:      NewAssetService(assets, polres, users, categories),
		Reports:     NewReportService(reports, polres, poldas),
		Categories:  NewCategoryService(categories),
		ReportTypes: NewCustomReportTypeService(reportTypes),
	}
}

func (e *testEnv) mustPolda(t *testing.T, name string) *model.Polda {
	t.Helper()
	p, err := e.Polda.Create(context.Background(), PoldaInput{Name: &name})
	if err != nil {
		t.Fatalf("create polda: %v", err)
	}
	return p
}

func (e *testEnv) mustPolres(t *testing.T, name, poldaID string) *model.Polres {
	t.Helper()
	p, err := e.Polres.Create(context.Background(), PolresInput{Name: &name, PoldaID: &poldaID})
	if err != nil {
		t.Fatalf("create polres: %v", err)
	}
	return p
}

func (e *testEnv) mustUser(t *testing.T, name string, role model.Role, poldaID, polresID *string) *model.User {
	t.Helper()
	nrp := "NRP-" + name
	email := name + "@polri.test"
	password := "secret123"
	u, err := e.Users.Create(context.Background(), UserInput{
		NRP:      &nrp,
		Name:     &name,
		Email:    &email,
		Password: &password,
		Role:     &role,
		PoldaID:  poldaID,
		PolresID: polresID,
	})
	if err != nil {
		t.Fatalf("create user %s: %v", name, err)
	}
	return u
}

func adminCaller() scope.Caller {
	return scope.Caller{UserID: "admin", Role: model.RoleAdmin}
}

func strptr(s string) *string { return &s }
