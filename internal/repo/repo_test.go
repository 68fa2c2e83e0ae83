package repo

import (
	"context"
	"strings"
	"testing"

	"simaset/internal/model"

	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite"
)

// newTestDB инициализирует in-memory SQLite (modernc.org/sqlite) для тестов
// репозиториев. DSN уникален на тест, чтобы базы не пересекались.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dial := gormsqlite.Dialector{DriverName: "sqlite", DSN: "file:" + name + "?mode=memory&cache=shared"}
	db, err := gorm.Open(dial, &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite (modernc): %v", err)
	}
	if err := Migrate(db); err != nil {
		t.Fatalf("failed to automigrate: %v", err)
	}
	return db
}

// mustPolda/mustPolres — мини-фикстуры иерархии для тестов репозиториев.
func mustPolda(t *testing.T, db *gorm.DB, name string) *model.Polda {
	t.Helper()
	p := &model.Polda{Name: name}
	if err := NewPoldaRepository(db).Create(context.Background(), p); err != nil {
		t.Fatalf("create polda: %v", err)
	}
	return p
}

func mustPolres(t *testing.T, db *gorm.DB, name, poldaID string) *model.Polres {
	t.Helper()
	p := &model.Polres{Name: name, PoldaID: poldaID}
	if err := NewPolresRepository(db).Create(context.Background(), p); err != nil {
		t.Fatalf("create polres: %v", err)
	}
	return p
}

func strptr(s string) *string { return &s }
