package repo

import (
	"strings"

	"simaset/internal/scope"

	"gorm.io/gorm"
)

// scopedOwned применяет зону видимости к таблицам с колонками
// polda_id/polres_id (users, assets, reports).
func scopedOwned(db *gorm.DB, sc scope.Scope) *gorm.DB {
	switch {
	case sc.All:
		return db
	case sc.PolresID != "":
		return db.Where("polres_id = ?", sc.PolresID)
	default:
		return db.Where("polda_id = ?", sc.PoldaID)
	}
}

// scopedPolres применяет зону видимости к таблице polres:
// POLRES/USER видят только собственную строку (по id).
func scopedPolres(db *gorm.DB, sc scope.Scope) *gorm.DB {
	switch {
	case sc.All:
		return db
	case sc.PolresID != "":
		return db.Where("id = ?", sc.PolresID)
	default:
		return db.Where("polda_id = ?", sc.PoldaID)
	}
}

// like — шаблон регистронезависимого поиска, одинаково работающий
// на SQLite (тесты) и Postgres (прод).
func like(q string) string {
	return "%" + strings.ToLower(q) + "%"
}
