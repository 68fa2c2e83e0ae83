package repo

import (
	"errors"
	"strings"

	"simaset/internal/errs"
	"simaset/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// InitDB открывает подключение к Postgres и выполняет автомиграцию моделей.
// Уникальные индексы объявлены на уровне БД: проверка "поискали — вставили"
// подстрахована ограничением хранилища, дубликат с гонкой всё равно упадёт
// и будет классифицирован как конфликт.
func InitDB(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}
	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate выполняет автомиграцию всех моделей (используется и тестовой БД).
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Polda{},
		&model.Polres{},
		&model.User{},
		&model.Category{},
		&model.Asset{},
		&model.CustomReportType{},
		&model.Report{},
	)
}

// classify переводит ошибки хранилища в таксономию приложения.
// NotFound репозитории отображают сами, зная имя сущности.
func classify(err error) error {
	switch {
	case err == nil:
		return nil
	case isDuplicate(err):
		return errs.Conflict("pelanggaran batasan unik")
	case isUnavailable(err):
		return errs.Unavailable(err)
	default:
		return errs.Internal(err)
	}
}

func isDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	// sqlite (тесты) и postgres (прод) формулируют по-разному
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value")
}

func isUnavailable(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "connection reset") ||
		strings.Contains(msg, "failed to connect") ||
		strings.Contains(msg, "i/o timeout")
}
