package repo

import (
	"context"
	"errors"

	"simaset/internal/errs"
	"simaset/internal/model"

	"gorm.io/gorm"
)

// CategoryRepository — справочник категорий активов.
type CategoryRepository interface {
	ListActive(ctx context.Context, kind model.AssetKind, search string) ([]model.Category, error)
	GetByID(ctx context.Context, id string) (*model.Category, error)
	FindByName(ctx context.Context, name string) (*model.Category, error)
	Create(ctx context.Context, c *model.Category) error
}

type categoryRepo struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepo{db: db}
}

func (r *categoryRepo) ListActive(ctx context.Context, kind model.AssetKind, search string) ([]model.Category, error) {
	q := r.db.WithContext(ctx).Where("is_active = ?", true)
	if kind != "" {
		q = q.Where("kind = ?", kind)
	}
	if search != "" {
		pat := like(search)
		q = q.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", pat, pat)
	}
	var rows []model.Category
	err := q.Order("name ASC").Find(&rows).Error
	if err != nil {
		return nil, classify(err)
	}
	return rows, nil
}

func (r *categoryRepo) GetByID(ctx context.Context, id string) (*model.Category, error) {
	var c model.Category
	err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NotFound("Kategori", id)
	}
	if err != nil {
		return nil, classify(err)
	}
	return &c, nil
}

func (r *categoryRepo) FindByName(ctx context.Context, name string) (*model.Category, error) {
	var c model.Category
	err := r.db.WithContext(ctx).First(&c, "name = ?", name).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, classify(err)
	}
	return &c, nil
}

func (r *categoryRepo) Create(ctx context.Context, c *model.Category) error {
	return classify(r.db.WithContext(ctx).Create(c).Error)
}

// CustomReportTypeRepository — справочник пользовательских типов отчётов.
type CustomReportTypeRepository interface {
	ListActive(ctx context.Context) ([]model.CustomReportType, error)
	FindByName(ctx context.Context, name string) (*model.CustomReportType, error)
	Create(ctx context.Context, t *model.CustomReportType) error
}

type customReportTypeRepo struct {
	db *gorm.DB
}

func NewCustomReportTypeRepository(db *gorm.DB) CustomReportTypeRepository {
	return &customReportTypeRepo{db: db}
}

func (r *customReportTypeRepo) ListActive(ctx context.Context) ([]model.CustomReportType, error) {
	var rows []model.CustomReportType
	err := r.db.WithContext(ctx).Where("is_active = ?", true).Order("name ASC").Find(&rows).Error
	if err != nil {
		return nil, classify(err)
	}
	return rows, nil
}

func (r *customReportTypeRepo) FindByName(ctx context.Context, name string) (*model.CustomReportType, error) {
	var t model.CustomReportType
	err := r.db.WithContext(ctx).First(&t, "name = ?", name).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, classify(err)
	}
	return &t, nil
}

func (r *customReportTypeRepo) Create(ctx context.Context, t *model.CustomReportType) error {
	return classify(r.db.WithContext(ctx).Create(t).Error)
}
