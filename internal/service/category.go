package service

import (
	"context"

	"simaset/internal/errs"
	"simaset/internal/model"
	"simaset/internal/repo"
)

// CategoryService — справочник категорий активов.
type CategoryService struct {
	categories repo.CategoryRepository
}

func NewCategoryService(categories repo.CategoryRepository) *CategoryService {
	return &CategoryService{categories: categories}
}

func (s *CategoryService) ListActive(ctx context.Context, kind model.AssetKind, search string) ([]model.Category, error) {
	if kind != "" && !kind.Valid() {
		return nil, errs.Validation("kind tidak valid", "kind")
	}
	return s.categories.ListActive(ctx, kind, search)
}

func (s *CategoryService) Create(ctx context.Context, name string, kind model.AssetKind, description *string) (*model.Category, error) {
	if name == "" {
		return nil, errs.Validation("Nama kategori harus diisi", "name")
	}
	if kind != "" && !kind.Valid() {
		return nil, errs.Validation("kind tidak valid", "kind")
	}
	if dup, err := s.categories.FindByName(ctx, name); err != nil {
		return nil, err
	} else if dup != nil {
		return nil, errs.Conflict("Kategori dengan nama ini sudah ada")
	}
	c := &model.Category{Name: name, Kind: kind, Description: description, IsActive: true}
	if err := s.categories.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// CustomReportTypeService — справочник пользовательских типов отчётов.
type CustomReportTypeService struct {
	types repo.CustomReportTypeRepository
}

func NewCustomReportTypeService(types repo.CustomReportTypeRepository) *CustomReportTypeService {
	return &CustomReportTypeService{types: types}
}

func (s *CustomReportTypeService) ListActive(ctx context.Context) ([]model.CustomReportType, error) {
	return s.types.ListActive(ctx)
}

func (s *CustomReportTypeService) Create(ctx context.Context, name string, description *string) (*model.CustomReportType, error) {
	if name == "" {
		return nil, errs.Validation("Nama tipe laporan harus diisi", "name")
	}
	if dup, err := s.types.FindByName(ctx, name); err != nil {
		return nil, err
	} else if dup != nil {
		return nil, errs.Conflict("Tipe laporan dengan nama ini sudah ada")
	}
	t := &model.CustomReportType{Name: name, Description: description, IsActive: true}
	if err := s.types.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}
