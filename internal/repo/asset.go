package repo

import (
	"context"
	"errors"

	"simaset/internal/errs"
	"simaset/internal/model"
	"simaset/internal/scope"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AssetFilter — фильтры списка активов поверх зоны видимости.
type AssetFilter struct {
	Search   string
	Kind     model.AssetKind
	Status   model.AssetStatus
	PoldaID  string
	PolresID string
}

// AssetRepository — контракт доступа к Asset.
type AssetRepository interface {
	List(ctx context.Context, sc scope.Scope, f AssetFilter, p Page) ([]model.Asset, int64, error)
	GetByID(ctx context.Context, id string) (*model.Asset, error)
	FindByInventoryNumber(ctx context.Context, num, excludeID string) (*model.Asset, error)
	Create(ctx context.Context, a *model.Asset) error
	Update(ctx context.Context, a *model.Asset) error
	Delete(ctx context.Context, id string) error
}

type assetRepo struct {
	db *gorm.DB
}

func NewAssetRepository(db *gorm.DB) AssetRepository {
	return &assetRepo{db: db}
}

func (r *assetRepo) List(ctx context.Context, sc scope.Scope, f AssetFilter, p Page) ([]model.Asset, int64, error) {
	p = p.Normalize()
	q := scopedOwned(r.db.WithContext(ctx).Model(&model.Asset{}), sc)
	if f.Search != "" {
		pat := like(f.Search)
		q = q.Where("LOWER(name) LIKE ? OR LOWER(category) LIKE ? OR LOWER(inventory_number) LIKE ?", pat, pat, pat)
	}
	if f.Kind != "" {
		q = q.Where("kind = ?", f.Kind)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.PoldaID != "" {
		q = q.Where("polda_id = ?", f.PoldaID)
	}
	if f.PolresID != "" {
		q = q.Where("polres_id = ?", f.PolresID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, classify(err)
	}

	var rows []model.Asset
	err := q.Preload("CategoryRef").Preload("Polres").Preload("Polres.Polda").Preload("User").
		Order("created_at DESC").Offset(p.offset()).Limit(p.Limit).Find(&rows).Error
	if err != nil {
		return nil, 0, classify(err)
	}
	return rows, total, nil
}

func (r *assetRepo) GetByID(ctx context.Context, id string) (*model.Asset, error) {
	var a model.Asset
	err := r.db.WithContext(ctx).
		Preload("CategoryRef").Preload("Polda").Preload("Polres").Preload("Polres.Polda").Preload("User").
		First(&a, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NotFound("Asset", id)
	}
	if err != nil {
		return nil, classify(err)
	}
	return &a, nil
}

func (r *assetRepo) FindByInventoryNumber(ctx context.Context, num, excludeID string) (*model.Asset, error) {
	q := r.db.WithContext(ctx).Where("inventory_number = ?", num)
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}
	var a model.Asset
	err := q.First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, classify(err)
	}
	return &a, nil
}

func (r *assetRepo) Create(ctx context.Context, a *model.Asset) error {
	return classify(r.db.WithContext(ctx).Omit(clause.Associations).Create(a).Error)
}

func (r *assetRepo) Update(ctx context.Context, a *model.Asset) error {
	return classify(r.db.WithContext(ctx).Omit(clause.Associations).Save(a).Error)
}

func (r *assetRepo) Delete(ctx context.Context, id string) error {
	return classify(r.db.WithContext(ctx).Delete(&model.Asset{}, "id = ?", id).Error)
}
