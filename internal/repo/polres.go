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

// PolresCounts — количество связанных строк (для защиты удаления).
type PolresCounts struct {
	Users   int64
	Assets  int64
	Reports int64
}

// PolresRepository — контракт доступа к Polres.
type PolresRepository interface {
	List(ctx context.Context, sc scope.Scope, search, poldaID string, p Page) ([]model.Polres, int64, error)
	ListSimple(ctx context.Context, sc scope.Scope, poldaID string) ([]model.Polres, error)
	GetByID(ctx context.Context, id string) (*model.Polres, error)
	FindByNameInPolda(ctx context.Context, name, poldaID, excludeID string) (*model.Polres, error)
	Create(ctx context.Context, p *model.Polres) error
	Update(ctx context.Context, p *model.Polres) error
	Delete(ctx context.Context, id string) error
	CountRelated(ctx context.Context, polresID string) (PolresCounts, error)
}

type polresRepo struct {
	db *gorm.DB
}

func NewPolresRepository(db *gorm.DB) PolresRepository {
	return &polresRepo{db: db}
}

func (r *polresRepo) List(ctx context.Context, sc scope.Scope, search, poldaID string, p Page) ([]model.Polres, int64, error) {
	p = p.Normalize()
	q := scopedPolres(r.db.WithContext(ctx).Model(&model.Polres{}), sc)
	if poldaID != "" {
		q = q.Where("polda_id = ?", poldaID)
	}
	if search != "" {
		pat := like(search)
		q = q.Where("LOWER(name) LIKE ? OR LOWER(address) LIKE ? OR LOWER(phone) LIKE ?", pat, pat, pat)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, classify(err)
	}

	var rows []model.Polres
	err := q.Preload("Polda").Order("created_at DESC").Offset(p.offset()).Limit(p.Limit).Find(&rows).Error
	if err != nil {
		return nil, 0, classify(err)
	}
	return rows, total, nil
}

func (r *polresRepo) ListSimple(ctx context.Context, sc scope.Scope, poldaID string) ([]model.Polres, error) {
	q := scopedPolres(r.db.WithContext(ctx).Model(&model.Polres{}), sc)
	if poldaID != "" {
		q = q.Where("polda_id = ?", poldaID)
	}
	var rows []model.Polres
	err := q.Select("id", "name", "polda_id").Order("name ASC").Find(&rows).Error
	if err != nil {
		return nil, classify(err)
	}
	return rows, nil
}

func (r *polresRepo) GetByID(ctx context.Context, id string) (*model.Polres, error) {
	var p model.Polres
	err := r.db.WithContext(ctx).Preload("Polda").First(&p, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NotFound("Polres", id)
	}
	if err != nil {
		return nil, classify(err)
	}
	return &p, nil
}

func (r *polresRepo) FindByNameInPolda(ctx context.Context, name, poldaID, excludeID string) (*model.Polres, error) {
	q := r.db.WithContext(ctx).Where("name = ? AND polda_id = ?", name, poldaID)
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}
	var p model.Polres
	err := q.First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, classify(err)
	}
	return &p, nil
}

func (r *polresRepo) Create(ctx context.Context, p *model.Polres) error {
	return classify(r.db.WithContext(ctx).Omit(clause.Associations).Create(p).Error)
}

func (r *polresRepo) Update(ctx context.Context, p *model.Polres) error {
	return classify(r.db.WithContext(ctx).Omit(clause.Associations).Save(p).Error)
}

func (r *polresRepo) Delete(ctx context.Context, id string) error {
	return classify(r.db.WithContext(ctx).Delete(&model.Polres{}, "id = ?", id).Error)
}

func (r *polresRepo) CountRelated(ctx context.Context, polresID string) (PolresCounts, error) {
	var c PolresCounts
	db := r.db.WithContext(ctx)
	if err := db.Model(&model.User{}).Where("polres_id = ?", polresID).Count(&c.Users).Error; err != nil {
		return c, classify(err)
	}
	if err := db.Model(&model.Asset{}).Where("polres_id = ?", polresID).Count(&c.Assets).Error; err != nil {
		return c, classify(err)
	}
	if err := db.Model(&model.Report{}).Where("polres_id = ?", polresID).Count(&c.Reports).Error; err != nil {
		return c, classify(err)
	}
	return c, nil
}
