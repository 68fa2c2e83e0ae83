package repo

import (
	"context"
	"errors"

	"simaset/internal/errs"
	"simaset/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PoldaRepository — контракт доступа к Polda для слоя сервиса.
type PoldaRepository interface {
	List(ctx context.Context, search string, p Page) ([]model.Polda, int64, error)
	ListSimple(ctx context.Context) ([]model.Polda, error)
	GetByID(ctx context.Context, id string) (*model.Polda, error)
	FindByName(ctx context.Context, name, excludeID string) (*model.Polda, error)
	Create(ctx context.Context, p *model.Polda) error
	Update(ctx context.Context, p *model.Polda) error
	Delete(ctx context.Context, id string) error
	CountPolres(ctx context.Context, poldaID string) (int64, error)
}

type poldaRepo struct {
	db *gorm.DB
}

func NewPoldaRepository(db *gorm.DB) PoldaRepository {
	return &poldaRepo{db: db}
}

func (r *poldaRepo) List(ctx context.Context, search string, p Page) ([]model.Polda, int64, error) {
	p = p.Normalize()
	q := r.db.WithContext(ctx).Model(&model.Polda{})
	if search != "" {
		pat := like(search)
		q = q.Where("LOWER(name) LIKE ? OR LOWER(address) LIKE ? OR LOWER(phone) LIKE ?", pat, pat, pat)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, classify(err)
	}

	var rows []model.Polda
	err := q.Order("created_at DESC").Offset(p.offset()).Limit(p.Limit).Find(&rows).Error
	if err != nil {
		return nil, 0, classify(err)
	}
	return rows, total, nil
}

func (r *poldaRepo) ListSimple(ctx context.Context) ([]model.Polda, error) {
	var rows []model.Polda
	err := r.db.WithContext(ctx).Select("id", "name").Order("name ASC").Find(&rows).Error
	if err != nil {
		return nil, classify(err)
	}
	return rows, nil
}

func (r *poldaRepo) GetByID(ctx context.Context, id string) (*model.Polda, error) {
	var p model.Polda
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NotFound("Polda", id)
	}
	if err != nil {
		return nil, classify(err)
	}
	return &p, nil
}

func (r *poldaRepo) FindByName(ctx context.Context, name, excludeID string) (*model.Polda, error) {
	q := r.db.WithContext(ctx).Where("name = ?", name)
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}
	var p model.Polda
	err := q.First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, classify(err)
	}
	return &p, nil
}

func (r *poldaRepo) Create(ctx context.Context, p *model.Polda) error {
	return classify(r.db.WithContext(ctx).Omit(clause.Associations).Create(p).Error)
}

func (r *poldaRepo) Update(ctx context.Context, p *model.Polda) error {
	return classify(r.db.WithContext(ctx).Omit(clause.Associations).Save(p).Error)
}

func (r *poldaRepo) Delete(ctx context.Context, id string) error {
	return classify(r.db.WithContext(ctx).Delete(&model.Polda{}, "id = ?", id).Error)
}

func (r *poldaRepo) CountPolres(ctx context.Context, poldaID string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Polres{}).Where("polda_id = ?", poldaID).Count(&n).Error
	if err != nil {
		return 0, classify(err)
	}
	return n, nil
}
