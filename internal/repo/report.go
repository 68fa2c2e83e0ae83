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

// ReportFilter — фильтры списка отчётов поверх зоны видимости.
type ReportFilter struct {
	Search   string
	Status   model.ReportStatus
	Type     model.ReportType
	PoldaID  string
	PolresID string
}

// ReportRepository — контракт доступа к Report.
type ReportRepository interface {
	List(ctx context.Context, sc scope.Scope, f ReportFilter, p Page) ([]model.Report, int64, error)
	GetByID(ctx context.Context, id string) (*model.Report, error)
	Create(ctx context.Context, rep *model.Report) error
	Update(ctx context.Context, rep *model.Report) error
	Delete(ctx context.Context, id string) error
}

type reportRepo struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepo{db: db}
}

func (r *reportRepo) List(ctx context.Context, sc scope.Scope, f ReportFilter, p Page) ([]model.Report, int64, error) {
	p = p.Normalize()
	q := scopedOwned(r.db.WithContext(ctx).Model(&model.Report{}), sc)
	if f.Search != "" {
		pat := like(f.Search)
		q = q.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", pat, pat)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Type != "" {
		q = q.Where("type = ?", f.Type)
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

	var rows []model.Report
	err := q.Preload("User").Preload("Polda").Preload("Polres").
		Order("created_at DESC").Offset(p.offset()).Limit(p.Limit).Find(&rows).Error
	if err != nil {
		return nil, 0, classify(err)
	}
	return rows, total, nil
}

func (r *reportRepo) GetByID(ctx context.Context, id string) (*model.Report, error) {
	var rep model.Report
	err := r.db.WithContext(ctx).Preload("User").Preload("Polda").Preload("Polres").
		First(&rep, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NotFound("Laporan", id)
	}
	if err != nil {
		return nil, classify(err)
	}
	return &rep, nil
}

func (r *reportRepo) Create(ctx context.Context, rep *model.Report) error {
	return classify(r.db.WithContext(ctx).Omit(clause.Associations).Create(rep).Error)
}

func (r *reportRepo) Update(ctx context.Context, rep *model.Report) error {
	return classify(r.db.WithContext(ctx).Omit(clause.Associations).Save(rep).Error)
}

func (r *reportRepo) Delete(ctx context.Context, id string) error {
	return classify(r.db.WithContext(ctx).Delete(&model.Report{}, "id = ?", id).Error)
}
