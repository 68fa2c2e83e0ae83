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

// UserFilter — фильтры списка пользователей поверх зоны видимости.
type UserFilter struct {
	Search   string
	Status   model.UserStatus
	Role     model.Role
	PoldaID  string
	PolresID string
}

// OwnedCounts — связанные строки пользователя (для защиты удаления).
type OwnedCounts struct {
	Assets  int64
	Reports int64
}

// UserRepository — контракт доступа к User.
type UserRepository interface {
	List(ctx context.Context, sc scope.Scope, f UserFilter, p Page) ([]model.User, int64, error)
	ListApproved(ctx context.Context, sc scope.Scope) ([]model.User, error)
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	FindByEmailOrNRP(ctx context.Context, email, nrp, excludeID string) (*model.User, error)
	Create(ctx context.Context, u *model.User) error
	Update(ctx context.Context, u *model.User) error
	Delete(ctx context.Context, id string) error
	CountPending(ctx context.Context) (int64, error)
	CountOwned(ctx context.Context, userID string) (OwnedCounts, error)
}

type userRepo struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) List(ctx context.Context, sc scope.Scope, f UserFilter, p Page) ([]model.User, int64, error) {
	p = p.Normalize()
	q := scopedOwned(r.db.WithContext(ctx).Model(&model.User{}), sc)
	if f.Search != "" {
		pat := like(f.Search)
		q = q.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ? OR LOWER(nrp) LIKE ?", pat, pat, pat)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Role != "" {
		q = q.Where("role = ?", f.Role)
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

	var rows []model.User
	err := q.Preload("Polda").Preload("Polres").Preload("Polres.Polda").
		Order("created_at DESC").Offset(p.offset()).Limit(p.Limit).Find(&rows).Error
	if err != nil {
		return nil, 0, classify(err)
	}
	return rows, total, nil
}

func (r *userRepo) ListApproved(ctx context.Context, sc scope.Scope) ([]model.User, error) {
	q := scopedOwned(r.db.WithContext(ctx).Model(&model.User{}), sc).
		Where("status = ?", model.StatusApproved)
	var rows []model.User
	err := q.Select("id", "name", "nrp", "polda_id", "polres_id").Order("name ASC").Find(&rows).Error
	if err != nil {
		return nil, classify(err)
	}
	return rows, nil
}

func (r *userRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	var u model.User
	err := r.db.WithContext(ctx).Preload("Polda").Preload("Polres").Preload("Polres.Polda").
		First(&u, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NotFound("User", id)
	}
	if err != nil {
		return nil, classify(err)
	}
	return &u, nil
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var u model.User
	err := r.db.WithContext(ctx).First(&u, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NotFound("User", email)
	}
	if err != nil {
		return nil, classify(err)
	}
	return &u, nil
}

func (r *userRepo) FindByEmailOrNRP(ctx context.Context, email, nrp, excludeID string) (*model.User, error) {
	q := r.db.WithContext(ctx).Where("email = ? OR nrp = ?", email, nrp)
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}
	var u model.User
	err := q.First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, classify(err)
	}
	return &u, nil
}

func (r *userRepo) Create(ctx context.Context, u *model.User) error {
	return classify(r.db.WithContext(ctx).Omit(clause.Associations).Create(u).Error)
}

func (r *userRepo) Update(ctx context.Context, u *model.User) error {
	return classify(r.db.WithContext(ctx).Omit(clause.Associations).Save(u).Error)
}

func (r *userRepo) Delete(ctx context.Context, id string) error {
	return classify(r.db.WithContext(ctx).Delete(&model.User{}, "id = ?", id).Error)
}

func (r *userRepo) CountPending(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.User{}).Where("status = ?", model.StatusPending).Count(&n).Error
	if err != nil {
		return 0, classify(err)
	}
	return n, nil
}

func (r *userRepo) CountOwned(ctx context.Context, userID string) (OwnedCounts, error) {
	var c OwnedCounts
	db := r.db.WithContext(ctx)
	if err := db.Model(&model.Asset{}).Where("assigned_to = ?", userID).Count(&c.Assets).Error; err != nil {
		return c, classify(err)
	}
	if err := db.Model(&model.Report{}).Where("user_id = ?", userID).Count(&c.Reports).Error; err != nil {
		return c, classify(err)
	}
	return c, nil
}
