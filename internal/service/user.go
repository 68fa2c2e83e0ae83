package service

import (
	"context"

	"simaset/internal/errs"
	"simaset/internal/model"
	"simaset/internal/repo"
	"simaset/internal/scope"

	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 12

// UserService — бизнес-логика по пользователям: CRUD, воркфлоу одобрения,
// сброс пароля, счётчик ожидающих заявок.
type UserService struct {
	users  repo.UserRepository
	poldas repo.PoldaRepository
	polres repo.PolresRepository
}

func NewUserService(users repo.UserRepository, poldas repo.PoldaRepository, polres repo.PolresRepository) *UserService {
	return &UserService{users: users, poldas: poldas, polres: polres}
}

func (s *UserService) List(ctx context.Context, c scope.Caller, f repo.UserFilter, p repo.Page) ([]model.User, repo.Pagination, error) {
	rows, total, err := s.users.List(ctx, scope.ForCaller(c), f, p)
	if err != nil {
		return nil, repo.Pagination{}, err
	}
	return rows, repo.NewPagination(p, total), nil
}

func (s *UserService) ListApproved(ctx context.Context, c scope.Caller) ([]model.User, error) {
	return s.users.ListApproved(ctx, scope.ForCaller(c))
}

// Get прячет строки вне зоны видимости за NotFound (факт существования
// не раскрывается).
func (s *UserService) Get(ctx context.Context, c scope.Caller, id string) (*model.User, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !scope.ForCaller(c).AllowsRow(u.PoldaID, u.PolresID) {
		return nil, errs.NotFound("User", id)
	}
	return u, nil
}

// UserInput — поля создания/изменения пользователя (merge-patch при обновлении).
type UserInput struct {
	NRP      *string
	Name     *string
	Email    *string
	Password *string
	Role     *model.Role
	PoldaID  *string
	PolresID *string
}

// resolveAffiliation проверяет ссылочную целостность и согласованность
// привязки к Polda/Polres для роли:
// USER — оба и polres внутри polda; POLRES — polres, polda выводится;
// POLDA — только polda.
func (s *UserService) resolveAffiliation(ctx context.Context, role model.Role, poldaID, polresID *string) (*string, *string, error) {
	var polres *model.Polres
	if polresID != nil && *polresID != "" {
		p, err := s.polres.GetByID(ctx, *polresID)
		if err != nil {
			return nil, nil, err
		}
		polres = p
	} else {
		polresID = nil
	}
	if poldaID != nil && *poldaID != "" {
		if _, err := s.poldas.GetByID(ctx, *poldaID); err != nil {
			return nil, nil, err
		}
	} else {
		poldaID = nil
	}

	switch role {
	case model.RoleUser:
		if polres == nil || poldaID == nil {
			return nil, nil, errs.Validation("Untuk role USER, pilih Polda dan Polres", "poldaId", "polresId")
		}
		if polres.PoldaID != *poldaID {
			return nil, nil, errs.Validation("Polres yang dipilih tidak termasuk dalam Polda tersebut")
		}
	case model.RolePolres:
		if polres == nil {
			return nil, nil, errs.Validation("Untuk role POLRES, pilih Polres", "polresId")
		}
		poldaID = &polres.PoldaID
	case model.RolePolda:
		if poldaID == nil {
			return nil, nil, errs.Validation("Untuk role POLDA, pilih Polda", "poldaId")
		}
		polresID = nil
	}
	return poldaID, polresID, nil
}

// Create создаёт пользователя со статусом PENDING (кроме явного создания
// администратором — статус всё равно PENDING, одобрение отдельным шагом).
func (s *UserService) Create(ctx context.Context, in UserInput) (*model.User, error) {
	var missing []string
	for _, f := range []struct {
		name string
		val  *string
	}{{"nrp", in.NRP}, {"name", in.Name}, {"email", in.Email}, {"password", in.Password}} {
		if f.val == nil || *f.val == "" {
			missing = append(missing, f.name)
		}
	}
	if in.Role == nil || *in.Role == "" {
		missing = append(missing, "role")
	}
	if len(missing) > 0 {
		return nil, errs.Validation("", missing...)
	}
	if !in.Role.Valid() {
		return nil, errs.Validation("role tidak valid", "role")
	}

	poldaID, polresID, err := s.resolveAffiliation(ctx, *in.Role, in.PoldaID, in.PolresID)
	if err != nil {
		return nil, err
	}

	if dup, err := s.users.FindByEmailOrNRP(ctx, *in.Email, *in.NRP, ""); err != nil {
		return nil, err
	} else if dup != nil {
		return nil, errs.Conflict("Email atau NRP sudah terdaftar")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcryptCost)
	if err != nil {
		return nil, errs.Internal(err)
	}

	u := &model.User{
		NRP:      *in.NRP,
		Name:     *in.Name,
		Email:    *in.Email,
		Password: string(hash),
		Role:     *in.Role,
		Status:   model.StatusPending,
		PoldaID:  poldaID,
		PolresID: polresID,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}
	return s.users.GetByID(ctx, u.ID)
}

func (s *UserService) Update(ctx context.Context, c scope.Caller, id string, in UserInput) (*model.User, error) {
	u, err := s.Get(ctx, c, id)
	if err != nil {
		return nil, err
	}

	if in.Role != nil {
		if !in.Role.Valid() {
			return nil, errs.Validation("role tidak valid", "role")
		}
		u.Role = *in.Role
	}
	if in.PoldaID != nil {
		u.PoldaID = in.PoldaID
	}
	if in.PolresID != nil {
		u.PolresID = in.PolresID
	}
	if in.Role != nil || in.PoldaID != nil || in.PolresID != nil {
		poldaID, polresID, err := s.resolveAffiliation(ctx, u.Role, u.PoldaID, u.PolresID)
		if err != nil {
			return nil, err
		}
		u.PoldaID, u.PolresID = poldaID, polresID
	}

	if in.Email != nil || in.NRP != nil {
		if in.Email != nil {
			u.Email = *in.Email
		}
		if in.NRP != nil {
			u.NRP = *in.NRP
		}
		if dup, err := s.users.FindByEmailOrNRP(ctx, u.Email, u.NRP, id); err != nil {
			return nil, err
		} else if dup != nil {
			return nil, errs.Conflict("Email atau NRP sudah terdaftar")
		}
	}
	if in.Name != nil {
		u.Name = *in.Name
	}
	if in.Password != nil && *in.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcryptCost)
		if err != nil {
			return nil, errs.Internal(err)
		}
		u.Password = string(hash)
	}

	if err := s.users.Update(ctx, u); err != nil {
		return nil, err
	}
	return s.users.GetByID(ctx, id)
}

// Delete запрещает удаление пользователя со связанными Assets/Reports.
func (s *UserService) Delete(ctx context.Context, c scope.Caller, id string) error {
	if _, err := s.Get(ctx, c, id); err != nil {
		return err
	}
	counts, err := s.users.CountOwned(ctx, id)
	if err != nil {
		return err
	}
	if counts.Assets > 0 || counts.Reports > 0 {
		return errs.Conflict("Tidak dapat menghapus User yang memiliki Asset atau Report terkait")
	}
	return s.users.Delete(ctx, id)
}

// Approve переводит PENDING → APPROVED; из любого другого состояния —
// недопустимый переход (повторное одобрение не идемпотентно).
func (s *UserService) Approve(ctx context.Context, id string) (*model.User, error) {
	return s.transition(ctx, id, model.StatusApproved)
}

// Reject переводит PENDING → REJECTED, симметрично Approve.
func (s *UserService) Reject(ctx context.Context, id string) (*model.User, error) {
	return s.transition(ctx, id, model.StatusRejected)
}

func (s *UserService) transition(ctx context.Context, id string, to model.UserStatus) (*model.User, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u.Status != model.StatusPending {
		return nil, errs.InvalidState("User sudah tidak dalam status pending")
	}
	u.Status = to
	if err := s.users.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// ResetPassword генерирует новый пароль для одобренного пользователя.
// Открытый пароль возвращается ровно один раз и не сохраняется.
func (s *UserService) ResetPassword(ctx context.Context, id string) (string, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	if u.Status != model.StatusApproved {
		return "", errs.InvalidState("Reset password hanya untuk pengguna yang sudah disetujui")
	}
	plain, err := generatePassword(10)
	if err != nil {
		return "", errs.Internal(err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcryptCost)
	if err != nil {
		return "", errs.Internal(err)
	}
	u.Password = string(hash)
	if err := s.users.Update(ctx, u); err != nil {
		return "", err
	}
	return plain, nil
}

// PendingCount — число заявок в статусе PENDING (бейдж на дашборде).
func (s *UserService) PendingCount(ctx context.Context) (int64, error) {
	return s.users.CountPending(ctx)
}
