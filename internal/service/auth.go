package service

import (
	"context"
	"crypto/subtle"

	"simaset/internal/errs"
	"simaset/internal/model"
	"simaset/internal/repo"

	"golang.org/x/crypto/bcrypt"
)

// AuthService — регистрация, вход и одноразовое создание администратора.
type AuthService struct {
	users            *UserService
	userRepo         repo.UserRepository
	adminSetupSecret string
}

func NewAuthService(users *UserService, userRepo repo.UserRepository, adminSetupSecret string) *AuthService {
	return &AuthService{users: users, userRepo: userRepo, adminSetupSecret: adminSetupSecret}
}

// Register создаёт пользователя; статус принудительно PENDING вне зависимости
// от входных данных, доступ появится после одобрения.
func (s *AuthService) Register(ctx context.Context, in UserInput) (*model.User, error) {
	return s.users.Create(ctx, in)
}

// Login возвращает пользователя по email+паролю. Неверная пара и
// несуществующий email неразличимы для клиента. Вход разрешён только
// одобренным пользователям.
func (s *AuthService) Login(ctx context.Context, email, password string) (*model.User, error) {
	if email == "" || password == "" {
		return nil, errs.Validation("", "email", "password")
	}
	u, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errs.KindOf(err) == errs.KindNotFound {
			return nil, errs.Unauthorized()
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) != nil {
		return nil, errs.Unauthorized()
	}
	switch u.Status {
	case model.StatusApproved:
		return u, nil
	case model.StatusPending:
		return nil, errs.Forbidden("Akun belum disetujui")
	default:
		return nil, errs.Forbidden("Akun ditolak")
	}
}

// AdminSetupInput — данные bootstrap-админа.
type AdminSetupInput struct {
	Name      string
	Email     string
	Password  string
	NRP       string
	SecretKey string
}

// AdminSetup создаёт администратора со статусом APPROVED. Доступ закрыт
// секретом из конфигурации; при пустом секрете конфигурации эндпоинт
// отключён целиком.
func (s *AuthService) AdminSetup(ctx context.Context, in AdminSetupInput) (*model.User, error) {
	if s.adminSetupSecret == "" {
		return nil, errs.Forbidden("Admin setup dinonaktifkan")
	}
	if subtle.ConstantTimeCompare([]byte(in.SecretKey), []byte(s.adminSetupSecret)) != 1 {
		return nil, errs.Unauthorized()
	}
	if len(in.Password) < 8 {
		return nil, errs.Validation("Password minimal 8 karakter", "password")
	}

	if dup, err := s.userRepo.FindByEmailOrNRP(ctx, in.Email, in.NRP, ""); err != nil {
		return nil, err
	} else if dup != nil {
		return nil, errs.Conflict("Email atau NRP sudah terdaftar")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		return nil, errs.Internal(err)
	}
	u := &model.User{
		NRP:      in.NRP,
		Name:     in.Name,
		Email:    in.Email,
		Password: string(hash),
		Role:     model.RoleAdmin,
		Status:   model.StatusApproved,
	}
	if err := s.userRepo.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}
