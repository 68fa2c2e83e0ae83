package service

import (
	"context"

	"simaset/internal/errs"
	"simaset/internal/model"
	"simaset/internal/repo"
	"simaset/internal/scope"

	"github.com/google/uuid"
)

// AssetService — бизнес-логика по имуществу.
type AssetService struct {
	assets     repo.AssetRepository
	polres     repo.PolresRepository
	users      repo.UserRepository
	categories repo.CategoryRepository
}

func NewAssetService(assets repo.AssetRepository, polres repo.PolresRepository, users repo.UserRepository, categories repo.CategoryRepository) *AssetService {
	return &AssetService{assets: assets, polres: polres, users: users, categories: categories}
}

func (s *AssetService) List(ctx context.Context, c scope.Caller, f repo.AssetFilter, p repo.Page) ([]model.Asset, repo.Pagination, error) {
	rows, total, err := s.assets.List(ctx, scope.ForCaller(c), f, p)
	if err != nil {
		return nil, repo.Pagination{}, err
	}
	return rows, repo.NewPagination(p, total), nil
}

// Get прячет активы вне зоны видимости за NotFound.
func (s *AssetService) Get(ctx context.Context, c scope.Caller, id string) (*model.Asset, error) {
	a, err := s.assets.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !scope.ForCaller(c).AllowsRow(a.PoldaID, a.PolresID) {
		return nil, errs.NotFound("Asset", id)
	}
	return a, nil
}

// AssetInput — поля создания/изменения актива (merge-patch при обновлении).
type AssetInput struct {
	Name            *string
	CategoryID      *string
	Kind            *model.AssetKind
	Status          *model.AssetStatus
	InventoryNumber *string
	Year            *int
	Source          *string
	PoldaID         *string
	PolresID        *string
	AssignedTo      *string
	QRData          *string
}

// checkRefs валидирует ссылки актива: polres обязателен и существует,
// категория/пользователь при наличии существуют, polda согласован с polres.
func (s *AssetService) checkRefs(ctx context.Context, a *model.Asset) error {
	if a.PolresID == nil || *a.PolresID == "" {
		return errs.Validation("Nama dan Polres harus diisi", "polresId")
	}
	polres, err := s.polres.GetByID(ctx, *a.PolresID)
	if err != nil {
		return err
	}
	if a.PoldaID != nil && *a.PoldaID != polres.PoldaID {
		return errs.Validation("Polres yang dipilih tidak termasuk dalam Polda tersebut")
	}
	// polda выводится из polres, если не задан
	if a.PoldaID == nil {
		a.PoldaID = &polres.PoldaID
	}
	if a.CategoryID != nil && *a.CategoryID != "" {
		if _, err := s.categories.GetByID(ctx, *a.CategoryID); err != nil {
			return err
		}
	}
	if a.AssignedTo != nil && *a.AssignedTo != "" {
		if _, err := s.users.GetByID(ctx, *a.AssignedTo); err != nil {
			return err
		}
	}
	return nil
}

func (s *AssetService) Create(ctx context.Context, in AssetInput) (*model.Asset, error) {
	var missing []string
	if in.Name == nil || *in.Name == "" {
		missing = append(missing, "name")
	}
	if in.PolresID == nil || *in.PolresID == "" {
		missing = append(missing, "polresId")
	}
	if len(missing) > 0 {
		return nil, errs.Validation("", missing...)
	}
	if in.Kind != nil && !in.Kind.Valid() {
		return nil, errs.Validation("kind tidak valid", "kind")
	}
	if in.Status != nil && !in.Status.Valid() {
		return nil, errs.Validation("status tidak valid", "status")
	}

	a := &model.Asset{
		ID:         uuid.NewString(),
		Name:       *in.Name,
		Category:   "LAINNYA",
		Status:     model.AssetActive,
		CategoryID: in.CategoryID,
		PoldaID:    in.PoldaID,
		PolresID:   in.PolresID,
		AssignedTo: in.AssignedTo,
		Year:       in.Year,
		Source:     in.Source,
	}
	if in.Kind != nil {
		a.Kind = *in.Kind
	}
	if in.Status != nil {
		a.Status = *in.Status
	}
	if in.InventoryNumber != nil && *in.InventoryNumber != "" {
		a.InventoryNumber = in.InventoryNumber
	}
	if err := s.checkRefs(ctx, a); err != nil {
		return nil, err
	}
	if a.InventoryNumber != nil {
		if dup, err := s.assets.FindByInventoryNumber(ctx, *a.InventoryNumber, ""); err != nil {
			return nil, err
		} else if dup != nil {
			return nil, errs.Conflict("Inventory number sudah digunakan")
		}
	}

	// QR-метка по умолчанию указывает на карточку актива
	if in.QRData != nil && *in.QRData != "" {
		a.QRData = in.QRData
	} else {
		payload := "simaset://asset/" + a.ID
		a.QRData = &payload
	}

	if err := s.assets.Create(ctx, a); err != nil {
		return nil, err
	}
	return s.assets.GetByID(ctx, a.ID)
}

func (s *AssetService) Update(ctx context.Context, c scope.Caller, id string, in AssetInput) (*model.Asset, error) {
	a, err := s.Get(ctx, c, id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		if *in.Name == "" {
			return nil, errs.Validation("Nama dan Polres harus diisi", "name")
		}
		a.Name = *in.Name
	}
	if in.Kind != nil {
		if !in.Kind.Valid() {
			return nil, errs.Validation("kind tidak valid", "kind")
		}
		a.Kind = *in.Kind
	}
	if in.Status != nil {
		if !in.Status.Valid() {
			return nil, errs.Validation("status tidak valid", "status")
		}
		a.Status = *in.Status
	}
	if in.CategoryID != nil {
		a.CategoryID = in.CategoryID
	}
	if in.PoldaID != nil {
		a.PoldaID = in.PoldaID
	}
	if in.PolresID != nil {
		a.PolresID = in.PolresID
		if in.PoldaID == nil {
			a.PoldaID = nil // polda перевыводится из нового polres
		}
	}
	if in.AssignedTo != nil {
		if *in.AssignedTo == "" {
			a.AssignedTo = nil
		} else {
			a.AssignedTo = in.AssignedTo
		}
	}
	if in.Year != nil {
		a.Year = in.Year
	}
	if in.Source != nil {
		a.Source = in.Source
	}
	if in.QRData != nil {
		a.QRData = in.QRData
	}
	if in.InventoryNumber != nil {
		if *in.InventoryNumber == "" {
			a.InventoryNumber = nil
		} else {
			if dup, err := s.assets.FindByInventoryNumber(ctx, *in.InventoryNumber, id); err != nil {
				return nil, err
			} else if dup != nil {
				return nil, errs.Conflict("Inventory number sudah digunakan")
			}
			a.InventoryNumber = in.InventoryNumber
		}
	}

	if err := s.checkRefs(ctx, a); err != nil {
		return nil, err
	}
	if err := s.assets.Update(ctx, a); err != nil {
		return nil, err
	}
	return s.assets.GetByID(ctx, id)
}

// Delete запрещает удаление актива, пока он закреплён за пользователем.
func (s *AssetService) Delete(ctx context.Context, c scope.Caller, id string) error {
	a, err := s.Get(ctx, c, id)
	if err != nil {
		return err
	}
	if a.AssignedTo != nil {
		return errs.Conflict("Tidak dapat menghapus Asset yang masih dipegang User")
	}
	return s.assets.Delete(ctx, id)
}
