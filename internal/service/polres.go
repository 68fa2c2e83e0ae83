package service

import (
	"context"

	"simaset/internal/errs"
	"simaset/internal/model"
	"simaset/internal/repo"
	"simaset/internal/scope"
)

// PolresService — бизнес-логика по районным управлениям.
type PolresService struct {
	polres repo.PolresRepository
	poldas repo.PoldaRepository
}

func NewPolresService(polres repo.PolresRepository, poldas repo.PoldaRepository) *PolresService {
	return &PolresService{polres: polres, poldas: poldas}
}

func (s *PolresService) List(ctx context.Context, c scope.Caller, search, poldaID string, p repo.Page) ([]model.Polres, repo.Pagination, error) {
	rows, total, err := s.polres.List(ctx, scope.ForCaller(c), search, poldaID, p)
	if err != nil {
		return nil, repo.Pagination{}, err
	}
	return rows, repo.NewPagination(p, total), nil
}

func (s *PolresService) ListSimple(ctx context.Context, c scope.Caller, poldaID string) ([]model.Polres, error) {
	return s.polres.ListSimple(ctx, scope.ForCaller(c), poldaID)
}

// Get прячет существование строки вне зоны видимости за NotFound.
func (s *PolresService) Get(ctx context.Context, c scope.Caller, id string) (*model.Polres, error) {
	p, err := s.polres.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !scope.ForCaller(c).AllowsPolres(p.ID, p.PoldaID) {
		return nil, errs.NotFound("Polres", id)
	}
	return p, nil
}

// PolresInput — поля создания/изменения Polres (merge-patch при обновлении).
type PolresInput struct {
	Name    *string
	Address *string
	Phone   *string
	PoldaID *string
}

func (s *PolresService) Create(ctx context.Context, in PolresInput) (*model.Polres, error) {
	var missing []string
	if in.Name == nil || *in.Name == "" {
		missing = append(missing, "name")
	}
	if in.PoldaID == nil || *in.PoldaID == "" {
		missing = append(missing, "poldaId")
	}
	if len(missing) > 0 {
		return nil, errs.Validation("", missing...)
	}

	// родительский Polda должен существовать
	if _, err := s.poldas.GetByID(ctx, *in.PoldaID); err != nil {
		return nil, err
	}
	if dup, err := s.polres.FindByNameInPolda(ctx, *in.Name, *in.PoldaID, ""); err != nil {
		return nil, err
	} else if dup != nil {
		return nil, errs.Conflict("Polres dengan nama tersebut sudah ada di Polda ini")
	}

	p := &model.Polres{Name: *in.Name, PoldaID: *in.PoldaID}
	if in.Address != nil {
		p.Address = *in.Address
	}
	if in.Phone != nil {
		p.Phone = *in.Phone
	}
	if err := s.polres.Create(ctx, p); err != nil {
		return nil, err
	}
	return s.polres.GetByID(ctx, p.ID)
}

func (s *PolresService) Update(ctx context.Context, id string, in PolresInput) (*model.Polres, error) {
	p, err := s.polres.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.PoldaID != nil {
		if _, err := s.poldas.GetByID(ctx, *in.PoldaID); err != nil {
			return nil, err
		}
		p.PoldaID = *in.PoldaID
	}
	if in.Name != nil {
		if *in.Name == "" {
			return nil, errs.Validation("Nama Polres harus diisi", "name")
		}
		p.Name = *in.Name
	}
	if in.Name != nil || in.PoldaID != nil {
		if dup, err := s.polres.FindByNameInPolda(ctx, p.Name, p.PoldaID, id); err != nil {
			return nil, err
		} else if dup != nil {
			return nil, errs.Conflict("Polres dengan nama tersebut sudah ada di Polda yang sama")
		}
	}
	if in.Address != nil {
		p.Address = *in.Address
	}
	if in.Phone != nil {
		p.Phone = *in.Phone
	}
	if err := s.polres.Update(ctx, p); err != nil {
		return nil, err
	}
	return s.polres.GetByID(ctx, id)
}

// Delete запрещает удаление Polres со связанными Users/Assets/Reports.
func (s *PolresService) Delete(ctx context.Context, id string) error {
	if _, err := s.polres.GetByID(ctx, id); err != nil {
		return err
	}
	c, err := s.polres.CountRelated(ctx, id)
	if err != nil {
		return err
	}
	if c.Users > 0 || c.Assets > 0 || c.Reports > 0 {
		return errs.Conflict("Tidak dapat menghapus Polres yang memiliki User, Asset, atau Report terkait")
	}
	return s.polres.Delete(ctx, id)
}
