package service

import (
	"context"

	"simaset/internal/errs"
	"simaset/internal/model"
	"simaset/internal/repo"
)

// PoldaService — бизнес-логика по региональным управлениям.
type PoldaService struct {
	poldas repo.PoldaRepository
}

func NewPoldaService(poldas repo.PoldaRepository) *PoldaService {
	return &PoldaService{poldas: poldas}
}

func (s *PoldaService) List(ctx context.Context, search string, p repo.Page) ([]model.Polda, repo.Pagination, error) {
	rows, total, err := s.poldas.List(ctx, search, p)
	if err != nil {
		return nil, repo.Pagination{}, err
	}
	return rows, repo.NewPagination(p, total), nil
}

func (s *PoldaService) ListSimple(ctx context.Context) ([]model.Polda, error) {
	return s.poldas.ListSimple(ctx)
}

func (s *PoldaService) Get(ctx context.Context, id string) (*model.Polda, error) {
	return s.poldas.GetByID(ctx, id)
}

// PoldaInput — поля создания/изменения Polda. При обновлении nil-поля
// не трогаются (merge-patch).
type PoldaInput struct {
	Name    *string
	Address *string
	Phone   *string
}

func (s *PoldaService) Create(ctx context.Context, in PoldaInput) (*model.Polda, error) {
	if in.Name == nil || *in.Name == "" {
		return nil, errs.Validation("Nama Polda harus diisi", "name")
	}
	if dup, err := s.poldas.FindByName(ctx, *in.Name, ""); err != nil {
		return nil, err
	} else if dup != nil {
		return nil, errs.Conflict("Polda dengan nama tersebut sudah ada")
	}

	p := &model.Polda{Name: *in.Name}
	if in.Address != nil {
		p.Address = *in.Address
	}
	if in.Phone != nil {
		p.Phone = *in.Phone
	}
	if err := s.poldas.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *PoldaService) Update(ctx context.Context, id string, in PoldaInput) (*model.Polda, error) {
	p, err := s.poldas.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		if *in.Name == "" {
			return nil, errs.Validation("Nama Polda harus diisi", "name")
		}
		if dup, err := s.poldas.FindByName(ctx, *in.Name, id); err != nil {
			return nil, err
		} else if dup != nil {
			return nil, errs.Conflict("Polda dengan nama tersebut sudah ada")
		}
		p.Name = *in.Name
	}
	if in.Address != nil {
		p.Address = *in.Address
	}
	if in.Phone != nil {
		p.Phone = *in.Phone
	}
	if err := s.poldas.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Delete запрещает удаление Polda, у которого остались Polres.
func (s *PoldaService) Delete(ctx context.Context, id string) error {
	if _, err := s.poldas.GetByID(ctx, id); err != nil {
		return err
	}
	n, err := s.poldas.CountPolres(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return errs.Conflict("Tidak dapat menghapus Polda yang memiliki Polres terkait")
	}
	return s.poldas.Delete(ctx, id)
}
