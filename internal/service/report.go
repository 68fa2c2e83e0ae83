package service

import (
	"context"

	"simaset/internal/errs"
	"simaset/internal/model"
	"simaset/internal/repo"
	"simaset/internal/scope"
)

// ReportService — бизнес-логика по отчётам.
type ReportService struct {
	reports repo.ReportRepository
	polres  repo.PolresRepository
	poldas  repo.PoldaRepository
}

func NewReportService(reports repo.ReportRepository, polres repo.PolresRepository, poldas repo.PoldaRepository) *ReportService {
	return &ReportService{reports: reports, polres: polres, poldas: poldas}
}

func (s *ReportService) List(ctx context.Context, c scope.Caller, f repo.ReportFilter, p repo.Page) ([]model.Report, repo.Pagination, error) {
	rows, total, err := s.reports.List(ctx, scope.ForCaller(c), f, p)
	if err != nil {
		return nil, repo.Pagination{}, err
	}
	return rows, repo.NewPagination(p, total), nil
}

// Get прячет отчёты вне зоны видимости за NotFound.
func (s *ReportService) Get(ctx context.Context, c scope.Caller, id string) (*model.Report, error) {
	rep, err := s.reports.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !scope.ForCaller(c).AllowsRow(rep.PoldaID, rep.PolresID) {
		return nil, errs.NotFound("Laporan", id)
	}
	return rep, nil
}

// ReportInput — поля создания/изменения отчёта (merge-patch при обновлении).
type ReportInput struct {
	Title       *string
	Type        *model.ReportType
	CustomType  *string
	Description *string
	Content     *string
	Status      *model.ReportStatus
	PoldaID     *string
	PolresID    *string
}

// checkRefs валидирует ссылки отчёта и согласованность polda/polres.
func (s *ReportService) checkRefs(ctx context.Context, rep *model.Report) error {
	var polres *model.Polres
	if rep.PolresID != nil && *rep.PolresID != "" {
		p, err := s.polres.GetByID(ctx, *rep.PolresID)
		if err != nil {
			return err
		}
		polres = p
	}
	if rep.PoldaID != nil && *rep.PoldaID != "" {
		if _, err := s.poldas.GetByID(ctx, *rep.PoldaID); err != nil {
			return err
		}
		if polres != nil && polres.PoldaID != *rep.PoldaID {
			return errs.Validation("Polres yang dipilih tidak termasuk dalam Polda tersebut")
		}
	} else if polres != nil {
		rep.PoldaID = &polres.PoldaID
	}
	return nil
}

// Create создаёт отчёт от имени вызывающего (автор — caller, не поле запроса).
func (s *ReportService) Create(ctx context.Context, c scope.Caller, in ReportInput) (*model.Report, error) {
	var missing []string
	if in.Title == nil || *in.Title == "" {
		missing = append(missing, "title")
	}
	if in.Type == nil || *in.Type == "" {
		missing = append(missing, "type")
	}
	if in.Description == nil || *in.Description == "" {
		missing = append(missing, "description")
	}
	if len(missing) > 0 {
		return nil, errs.Validation("Judul, tipe, dan deskripsi harus diisi", missing...)
	}
	if !in.Type.Valid() {
		return nil, errs.Validation("type tidak valid", "type")
	}
	if *in.Type == model.ReportCustom && (in.CustomType == nil || *in.CustomType == "") {
		return nil, errs.Validation("Tipe kustom harus diisi untuk laporan CUSTOM", "customType")
	}

	rep := &model.Report{
		Title:       *in.Title,
		Type:        *in.Type,
		Description: *in.Description,
		Content:     *in.Description,
		Status:      model.ReportDraft,
		UserID:      c.UserID,
		PoldaID:     in.PoldaID,
		PolresID:    in.PolresID,
	}
	if *in.Type == model.ReportCustom {
		rep.CustomType = in.CustomType
	}
	if in.Content != nil {
		rep.Content = *in.Content
	}
	if err := s.checkRefs(ctx, rep); err != nil {
		return nil, err
	}
	if err := s.reports.Create(ctx, rep); err != nil {
		return nil, err
	}
	return s.reports.GetByID(ctx, rep.ID)
}

func (s *ReportService) Update(ctx context.Context, c scope.Caller, id string, in ReportInput) (*model.Report, error) {
	rep, err := s.Get(ctx, c, id)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		if *in.Title == "" {
			return nil, errs.Validation("Judul harus diisi", "title")
		}
		rep.Title = *in.Title
	}
	if in.Type != nil {
		if !in.Type.Valid() {
			return nil, errs.Validation("type tidak valid", "type")
		}
		rep.Type = *in.Type
		if rep.Type != model.ReportCustom {
			rep.CustomType = nil
		}
	}
	if in.CustomType != nil && rep.Type == model.ReportCustom {
		rep.CustomType = in.CustomType
	}
	if rep.Type == model.ReportCustom && (rep.CustomType == nil || *rep.CustomType == "") {
		return nil, errs.Validation("Tipe kustom harus diisi untuk laporan CUSTOM", "customType")
	}
	if in.Description != nil {
		rep.Description = *in.Description
	}
	if in.Content != nil {
		rep.Content = *in.Content
	}
	if in.Status != nil {
		if !in.Status.Valid() {
			return nil, errs.Validation("status tidak valid", "status")
		}
		rep.Status = *in.Status
	}
	if in.PoldaID != nil {
		rep.PoldaID = in.PoldaID
	}
	if in.PolresID != nil {
		rep.PolresID = in.PolresID
	}
	if err := s.checkRefs(ctx, rep); err != nil {
		return nil, err
	}
	if err := s.reports.Update(ctx, rep); err != nil {
		return nil, err
	}
	return s.reports.GetByID(ctx, id)
}

func (s *ReportService) Delete(ctx context.Context, c scope.Caller, id string) error {
	if _, err := s.Get(ctx, c, id); err != nil {
		return err
	}
	return s.reports.Delete(ctx, id)
}
