package service

import (
	"bytes"
	"context"
	"fmt"

	"simaset/internal/errs"
	"simaset/internal/model"
	"simaset/internal/scope"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"
)

// ExportFile — сгенерированный файл выгрузки отчёта.
type ExportFile struct {
	Data        []byte
	Filename    string
	ContentType string
}

// Export выгружает отчёт в pdf или excel; файл отдаётся вложением.
func (s *ReportService) Export(ctx context.Context, c scope.Caller, id, format string) (*ExportFile, error) {
	rep, err := s.Get(ctx, c, id)
	if err != nil {
		return nil, err
	}
	switch format {
	case "pdf":
		return exportPDF(rep)
	case "excel":
		return exportXLSX(rep)
	default:
		return nil, errs.Validation("Format tidak didukung", "format")
	}
}

// exportRows — подписи и значения полей отчёта в порядке вывода.
func exportRows(rep *model.Report) [][2]string {
	author, nrp := "-", "-"
	if rep.User != nil {
		author, nrp = rep.User.Name, rep.User.NRP
	}
	polres := "-"
	if rep.Polres != nil {
		polres = rep.Polres.Name
	}
	typeName := string(rep.Type)
	if rep.CustomType != nil {
		typeName = *rep.CustomType
	}
	return [][2]string{
		{"Judul", rep.Title},
		{"Tipe", typeName},
		{"Status", string(rep.Status)},
		{"Deskripsi", rep.Description},
		{"Pembuat", author},
		{"NRP", nrp},
		{"Polres", polres},
		{"Tanggal Dibuat", rep.CreatedAt.Format("02-01-2006")},
	}
}

func exportXLSX(rep *model.Report) (*ExportFile, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Laporan"
	f.SetSheetName("Sheet1", sheet)

	for i, row := range exportRows(rep) {
		labelCell, _ := excelize.CoordinatesToCellName(1, i+1)
		valueCell, _ := excelize.CoordinatesToCellName(2, i+1)
		if err := f.SetCellValue(sheet, labelCell, row[0]); err != nil {
			return nil, errs.Internal(err)
		}
		if err := f.SetCellValue(sheet, valueCell, row[1]); err != nil {
			return nil, errs.Internal(err)
		}
	}
	_ = f.SetColWidth(sheet, "A", "A", 18)
	_ = f.SetColWidth(sheet, "B", "B", 60)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, errs.Internal(err)
	}
	return &ExportFile{
		Data:        buf.Bytes(),
		Filename:    fmt.Sprintf("laporan-%s.xlsx", rep.ID),
		ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	}, nil
}

func exportPDF(rep *model.Report) (*ExportFile, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 12, "LAPORAN", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	for _, row := range exportRows(rep) {
		pdf.SetFont("Arial", "B", 11)
		pdf.CellFormat(40, 8, row[0], "", 0, "L", false, 0, "")
		pdf.SetFont("Arial", "", 11)
		pdf.MultiCell(0, 8, row[1], "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, errs.Internal(err)
	}
	return &ExportFile{
		Data:        buf.Bytes(),
		Filename:    fmt.Sprintf("laporan-%s.pdf", rep.ID),
		ContentType: "application/pdf",
	}, nil
}
