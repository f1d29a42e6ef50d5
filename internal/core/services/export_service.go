package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"

	"github.com/SscSPs/enterprise_ledger/internal/apperrors"
	"github.com/SscSPs/enterprise_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/enterprise_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/enterprise_ledger/internal/core/ports/services"
	"github.com/xuri/excelize/v2"
)

// ExportColumns is the fixed column order of every export.
var ExportColumns = []string{"Type", "Date", "Amount", "Category", "Method", "Taken By", "Narrative"}

const (
	contentTypeCSV  = "text/csv; charset=utf-8"
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	exportSheet     = "Ledger"
)

// utf8BOM lets spreadsheet tools detect the encoding of CSV exports.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

type exportService struct {
	BaseService
}

// NewExportService creates the ledger export service.
func NewExportService(options ...ServiceOption) portssvc.ExportSvc {
	return &exportService{BaseService: newBaseService(options)}
}

func (s *exportService) rows(ctx context.Context, store portsrepo.DataStore, orgID string, scope portssvc.ExportScope) ([]domain.CashflowRow, error) {
	switch scope {
	case portssvc.ExportExpenses:
		return domain.MergeCashflow(nil, store.ListExpenses(ctx, orgID, domain.Period{})).Rows, nil
	case portssvc.ExportRevenue:
		return domain.MergeCashflow(store.ListRevenue(ctx, orgID, domain.Period{}), nil).Rows, nil
	case portssvc.ExportCashflow:
		return domain.MergeCashflow(
			store.ListRevenue(ctx, orgID, domain.Period{}),
			store.ListExpenses(ctx, orgID, domain.Period{}),
		).Rows, nil
	default:
		return nil, apperrors.NewValidationFailedError(fmt.Sprintf("unknown export scope %q", scope))
	}
}

func exportRecord(r domain.CashflowRow) []string {
	return []string{
		string(r.Type),
		r.Date.Format(domain.DateLayout),
		r.Amount.StringFixed(2),
		r.Category,
		r.Method,
		r.TakenByName,
		r.Narrative,
	}
}

func (s *exportService) Export(ctx context.Context, store portsrepo.DataStore, orgID string, scope portssvc.ExportScope, format portssvc.ExportFormat) (*portssvc.ExportFile, error) {
	if format != portssvc.FormatCSV && format != portssvc.FormatXLSX {
		return nil, apperrors.NewValidationFailedError(fmt.Sprintf("unknown export format %q", format))
	}
	rows, err := s.rows(ctx, store, orgID, scope)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, apperrors.NewNotFoundError("no data available for export")
	}

	filename := fmt.Sprintf("enterprise_%s_%s.%s", scope, s.Now().Format(domain.DateLayout), format)
	var data []byte
	var contentType string
	if format == portssvc.FormatCSV {
		data, err = renderCSV(rows)
		contentType = contentTypeCSV
	} else {
		data, err = renderXLSX(rows)
		contentType = contentTypeXLSX
	}
	if err != nil {
		s.LogError(ctx, err, "Failed to render export", slog.String("format", string(format)))
		return nil, apperrors.NewAppError(500, "failed to render export", err)
	}

	s.LogInfo(ctx, "Export rendered", slog.String("file", filename), slog.Int("rows", len(rows)))
	return &portssvc.ExportFile{Filename: filename, ContentType: contentType, Data: data}, nil
}

func renderCSV(rows []domain.CashflowRow) ([]byte, error) {
	var buf bytes.Buffer
	buf.Write(utf8BOM)
	w := csv.NewWriter(&buf)
	if err := w.Write(ExportColumns); err != nil {
		return nil, err
	}
	for _, r := range rows {
		if err := w.Write(exportRecord(r)); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func renderXLSX(rows []domain.CashflowRow) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return nil, err
	}
	header := make([]any, len(ExportColumns))
	for i, c := range ExportColumns {
		header[i] = c
	}
	if err := f.SetSheetRow(exportSheet, "A1", &header); err != nil {
		return nil, err
	}
	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		rec := exportRecord(r)
		amount, _ := r.Amount.Float64()
		values := []any{rec[0], rec[1], amount, rec[3], rec[4], rec[5], rec[6]}
		if err := f.SetSheetRow(exportSheet, cell, &values); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
