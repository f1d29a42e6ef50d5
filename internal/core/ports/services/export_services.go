package services

import (
	"context"

	portsrepo "github.com/SscSPs/enterprise_ledger/internal/core/ports/repositories"
)

// ExportScope selects which ledger rows are exported.
type ExportScope string

const (
	ExportExpenses ExportScope = "expenses"
	ExportRevenue  ExportScope = "revenue"
	ExportCashflow ExportScope = "cashflow"
)

// ExportFormat is the file format of an export.
type ExportFormat string

const (
	FormatCSV  ExportFormat = "csv"
	FormatXLSX ExportFormat = "xlsx"
)

// ExportFile is a rendered export ready to be sent as an attachment.
type ExportFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ExportSvc renders ledger exports.
type ExportSvc interface {
	// Export returns ErrNotFound when there are no rows and ErrValidation for an
	// unknown scope or format.
	Export(ctx context.Context, store portsrepo.DataStore, orgID string, scope ExportScope, format ExportFormat) (*ExportFile, error)
}
