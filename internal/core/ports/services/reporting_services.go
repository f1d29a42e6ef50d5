package services

import (
	"context"

	portsrepo "github.com/SscSPs/enterprise_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/enterprise_ledger/internal/dto"
)

// ReportingSvc derives the dashboard and combined cash-flow views.
type ReportingSvc interface {
	Dashboard(ctx context.Context, store portsrepo.DataStore, orgID string) (*dto.DashboardResponse, error)
	Cashflow(ctx context.Context, store portsrepo.DataStore, orgID, userID string, q dto.CashflowQuery) (*dto.CashflowResponse, error)
}
