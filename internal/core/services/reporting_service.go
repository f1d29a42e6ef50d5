package services

import (
	"context"
	"log/slog"

	"github.com/SscSPs/enterprise_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/enterprise_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/enterprise_ledger/internal/core/ports/services"
	"github.com/SscSPs/enterprise_ledger/internal/dto"
)

// DefaultOrganizationName is shown when the organization has no name.
const DefaultOrganizationName = "Enterprise"

type reportingService struct {
	BaseService
}

// NewReportingService creates the dashboard and cash-flow service.
func NewReportingService(options ...ServiceOption) portssvc.ReportingSvc {
	return &reportingService{BaseService: newBaseService(options)}
}

func (s *reportingService) Dashboard(ctx context.Context, store portsrepo.DataStore, orgID string) (*dto.DashboardResponse, error) {
	revenue := store.ListRevenue(ctx, orgID, domain.Period{})
	expenses := store.ListExpenses(ctx, orgID, domain.Period{})
	investments := store.ListInvestments(ctx, orgID)

	name := store.OrganizationName(ctx, orgID)
	if name == "" {
		name = DefaultOrganizationName
	}

	s.LogDebug(ctx, "Dashboard computed",
		slog.Int("revenue_rows", len(revenue)),
		slog.Int("expense_rows", len(expenses)),
		slog.Int("investment_rows", len(investments)))

	return &dto.DashboardResponse{
		OrganizationName: name,
		KPIs:             domain.ComputeKPIs(revenue, expenses, investments),
		Trend:            domain.ComputeTrend(revenue, expenses, domain.TrendMonths),
	}, nil
}

func (s *reportingService) Cashflow(ctx context.Context, store portsrepo.DataStore, orgID, userID string, q dto.CashflowQuery) (*dto.CashflowResponse, error) {
	period, err := domain.ResolvePeriod(q.Period, q.StartDate, q.EndDate, s.Now())
	if err != nil {
		return nil, err
	}

	cf := domain.MergeCashflow(
		store.ListRevenue(ctx, orgID, period),
		store.ListExpenses(ctx, orgID, period),
	)
	members := store.ListMembers(ctx, orgID)

	resp := &dto.CashflowResponse{
		Period:        q.Period,
		Ledger:        cf.Rows,
		TotalIncome:   cf.TotalIncome,
		TotalExpenses: cf.TotalExpenses,
		Banks:         store.ListPersonalBanks(ctx, userID),
		Categories:    store.ListCategories(ctx, userID),
		Members:       dto.ToListMembersResponse(members).Members,
	}
	if resp.Period == "" {
		resp.Period = domain.PeriodThisMonth
	}
	if period.HasFrom() {
		resp.StartDate = period.From.Format(domain.DateLayout)
	}
	if period.HasTo() {
		resp.EndDate = period.To.Format(domain.DateLayout)
	}
	return resp, nil
}
