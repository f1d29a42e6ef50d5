package dto

import (
	"github.com/SscSPs/enterprise_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CashflowQuery selects the combined cash-flow range.
type CashflowQuery struct {
	Period    domain.CashflowPeriod `form:"period" binding:"omitempty,oneof=this_month last_month this_year custom"`
	StartDate string                `form:"start_date" binding:"omitempty,datetime=2006-01-02"`
	EndDate   string                `form:"end_date" binding:"omitempty,datetime=2006-01-02"`
}

// DashboardResponse carries the KPIs and trend of the pinned organization.
type DashboardResponse struct {
	OrganizationName string               `json:"org_name"`
	KPIs             domain.DashboardKPIs `json:"kpis"`
	Trend            domain.Trend         `json:"trend"`
}

// CashflowResponse is the combined ledger plus the pick lists the entry form needs.
type CashflowResponse struct {
	Period        domain.CashflowPeriod `json:"period"`
	StartDate     string                `json:"start_date,omitempty"`
	EndDate       string                `json:"end_date,omitempty"`
	Ledger        []domain.CashflowRow  `json:"ledger"`
	TotalIncome   decimal.Decimal       `json:"total_income"`
	TotalExpenses decimal.Decimal       `json:"total_expenses"`
	Banks         []domain.BankAccount  `json:"banks"`
	Categories    []string              `json:"categories"`
	Members       []MemberResponse      `json:"members"`
}
