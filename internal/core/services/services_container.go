package services

import (
	portssvc "github.com/SscSPs/enterprise_ledger/internal/core/ports/services"
	"github.com/SscSPs/enterprise_ledger/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, options ...ServiceOption) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		Organization: NewOrganizationService(options...),
		Reporting:    NewReportingService(options...),
		Ledger:       NewLedgerService(options...),
		Holding:      NewHoldingPaymentService(options...),
		Member:       NewMemberService(options...),
		Bank:         NewBankService(options...),
		Export:       NewExportService(options...),
		BusinessAuth: NewBusinessAuthService(cfg.BaseURL, options...),
	}
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.OrganizationSvc   = (*organizationService)(nil)
	_ portssvc.ReportingSvc      = (*reportingService)(nil)
	_ portssvc.LedgerSvcFacade   = (*ledgerService)(nil)
	_ portssvc.HoldingPaymentSvc = (*holdingPaymentService)(nil)
	_ portssvc.MemberSvc         = (*memberService)(nil)
	_ portssvc.BankSvc           = (*bankService)(nil)
	_ portssvc.ExportSvc         = (*exportService)(nil)
	_ portssvc.BusinessAuthSvc   = (*businessAuthService)(nil)
)
