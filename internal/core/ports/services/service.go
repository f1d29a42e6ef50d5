package services

// ServiceContainer holds instances of all the application services. Services
// are stateless; each call receives the DataStore the enterprise gate resolved
// for the request.
type ServiceContainer struct {
	Organization OrganizationSvc
	Reporting    ReportingSvc
	Ledger       LedgerSvcFacade
	Holding      HoldingPaymentSvc
	Member       MemberSvc
	Bank         BankSvc
	Export       ExportSvc
	BusinessAuth BusinessAuthSvc
}
