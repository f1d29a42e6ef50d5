package services

import (
	"context"

	"github.com/SscSPs/enterprise_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/enterprise_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/enterprise_ledger/internal/dto"
)

// LedgerReaderSvc defines read operations for the ledgers.
type LedgerReaderSvc interface {
	ListRevenue(ctx context.Context, store portsrepo.DataStore, orgID string) []domain.LedgerEntry
	ListExpenses(ctx context.Context, store portsrepo.DataStore, orgID string) []domain.LedgerEntry
	ListInvestments(ctx context.Context, store portsrepo.DataStore, orgID string) []domain.Investment
}

// LedgerWriterSvc defines write operations for the ledgers.
type LedgerWriterSvc interface {
	// AddTransaction records revenue or an expense. The returned WriteResult
	// carries the mirror outcome; err is set only when the primary write failed
	// or the request was invalid.
	AddTransaction(ctx context.Context, store portsrepo.DataStore, orgID, userID string, req dto.AddTransactionRequest) (domain.WriteResult, error)
	AddInvestment(ctx context.Context, store portsrepo.DataStore, orgID, userID string, req dto.AddInvestmentRequest) error
}

// LedgerSvcFacade combines the ledger service interfaces.
type LedgerSvcFacade interface {
	LedgerReaderSvc
	LedgerWriterSvc
}
