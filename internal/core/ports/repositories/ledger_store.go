package repositories

import (
	"context"

	"github.com/SscSPs/enterprise_ledger/internal/core/domain"
)

// LedgerReader defines read operations for the revenue, expense and investment
// ledgers. Results are ordered by date, newest first.
type LedgerReader interface {
	ListRevenue(ctx context.Context, orgID string, period domain.Period) []domain.LedgerEntry
	ListExpenses(ctx context.Context, orgID string, period domain.Period) []domain.LedgerEntry
	ListInvestments(ctx context.Context, orgID string) []domain.Investment
}

// LedgerWriter appends to the ledgers. There is no update or delete.
type LedgerWriter interface {
	// AddRevenue inserts entry and, when it references a bank account, mirrors it
	// into the caller's personal ledger. The mirror outcome never changes OK.
	AddRevenue(ctx context.Context, orgID string, entry domain.LedgerEntry) domain.WriteResult
	AddExpense(ctx context.Context, orgID string, entry domain.LedgerEntry) domain.WriteResult
	AddInvestment(ctx context.Context, orgID string, inv domain.Investment) bool
}

// LedgerStore combines the ledger interfaces.
type LedgerStore interface {
	LedgerReader
	LedgerWriter
}
