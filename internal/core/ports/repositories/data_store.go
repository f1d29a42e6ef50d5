package repositories

import (
	"context"

	"github.com/SscSPs/enterprise_ledger/internal/core/domain"
)

// DataStore is the single persistence contract consumed by services, handlers
// and the enterprise gate. Both backends implement it.
//
// Reads never fail: absence and backend errors both produce an empty result,
// with the error logged. Writes report success as a bool (or a WriteResult for
// mirrored writes).
type DataStore interface {
	OrganizationStore
	MemberStore
	LedgerStore
	HoldingPaymentStore
	BankStore
	CategoryStore
	CredentialStore

	// Backend names the implementation, for diagnostics.
	Backend() domain.BackendKind
}

// StoreProvider hands out a DataStore bound to the caller's credential.
type StoreProvider interface {
	ForRequest(ctx context.Context, bearerToken string) (DataStore, error)
}
