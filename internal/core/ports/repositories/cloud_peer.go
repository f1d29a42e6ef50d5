package repositories

import (
	"context"

	"github.com/SscSPs/enterprise_ledger/internal/core/domain"
)

// CloudPeer is the subset of the cloud store the local store needs for
// identity bridging, bank-name enrichment and personal-ledger mirroring. All
// ids it accepts are cloud ids.
type CloudPeer interface {
	LookupProfileByEmail(ctx context.Context, email string) (*domain.User, error)
	PersonalBanks(ctx context.Context, cloudUserID string) ([]domain.BankAccount, error)
	CustomCategories(ctx context.Context, cloudUserID string) ([]string, error)
	InsertPersonalTransaction(ctx context.Context, txn domain.PersonalTransaction) error
}
