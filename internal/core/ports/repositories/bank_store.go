package repositories

import (
	"context"

	"github.com/SscSPs/enterprise_ledger/internal/core/domain"
)

// BankReader lists personal and enterprise bank accounts.
type BankReader interface {
	ListPersonalBanks(ctx context.Context, userID string) []domain.BankAccount
	ListEnterpriseBanks(ctx context.Context, userID string) []domain.EnterpriseBankAccount
}

// BankWriter manages enterprise bank accounts. Update and delete are keyed by
// (bankID, userID) so a user can only touch their own rows.
type BankWriter interface {
	AddEnterpriseBank(ctx context.Context, bank domain.EnterpriseBankAccount) bool
	UpdateEnterpriseBank(ctx context.Context, userID, bankID string, bank domain.EnterpriseBankAccount) bool
	DeleteEnterpriseBank(ctx context.Context, userID, bankID string) bool
}

// BankStore combines the bank interfaces.
type BankStore interface {
	BankReader
	BankWriter
}

// CategoryStore lists the categories available to a user: the defaults followed
// by the user's custom labels.
type CategoryStore interface {
	ListCategories(ctx context.Context, userID string) []string
}
