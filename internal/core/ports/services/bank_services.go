package services

import (
	"context"

	"github.com/SscSPs/enterprise_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/enterprise_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/enterprise_ledger/internal/dto"
)

// BankSvc manages bank accounts and categories of the caller.
type BankSvc interface {
	ListBanks(ctx context.Context, store portsrepo.DataStore, userID string) dto.BanksResponse
	AddEnterpriseBank(ctx context.Context, store portsrepo.DataStore, userID string, req dto.EnterpriseBankRequest) error
	// UpdateEnterpriseBank and DeleteEnterpriseBank return ErrNotFound when the
	// account does not exist or belongs to someone else.
	UpdateEnterpriseBank(ctx context.Context, store portsrepo.DataStore, userID, bankID string, req dto.EnterpriseBankRequest) error
	DeleteEnterpriseBank(ctx context.Context, store portsrepo.DataStore, userID, bankID string) error
	ListCategories(ctx context.Context, store portsrepo.DataStore, userID string) []string
	// PersonalBanks is used to validate bank references on transactions.
	PersonalBanks(ctx context.Context, store portsrepo.DataStore, userID string) []domain.BankAccount
}
