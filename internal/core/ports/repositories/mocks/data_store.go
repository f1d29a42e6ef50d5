// Package mocks provides testify mocks of the store contracts.
package mocks

import (
	"context"

	"github.com/SscSPs/enterprise_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/enterprise_ledger/internal/core/ports/repositories"
	"github.com/stretchr/testify/mock"
)

// DataStore is a mock type for the DataStore interface.
type DataStore struct {
	mock.Mock
}

var _ portsrepo.DataStore = (*DataStore)(nil)

func (m *DataStore) Backend() domain.BackendKind {
	args := m.Called()
	return args.Get(0).(domain.BackendKind)
}

// --- organizations ---

func (m *DataStore) ListUserOrganizations(ctx context.Context, userID string) []domain.Organization {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]domain.Organization)
}

func (m *DataStore) OrganizationName(ctx context.Context, orgID string) string {
	return m.Called(ctx, orgID).String(0)
}

func (m *DataStore) ProvisionBusinessOrg(ctx context.Context, userID, businessName string) string {
	return m.Called(ctx, userID, businessName).String(0)
}

// --- members ---

func (m *DataStore) ListMembers(ctx context.Context, orgID string) []domain.Member {
	args := m.Called(ctx, orgID)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]domain.Member)
}

func (m *DataStore) FindUserByEmail(ctx context.Context, email string) *domain.User {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*domain.User)
}

func (m *DataStore) AddMember(ctx context.Context, orgID, userID string, role domain.Role) bool {
	return m.Called(ctx, orgID, userID, role).Bool(0)
}

func (m *DataStore) CreateProfile(ctx context.Context, user domain.User) bool {
	return m.Called(ctx, user).Bool(0)
}

// --- ledgers ---

func (m *DataStore) ListRevenue(ctx context.Context, orgID string, period domain.Period) []domain.LedgerEntry {
	args := m.Called(ctx, orgID, period)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]domain.LedgerEntry)
}

func (m *DataStore) ListExpenses(ctx context.Context, orgID string, period domain.Period) []domain.LedgerEntry {
	args := m.Called(ctx, orgID, period)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]domain.LedgerEntry)
}

func (m *DataStore) ListInvestments(ctx context.Context, orgID string) []domain.Investment {
	args := m.Called(ctx, orgID)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]domain.Investment)
}

func (m *DataStore) AddRevenue(ctx context.Context, orgID string, entry domain.LedgerEntry) domain.WriteResult {
	return m.Called(ctx, orgID, entry).Get(0).(domain.WriteResult)
}

func (m *DataStore) AddExpense(ctx context.Context, orgID string, entry domain.LedgerEntry) domain.WriteResult {
	return m.Called(ctx, orgID, entry).Get(0).(domain.WriteResult)
}

func (m *DataStore) AddInvestment(ctx context.Context, orgID string, inv domain.Investment) bool {
	return m.Called(ctx, orgID, inv).Bool(0)
}

// --- holding payments ---

func (m *DataStore) ListHoldingPayments(ctx context.Context, orgID string) []domain.HoldingPayment {
	args := m.Called(ctx, orgID)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]domain.HoldingPayment)
}

func (m *DataStore) AddHoldingPayment(ctx context.Context, orgID string, hp domain.HoldingPayment) bool {
	return m.Called(ctx, orgID, hp).Bool(0)
}

func (m *DataStore) SettleHoldingPayment(ctx context.Context, orgID, paymentID string, req domain.SettlementRequest) (*domain.HoldingPayment, error) {
	args := m.Called(ctx, orgID, paymentID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.HoldingPayment), args.Error(1)
}

// --- banks and categories ---

func (m *DataStore) ListPersonalBanks(ctx context.Context, userID string) []domain.BankAccount {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]domain.BankAccount)
}

func (m *DataStore) ListEnterpriseBanks(ctx context.Context, userID string) []domain.EnterpriseBankAccount {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]domain.EnterpriseBankAccount)
}

func (m *DataStore) AddEnterpriseBank(ctx context.Context, bank domain.EnterpriseBankAccount) bool {
	return m.Called(ctx, bank).Bool(0)
}

func (m *DataStore) UpdateEnterpriseBank(ctx context.Context, userID, bankID string, bank domain.EnterpriseBankAccount) bool {
	return m.Called(ctx, userID, bankID, bank).Bool(0)
}

func (m *DataStore) DeleteEnterpriseBank(ctx context.Context, userID, bankID string) bool {
	return m.Called(ctx, userID, bankID).Bool(0)
}

func (m *DataStore) ListCategories(ctx context.Context, userID string) []string {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]string)
}

// --- credentials ---

func (m *DataStore) GetBusinessCredentials(ctx context.Context, userID, businessName string) *domain.BusinessCredential {
	args := m.Called(ctx, userID, businessName)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*domain.BusinessCredential)
}

func (m *DataStore) CreateBusinessCredentials(ctx context.Context, cred domain.BusinessCredential) bool {
	return m.Called(ctx, cred).Bool(0)
}

func (m *DataStore) VerifyBusinessEmail(ctx context.Context, token string) *domain.BusinessCredential {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*domain.BusinessCredential)
}

// StoreProvider is a mock type for the StoreProvider interface.
type StoreProvider struct {
	mock.Mock
}

var _ portsrepo.StoreProvider = (*StoreProvider)(nil)

func (m *StoreProvider) ForRequest(ctx context.Context, bearerToken string) (portsrepo.DataStore, error) {
	args := m.Called(ctx, bearerToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(portsrepo.DataStore), args.Error(1)
}
