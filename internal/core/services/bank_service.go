package services

import (
	"context"

	"github.com/SscSPs/enterprise_ledger/internal/apperrors"
	"github.com/SscSPs/enterprise_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/enterprise_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/enterprise_ledger/internal/core/ports/services"
	"github.com/SscSPs/enterprise_ledger/internal/dto"
)

type bankService struct {
	BaseService
}

// NewBankService creates the bank account and category service.
func NewBankService(options ...ServiceOption) portssvc.BankSvc {
	return &bankService{BaseService: newBaseService(options)}
}

func (s *bankService) ListBanks(ctx context.Context, store portsrepo.DataStore, userID string) dto.BanksResponse {
	resp := dto.BanksResponse{
		Personal:   store.ListPersonalBanks(ctx, userID),
		Enterprise: store.ListEnterpriseBanks(ctx, userID),
	}
	if resp.Personal == nil {
		resp.Personal = []domain.BankAccount{}
	}
	if resp.Enterprise == nil {
		resp.Enterprise = []domain.EnterpriseBankAccount{}
	}
	return resp
}

func (s *bankService) PersonalBanks(ctx context.Context, store portsrepo.DataStore, userID string) []domain.BankAccount {
	return store.ListPersonalBanks(ctx, userID)
}

func (s *bankService) AddEnterpriseBank(ctx context.Context, store portsrepo.DataStore, userID string, req dto.EnterpriseBankRequest) error {
	if store.Backend() != domain.BackendLocal {
		return apperrors.NewValidationFailedError("enterprise bank accounts need the local backend")
	}
	if !store.AddEnterpriseBank(ctx, req.ToDomain(userID)) {
		return apperrors.NewAppError(500, "failed to add bank account", nil)
	}
	return nil
}

func (s *bankService) UpdateEnterpriseBank(ctx context.Context, store portsrepo.DataStore, userID, bankID string, req dto.EnterpriseBankRequest) error {
	if !store.UpdateEnterpriseBank(ctx, userID, bankID, req.ToDomain(userID)) {
		return apperrors.NewNotFoundError("bank account not found")
	}
	return nil
}

func (s *bankService) DeleteEnterpriseBank(ctx context.Context, store portsrepo.DataStore, userID, bankID string) error {
	if !store.DeleteEnterpriseBank(ctx, userID, bankID) {
		return apperrors.NewNotFoundError("bank account not found")
	}
	return nil
}

func (s *bankService) ListCategories(ctx context.Context, store portsrepo.DataStore, userID string) []string {
	categories := store.ListCategories(ctx, userID)
	if len(categories) == 0 {
		return domain.MergeCategories(nil)
	}
	return categories
}
