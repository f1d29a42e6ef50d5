package services

import (
	"context"
	"log/slog"
	"strings"

	"github.com/SscSPs/enterprise_ledger/internal/apperrors"
	"github.com/SscSPs/enterprise_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/enterprise_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/enterprise_ledger/internal/core/ports/services"
	"github.com/SscSPs/enterprise_ledger/internal/dto"
)

type ledgerService struct {
	BaseService
}

// NewLedgerService creates the revenue, expense and investment service.
func NewLedgerService(options ...ServiceOption) portssvc.LedgerSvcFacade {
	return &ledgerService{BaseService: newBaseService(options)}
}

func (s *ledgerService) ListRevenue(ctx context.Context, store portsrepo.DataStore, orgID string) []domain.LedgerEntry {
	return store.ListRevenue(ctx, orgID, domain.Period{})
}

func (s *ledgerService) ListExpenses(ctx context.Context, store portsrepo.DataStore, orgID string) []domain.LedgerEntry {
	return store.ListExpenses(ctx, orgID, domain.Period{})
}

func (s *ledgerService) ListInvestments(ctx context.Context, store portsrepo.DataStore, orgID string) []domain.Investment {
	return store.ListInvestments(ctx, orgID)
}

// newLedgerEntry applies the form defaults: a non-cash method is a bank id,
// category falls back to Other and taken-by to the caller.
func (s *ledgerService) newLedgerEntry(orgID, userID string, req dto.AddTransactionRequest) (domain.LedgerEntry, error) {
	if !req.Amount.IsPositive() {
		return domain.LedgerEntry{}, apperrors.NewValidationFailedError("amount must be positive")
	}
	method := strings.TrimSpace(req.Method)
	if method == "" {
		return domain.LedgerEntry{}, apperrors.NewValidationFailedError("method is required")
	}
	date, err := s.dateOrToday(req.Date)
	if err != nil {
		return domain.LedgerEntry{}, err
	}

	entry := domain.LedgerEntry{
		OrganizationID: orgID,
		Date:           date,
		Amount:         req.Amount,
		TakenBy:        req.TakenBy,
		Method:         domain.MethodCash,
		Category:       strings.TrimSpace(req.Category),
		Narrative:      req.Narrative,
		Status:         req.Status,
	}
	if method != domain.MethodCash {
		bankID := method
		entry.Method = domain.MethodBank
		entry.BankAccountID = &bankID
	}
	if entry.Category == "" {
		entry.Category = domain.DefaultCategory
	}
	if entry.TakenBy == "" {
		entry.TakenBy = userID
	}
	return entry, nil
}

func (s *ledgerService) AddTransaction(ctx context.Context, store portsrepo.DataStore, orgID, userID string, req dto.AddTransactionRequest) (domain.WriteResult, error) {
	entry, err := s.newLedgerEntry(orgID, userID, req)
	if err != nil {
		return domain.PrimaryFailed(), err
	}

	var result domain.WriteResult
	switch req.Type {
	case domain.LedgerRevenue:
		result = store.AddRevenue(ctx, orgID, entry)
	case domain.LedgerExpense:
		result = store.AddExpense(ctx, orgID, entry)
	default:
		return domain.PrimaryFailed(), apperrors.NewValidationFailedError("type must be Income or Expense")
	}

	if !result.OK {
		return result, apperrors.NewAppError(500, "failed to record "+strings.ToLower(string(req.Type)), nil)
	}
	if result.Mirror == domain.MirrorFailed {
		s.LogInfo(ctx, "Transaction recorded without personal-ledger mirror",
			slog.String("type", string(req.Type)), slog.String("mirror_error", result.MirrorErr.Error()))
	}
	return result, nil
}

func (s *ledgerService) AddInvestment(ctx context.Context, store portsrepo.DataStore, orgID, userID string, req dto.AddInvestmentRequest) error {
	if !req.Amount.IsPositive() {
		return apperrors.NewValidationFailedError("amount must be positive")
	}
	date, err := s.dateOrToday(req.Date)
	if err != nil {
		return err
	}
	inv := domain.Investment{
		OrganizationID: orgID,
		Date:           date,
		Type:           req.Type,
		Amount:         req.Amount,
		TakenBy:        req.TakenBy,
		Narrative:      req.Narrative,
	}
	if inv.TakenBy == "" {
		inv.TakenBy = userID
	}
	if !store.AddInvestment(ctx, orgID, inv) {
		return apperrors.NewAppError(500, "failed to record investment", nil)
	}
	return nil
}
