package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/SscSPs/enterprise_ledger/internal/apperrors"
	"github.com/SscSPs/enterprise_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/enterprise_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/enterprise_ledger/internal/core/ports/services"
	"github.com/SscSPs/enterprise_ledger/internal/dto"
	"github.com/go-playground/validator/v10"
)

type holdingPaymentService struct {
	BaseService
	validate *validator.Validate
}

// NewHoldingPaymentService creates the receivables and payables service.
func NewHoldingPaymentService(options ...ServiceOption) portssvc.HoldingPaymentSvc {
	return &holdingPaymentService{BaseService: newBaseService(options), validate: validator.New()}
}

func (s *holdingPaymentService) ListHoldingPayments(ctx context.Context, store portsrepo.DataStore, orgID string) []domain.HoldingPayment {
	return store.ListHoldingPayments(ctx, orgID)
}

func (s *holdingPaymentService) CreateHoldingPayment(ctx context.Context, store portsrepo.DataStore, orgID, userID string, req dto.CreateHoldingPaymentRequest) (*domain.HoldingPayment, error) {
	if !req.Amount.IsPositive() {
		return nil, apperrors.NewValidationFailedError("amount must be positive")
	}
	hp := domain.NewHoldingPayment(domain.HoldingPayment{
		OrganizationID: orgID,
		RecordedBy:     userID,
		Name:           req.Name,
		Type:           req.Type,
		Amount:         req.Amount,
		Contact:        req.Contact,
		Narrative:      req.Narrative,
	})
	if req.ExpectedDate != "" {
		d, err := time.Parse(domain.DateLayout, req.ExpectedDate)
		if err != nil {
			return nil, apperrors.NewValidationFailedError("invalid expected date")
		}
		hp.ExpectedDate = &d
	}
	if err := s.validate.Struct(hp); err != nil {
		return nil, apperrors.NewValidationFailedError(err.Error())
	}

	if !store.AddHoldingPayment(ctx, orgID, hp) {
		return nil, apperrors.NewAppError(500, "failed to record holding payment", nil)
	}
	s.LogInfo(ctx, "Holding payment recorded", slog.String("type", string(hp.Type)))
	return &hp, nil
}

func (s *holdingPaymentService) SettleHoldingPayment(ctx context.Context, store portsrepo.DataStore, orgID, paymentID, userID string, req dto.SettleHoldingPaymentRequest) (*domain.HoldingPayment, error) {
	date, err := s.dateOrToday(req.Date)
	if err != nil {
		return nil, err
	}
	settlement := domain.SettlementRequest{
		Amount:    req.Amount,
		Full:      req.Full,
		Date:      date,
		SettledBy: userID,
	}
	hp, err := store.SettleHoldingPayment(ctx, orgID, paymentID, settlement)
	if err != nil {
		return nil, err
	}
	s.LogInfo(ctx, "Holding payment settled",
		slog.String("payment_id", paymentID),
		slog.String("outstanding", hp.Outstanding.StringFixed(2)),
		slog.Bool("is_settled", hp.IsSettled))
	return hp, nil
}
