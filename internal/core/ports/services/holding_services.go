package services

import (
	"context"

	"github.com/SscSPs/enterprise_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/enterprise_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/enterprise_ledger/internal/dto"
)

// HoldingPaymentSvc manages receivables and payables.
type HoldingPaymentSvc interface {
	ListHoldingPayments(ctx context.Context, store portsrepo.DataStore, orgID string) []domain.HoldingPayment
	CreateHoldingPayment(ctx context.Context, store portsrepo.DataStore, orgID, userID string, req dto.CreateHoldingPaymentRequest) (*domain.HoldingPayment, error)
	SettleHoldingPayment(ctx context.Context, store portsrepo.DataStore, orgID, paymentID, userID string, req dto.SettleHoldingPaymentRequest) (*domain.HoldingPayment, error)
}
