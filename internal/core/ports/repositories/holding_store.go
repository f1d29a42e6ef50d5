package repositories

import (
	"context"

	"github.com/SscSPs/enterprise_ledger/internal/core/domain"
)

// HoldingPaymentStore persists receivables and payables.
type HoldingPaymentStore interface {
	ListHoldingPayments(ctx context.Context, orgID string) []domain.HoldingPayment
	AddHoldingPayment(ctx context.Context, orgID string, hp domain.HoldingPayment) bool

	// SettleHoldingPayment applies req atomically. It returns ErrNotFound for an
	// unknown payment, ErrValidation for over-settlement and ErrConflict when a
	// concurrent settlement won.
	SettleHoldingPayment(ctx context.Context, orgID, paymentID string, req domain.SettlementRequest) (*domain.HoldingPayment, error)
}
