package dto

import (
	"github.com/SscSPs/enterprise_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateHoldingPaymentRequest opens a receivable or payable.
type CreateHoldingPaymentRequest struct {
	Name         string             `json:"name" binding:"required"`
	Type         domain.HoldingType `json:"type" binding:"required,oneof=receivable payable"`
	Amount       decimal.Decimal    `json:"amount" binding:"required"`
	ExpectedDate string             `json:"expected_date" binding:"omitempty,datetime=2006-01-02"`
	Contact      string             `json:"contact"`
	Narrative    string             `json:"narrative"`
}

// SettleHoldingPaymentRequest settles part of the outstanding amount, or all
// of it when Full is set (Amount is then ignored).
type SettleHoldingPaymentRequest struct {
	Amount decimal.Decimal `json:"part_amount"`
	Full   bool            `json:"full"`
	Date   string          `json:"date" binding:"omitempty,datetime=2006-01-02"`
}

// ListHoldingPaymentsResponse wraps holding payments with their open totals.
type ListHoldingPaymentsResponse struct {
	Payments              []domain.HoldingPayment `json:"payments"`
	OutstandingReceivable decimal.Decimal         `json:"outstanding_receivable"`
	OutstandingPayable    decimal.Decimal         `json:"outstanding_payable"`
}

// ToListHoldingPaymentsResponse converts holding payments to DTO.
func ToListHoldingPaymentsResponse(payments []domain.HoldingPayment) ListHoldingPaymentsResponse {
	resp := ListHoldingPaymentsResponse{
		Payments:              payments,
		OutstandingReceivable: decimal.Zero,
		OutstandingPayable:    decimal.Zero,
	}
	if resp.Payments == nil {
		resp.Payments = []domain.HoldingPayment{}
	}
	for _, p := range payments {
		if p.IsSettled {
			continue
		}
		if p.Type == domain.HoldingReceivable {
			resp.OutstandingReceivable = resp.OutstandingReceivable.Add(p.Outstanding)
		} else {
			resp.OutstandingPayable = resp.OutstandingPayable.Add(p.Outstanding)
		}
	}
	return resp
}
