package dto

import (
	"github.com/SscSPs/enterprise_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// --- Ledger DTOs ---

// AddTransactionRequest records revenue or an expense. Method is "Cash" or the
// id of one of the caller's personal bank accounts.
type AddTransactionRequest struct {
	Type      domain.LedgerKind `json:"type" form:"type" binding:"required,oneof=Income Expense"`
	Amount    decimal.Decimal   `json:"amount" form:"amount" binding:"required"`
	Date      string            `json:"date" form:"date" binding:"omitempty,datetime=2006-01-02"`
	Method    string            `json:"method" form:"method" binding:"required"`
	Narrative string            `json:"narrative" form:"narrative"`
	Category  string            `json:"category" form:"category"`
	TakenBy   string            `json:"taken_by" form:"taken_by"`
	Status    string            `json:"status" form:"status"`
}

// AddTransactionResponse reports the primary write and the personal-ledger mirror separately.
type AddTransactionResponse struct {
	Type   domain.LedgerKind   `json:"type"`
	Mirror domain.MirrorStatus `json:"mirror"`
}

// ListLedgerResponse wraps revenue or expense rows.
type ListLedgerResponse struct {
	Entries []domain.LedgerEntry `json:"entries"`
	Total   decimal.Decimal      `json:"total"`
}

// ToListLedgerResponse converts ledger rows to DTO.
func ToListLedgerResponse(entries []domain.LedgerEntry) ListLedgerResponse {
	if entries == nil {
		entries = []domain.LedgerEntry{}
	}
	return ListLedgerResponse{Entries: entries, Total: domain.SumEntries(entries)}
}

// --- Investment DTOs ---

// AddInvestmentRequest records a capital movement.
type AddInvestmentRequest struct {
	Type      domain.InvestmentType `json:"type" binding:"required,oneof=investment withdraw"`
	Amount    decimal.Decimal       `json:"amount" binding:"required"`
	Date      string                `json:"date" binding:"omitempty,datetime=2006-01-02"`
	TakenBy   string                `json:"taken_by"`
	Narrative string                `json:"narrative"`
}

// ListInvestmentsResponse wraps investment rows.
type ListInvestmentsResponse struct {
	Investments []domain.Investment `json:"investments"`
}
