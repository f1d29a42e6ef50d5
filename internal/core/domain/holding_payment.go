package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/SscSPs/enterprise_ledger/internal/apperrors"
	"github.com/shopspring/decimal"
)

// HoldingType is the direction of a holding payment.
type HoldingType string

const (
	HoldingReceivable HoldingType = "receivable"
	HoldingPayable    HoldingType = "payable"
)

// HoldingPayment is a receivable or payable tracked until settled. It is created
// once, mutated only by settlements, and never deleted.
type HoldingPayment struct {
	ID             string            `json:"id" db:"id"`
	OrganizationID string            `json:"organization_id" db:"organization_id"`
	RecordedBy     string            `json:"recorded_by" db:"recorded_by" validate:"required"`
	Name           string            `json:"name" db:"name" validate:"required"`
	Type           HoldingType       `json:"type" db:"type" validate:"required,oneof=receivable payable"`
	Amount         decimal.Decimal   `json:"amount" db:"amount"`
	Outstanding    decimal.Decimal   `json:"outstanding_amount" db:"outstanding_amount"`
	ExpectedDate   *time.Time        `json:"expected_date,omitempty" db:"expected_date"`
	Contact        string            `json:"contact" db:"contact"`
	Narrative      string            `json:"narrative" db:"narrative"`
	IsSettled      bool              `json:"is_settled" db:"is_settled"`
	Settlements    SettlementHistory `json:"settlements" db:"settlements"`
	CreatedAt      time.Time         `json:"created_at" db:"created_at"`
}

// Settlement is one entry of a holding payment's settlement history.
type Settlement struct {
	Amount    decimal.Decimal `json:"amount"`
	Date      string          `json:"date"`
	Full      bool            `json:"full"`
	SettledBy string          `json:"settled_by"`
}

// SettlementRequest asks to settle part (or, with Full, the remainder) of a holding payment.
type SettlementRequest struct {
	Amount    decimal.Decimal
	Full      bool
	Date      time.Time
	SettledBy string
}

// SettlementHistory is persisted as a JSON array.
type SettlementHistory []Settlement

// Scan implements sql.Scanner.
func (h *SettlementHistory) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*h = SettlementHistory{}
		return nil
	case []byte:
		return json.Unmarshal(v, h)
	case string:
		return json.Unmarshal([]byte(v), h)
	default:
		return fmt.Errorf("unsupported settlement history type %T", src)
	}
}

// Value implements driver.Valuer.
func (h SettlementHistory) Value() (driver.Value, error) {
	if h == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(h)
}

// NewHoldingPayment initialises outstanding state for a freshly recorded payment.
func NewHoldingPayment(hp HoldingPayment) HoldingPayment {
	hp.Outstanding = hp.Amount
	hp.IsSettled = false
	hp.Settlements = SettlementHistory{}
	return hp
}

// SettlementAmount resolves the amount a request settles against the current
// outstanding balance, rejecting anything that would over-settle.
func (hp HoldingPayment) SettlementAmount(req SettlementRequest) (decimal.Decimal, error) {
	if hp.IsSettled {
		return decimal.Zero, fmt.Errorf("%w: holding payment %s is already settled", apperrors.ErrValidation, hp.ID)
	}
	amount := req.Amount
	if req.Full {
		amount = hp.Outstanding
	}
	if !amount.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: settlement amount must be positive", apperrors.ErrValidation)
	}
	if amount.GreaterThan(hp.Outstanding) {
		return decimal.Zero, fmt.Errorf("%w: settlement amount %s exceeds outstanding %s",
			apperrors.ErrValidation, amount.StringFixed(2), hp.Outstanding.StringFixed(2))
	}
	return amount, nil
}

// ApplySettlement returns hp after settling req. The receiver is not modified.
func (hp HoldingPayment) ApplySettlement(req SettlementRequest) (HoldingPayment, error) {
	amount, err := hp.SettlementAmount(req)
	if err != nil {
		return hp, err
	}
	next := hp
	next.Outstanding = hp.Outstanding.Sub(amount)
	next.IsSettled = next.Outstanding.IsZero()
	date := req.Date
	if date.IsZero() {
		date = time.Now()
	}
	next.Settlements = append(append(SettlementHistory{}, hp.Settlements...), Settlement{
		Amount:    amount,
		Date:      date.Format(DateLayout),
		Full:      next.IsSettled,
		SettledBy: req.SettledBy,
	})
	return next, nil
}
