package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerKind distinguishes the two append-only ledgers of an organization.
type LedgerKind string

const (
	LedgerRevenue LedgerKind = "Income"
	LedgerExpense LedgerKind = "Expense"
)

// Payment methods recorded on a ledger entry.
const (
	MethodCash = "Cash"
	MethodBank = "Bank"
)

// StatusPending marks revenue that has been booked but not yet received.
const StatusPending = "pending"

// DefaultCategory is applied when a transaction is recorded without a category.
const DefaultCategory = "Other"

// LedgerEntry is one revenue or expense row. Entries are append-only: the store
// contract defines no update or delete.
type LedgerEntry struct {
	ID             string          `json:"id" db:"id"`
	OrganizationID string          `json:"organization_id" db:"organization_id"`
	Date           time.Time       `json:"date" db:"date"`
	Amount         decimal.Decimal `json:"amount" db:"amount" validate:"required"`
	TakenBy        string          `json:"taken_by" db:"taken_by" validate:"required"`
	TakenByName    string          `json:"taken_by_name" db:"taken_by_name"`
	Method         string          `json:"method" db:"method"`
	BankAccountID  *string         `json:"bank_account_id,omitempty" db:"bank_account_id"`
	BankName       *string         `json:"bank_name,omitempty" db:"-"`
	Category       string          `json:"category" db:"category"`
	Narrative      string          `json:"narrative" db:"narrative"`
	Status         string          `json:"status" db:"status"`
}

// HasBankReference reports whether the entry was paid through a bank account,
// which is the trigger for mirroring it into the personal ledger.
func (e LedgerEntry) HasBankReference() bool {
	return e.BankAccountID != nil && *e.BankAccountID != ""
}

// MirrorCategory is the synthetic personal-ledger category for a mirrored entry.
func (k LedgerKind) MirrorCategory() string {
	if k == LedgerRevenue {
		return "Enterprise Income"
	}
	return "Enterprise Expense"
}

// MirrorType is the personal-ledger transaction type for a mirrored entry.
func (k LedgerKind) MirrorType() string {
	if k == LedgerRevenue {
		return "income"
	}
	return "expense"
}

// MirrorDescription is the personal-ledger description for a mirrored entry.
func (k LedgerKind) MirrorDescription(narrative string) string {
	if k == LedgerRevenue {
		return "Enterprise Revenue: " + narrative
	}
	return "Enterprise Expense: " + narrative
}

// PersonalTransaction is a row of the user's personal cash-flow ledger, used as
// the target of mirrored enterprise writes.
type PersonalTransaction struct {
	UserID        string          `json:"user_id"`
	Date          string          `json:"date"`
	Category      string          `json:"category"`
	Amount        decimal.Decimal `json:"amount"`
	Description   string          `json:"description"`
	Type          string          `json:"type"`
	BankAccountID string          `json:"bank_account_id"`
}

// NewMirrorTransaction builds the personal-ledger mirror of entry for userID,
// which must already be in the target store's identity namespace.
func NewMirrorTransaction(kind LedgerKind, userID string, entry LedgerEntry) PersonalTransaction {
	bankID := ""
	if entry.BankAccountID != nil {
		bankID = *entry.BankAccountID
	}
	return PersonalTransaction{
		UserID:        userID,
		Date:          entry.Date.Format(DateLayout),
		Category:      kind.MirrorCategory(),
		Amount:        entry.Amount,
		Description:   kind.MirrorDescription(entry.Narrative),
		Type:          kind.MirrorType(),
		BankAccountID: bankID,
	}
}

// Investment is a capital movement into or out of an organization.
type Investment struct {
	ID             string          `json:"id" db:"id"`
	OrganizationID string          `json:"organization_id" db:"organization_id"`
	Date           time.Time       `json:"date" db:"date"`
	Type           InvestmentType  `json:"type" db:"type" validate:"required,oneof=investment withdraw"`
	Amount         decimal.Decimal `json:"amount" db:"amount"`
	TakenBy        string          `json:"taken_by" db:"taken_by" validate:"required"`
	Narrative      string          `json:"narrative" db:"narrative"`
}

// InvestmentType is either an investment or a withdrawal.
type InvestmentType string

const (
	InvestmentIn       InvestmentType = "investment"
	InvestmentWithdraw InvestmentType = "withdraw"
)
