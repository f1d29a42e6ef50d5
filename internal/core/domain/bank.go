package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BankAccount is a personal bank account. It lives only in the cloud store; the
// local store keeps a fallback table for offline development.
type BankAccount struct {
	ID            string          `json:"id" db:"id"`
	UserID        string          `json:"user_id" db:"user_id"`
	BankName      string          `json:"bank_name" db:"bank_name"`
	AccountNumber string          `json:"account_number" db:"account_number"`
	Balance       decimal.Decimal `json:"balance" db:"balance"`
}

// EnterpriseBankAccount is a business account (current, cash-credit, overdraft)
// tagged with a business name. It lives only in the local store.
type EnterpriseBankAccount struct {
	ID             string          `json:"id" db:"id"`
	UserID         string          `json:"user_id" db:"user_id"`
	BusinessName   string          `json:"business_name" db:"business_name" validate:"required"`
	BankName       string          `json:"bank_name" db:"bank_name" validate:"required"`
	AccountNumber  string          `json:"account_number" db:"account_number"`
	IFSCCode       string          `json:"ifsc_code" db:"ifsc_code"`
	OpeningBalance decimal.Decimal `json:"opening_balance" db:"opening_balance"`
	AccountType    string          `json:"account_type" db:"account_type"`
	CreatedAt      time.Time       `json:"created_at" db:"created_at"`
}

// DefaultEnterpriseAccountType is used when no account type is supplied.
const DefaultEnterpriseAccountType = "Current"
