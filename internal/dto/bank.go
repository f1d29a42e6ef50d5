package dto

import (
	"github.com/SscSPs/enterprise_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// EnterpriseBankRequest creates or replaces an enterprise bank account.
type EnterpriseBankRequest struct {
	BusinessName   string          `json:"business_name" binding:"required"`
	BankName       string          `json:"bank_name" binding:"required"`
	AccountNumber  string          `json:"account_number" binding:"required"`
	IFSCCode       string          `json:"ifsc_code"`
	OpeningBalance decimal.Decimal `json:"opening_balance"`
	AccountType    string          `json:"account_type"`
}

// ToDomain builds the account owned by userID.
func (r EnterpriseBankRequest) ToDomain(userID string) domain.EnterpriseBankAccount {
	accountType := r.AccountType
	if accountType == "" {
		accountType = domain.DefaultEnterpriseAccountType
	}
	return domain.EnterpriseBankAccount{
		UserID:         userID,
		BusinessName:   r.BusinessName,
		BankName:       r.BankName,
		AccountNumber:  r.AccountNumber,
		IFSCCode:       r.IFSCCode,
		OpeningBalance: r.OpeningBalance,
		AccountType:    accountType,
	}
}

// BanksResponse lists both kinds of bank accounts available to the caller.
type BanksResponse struct {
	Personal   []domain.BankAccount           `json:"personal"`
	Enterprise []domain.EnterpriseBankAccount `json:"enterprise"`
}

// CategoriesResponse lists the caller's categories, defaults first.
type CategoriesResponse struct {
	Categories []string `json:"categories"`
}
