package pgsql

import (
	"context"

	"github.com/SscSPs/enterprise_ledger/internal/core/domain"
	"github.com/SscSPs/enterprise_ledger/internal/platform/reqctx"
)

// ListPersonalBanks prefers the user's cloud accounts and falls back to the
// local table when the bridge fails or the cloud has none.
func (s *Store) ListPersonalBanks(ctx context.Context, userID string) []domain.BankAccount {
	if s.cloud != nil {
		cloudUserID, err := s.bridge.Resolve(ctx, userID)
		if err == nil {
			banks, err := s.cloud.PersonalBanks(ctx, cloudUserID)
			if err == nil && len(banks) > 0 {
				return banks
			}
			if err != nil {
				reqctx.Logger(ctx).Debug("cloud bank lookup failed, using local accounts", "error", err)
			}
		} else {
			reqctx.Logger(ctx).Debug("identity bridge failed, using local accounts", "error", err)
		}
	}

	banks := []domain.BankAccount{}
	err := s.db.SelectContext(ctx, &banks, `
		SELECT id, user_id, bank_name, COALESCE(account_number, '') AS account_number, balance
		FROM bank_accounts
		WHERE user_id = $1
		ORDER BY bank_name`, userID)
	if err != nil {
		readFailed(ctx, "ListPersonalBanks", err, "user_id", userID)
		return []domain.BankAccount{}
	}
	return banks
}

func (s *Store) ListEnterpriseBanks(ctx context.Context, userID string) []domain.EnterpriseBankAccount {
	banks := []domain.EnterpriseBankAccount{}
	err := s.db.SelectContext(ctx, &banks, `
		SELECT id, user_id, business_name, bank_name,
			COALESCE(account_number, '') AS account_number, COALESCE(ifsc_code, '') AS ifsc_code,
			opening_balance, account_type, created_at
		FROM enterprise_bank_accounts
		WHERE user_id = $1
		ORDER BY created_at DESC`, userID)
	if err != nil {
		readFailed(ctx, "ListEnterpriseBanks", err, "user_id", userID)
		return []domain.EnterpriseBankAccount{}
	}
	return banks
}

func (s *Store) AddEnterpriseBank(ctx context.Context, bank domain.EnterpriseBankAccount) bool {
	if bank.AccountType == "" {
		bank.AccountType = domain.DefaultEnterpriseAccountType
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO enterprise_bank_accounts
			(user_id, business_name, bank_name, account_number, ifsc_code, opening_balance, account_type)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		bank.UserID, bank.BusinessName, bank.BankName, bank.AccountNumber,
		bank.IFSCCode, bank.OpeningBalance, bank.AccountType)
	if err != nil {
		writeFailed(ctx, "AddEnterpriseBank", err, "user_id", bank.UserID)
		return false
	}
	return true
}

func (s *Store) UpdateEnterpriseBank(ctx context.Context, userID, bankID string, bank domain.EnterpriseBankAccount) bool {
	if bank.AccountType == "" {
		bank.AccountType = domain.DefaultEnterpriseAccountType
	}
	res, err := s.db.ExecContext(ctx, `
		UPDATE enterprise_bank_accounts
		SET business_name = $1, bank_name = $2, account_number = $3, ifsc_code = $4,
			opening_balance = $5, account_type = $6
		WHERE id = $7 AND user_id = $8`,
		bank.BusinessName, bank.BankName, bank.AccountNumber, bank.IFSCCode,
		bank.OpeningBalance, bank.AccountType, bankID, userID)
	if err != nil {
		writeFailed(ctx, "UpdateEnterpriseBank", err, "user_id", userID, "bank_id", bankID)
		return false
	}
	n, err := res.RowsAffected()
	return err == nil && n > 0
}

func (s *Store) DeleteEnterpriseBank(ctx context.Context, userID, bankID string) bool {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM enterprise_bank_accounts WHERE id = $1 AND user_id = $2`, bankID, userID)
	if err != nil {
		writeFailed(ctx, "DeleteEnterpriseBank", err, "user_id", userID, "bank_id", bankID)
		return false
	}
	n, err := res.RowsAffected()
	return err == nil && n > 0
}

// ListCategories merges custom labels into the defaults, preferring the
// user's cloud labels over the local table.
func (s *Store) ListCategories(ctx context.Context, userID string) []string {
	if s.cloud != nil {
		if cloudUserID, err := s.bridge.Resolve(ctx, userID); err == nil {
			custom, err := s.cloud.CustomCategories(ctx, cloudUserID)
			if err == nil {
				return domain.MergeCategories(custom)
			}
			reqctx.Logger(ctx).Debug("cloud categories unavailable, using local", "error", err)
		}
	}

	var custom []string
	err := s.db.SelectContext(ctx, &custom,
		`SELECT name FROM user_categories WHERE user_id = $1 ORDER BY name`, userID)
	if err != nil {
		readFailed(ctx, "ListCategories", err, "user_id", userID)
		return domain.MergeCategories(nil)
	}
	return domain.MergeCategories(custom)
}
