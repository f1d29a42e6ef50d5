package pgsql

import (
	"context"
	"database/sql"
	"errors"

	"github.com/SscSPs/enterprise_ledger/internal/core/domain"
)

const credentialColumns = `id, user_id, business_name, email, password_hash, verification_token, is_verified, created_at`

func (s *Store) GetBusinessCredentials(ctx context.Context, userID, businessName string) *domain.BusinessCredential {
	var cred domain.BusinessCredential
	err := s.db.GetContext(ctx, &cred,
		`SELECT `+credentialColumns+` FROM enterprise_credentials WHERE user_id = $1 AND business_name = $2`,
		userID, businessName)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			readFailed(ctx, "GetBusinessCredentials", err, "user_id", userID)
		}
		return nil
	}
	return &cred
}

func (s *Store) CreateBusinessCredentials(ctx context.Context, cred domain.BusinessCredential) bool {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO enterprise_credentials (user_id, business_name, email, password_hash, verification_token)
		VALUES ($1, $2, $3, $4, $5)`,
		cred.UserID, cred.BusinessName, cred.Email, cred.PasswordHash, cred.VerificationToken)
	if err != nil {
		writeFailed(ctx, "CreateBusinessCredentials", err, "user_id", cred.UserID)
		return false
	}
	return true
}

func (s *Store) VerifyBusinessEmail(ctx context.Context, token string) *domain.BusinessCredential {
	var cred domain.BusinessCredential
	err := s.db.GetContext(ctx, &cred, `
		UPDATE enterprise_credentials
		SET is_verified = TRUE, verification_token = NULL
		WHERE verification_token = $1
		RETURNING `+credentialColumns, token)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			readFailed(ctx, "VerifyBusinessEmail", err)
		}
		return nil
	}
	return &cred
}
