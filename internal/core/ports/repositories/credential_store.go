package repositories

import (
	"context"

	"github.com/SscSPs/enterprise_ledger/internal/core/domain"
)

// CredentialStore persists business-scoped logins.
type CredentialStore interface {
	GetBusinessCredentials(ctx context.Context, userID, businessName string) *domain.BusinessCredential
	CreateBusinessCredentials(ctx context.Context, cred domain.BusinessCredential) bool
	// VerifyBusinessEmail marks the credential holding token as verified and
	// returns it, or nil if the token is unknown.
	VerifyBusinessEmail(ctx context.Context, token string) *domain.BusinessCredential
}
