package services

import (
	"context"

	"github.com/SscSPs/enterprise_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/enterprise_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/enterprise_ledger/internal/dto"
)

// BusinessAuthResult is the outcome of a business sign-up or sign-in. The
// caller records BusinessName as the active business marker and pins
// OrganizationID when it is set.
type BusinessAuthResult struct {
	BusinessName   string
	OrganizationID string
	Verified       bool
}

// BusinessAuthSvc handles the business-scoped login layered over the user session.
type BusinessAuthSvc interface {
	// SignUp returns ErrDuplicate if the business already has credentials.
	SignUp(ctx context.Context, store portsrepo.DataStore, userID string, req dto.BusinessSignUpRequest) (*BusinessAuthResult, error)
	// SignIn returns ErrUnauthorized for unknown businesses or wrong passwords
	// and ErrForbidden while the email is unverified.
	SignIn(ctx context.Context, store portsrepo.DataStore, userID string, req dto.BusinessSignInRequest) (*BusinessAuthResult, error)
	// VerifyEmail returns ErrNotFound for an unknown or used token.
	VerifyEmail(ctx context.Context, store portsrepo.DataStore, token string) (*domain.BusinessCredential, error)
}
