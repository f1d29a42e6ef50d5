package services

import (
	"context"
	"log/slog"
	"net/url"
	"strings"

	"github.com/SscSPs/enterprise_ledger/internal/apperrors"
	"github.com/SscSPs/enterprise_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/enterprise_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/enterprise_ledger/internal/core/ports/services"
	"github.com/SscSPs/enterprise_ledger/internal/dto"
	"github.com/SscSPs/enterprise_ledger/internal/utils"
)

// VerifyEmailPath is the route that consumes verification tokens.
const VerifyEmailPath = "/enterprise/auth/verify"

type businessAuthService struct {
	BaseService
	baseURL string
}

// NewBusinessAuthService creates the business login service. Verification links
// are built on baseURL and logged instead of mailed.
func NewBusinessAuthService(baseURL string, options ...ServiceOption) portssvc.BusinessAuthSvc {
	return &businessAuthService{BaseService: newBaseService(options), baseURL: strings.TrimRight(baseURL, "/")}
}

func (s *businessAuthService) SignUp(ctx context.Context, store portsrepo.DataStore, userID string, req dto.BusinessSignUpRequest) (*portssvc.BusinessAuthResult, error) {
	business := strings.TrimSpace(req.BusinessName)
	if business == "" {
		return nil, apperrors.NewValidationFailedError("business name is required")
	}
	if store.GetBusinessCredentials(ctx, userID, business) != nil {
		return nil, apperrors.NewAppError(409, "business "+business+" is already registered", apperrors.ErrDuplicate)
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.NewValidationFailedError(err.Error())
	}
	token, err := utils.NewVerificationToken()
	if err != nil {
		s.LogError(ctx, err, "Failed to generate verification token")
		return nil, apperrors.NewAppError(500, "failed to register business", err)
	}

	cred := domain.BusinessCredential{
		UserID:            userID,
		BusinessName:      business,
		Email:             strings.TrimSpace(req.Email),
		PasswordHash:      hash,
		VerificationToken: &token,
	}
	if !store.CreateBusinessCredentials(ctx, cred) {
		return nil, apperrors.NewAppError(500, "failed to register business", nil)
	}
	s.sendVerificationLink(ctx, cred.Email, token)

	orgID := store.ProvisionBusinessOrg(ctx, userID, business)
	return &portssvc.BusinessAuthResult{BusinessName: business, OrganizationID: orgID}, nil
}

// sendVerificationLink stands in for email delivery.
func (s *businessAuthService) sendVerificationLink(ctx context.Context, email, token string) {
	link := s.baseURL + VerifyEmailPath + "?token=" + url.QueryEscape(token)
	s.LogInfo(ctx, "Business verification link", slog.String("email", email), slog.String("link", link))
}

func (s *businessAuthService) SignIn(ctx context.Context, store portsrepo.DataStore, userID string, req dto.BusinessSignInRequest) (*portssvc.BusinessAuthResult, error) {
	business := strings.TrimSpace(req.BusinessName)
	cred := store.GetBusinessCredentials(ctx, userID, business)
	if cred == nil || !utils.CheckPasswordHash(req.Password, cred.PasswordHash) {
		return nil, apperrors.NewAppError(401, "invalid business name or password", apperrors.ErrUnauthorized)
	}
	if !cred.IsVerified {
		return nil, apperrors.NewAppError(403, "verify the business email before signing in", apperrors.ErrForbidden)
	}

	orgID := store.ProvisionBusinessOrg(ctx, userID, business)
	s.LogInfo(ctx, "Business sign-in", slog.String("business", business), slog.String("org_id", orgID))
	return &portssvc.BusinessAuthResult{BusinessName: business, OrganizationID: orgID, Verified: true}, nil
}

func (s *businessAuthService) VerifyEmail(ctx context.Context, store portsrepo.DataStore, token string) (*domain.BusinessCredential, error) {
	if token == "" {
		return nil, apperrors.NewValidationFailedError("token is required")
	}
	cred := store.VerifyBusinessEmail(ctx, token)
	if cred == nil {
		return nil, apperrors.NewNotFoundError("verification link is invalid or already used")
	}
	return cred, nil
}
