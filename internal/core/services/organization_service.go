package services

import (
	"context"
	"log/slog"

	"github.com/SscSPs/enterprise_ledger/internal/apperrors"
	"github.com/SscSPs/enterprise_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/enterprise_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/enterprise_ledger/internal/core/ports/services"
)

type organizationService struct {
	BaseService
}

// NewOrganizationService creates the organization selection service.
func NewOrganizationService(options ...ServiceOption) portssvc.OrganizationSvc {
	return &organizationService{BaseService: newBaseService(options)}
}

func (s *organizationService) ListOrganizations(ctx context.Context, store portsrepo.DataStore, userID string) ([]domain.Organization, error) {
	orgs := store.ListUserOrganizations(ctx, userID)
	if len(orgs) == 0 {
		return nil, apperrors.NewNotFoundError("you are not a member of any organization")
	}
	return orgs, nil
}

func (s *organizationService) SwitchOrganization(ctx context.Context, store portsrepo.DataStore, userID, orgID string) error {
	valid := domain.OrganizationIDs(store.ListUserOrganizations(ctx, userID))
	if _, ok := valid[orgID]; !ok {
		s.LogInfo(ctx, "Rejected switch to organization without membership", slog.String("org_id", orgID))
		return apperrors.NewAppError(403, "you do not have access to this organization", apperrors.ErrForbidden)
	}
	return nil
}
