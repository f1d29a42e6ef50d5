package services

import (
	"context"

	"github.com/SscSPs/enterprise_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/enterprise_ledger/internal/core/ports/repositories"
)

// OrganizationSvc lists and switches the caller's organizations.
type OrganizationSvc interface {
	// ListOrganizations returns ErrNotFound when the user belongs to none.
	ListOrganizations(ctx context.Context, store portsrepo.DataStore, userID string) ([]domain.Organization, error)

	// SwitchOrganization returns ErrForbidden unless userID is a member of orgID.
	SwitchOrganization(ctx context.Context, store portsrepo.DataStore, userID, orgID string) error
}
