package repositories

import (
	"context"

	"github.com/SscSPs/enterprise_ledger/internal/core/domain"
)

// OrganizationReader defines read operations for organizations.
type OrganizationReader interface {
	// ListUserOrganizations returns the organizations userID belongs to. It is
	// empty when there are none or the backend is unreachable.
	ListUserOrganizations(ctx context.Context, userID string) []domain.Organization

	// OrganizationName returns the display name of orgID, or "" if unknown.
	OrganizationName(ctx context.Context, orgID string) string
}

// OrganizationProvisioner creates business organizations on demand.
type OrganizationProvisioner interface {
	// ProvisionBusinessOrg returns the organization for (userID, businessName),
	// creating it and an admin membership if absent. Repeated calls return the
	// same id. Backends without provisioning support return "".
	ProvisionBusinessOrg(ctx context.Context, userID, businessName string) string
}

// OrganizationStore combines the organization interfaces.
type OrganizationStore interface {
	OrganizationReader
	OrganizationProvisioner
}
