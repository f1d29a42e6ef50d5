package dto

import "github.com/SscSPs/enterprise_ledger/internal/core/domain"

// ListOrganizationsResponse lists the caller's organizations and marks the pinned one.
type ListOrganizationsResponse struct {
	Organizations []domain.Organization `json:"organizations"`
	CurrentOrgID  string                `json:"current_org_id,omitempty"`
}

// FlashResponse relays queued session messages.
type FlashResponse struct {
	Category string `json:"category"`
	Message  string `json:"message"`
}
