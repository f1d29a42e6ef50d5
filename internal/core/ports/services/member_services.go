package services

import (
	"context"

	"github.com/SscSPs/enterprise_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/enterprise_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/enterprise_ledger/internal/dto"
)

// MemberAddOutcome distinguishes a new membership from an existing one.
type MemberAddOutcome string

const (
	MemberAdded         MemberAddOutcome = "added"
	MemberAlreadyExists MemberAddOutcome = "already_member"
)

// MemberSvc manages the team of an organization.
type MemberSvc interface {
	ListMembers(ctx context.Context, store portsrepo.DataStore, orgID string) []domain.Member

	// AddMemberByEmail adds an already registered user. Unknown emails return ErrNotFound.
	AddMemberByEmail(ctx context.Context, store portsrepo.DataStore, orgID string, req dto.AddMemberRequest) (MemberAddOutcome, error)

	// FastAddMember adds a member, creating a bare profile for unknown emails.
	FastAddMember(ctx context.Context, store portsrepo.DataStore, orgID string, req dto.FastAddMemberRequest) (*domain.Member, error)
}
