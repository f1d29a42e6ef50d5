package repositories

import (
	"context"

	"github.com/SscSPs/enterprise_ledger/internal/core/domain"
)

// MemberReader defines read operations for memberships and profiles.
type MemberReader interface {
	ListMembers(ctx context.Context, orgID string) []domain.Member
	// FindUserByEmail returns nil when no profile has that email.
	FindUserByEmail(ctx context.Context, email string) *domain.User
}

// MemberWriter defines write operations for memberships and profiles.
type MemberWriter interface {
	// AddMember inserts the membership if absent. An existing membership counts as success.
	AddMember(ctx context.Context, orgID, userID string, role domain.Role) bool
	CreateProfile(ctx context.Context, user domain.User) bool
}

// MemberStore combines the member interfaces.
type MemberStore interface {
	MemberReader
	MemberWriter
}
