package domain

// Organization is the accounting scope of one business.
type Organization struct {
	ID   string `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

// Role is a member's role within an organization.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleMember
}

// Member is a user's membership in an organization, flattened with profile fields.
type Member struct {
	UserID   string `json:"id" db:"id"`
	FullName string `json:"full_name" db:"full_name"`
	Email    string `json:"email" db:"email"`
	Role     Role   `json:"role" db:"role"`
}

// OrganizationIDs returns the set of ids in orgs.
func OrganizationIDs(orgs []Organization) map[string]struct{} {
	ids := make(map[string]struct{}, len(orgs))
	for _, o := range orgs {
		ids[o.ID] = struct{}{}
	}
	return ids
}
