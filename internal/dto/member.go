package dto

import "github.com/SscSPs/enterprise_ledger/internal/core/domain"

// AddMemberRequest adds an existing user to the organization by email.
type AddMemberRequest struct {
	Email string      `json:"email" form:"email" binding:"required,email"`
	Role  domain.Role `json:"role" form:"role" binding:"omitempty,oneof=admin member"`
}

// FastAddMemberRequest adds a member, creating a bare profile when the email is unknown.
type FastAddMemberRequest struct {
	FullName string `json:"full_name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
}

// MemberResponse is one member of the organization.
type MemberResponse struct {
	UserID   string      `json:"id"`
	FullName string      `json:"full_name"`
	Email    string      `json:"email,omitempty"`
	Role     domain.Role `json:"role,omitempty"`
}

// ToMemberResponse converts domain.Member to DTO.
func ToMemberResponse(m domain.Member) MemberResponse {
	return MemberResponse{UserID: m.UserID, FullName: m.FullName, Email: m.Email, Role: m.Role}
}

// ListMembersResponse wraps the member list.
type ListMembersResponse struct {
	Members []MemberResponse `json:"members"`
}

// ToListMembersResponse converts a slice of domain.Member to DTO.
func ToListMembersResponse(ms []domain.Member) ListMembersResponse {
	list := make([]MemberResponse, len(ms))
	for i, m := range ms {
		list[i] = ToMemberResponse(m)
	}
	return ListMembersResponse{Members: list}
}
