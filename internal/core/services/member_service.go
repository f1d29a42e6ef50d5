package services

import (
	"context"
	"log/slog"
	"strings"

	"github.com/SscSPs/enterprise_ledger/internal/apperrors"
	"github.com/SscSPs/enterprise_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/enterprise_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/enterprise_ledger/internal/core/ports/services"
	"github.com/SscSPs/enterprise_ledger/internal/dto"
	"github.com/google/uuid"
)

type memberService struct {
	BaseService
}

// NewMemberService creates the team management service.
func NewMemberService(options ...ServiceOption) portssvc.MemberSvc {
	return &memberService{BaseService: newBaseService(options)}
}

func (s *memberService) ListMembers(ctx context.Context, store portsrepo.DataStore, orgID string) []domain.Member {
	return store.ListMembers(ctx, orgID)
}

func isMember(members []domain.Member, userID, email string) bool {
	for _, m := range members {
		if m.UserID == userID || (email != "" && strings.EqualFold(m.Email, email)) {
			return true
		}
	}
	return false
}

func (s *memberService) AddMemberByEmail(ctx context.Context, store portsrepo.DataStore, orgID string, req dto.AddMemberRequest) (portssvc.MemberAddOutcome, error) {
	email := strings.TrimSpace(req.Email)
	user := store.FindUserByEmail(ctx, email)
	if user == nil {
		return "", apperrors.NewNotFoundError("user with email " + email + " not found; they must register first")
	}
	if isMember(store.ListMembers(ctx, orgID), user.ID, email) {
		return portssvc.MemberAlreadyExists, nil
	}

	role := req.Role
	if role == "" {
		role = domain.RoleMember
	}
	if !store.AddMember(ctx, orgID, user.ID, role) {
		return "", apperrors.NewAppError(500, "failed to add team member", nil)
	}
	s.LogInfo(ctx, "Member added", slog.String("member_id", user.ID), slog.String("role", string(role)))
	return portssvc.MemberAdded, nil
}

func (s *memberService) FastAddMember(ctx context.Context, store portsrepo.DataStore, orgID string, req dto.FastAddMemberRequest) (*domain.Member, error) {
	email := strings.TrimSpace(req.Email)
	member := domain.Member{FullName: req.FullName, Email: email, Role: domain.RoleMember}

	if user := store.FindUserByEmail(ctx, email); user != nil {
		member.UserID = user.ID
		if user.FullName != "" {
			member.FullName = user.FullName
		}
	} else {
		profile := domain.User{ID: uuid.NewString(), Email: email, FullName: req.FullName}
		if !store.CreateProfile(ctx, profile) {
			return nil, apperrors.NewAppError(500, "could not create profile", nil)
		}
		member.UserID = profile.ID
		s.LogInfo(ctx, "Created profile for fast-added member", slog.String("member_id", profile.ID))
	}

	if !store.AddMember(ctx, orgID, member.UserID, member.Role) {
		return nil, apperrors.NewAppError(500, "could not add to organization", nil)
	}
	return &member, nil
}
