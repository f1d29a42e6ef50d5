package pgsql

import (
	"context"
	"database/sql"
	"errors"

	"github.com/SscSPs/enterprise_ledger/internal/core/domain"
	"github.com/google/uuid"
)

func (s *Store) ListMembers(ctx context.Context, orgID string) []domain.Member {
	members := []domain.Member{}
	err := s.db.SelectContext(ctx, &members, `
		SELECT p.id, COALESCE(p.full_name, '') AS full_name, COALESCE(p.email, '') AS email, m.role
		FROM ent_members m
		JOIN profiles p ON m.user_id = p.id
		WHERE m.organization_id = $1
		ORDER BY full_name`, orgID)
	if err != nil {
		readFailed(ctx, "ListMembers", err, "organization_id", orgID)
		return []domain.Member{}
	}
	return members
}

func (s *Store) AddMember(ctx context.Context, orgID, userID string, role domain.Role) bool {
	if err := insertMembership(ctx, s.db, orgID, userID, role); err != nil {
		writeFailed(ctx, "AddMember", err, "organization_id", orgID, "user_id", userID)
		return false
	}
	return true
}

func (s *Store) FindUserByEmail(ctx context.Context, email string) *domain.User {
	var u domain.User
	err := s.db.GetContext(ctx, &u, `
		SELECT id, COALESCE(email, '') AS email, COALESCE(full_name, '') AS full_name
		FROM profiles
		WHERE lower(email) = lower($1)
		LIMIT 1`, email)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			readFailed(ctx, "FindUserByEmail", err)
		}
		return nil
	}
	return &u
}

func (s *Store) CreateProfile(ctx context.Context, user domain.User) bool {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO profiles (id, full_name, email) VALUES ($1, $2, $3)`,
		user.ID, user.FullName, user.Email)
	if err != nil {
		writeFailed(ctx, "CreateProfile", err, "email", user.Email)
		return false
	}
	return true
}
