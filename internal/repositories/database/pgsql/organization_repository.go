package pgsql

import (
	"context"
	"database/sql"
	"errors"

	"github.com/SscSPs/enterprise_ledger/internal/core/domain"
	"github.com/SscSPs/enterprise_ledger/internal/platform/reqctx"
	"github.com/jmoiron/sqlx"
)

const (
	autoLocalUserName  = "Auto Local User"
	autoLocalUserEmail = "local@dev.test"
)

func (s *Store) ListUserOrganizations(ctx context.Context, userID string) []domain.Organization {
	orgs := []domain.Organization{}
	err := s.db.SelectContext(ctx, &orgs, `
		SELECT o.id, o.name
		FROM ent_organizations o
		JOIN ent_members m ON o.id = m.organization_id
		WHERE m.user_id = $1
		ORDER BY o.name`, userID)
	if err != nil {
		readFailed(ctx, "ListUserOrganizations", err, "user_id", userID)
		return []domain.Organization{}
	}
	if len(orgs) == 0 && s.opts.AutoBootstrap {
		return s.bootstrapMembership(ctx, userID)
	}
	return orgs
}

// bootstrapMembership enrolls userID as admin of the first organization so a
// fresh local database is usable without manual seeding.
func (s *Store) bootstrapMembership(ctx context.Context, userID string) []domain.Organization {
	logger := reqctx.Logger(ctx)

	var org domain.Organization
	err := s.db.GetContext(ctx, &org, `SELECT id, name FROM ent_organizations ORDER BY created_at LIMIT 1`)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			readFailed(ctx, "bootstrapMembership", err)
		}
		return []domain.Organization{}
	}

	err = s.withTx(ctx, func(tx *sqlx.Tx) error {
		if err := ensureProfile(ctx, tx, userID, autoLocalUserName); err != nil {
			return err
		}
		return insertMembership(ctx, tx, org.ID, userID, domain.RoleAdmin)
	})
	if err != nil {
		writeFailed(ctx, "bootstrapMembership", err, "user_id", userID, "organization_id", org.ID)
		return []domain.Organization{}
	}
	logger.Warn("auto-enrolled user into first organization", "user_id", userID, "organization_id", org.ID)
	return []domain.Organization{org}
}

func (s *Store) OrganizationName(ctx context.Context, orgID string) string {
	var name string
	err := s.db.GetContext(ctx, &name, `SELECT name FROM ent_organizations WHERE id = $1`, orgID)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			readFailed(ctx, "OrganizationName", err, "organization_id", orgID)
		}
		return ""
	}
	return name
}

// ProvisionBusinessOrg is idempotent on (userID, businessName): the unique key
// absorbs concurrent creators and every caller ends up with the same id.
func (s *Store) ProvisionBusinessOrg(ctx context.Context, userID, businessName string) string {
	var orgID string
	err := s.withTx(ctx, func(tx *sqlx.Tx) error {
		err := sqlx.GetContext(ctx, tx, &orgID, `
			INSERT INTO ent_organizations (name, business_name, created_by)
			VALUES ($1, $1, $2)
			ON CONFLICT (created_by, business_name) DO NOTHING
			RETURNING id`, businessName, userID)
		if errors.Is(err, sql.ErrNoRows) {
			err = sqlx.GetContext(ctx, tx, &orgID,
				`SELECT id FROM ent_organizations WHERE created_by = $1 AND business_name = $2`,
				userID, businessName)
		}
		if err != nil {
			return translateError(err, "failed to provision organization")
		}
		// the profile is the person's; the business name lives on the organization
		if err := ensureProfile(ctx, tx, userID, ""); err != nil {
			return err
		}
		return insertMembership(ctx, tx, orgID, userID, domain.RoleAdmin)
	})
	if err != nil {
		writeFailed(ctx, "ProvisionBusinessOrg", err, "user_id", userID, "business_name", businessName)
		return ""
	}
	return orgID
}

// ensureProfile inserts a profile for userID if none exists. The email comes
// from the caller when the caller is userID; an empty fullName is stored as NULL.
func ensureProfile(ctx context.Context, ext sqlx.ExtContext, userID, fullName string) error {
	email := autoLocalUserEmail
	if p, ok := reqctx.PrincipalFrom(ctx); ok && p.UserID == userID && p.Email != "" {
		email = p.Email
	}
	_, err := ext.ExecContext(ctx, `
		INSERT INTO profiles (id, full_name, email)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO NOTHING`, userID, sql.NullString{String: fullName, Valid: fullName != ""}, email)
	if err != nil {
		return translateError(err, "failed to ensure profile")
	}
	return nil
}

func insertMembership(ctx context.Context, ext sqlx.ExtContext, orgID, userID string, role domain.Role) error {
	_, err := ext.ExecContext(ctx, `
		INSERT INTO ent_members (organization_id, user_id, role)
		VALUES ($1, $2, $3)
		ON CONFLICT (organization_id, user_id) DO NOTHING`, orgID, userID, role)
	if err != nil {
		return translateError(err, "failed to add membership")
	}
	return nil
}
