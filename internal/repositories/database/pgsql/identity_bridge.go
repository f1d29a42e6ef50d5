package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	portsrepo "github.com/SscSPs/enterprise_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/enterprise_ledger/internal/platform/metrics"
	"github.com/SscSPs/enterprise_ledger/internal/platform/reqctx"
	"github.com/jmoiron/sqlx"
)

var (
	// ErrBridgeUnavailable is returned when no cloud peer is configured.
	ErrBridgeUnavailable = errors.New("identity bridge: cloud store not configured")
	// ErrNoLocalEmail is returned when the local user has no email to join on.
	ErrNoLocalEmail = errors.New("identity bridge: local user has no email")
	// ErrNoCloudIdentity is returned when no cloud profile has the user's email.
	ErrNoCloudIdentity = errors.New("identity bridge: no cloud profile for email")
)

// IdentityBridge translates local user ids into cloud user ids by email.
type IdentityBridge struct {
	db    *sqlx.DB
	cloud portsrepo.CloudPeer
}

// NewIdentityBridge returns a bridge over the local profiles table and cloud.
func NewIdentityBridge(db *sqlx.DB, cloud portsrepo.CloudPeer) *IdentityBridge {
	return &IdentityBridge{db: db, cloud: cloud}
}

// Resolve returns the cloud user id matching localUserID. The local profile
// email is preferred; when it is missing and localUserID is the caller, the
// caller's session email is used instead.
func (b *IdentityBridge) Resolve(ctx context.Context, localUserID string) (string, error) {
	id, err := b.resolve(ctx, localUserID)
	metrics.ObserveIdentityBridge(bridgeOutcome(err))
	return id, err
}

func (b *IdentityBridge) resolve(ctx context.Context, localUserID string) (string, error) {
	if b == nil || b.cloud == nil {
		return "", ErrBridgeUnavailable
	}

	email, err := b.localEmail(ctx, localUserID)
	if err != nil {
		return "", fmt.Errorf("identity bridge: local lookup: %w", err)
	}
	if email == "" {
		if p, ok := reqctx.PrincipalFrom(ctx); ok && p.UserID == localUserID {
			email = p.Email
		}
	}
	if email == "" {
		return "", ErrNoLocalEmail
	}

	user, err := b.cloud.LookupProfileByEmail(ctx, email)
	if err != nil {
		return "", fmt.Errorf("identity bridge: cloud lookup: %w", err)
	}
	if user == nil || user.ID == "" {
		return "", ErrNoCloudIdentity
	}
	return user.ID, nil
}

func (b *IdentityBridge) localEmail(ctx context.Context, localUserID string) (string, error) {
	var email string
	err := b.db.GetContext(ctx, &email, `SELECT COALESCE(email, '') FROM profiles WHERE id = $1`, localUserID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	return email, err
}

func bridgeOutcome(err error) string {
	switch {
	case err == nil:
		return "resolved"
	case errors.Is(err, ErrBridgeUnavailable):
		return "unavailable"
	case errors.Is(err, ErrNoLocalEmail):
		return "no_local_email"
	case errors.Is(err, ErrNoCloudIdentity):
		return "no_cloud_identity"
	default:
		return "error"
	}
}
