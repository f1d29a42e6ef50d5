package pgsql

import (
	"context"
	"database/sql"
	"errors"

	"github.com/SscSPs/enterprise_ledger/internal/apperrors"
	"github.com/SscSPs/enterprise_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/enterprise_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/enterprise_ledger/internal/platform/reqctx"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
)

// Options tune the local store.
type Options struct {
	// AutoBootstrap enrolls a user with no memberships into the first
	// organization. Development only.
	AutoBootstrap bool
}

// Store is the local PostgreSQL implementation of portsrepo.DataStore.
type Store struct {
	db     *sqlx.DB
	cloud  portsrepo.CloudPeer
	bridge *IdentityBridge
	opts   Options
}

var _ portsrepo.DataStore = (*Store)(nil)

// NewStore builds a local store on the shared handle. cloud may be nil, in
// which case bridging, enrichment and mirroring are skipped.
func NewStore(db *sqlx.DB, cloud portsrepo.CloudPeer, opts Options) *Store {
	return &Store{
		db:     db,
		cloud:  cloud,
		bridge: NewIdentityBridge(db, cloud),
		opts:   opts,
	}
}

func (s *Store) Backend() domain.BackendKind { return domain.BackendLocal }

// withTx runs fn in a transaction, rolling back when fn fails.
func (s *Store) withTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return apperrors.NewAppError(500, "failed to begin transaction", err)
	}
	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			reqctx.Logger(ctx).Error("failed to rollback transaction", "error", rbErr)
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return apperrors.NewAppError(500, "failed to commit transaction", err)
	}
	return nil
}

// translateError maps driver errors onto application sentinels.
func translateError(err error, msg string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return apperrors.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return apperrors.NewAppError(409, msg, errors.Join(apperrors.ErrDuplicate, err))
		case "23503", "23514": // foreign_key_violation, check_violation
			return apperrors.NewAppError(400, msg, errors.Join(apperrors.ErrValidation, err))
		}
	}
	return apperrors.NewAppError(500, msg, err)
}

// readFailed logs a read error. Reads degrade to empty results.
func readFailed(ctx context.Context, op string, err error, args ...any) {
	reqctx.Logger(ctx).Error("local store read failed", append([]any{"op", op, "error", err}, args...)...)
}

// writeFailed logs a write error. Writes report false.
func writeFailed(ctx context.Context, op string, err error, args ...any) {
	reqctx.Logger(ctx).Error("local store write failed", append([]any{"op", op, "error", translateError(err, op)}, args...)...)
}

func nullIfEmpty(s *string) any {
	if s == nil || *s == "" {
		return nil
	}
	return *s
}
