// Package repositories selects and constructs the DataStore backend for each
// request.
package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/enterprise_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/enterprise_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/enterprise_ledger/internal/platform/config"
	"github.com/SscSPs/enterprise_ledger/internal/platform/reqctx"
	"github.com/SscSPs/enterprise_ledger/internal/repositories/cloud"
	"github.com/SscSPs/enterprise_ledger/internal/repositories/database/pgsql"
	"github.com/SscSPs/enterprise_ledger/pkg/database"
	"github.com/jmoiron/sqlx"
)

// ErrInvalidConfig is returned by Validate for an unusable store configuration.
var ErrInvalidConfig = errors.New("invalid data store configuration")

// StoreFactory builds a request-scoped DataStore from configuration.
type StoreFactory struct {
	backend       domain.BackendKind
	cloudURL      string
	cloudKey      string
	localURL      string
	autoBootstrap bool

	shared *database.SharedDB
	// localDB overrides the shared pool; used by tests.
	localDB *sqlx.DB
}

var _ portsrepo.StoreProvider = (*StoreFactory)(nil)

// NewStoreFactory reads backend selection from cfg. The local pool is not
// opened until the first local request.
func NewStoreFactory(cfg *config.Config) *StoreFactory {
	f := &StoreFactory{
		backend:       domain.BackendKind(cfg.DBBackend),
		cloudURL:      cfg.SupabaseURL,
		cloudKey:      cfg.SupabaseKey,
		localURL:      cfg.DatabaseURL,
		autoBootstrap: cfg.AutoBootstrapAllowed(),
	}
	if f.backend == domain.BackendLocal {
		f.shared = database.NewSharedDB(cfg.DatabaseURL, cfg.LocalPoolMaxConns)
	}
	return f
}

// Validate rejects configurations that cannot serve any request.
func (f *StoreFactory) Validate() error {
	switch f.backend {
	case domain.BackendCloud:
		if f.cloudURL == "" || f.cloudKey == "" {
			return fmt.Errorf("%w: cloud backend requires SUPABASE_URL and SUPABASE_KEY", ErrInvalidConfig)
		}
	case domain.BackendLocal:
		if f.localURL == "" && f.localDB == nil {
			return fmt.Errorf("%w: local backend requires DATABASE_URL", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown DB_BACKEND %q", ErrInvalidConfig, f.backend)
	}
	return nil
}

// Backend reports the configured backend.
func (f *StoreFactory) Backend() domain.BackendKind { return f.backend }

// ForRequest returns a store acting with bearerToken's privileges. In local
// mode a cloud peer is attached when cloud credentials are configured.
func (f *StoreFactory) ForRequest(ctx context.Context, bearerToken string) (portsrepo.DataStore, error) {
	switch f.backend {
	case domain.BackendCloud:
		client, err := cloud.NewClient(ctx, f.cloudURL, f.cloudKey, bearerToken)
		if err != nil {
			return nil, err
		}
		return cloud.NewStore(client), nil
	case domain.BackendLocal:
		db, err := f.db(ctx)
		if err != nil {
			return nil, err
		}
		var peer portsrepo.CloudPeer
		if f.cloudURL != "" && f.cloudKey != "" {
			client, err := cloud.NewClient(ctx, f.cloudURL, f.cloudKey, bearerToken)
			if err != nil {
				reqctx.Logger(ctx).Warn("cloud peer unavailable, bridging disabled", "error", err)
			} else {
				peer = cloud.NewStore(client)
			}
		}
		return pgsql.NewStore(db, peer, pgsql.Options{AutoBootstrap: f.autoBootstrap}), nil
	default:
		return nil, fmt.Errorf("%w: unknown DB_BACKEND %q", ErrInvalidConfig, f.backend)
	}
}

// LocalDB exposes the shared local handle, opening it if needed.
func (f *StoreFactory) LocalDB(ctx context.Context) (*sqlx.DB, error) {
	if f.backend != domain.BackendLocal {
		return nil, fmt.Errorf("%w: no local database in %s mode", ErrInvalidConfig, f.backend)
	}
	return f.db(ctx)
}

func (f *StoreFactory) db(ctx context.Context) (*sqlx.DB, error) {
	if f.localDB != nil {
		return f.localDB, nil
	}
	return f.shared.DB(ctx)
}

// Close releases the shared local pool.
func (f *StoreFactory) Close() {
	if f.shared != nil {
		f.shared.Close()
	}
}
