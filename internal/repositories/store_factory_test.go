package repositories

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/SscSPs/enterprise_ledger/internal/core/domain"
	"github.com/SscSPs/enterprise_ledger/internal/platform/config"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newStoreFactoryWithDB skips the shared pool.
func newStoreFactoryWithDB(cfg *config.Config, db *sqlx.DB) *StoreFactory {
	f := NewStoreFactory(cfg)
	f.shared = nil
	f.localDB = db
	return f
}

func TestStoreFactory_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.Config
		wantErr bool
	}{
		{name: "cloud ok", cfg: config.Config{DBBackend: "cloud", SupabaseURL: "https://x.test", SupabaseKey: "k"}},
		{name: "cloud missing key", cfg: config.Config{DBBackend: "cloud", SupabaseURL: "https://x.test"}, wantErr: true},
		{name: "local ok", cfg: config.Config{DBBackend: "local", DatabaseURL: "postgres://localhost/ent"}},
		{name: "local missing url", cfg: config.Config{DBBackend: "local"}, wantErr: true},
		{name: "unknown backend", cfg: config.Config{DBBackend: "sqlite"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewStoreFactory(&tt.cfg).Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidConfig)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestStoreFactory_ForRequest_Cloud(t *testing.T) {
	f := NewStoreFactory(&config.Config{DBBackend: "cloud", SupabaseURL: "https://x.test", SupabaseKey: "k"})

	store, err := f.ForRequest(context.Background(), "jwt")

	require.NoError(t, err)
	assert.Equal(t, domain.BackendCloud, store.Backend())
}

func TestStoreFactory_ForRequest_Local(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	f := newStoreFactoryWithDB(&config.Config{DBBackend: "local"}, sqlx.NewDb(db, "sqlmock"))
	require.NoError(t, f.Validate())

	store, err := f.ForRequest(context.Background(), "")

	require.NoError(t, err)
	assert.Equal(t, domain.BackendLocal, store.Backend())
}

func TestStoreFactory_AutoBootstrapOnlyInLocalDev(t *testing.T) {
	assert.True(t, NewStoreFactory(&config.Config{DBBackend: "local"}).autoBootstrap)
	assert.False(t, NewStoreFactory(&config.Config{DBBackend: "local", IsProduction: true}).autoBootstrap)
	assert.False(t, NewStoreFactory(&config.Config{DBBackend: "cloud"}).autoBootstrap)
}

func TestStoreFactory_LocalDBRejectedInCloudMode(t *testing.T) {
	f := NewStoreFactory(&config.Config{DBBackend: "cloud"})

	_, err := f.LocalDB(context.Background())

	assert.ErrorIs(t, err, ErrInvalidConfig)
}
