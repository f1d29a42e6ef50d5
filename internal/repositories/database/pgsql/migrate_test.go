package pgsql

import (
	"errors"
	"testing"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMigrator struct {
	upErr     error
	sourceErr error
	dbErr     error
	closed    bool
}

func (f *fakeMigrator) Up() error { return f.upErr }

func (f *fakeMigrator) Close() (error, error) {
	f.closed = true
	return f.sourceErr, f.dbErr
}

func TestApplyUp(t *testing.T) {
	tests := []struct {
		name        string
		m           *fakeMigrator
		wantChanged bool
		wantErr     string
	}{
		{name: "applied", m: &fakeMigrator{}, wantChanged: true},
		{name: "no change", m: &fakeMigrator{upErr: migrate.ErrNoChange}},
		{name: "up fails", m: &fakeMigrator{upErr: errors.New("dirty database version 3")}, wantErr: "apply migrations"},
		{name: "source close fails", m: &fakeMigrator{sourceErr: errors.New("fs")}, wantErr: "migration source"},
		{name: "database close fails", m: &fakeMigrator{dbErr: errors.New("conn")}, wantErr: "migration database"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			changed, err := applyUp(tt.m)

			assert.True(t, tt.m.closed)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantChanged, changed)
		})
	}
}
