// Package dbtest opens throwaway migrated SQLite databases for tests.
package dbtest

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Windi-Fikriyansyah/gigflow/internal/db"
)

func dsnFor(t *testing.T) string {
	return "file:" + filepath.Join(t.TempDir(), "gigflow.db") + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
}

func connect(t *testing.T, dsn string) *gorm.DB {
	t.Helper()
	gdb, err := db.Connect(db.DriverSQLite, dsn)
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return gdb
}

func Open(t *testing.T) *gorm.DB {
	t.Helper()
	gdb := connect(t, dsnFor(t))
	require.NoError(t, db.Migrate(context.Background(), gdb))
	return gdb
}

// OpenPair returns two handles with separate pools on one database, standing
// in for two API instances sharing a store.
func OpenPair(t *testing.T) (*gorm.DB, *gorm.DB) {
	t.Helper()
	dsn := dsnFor(t)
	primary := connect(t, dsn)
	require.NoError(t, db.Migrate(context.Background(), primary))
	return primary, connect(t, dsn)
}
