package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/Windi-Fikriyansyah/gigflow/internal/db/dbtest"
)

// captureQueries records the SQL of every query gdb issues.
func captureQueries(t *testing.T, gdb *gorm.DB) *[]string {
	t.Helper()
	var seen []string
	require.NoError(t, gdb.Callback().Query().After("gorm:query").Register("test:capture_sql", func(tx *gorm.DB) {
		seen = append(seen, tx.Statement.SQL.String())
	}))
	return &seen
}

func TestLockGig_RowLockPerDialect(t *testing.T) {
	t.Run("postgres_selects_for_update", func(t *testing.T) {
		pg, err := gorm.Open(postgres.New(postgres.Config{
			DSN: "host=127.0.0.1 user=gigflow dbname=gigflow sslmode=disable",
		}), &gorm.Config{DryRun: true, DisableAutomaticPing: true})
		require.NoError(t, err)
		seen := captureQueries(t, pg)

		_, _ = New(pg).LockGig(context.Background(), uuid.New())
		require.Len(t, *seen, 1)
		require.Contains(t, (*seen)[0], "FOR UPDATE")
	})

	t.Run("sqlite_plain_select", func(t *testing.T) {
		gdb := dbtest.Open(t)
		r := New(gdb)
		owner := newUser(t, r, "owner")
		g := newGig(t, r, owner.ID, "gig", time.Now())
		seen := captureQueries(t, gdb)

		got, err := r.LockGig(context.Background(), g.ID)
		require.NoError(t, err)
		require.Equal(t, g.ID, got.ID)
		require.Len(t, *seen, 1)
		require.NotContains(t, (*seen)[0], "FOR UPDATE")
	})
}
