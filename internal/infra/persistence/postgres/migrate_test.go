package postgres

import (
	"context"
	"database/sql"
	"io/fs"
	"testing"

	"accounts/internal/infra/persistence/postgres/migrations"

	"github.com/pkg/errors"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationsAreEmbedded(t *testing.T) {
	names, err := fs.Glob(migrations.FS, "*.sql")
	require.NoError(t, err)
	assert.Contains(t, names, "00001_create_accounts.sql")

	body, err := fs.ReadFile(migrations.FS, "00001_create_accounts.sql")
	require.NoError(t, err)
	assert.Contains(t, string(body), "CREATE UNIQUE INDEX IF NOT EXISTS idx_accounts_email")
}

func TestRunMigrations(t *testing.T) {
	orig := gooseUp
	t.Cleanup(func() { gooseUp = orig })

	t.Run("runs goose from the embedded root", func(t *testing.T) {
		var gotDir string
		gooseUp = func(_ context.Context, _ *sql.DB, dir string, _ ...goose.OptionsFunc) error {
			gotDir = dir

			return nil
		}

		require.NoError(t, RunMigrations(context.Background(), nil))
		assert.Equal(t, ".", gotDir)
	})

	t.Run("wraps goose failures", func(t *testing.T) {
		gooseUp = func(context.Context, *sql.DB, string, ...goose.OptionsFunc) error {
			return errors.New("boom")
		}

		err := RunMigrations(context.Background(), nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to run migrations")
	})
}
