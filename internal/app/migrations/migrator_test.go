package migrations

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coursehub/coursehub/internal/db"
)

func TestMigrate_AppliesOnce(t *testing.T) {
	ctx := context.Background()
	store, err := db.OpenSQLite(ctx, filepath.Join(t.TempDir(), "migrate.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	m := NewMigrator(store, zerolog.Nop())
	versions, err := m.Versions()
	require.NoError(t, err)
	require.NotEmpty(t, versions)

	applied, err := m.Migrate(ctx)
	require.NoError(t, err)
	assert.Equal(t, len(versions), applied)

	applied, err = m.Migrate(ctx)
	require.NoError(t, err)
	assert.Zero(t, applied)

	var count int
	require.NoError(t, store.QueryRowContext(ctx, "SELECT COUNT(*) FROM schema_migrations").Scan(&count))
	assert.Equal(t, len(versions), count)
}

func TestMigrate_BothDialectsShipSameVersions(t *testing.T) {
	lite := &Migrator{fs: migrationFiles, dir: "sql/sqlite"}
	pg := &Migrator{fs: migrationFiles, dir: "sql/postgres"}

	liteVersions, err := lite.Versions()
	require.NoError(t, err)
	pgVersions, err := pg.Versions()
	require.NoError(t, err)
	assert.Equal(t, liteVersions, pgVersions)
}
