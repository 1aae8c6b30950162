package seed

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coursehub/coursehub/internal/app/migrations"
	appRepos "github.com/coursehub/coursehub/internal/app/repositories"
	"github.com/coursehub/coursehub/internal/db"
	"github.com/coursehub/coursehub/internal/pkg/helpers"
)

func TestSeedDemoData_Idempotent(t *testing.T) {
	ctx := context.Background()
	store, err := db.OpenSQLite(ctx, filepath.Join(t.TempDir(), "seed.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	_, err = migrations.NewMigrator(store, zerolog.Nop()).Migrate(ctx)
	require.NoError(t, err)

	repos := appRepos.NewRepositories(store)
	require.NoError(t, SeedDemoData(ctx, repos, zerolog.Nop()))
	require.NoError(t, SeedDemoData(ctx, repos, zerolog.Nop()))

	courses, err := repos.CourseRepository.List(ctx, helpers.ListOptions{})
	require.NoError(t, err)
	require.Len(t, courses, 1)
	assert.Equal(t, "CS", courses[0].Name)

	years, err := repos.YearRepository.ListByCourse(ctx, courses[0].ID)
	require.NoError(t, err)
	require.Len(t, years, 1)
	semesters, err := repos.SemesterRepository.ListByYear(ctx, years[0].ID)
	require.NoError(t, err)
	require.Len(t, semesters, 1)
	units, err := repos.UnitRepository.ListBySemester(ctx, semesters[0].ID)
	require.NoError(t, err)
	require.Len(t, units, 1)
	assert.Equal(t, "CS101", units[0].Code)
}
