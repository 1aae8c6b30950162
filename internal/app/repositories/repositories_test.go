package repositories

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coursehub/coursehub/internal/app/migrations"
	"github.com/coursehub/coursehub/internal/app/models"
	"github.com/coursehub/coursehub/internal/db"
	"github.com/coursehub/coursehub/internal/pkg/helpers"
)

func newTestRepos(t *testing.T) *Repositories {
	t.Helper()
	ctx := context.Background()

	store, err := db.OpenSQLite(ctx, filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	_, err = migrations.NewMigrator(store, zerolog.Nop()).Migrate(ctx)
	require.NoError(t, err)

	return NewRepositories(store)
}

type fixture struct {
	course   *models.Course
	year     *models.Year
	semester *models.Semester
	unit     *models.Unit
}

func seedChain(t *testing.T, repos *Repositories, courseName string) fixture {
	t.Helper()
	ctx := context.Background()

	course, err := repos.CourseRepository.Create(ctx, &models.Course{Name: courseName})
	require.NoError(t, err)
	year, err := repos.YearRepository.Create(ctx, &models.Year{CourseID: course.ID, YearNumber: 1, Name: "Year 1"})
	require.NoError(t, err)
	semester, err := repos.SemesterRepository.Create(ctx, &models.Semester{YearID: year.ID, SemesterNumber: 1, Name: "Sem 1"})
	require.NoError(t, err)
	unit, err := repos.UnitRepository.Create(ctx, &models.Unit{SemesterID: semester.ID, Code: courseName + "101", Name: "Intro"})
	require.NoError(t, err)

	return fixture{course: course, year: year, semester: semester, unit: unit}
}

func addDocument(t *testing.T, repos *Repositories, unitID int64, name string) *models.Document {
	t.Helper()
	doc, err := repos.DocumentRepository.Create(context.Background(), &models.Document{
		UnitID:           unitID,
		Filename:         "gen-" + name,
		OriginalFilename: name,
		FilePath:         filepath.Join("unit", name),
		FileSize:         42,
		MimeType:         "application/pdf",
	})
	require.NoError(t, err)
	return doc
}

func TestCourseRepository_CRUD(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()
	r := repos.CourseRepository

	created, err := r.Create(ctx, &models.Course{Name: "Physics", Description: "Mechanics"})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, "Physics", created.Name)
	assert.False(t, created.CreatedAt.IsZero())

	got, err := r.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "Mechanics", got.Description)

	got.Name = "Physics I"
	updated, err := r.Update(ctx, got)
	require.NoError(t, err)
	assert.Equal(t, "Physics I", updated.Name)

	require.NoError(t, r.Delete(ctx, created.ID))
	_, err = r.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCourseRepository_MissingRows(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()

	_, err := repos.CourseRepository.GetByID(ctx, 999)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = repos.CourseRepository.Update(ctx, &models.Course{ID: 999, Name: "x"})
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, repos.CourseRepository.Delete(ctx, 999), ErrNotFound)
	assert.ErrorIs(t, repos.UnitRepository.Delete(ctx, 999), ErrNotFound)
	assert.ErrorIs(t, repos.DocumentRepository.Delete(ctx, 999), ErrNotFound)
}

func TestCourseRepository_ListOrderingAndSearch(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()
	r := repos.CourseRepository

	for _, c := range []models.Course{
		{Name: "Mathematics", Description: "Algebra"},
		{Name: "Biology", Description: "Cells"},
		{Name: "Chemistry", Description: "Organic algebra-free"},
	} {
		c := c
		_, err := r.Create(ctx, &c)
		require.NoError(t, err)
	}

	all, err := r.List(ctx, helpers.ListOptions{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Biology", all[0].Name)
	assert.Equal(t, "Chemistry", all[1].Name)
	assert.Equal(t, "Mathematics", all[2].Name)

	found, err := r.List(ctx, helpers.ListOptions{Search: "ALGEBRA"})
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, "Chemistry", found[0].Name)
	assert.Equal(t, "Mathematics", found[1].Name)

	page, err := r.List(ctx, helpers.ListOptions{Limit: 1, Offset: 1})
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "Chemistry", page[0].Name)

	skipped, err := r.List(ctx, helpers.ListOptions{Offset: 2})
	require.NoError(t, err)
	require.Len(t, skipped, 1)
	assert.Equal(t, "Mathematics", skipped[0].Name)
}

func TestCourseRepository_SearchTreatsWildcardsLiterally(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()
	r := repos.CourseRepository

	for _, c := range []models.Course{
		{Name: "Statistics", Description: "100% coursework"},
		{Name: "Systems_Programming", Description: "C and Go"},
		{Name: "History", Description: `Paths like C:\docs`},
		{Name: "SystemsXProgramming", Description: "Decoy"},
	} {
		c := c
		_, err := r.Create(ctx, &c)
		require.NoError(t, err)
	}

	tests := []struct {
		search string
		want   []string
	}{
		{"%", []string{"Statistics"}},
		{"_", []string{"Systems_Programming"}},
		{"Systems_P", []string{"Systems_Programming"}},
		{`C:\d`, []string{"History"}},
	}
	for _, tt := range tests {
		t.Run(tt.search, func(t *testing.T) {
			found, err := r.List(ctx, helpers.ListOptions{Search: tt.search})
			require.NoError(t, err)
			names := make([]string, 0, len(found))
			for _, c := range found {
				names = append(names, c.Name)
			}
			assert.Equal(t, tt.want, names)
		})
	}
}

func TestChildRepositories_PreserveParentAndOrder(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()
	f := seedChain(t, repos, "CS")

	assert.Equal(t, f.course.ID, f.year.CourseID)
	assert.Equal(t, f.year.ID, f.semester.YearID)
	assert.Equal(t, f.semester.ID, f.unit.SemesterID)

	_, err := repos.YearRepository.Create(ctx, &models.Year{CourseID: f.course.ID, YearNumber: 3, Name: "Year 3"})
	require.NoError(t, err)
	_, err = repos.YearRepository.Create(ctx, &models.Year{CourseID: f.course.ID, YearNumber: 2, Name: "Year 2"})
	require.NoError(t, err)

	years, err := repos.YearRepository.ListByCourse(ctx, f.course.ID)
	require.NoError(t, err)
	require.Len(t, years, 3)
	assert.Equal(t, []int{1, 2, 3}, []int{years[0].YearNumber, years[1].YearNumber, years[2].YearNumber})

	_, err = repos.UnitRepository.Create(ctx, &models.Unit{SemesterID: f.semester.ID, Code: "CS050", Name: "Algorithms"})
	require.NoError(t, err)
	units, err := repos.UnitRepository.ListBySemester(ctx, f.semester.ID)
	require.NoError(t, err)
	require.Len(t, units, 2)
	assert.Equal(t, "Algorithms", units[0].Name)

	f.semester.Name = "Autumn"
	f.semester.SemesterNumber = 2
	sem, err := repos.SemesterRepository.Update(ctx, f.semester)
	require.NoError(t, err)
	assert.Equal(t, "Autumn", sem.Name)
	assert.Equal(t, 2, sem.SemesterNumber)
	assert.Equal(t, f.year.ID, sem.YearID)

	empty, err := repos.SemesterRepository.ListByYear(ctx, 999)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestCreateUnderMissingParent(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()

	_, err := repos.YearRepository.Create(ctx, &models.Year{CourseID: 999, YearNumber: 1, Name: "Year 1"})
	assert.ErrorIs(t, err, ErrParentNotFound)

	_, err = repos.SemesterRepository.Create(ctx, &models.Semester{YearID: 999, SemesterNumber: 1, Name: "Sem"})
	assert.ErrorIs(t, err, ErrParentNotFound)

	_, err = repos.UnitRepository.Create(ctx, &models.Unit{SemesterID: 999, Code: "X", Name: "X"})
	assert.ErrorIs(t, err, ErrParentNotFound)

	_, err = repos.DocumentRepository.Create(ctx, &models.Document{UnitID: 999, Filename: "a", OriginalFilename: "a", FilePath: "a"})
	assert.ErrorIs(t, err, ErrParentNotFound)
}

func TestDocumentRepository_DuplicateFilename(t *testing.T) {
	repos := newTestRepos(t)
	f := seedChain(t, repos, "CS")
	addDocument(t, repos, f.unit.ID, "a.pdf")

	_, err := repos.DocumentRepository.Create(context.Background(), &models.Document{
		UnitID: f.unit.ID, Filename: "gen-a.pdf", OriginalFilename: "a.pdf", FilePath: "x",
	})
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestCourseDelete_CascadesToDescendants(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()
	f := seedChain(t, repos, "CS")
	other := seedChain(t, repos, "MA")
	doc := addDocument(t, repos, f.unit.ID, "notes.pdf")
	kept := addDocument(t, repos, other.unit.ID, "kept.pdf")

	require.NoError(t, repos.CourseRepository.Delete(ctx, f.course.ID))

	_, err := repos.YearRepository.GetByID(ctx, f.year.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = repos.SemesterRepository.GetByID(ctx, f.semester.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = repos.UnitRepository.GetByID(ctx, f.unit.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = repos.DocumentRepository.GetByID(ctx, doc.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	got, err := repos.DocumentRepository.GetByID(ctx, kept.ID)
	require.NoError(t, err)
	assert.Equal(t, "kept.pdf", got.OriginalFilename)
}

func TestHierarchyRepository_GetUnitHierarchy(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()
	f := seedChain(t, repos, "CS")

	h, err := repos.HierarchyRepository.GetUnitHierarchy(ctx, f.unit.ID)
	require.NoError(t, err)
	assert.Equal(t, models.UnitHierarchy{
		CourseID: f.course.ID, CourseName: "CS",
		YearID: f.year.ID, YearName: "Year 1",
		SemesterID: f.semester.ID, SemesterName: "Sem 1",
		UnitID: f.unit.ID, UnitName: "Intro",
	}, *h)

	_, err = repos.HierarchyRepository.GetUnitHierarchy(ctx, 999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestHierarchyRepository_UnitIDsInScope(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()
	f := seedChain(t, repos, "CS")
	other := seedChain(t, repos, "MA")

	ids, err := repos.HierarchyRepository.UnitIDsInScope(ctx, models.Scope{CourseID: &f.course.ID})
	require.NoError(t, err)
	assert.Equal(t, []int64{f.unit.ID}, ids)

	ids, err = repos.HierarchyRepository.UnitIDsInScope(ctx, models.Scope{})
	require.NoError(t, err)
	assert.ElementsMatch(t, []int64{f.unit.ID, other.unit.ID}, ids)
}

func TestDocumentRepository_ScopedListingAndCounts(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()
	f := seedChain(t, repos, "CS")
	other := seedChain(t, repos, "MA")

	first := addDocument(t, repos, f.unit.ID, "one.pdf")
	second := addDocument(t, repos, f.unit.ID, "two.pdf")
	addDocument(t, repos, other.unit.ID, "three.pdf")

	byUnit, err := repos.DocumentRepository.ListByUnit(ctx, f.unit.ID)
	require.NoError(t, err)
	require.Len(t, byUnit, 2)
	assert.Equal(t, second.ID, byUnit[0].ID, "newest first")
	assert.Equal(t, first.ID, byUnit[1].ID)

	scoped, err := repos.DocumentRepository.ListWithHierarchy(ctx, models.Scope{CourseID: &f.course.ID})
	require.NoError(t, err)
	require.Len(t, scoped, 2)
	assert.Equal(t, "CS", scoped[0].CourseName)
	assert.Equal(t, "Year 1", scoped[0].YearName)
	assert.Equal(t, 1, scoped[0].SemesterNumber)
	assert.Equal(t, "CS101", scoped[0].UnitCode)

	all, err := repos.DocumentRepository.ListWithHierarchy(ctx, models.Scope{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	cases := []struct {
		name  string
		scope models.Scope
		want  int64
	}{
		{"all", models.Scope{}, 3},
		{"course", models.Scope{CourseID: &other.course.ID}, 1},
		{"year", models.Scope{YearID: &f.year.ID}, 2},
		{"semester", models.Scope{SemesterID: &f.semester.ID}, 2},
		{"unit wins over course", models.Scope{CourseID: &f.course.ID, UnitID: &other.unit.ID}, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			n, err := repos.DocumentRepository.CountByScope(ctx, tc.scope)
			require.NoError(t, err)
			assert.Equal(t, tc.want, n)
		})
	}
}
