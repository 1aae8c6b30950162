package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coursehub/coursehub/internal/app/models"
	"github.com/coursehub/coursehub/internal/pkg/apperrors"
	"github.com/coursehub/coursehub/internal/pkg/helpers"
)

func TestHierarchyValidation(t *testing.T) {
	env := newTestEnv(t, &fakeBackend{})
	ctx := context.Background()

	_, err := env.svc.Course.CreateCourse(ctx, &models.Course{Name: "  "})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	assert.Equal(t, "Name is required", err.Error())

	_, err = env.svc.Year.CreateYear(ctx, &models.Year{CourseID: env.course.ID, Name: "Year 0"})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	assert.Equal(t, "Name and year_number are required", err.Error())

	_, err = env.svc.Year.CreateYear(ctx, &models.Year{CourseID: env.course.ID, YearNumber: -1, Name: "Year -1"})
	assert.Equal(t, "year_number must be positive", err.Error())

	_, err = env.svc.Semester.CreateSemester(ctx, &models.Semester{YearID: 1, SemesterNumber: 1, Name: ""})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	_, err = env.svc.Unit.CreateUnit(ctx, &models.Unit{SemesterID: 1, Name: "No code"})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	assert.Equal(t, "Name and code are required", err.Error())
}

func TestHierarchyMissingParents(t *testing.T) {
	env := newTestEnv(t, &fakeBackend{})
	ctx := context.Background()

	_, err := env.svc.Year.CreateYear(ctx, &models.Year{CourseID: 999, YearNumber: 1, Name: "Y"})
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
	assert.Equal(t, "Course not found", err.Error())

	_, err = env.svc.Semester.CreateSemester(ctx, &models.Semester{YearID: 999, SemesterNumber: 1, Name: "S"})
	assert.Equal(t, "Year not found", err.Error())

	_, err = env.svc.Unit.CreateUnit(ctx, &models.Unit{SemesterID: 999, Code: "X", Name: "X"})
	assert.Equal(t, "Semester not found", err.Error())

	_, err = env.svc.Year.ListYears(ctx, 999)
	assert.Equal(t, "Course not found", err.Error())

	_, err = env.svc.Course.GetCourse(ctx, 999)
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)

	err = env.svc.Unit.DeleteUnit(ctx, 999)
	assert.Equal(t, "Unit not found", err.Error())
}

func TestCourseService_UpdateAndList(t *testing.T) {
	env := newTestEnv(t, &fakeBackend{})
	ctx := context.Background()

	updated, err := env.svc.Course.UpdateCourse(ctx, &models.Course{ID: env.course.ID, Name: " Computing ", Description: "Renamed"})
	require.NoError(t, err)
	assert.Equal(t, "Computing", updated.Name)
	assert.Equal(t, "Renamed", updated.Description)

	courses, err := env.svc.Course.ListCourses(ctx, helpers.ListOptions{Search: "comp"})
	require.NoError(t, err)
	require.Len(t, courses, 1)
	assert.Equal(t, env.course.ID, courses[0].ID)
}

func TestCourseDelete_RemovesUploadDirectories(t *testing.T) {
	env := newTestEnv(t, &fakeBackend{})
	ctx := context.Background()

	stored, err := env.storage.SaveUnitFile(env.unit.ID, fileHeaders(t, pdf("a.pdf"))[0])
	require.NoError(t, err)
	_, err = env.repos.DocumentRepository.Create(ctx, &models.Document{
		UnitID: env.unit.ID, Filename: stored.Filename, OriginalFilename: "a.pdf", FilePath: stored.Path,
	})
	require.NoError(t, err)
	require.DirExists(t, env.storage.UnitDir(env.unit.ID))

	require.NoError(t, env.svc.Course.DeleteCourse(ctx, env.course.ID))

	_, err = os.Stat(env.storage.UnitDir(env.unit.ID))
	assert.True(t, os.IsNotExist(err))
	_, err = env.svc.Unit.GetUnit(ctx, env.unit.ID)
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)

	entries, err := os.ReadDir(filepath.Clean(env.root))
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestDocumentService_DeleteRemovesFile(t *testing.T) {
	env := newTestEnv(t, &fakeBackend{})
	ctx := context.Background()

	stored, err := env.storage.SaveUnitFile(env.unit.ID, fileHeaders(t, pdf("a.pdf"))[0])
	require.NoError(t, err)
	doc, err := env.repos.DocumentRepository.Create(ctx, &models.Document{
		UnitID: env.unit.ID, Filename: stored.Filename, OriginalFilename: "a.pdf", FilePath: stored.Path,
	})
	require.NoError(t, err)

	listed, err := env.svc.Document.ListDocuments(ctx, models.Scope{CourseID: &env.course.ID})
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "CS", listed[0].CourseName)

	require.NoError(t, env.svc.Document.DeleteDocument(ctx, doc.ID))
	assert.NoFileExists(t, stored.Path)

	err = env.svc.Document.DeleteDocument(ctx, doc.ID)
	assert.Equal(t, "Document not found", err.Error())

	_, err = env.svc.Document.ListUnitDocuments(ctx, 999)
	assert.Equal(t, "Unit not found", err.Error())
}
