package services

import (
	"context"
	"errors"
	"strings"

	"github.com/coursehub/coursehub/internal/app/models"
	"github.com/coursehub/coursehub/internal/app/repositories"
	"github.com/coursehub/coursehub/internal/pkg/apperrors"
	"github.com/coursehub/coursehub/internal/pkg/helpers"
)

// CourseService defines the interface for course-related operations
type CourseService interface {
	ListCourses(ctx context.Context, opts helpers.ListOptions) ([]*models.Course, error)
	GetCourse(ctx context.Context, id int64) (*models.Course, error)
	CreateCourse(ctx context.Context, course *models.Course) (*models.Course, error)
	UpdateCourse(ctx context.Context, course *models.Course) (*models.Course, error)
	DeleteCourse(ctx context.Context, id int64) error
}

// courseServiceImpl implements the CourseService interface
type courseServiceImpl struct {
	courseRepo *repositories.CourseRepository
	cleaner    *unitDirCleaner
}

// NewCourseService creates a new course service instance
func NewCourseService(courseRepo *repositories.CourseRepository, cleaner *unitDirCleaner) CourseService {
	return &courseServiceImpl{
		courseRepo: courseRepo,
		cleaner:    cleaner,
	}
}

var errCourseNotFound = apperrors.NewResourceNotFoundError("Course not found")

func validateCourse(course *models.Course) error {
	if course == nil {
		return apperrors.NewValidationError("Name is required")
	}
	course.Name = strings.TrimSpace(course.Name)
	course.Description = strings.TrimSpace(course.Description)
	if course.Name == "" {
		return apperrors.NewValidationError("Name is required")
	}
	return nil
}

// ListCourses returns courses ordered by name
func (s *courseServiceImpl) ListCourses(ctx context.Context, opts helpers.ListOptions) ([]*models.Course, error) {
	courses, err := s.courseRepo.List(ctx, opts)
	if err != nil {
		return nil, internalError(err, "Failed to fetch courses")
	}
	return courses, nil
}

// GetCourse retrieves a course by ID
func (s *courseServiceImpl) GetCourse(ctx context.Context, id int64) (*models.Course, error) {
	course, err := s.courseRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, errCourseNotFound
		}
		return nil, internalError(err, "Failed to fetch course")
	}
	return course, nil
}

// CreateCourse creates a new course
func (s *courseServiceImpl) CreateCourse(ctx context.Context, course *models.Course) (*models.Course, error) {
	if err := validateCourse(course); err != nil {
		return nil, err
	}

	created, err := s.courseRepo.Create(ctx, course)
	if err != nil {
		return nil, internalError(err, "Failed to create course")
	}
	return created, nil
}

// UpdateCourse replaces name and description of an existing course
func (s *courseServiceImpl) UpdateCourse(ctx context.Context, course *models.Course) (*models.Course, error) {
	if err := validateCourse(course); err != nil {
		return nil, err
	}

	updated, err := s.courseRepo.Update(ctx, course)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, errCourseNotFound
		}
		return nil, internalError(err, "Failed to update course")
	}
	return updated, nil
}

// DeleteCourse deletes a course together with everything below it
func (s *courseServiceImpl) DeleteCourse(ctx context.Context, id int64) error {
	unitIDs := s.cleaner.collect(ctx, models.Scope{CourseID: &id})

	if err := s.courseRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return errCourseNotFound
		}
		return internalError(err, "Failed to delete course")
	}

	s.cleaner.remove(unitIDs)
	return nil
}
