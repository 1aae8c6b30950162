package services

import (
	"context"
	"errors"
	"strings"

	"github.com/coursehub/coursehub/internal/app/models"
	"github.com/coursehub/coursehub/internal/app/repositories"
	"github.com/coursehub/coursehub/internal/pkg/apperrors"
)

// YearService defines the interface for year-related operations
type YearService interface {
	ListYears(ctx context.Context, courseID int64) ([]*models.Year, error)
	GetYear(ctx context.Context, id int64) (*models.Year, error)
	CreateYear(ctx context.Context, year *models.Year) (*models.Year, error)
	UpdateYear(ctx context.Context, year *models.Year) (*models.Year, error)
	DeleteYear(ctx context.Context, id int64) error
}

type yearServiceImpl struct {
	yearRepo   *repositories.YearRepository
	courseRepo *repositories.CourseRepository
	cleaner    *unitDirCleaner
}

// NewYearService creates a new year service instance
func NewYearService(yearRepo *repositories.YearRepository, courseRepo *repositories.CourseRepository, cleaner *unitDirCleaner) YearService {
	return &yearServiceImpl{
		yearRepo:   yearRepo,
		courseRepo: courseRepo,
		cleaner:    cleaner,
	}
}

var errYearNotFound = apperrors.NewResourceNotFoundError("Year not found")

func validateYear(year *models.Year) error {
	if year == nil {
		return apperrors.NewValidationError("Name and year_number are required")
	}
	year.Name = strings.TrimSpace(year.Name)
	if year.Name == "" || year.YearNumber == 0 {
		return apperrors.NewValidationError("Name and year_number are required")
	}
	if year.YearNumber < 0 {
		return apperrors.NewValidationError("year_number must be positive")
	}
	return nil
}

// ListYears returns the years of a course ordered by year number
func (s *yearServiceImpl) ListYears(ctx context.Context, courseID int64) ([]*models.Year, error) {
	if _, err := s.courseRepo.GetByID(ctx, courseID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, errCourseNotFound
		}
		return nil, internalError(err, "Failed to fetch years")
	}

	years, err := s.yearRepo.ListByCourse(ctx, courseID)
	if err != nil {
		return nil, internalError(err, "Failed to fetch years")
	}
	return years, nil
}

// GetYear retrieves a year by ID
func (s *yearServiceImpl) GetYear(ctx context.Context, id int64) (*models.Year, error) {
	year, err := s.yearRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, errYearNotFound
		}
		return nil, internalError(err, "Failed to fetch year")
	}
	return year, nil
}

// CreateYear creates a year under year.CourseID
func (s *yearServiceImpl) CreateYear(ctx context.Context, year *models.Year) (*models.Year, error) {
	if err := validateYear(year); err != nil {
		return nil, err
	}

	created, err := s.yearRepo.Create(ctx, year)
	if err != nil {
		if errors.Is(err, repositories.ErrParentNotFound) {
			return nil, errCourseNotFound
		}
		return nil, internalError(err, "Failed to create year")
	}
	return created, nil
}

// UpdateYear replaces year_number and name
func (s *yearServiceImpl) UpdateYear(ctx context.Context, year *models.Year) (*models.Year, error) {
	if err := validateYear(year); err != nil {
		return nil, err
	}

	updated, err := s.yearRepo.Update(ctx, year)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, errYearNotFound
		}
		return nil, internalError(err, "Failed to update year")
	}
	return updated, nil
}

// DeleteYear deletes a year and its semesters, units and documents
func (s *yearServiceImpl) DeleteYear(ctx context.Context, id int64) error {
	unitIDs := s.cleaner.collect(ctx, models.Scope{YearID: &id})

	if err := s.yearRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return errYearNotFound
		}
		return internalError(err, "Failed to delete year")
	}

	s.cleaner.remove(unitIDs)
	return nil
}
