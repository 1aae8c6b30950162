package services

import (
	"context"
	"errors"
	"strings"

	"github.com/coursehub/coursehub/internal/app/models"
	"github.com/coursehub/coursehub/internal/app/repositories"
	"github.com/coursehub/coursehub/internal/pkg/apperrors"
)

// SemesterService defines the interface for semester-related operations
type SemesterService interface {
	ListSemesters(ctx context.Context, yearID int64) ([]*models.Semester, error)
	GetSemester(ctx context.Context, id int64) (*models.Semester, error)
	CreateSemester(ctx context.Context, semester *models.Semester) (*models.Semester, error)
	UpdateSemester(ctx context.Context, semester *models.Semester) (*models.Semester, error)
	DeleteSemester(ctx context.Context, id int64) error
}

type semesterServiceImpl struct {
	semesterRepo *repositories.SemesterRepository
	yearRepo     *repositories.YearRepository
	cleaner      *unitDirCleaner
}

// NewSemesterService creates a new semester service instance
func NewSemesterService(semesterRepo *repositories.SemesterRepository, yearRepo *repositories.YearRepository, cleaner *unitDirCleaner) SemesterService {
	return &semesterServiceImpl{
		semesterRepo: semesterRepo,
		yearRepo:     yearRepo,
		cleaner:      cleaner,
	}
}

var errSemesterNotFound = apperrors.NewResourceNotFoundError("Semester not found")

func validateSemester(semester *models.Semester) error {
	if semester == nil {
		return apperrors.NewValidationError("Name and semester_number are required")
	}
	semester.Name = strings.TrimSpace(semester.Name)
	if semester.Name == "" || semester.SemesterNumber == 0 {
		return apperrors.NewValidationError("Name and semester_number are required")
	}
	if semester.SemesterNumber < 0 {
		return apperrors.NewValidationError("semester_number must be positive")
	}
	return nil
}

func (s *semesterServiceImpl) ListSemesters(ctx context.Context, yearID int64) ([]*models.Semester, error) {
	if _, err := s.yearRepo.GetByID(ctx, yearID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, errYearNotFound
		}
		return nil, internalError(err, "Failed to fetch semesters")
	}

	semesters, err := s.semesterRepo.ListByYear(ctx, yearID)
	if err != nil {
		return nil, internalError(err, "Failed to fetch semesters")
	}
	return semesters, nil
}

func (s *semesterServiceImpl) GetSemester(ctx context.Context, id int64) (*models.Semester, error) {
	semester, err := s.semesterRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, errSemesterNotFound
		}
		return nil, internalError(err, "Failed to fetch semester")
	}
	return semester, nil
}

func (s *semesterServiceImpl) CreateSemester(ctx context.Context, semester *models.Semester) (*models.Semester, error) {
	if err := validateSemester(semester); err != nil {
		return nil, err
	}

	created, err := s.semesterRepo.Create(ctx, semester)
	if err != nil {
		if errors.Is(err, repositories.ErrParentNotFound) {
			return nil, errYearNotFound
		}
		return nil, internalError(err, "Failed to create semester")
	}
	return created, nil
}

func (s *semesterServiceImpl) UpdateSemester(ctx context.Context, semester *models.Semester) (*models.Semester, error) {
	if err := validateSemester(semester); err != nil {
		return nil, err
	}

	updated, err := s.semesterRepo.Update(ctx, semester)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, errSemesterNotFound
		}
		return nil, internalError(err, "Failed to update semester")
	}
	return updated, nil
}

func (s *semesterServiceImpl) DeleteSemester(ctx context.Context, id int64) error {
	unitIDs := s.cleaner.collect(ctx, models.Scope{SemesterID: &id})

	if err := s.semesterRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return errSemesterNotFound
		}
		return internalError(err, "Failed to delete semester")
	}

	s.cleaner.remove(unitIDs)
	return nil
}
