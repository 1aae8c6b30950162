package services

import (
	"context"
	"errors"
	"strings"

	"github.com/coursehub/coursehub/internal/app/models"
	"github.com/coursehub/coursehub/internal/app/repositories"
	"github.com/coursehub/coursehub/internal/pkg/apperrors"
)

// UnitService defines the interface for unit-related operations
type UnitService interface {
	ListUnits(ctx context.Context, semesterID int64) ([]*models.Unit, error)
	GetUnit(ctx context.Context, id int64) (*models.Unit, error)
	CreateUnit(ctx context.Context, unit *models.Unit) (*models.Unit, error)
	UpdateUnit(ctx context.Context, unit *models.Unit) (*models.Unit, error)
	DeleteUnit(ctx context.Context, id int64) error
}

type unitServiceImpl struct {
	unitRepo     *repositories.UnitRepository
	semesterRepo *repositories.SemesterRepository
	cleaner      *unitDirCleaner
}

// NewUnitService creates a new unit service instance
func NewUnitService(unitRepo *repositories.UnitRepository, semesterRepo *repositories.SemesterRepository, cleaner *unitDirCleaner) UnitService {
	return &unitServiceImpl{
		unitRepo:     unitRepo,
		semesterRepo: semesterRepo,
		cleaner:      cleaner,
	}
}

var errUnitNotFound = apperrors.NewResourceNotFoundError("Unit not found")

func validateUnit(unit *models.Unit) error {
	if unit == nil {
		return apperrors.NewValidationError("Name and code are required")
	}
	unit.Code = strings.TrimSpace(unit.Code)
	unit.Name = strings.TrimSpace(unit.Name)
	unit.Description = strings.TrimSpace(unit.Description)
	if unit.Name == "" || unit.Code == "" {
		return apperrors.NewValidationError("Name and code are required")
	}
	return nil
}

func (s *unitServiceImpl) ListUnits(ctx context.Context, semesterID int64) ([]*models.Unit, error) {
	if _, err := s.semesterRepo.GetByID(ctx, semesterID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, errSemesterNotFound
		}
		return nil, internalError(err, "Failed to fetch units")
	}

	units, err := s.unitRepo.ListBySemester(ctx, semesterID)
	if err != nil {
		return nil, internalError(err, "Failed to fetch units")
	}
	return units, nil
}

func (s *unitServiceImpl) GetUnit(ctx context.Context, id int64) (*models.Unit, error) {
	unit, err := s.unitRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, errUnitNotFound
		}
		return nil, internalError(err, "Failed to fetch unit")
	}
	return unit, nil
}

func (s *unitServiceImpl) CreateUnit(ctx context.Context, unit *models.Unit) (*models.Unit, error) {
	if err := validateUnit(unit); err != nil {
		return nil, err
	}

	created, err := s.unitRepo.Create(ctx, unit)
	if err != nil {
		if errors.Is(err, repositories.ErrParentNotFound) {
			return nil, errSemesterNotFound
		}
		return nil, internalError(err, "Failed to create unit")
	}
	return created, nil
}

func (s *unitServiceImpl) UpdateUnit(ctx context.Context, unit *models.Unit) (*models.Unit, error) {
	if err := validateUnit(unit); err != nil {
		return nil, err
	}

	updated, err := s.unitRepo.Update(ctx, unit)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, errUnitNotFound
		}
		return nil, internalError(err, "Failed to update unit")
	}
	return updated, nil
}

// DeleteUnit deletes a unit, its documents and its upload directory
func (s *unitServiceImpl) DeleteUnit(ctx context.Context, id int64) error {
	if err := s.unitRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return errUnitNotFound
		}
		return internalError(err, "Failed to delete unit")
	}

	s.cleaner.remove([]int64{id})
	return nil
}
