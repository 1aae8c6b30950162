package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/coursehub/coursehub/internal/app/models"
	"github.com/coursehub/coursehub/internal/db"
	"github.com/coursehub/coursehub/internal/pkg/logger"
)

var unitColumns = []string{"id", "semester_id", "code", "name", "description", "created_at"}

// UnitRepository handles unit database operations
type UnitRepository struct {
	db *db.DB
	sb squirrel.StatementBuilderType
}

// NewUnitRepository creates a new UnitRepository
func NewUnitRepository(store *db.DB) *UnitRepository {
	return &UnitRepository{db: store, sb: store.Builder()}
}

func scanUnit(row squirrel.RowScanner) (*models.Unit, error) {
	unit := &models.Unit{}
	if err := row.Scan(&unit.ID, &unit.SemesterID, &unit.Code, &unit.Name, &unit.Description, &unit.CreatedAt); err != nil {
		return nil, err
	}
	return unit, nil
}

// Create inserts a unit under unit.SemesterID.
func (r *UnitRepository) Create(ctx context.Context, unit *models.Unit) (*models.Unit, error) {
	query, args, err := r.sb.Insert("units").
		Columns("semester_id", "code", "name", "description").
		Values(unit.SemesterID, unit.Code, unit.Name, unit.Description).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build create unit query: %w", err)
	}

	id, err := insertReturningID(ctx, r.db, query, args)
	if err != nil {
		if !errors.Is(err, ErrParentNotFound) {
			logger.Error().Err(err).Int64("semesterID", unit.SemesterID).Msg("Error executing create unit query")
		}
		return nil, fmt.Errorf("error creating unit: %w", err)
	}

	return r.GetByID(ctx, id)
}

// GetByID retrieves a unit by ID
func (r *UnitRepository) GetByID(ctx context.Context, id int64) (*models.Unit, error) {
	query, args, err := r.sb.Select(unitColumns...).
		From("units").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get unit query: %w", err)
	}

	unit, err := scanUnit(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error retrieving unit: %w", err)
	}
	return unit, nil
}

// ListBySemester retrieves the units of a semester ordered by name.
func (r *UnitRepository) ListBySemester(ctx context.Context, semesterID int64) ([]*models.Unit, error) {
	query, args, err := r.sb.Select(unitColumns...).
		From("units").
		Where(squirrel.Eq{"semester_id": semesterID}).
		OrderBy("name ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list units query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		logger.Error().Err(err).Int64("semesterID", semesterID).Msg("Error executing list units query")
		return nil, fmt.Errorf("error querying units: %w", err)
	}
	defer rows.Close()

	units := []*models.Unit{}
	for rows.Next() {
		unit, err := scanUnit(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning unit row: %w", err)
		}
		units = append(units, unit)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating unit rows: %w", err)
	}
	return units, nil
}

// Update replaces code, name and description.
func (r *UnitRepository) Update(ctx context.Context, unit *models.Unit) (*models.Unit, error) {
	query, args, err := r.sb.Update("units").
		SetMap(map[string]interface{}{
			"code":        unit.Code,
			"name":        unit.Name,
			"description": unit.Description,
		}).
		Where(squirrel.Eq{"id": unit.ID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build update unit query: %w", err)
	}

	if err := execAffectingOne(ctx, r.db, query, args); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, unit.ID)
}

// Delete removes a unit and its documents.
func (r *UnitRepository) Delete(ctx context.Context, id int64) error {
	query, args, err := r.sb.Delete("units").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete unit query: %w", err)
	}
	return execAffectingOne(ctx, r.db, query, args)
}
