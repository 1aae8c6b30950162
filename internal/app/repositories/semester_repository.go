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

var semesterColumns = []string{"id", "year_id", "semester_number", "name", "created_at"}

// SemesterRepository handles semester database operations
type SemesterRepository struct {
	db *db.DB
	sb squirrel.StatementBuilderType
}

// NewSemesterRepository creates a new SemesterRepository
func NewSemesterRepository(store *db.DB) *SemesterRepository {
	return &SemesterRepository{db: store, sb: store.Builder()}
}

func scanSemester(row squirrel.RowScanner) (*models.Semester, error) {
	semester := &models.Semester{}
	err := row.Scan(&semester.ID, &semester.YearID, &semester.SemesterNumber, &semester.Name, &semester.CreatedAt)
	if err != nil {
		return nil, err
	}
	return semester, nil
}

// Create inserts a semester under semester.YearID.
func (r *SemesterRepository) Create(ctx context.Context, semester *models.Semester) (*models.Semester, error) {
	query, args, err := r.sb.Insert("semesters").
		Columns("year_id", "semester_number", "name").
		Values(semester.YearID, semester.SemesterNumber, semester.Name).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build create semester query: %w", err)
	}

	id, err := insertReturningID(ctx, r.db, query, args)
	if err != nil {
		if !errors.Is(err, ErrParentNotFound) {
			logger.Error().Err(err).Int64("yearID", semester.YearID).Msg("Error executing create semester query")
		}
		return nil, fmt.Errorf("error creating semester: %w", err)
	}

	return r.GetByID(ctx, id)
}

// GetByID retrieves a semester by ID
func (r *SemesterRepository) GetByID(ctx context.Context, id int64) (*models.Semester, error) {
	query, args, err := r.sb.Select(semesterColumns...).
		From("semesters").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get semester query: %w", err)
	}

	semester, err := scanSemester(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error retrieving semester: %w", err)
	}
	return semester, nil
}

// ListByYear retrieves the semesters of a year ordered by semester number.
func (r *SemesterRepository) ListByYear(ctx context.Context, yearID int64) ([]*models.Semester, error) {
	query, args, err := r.sb.Select(semesterColumns...).
		From("semesters").
		Where(squirrel.Eq{"year_id": yearID}).
		OrderBy("semester_number ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list semesters query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying semesters: %w", err)
	}
	defer rows.Close()

	semesters := []*models.Semester{}
	for rows.Next() {
		semester, err := scanSemester(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning semester row: %w", err)
		}
		semesters = append(semesters, semester)
	}
	return semesters, rows.Err()
}

// Update replaces semester_number and name.
func (r *SemesterRepository) Update(ctx context.Context, semester *models.Semester) (*models.Semester, error) {
	query, args, err := r.sb.Update("semesters").
		SetMap(map[string]interface{}{
			"semester_number": semester.SemesterNumber,
			"name":            semester.Name,
		}).
		Where(squirrel.Eq{"id": semester.ID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build update semester query: %w", err)
	}

	if err := execAffectingOne(ctx, r.db, query, args); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, semester.ID)
}

// Delete removes a semester and its descendants.
func (r *SemesterRepository) Delete(ctx context.Context, id int64) error {
	query, args, err := r.sb.Delete("semesters").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete semester query: %w", err)
	}
	return execAffectingOne(ctx, r.db, query, args)
}
