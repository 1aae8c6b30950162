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

var yearColumns = []string{"id", "course_id", "year_number", "name", "created_at"}

// YearRepository handles year database operations
type YearRepository struct {
	db *db.DB
	sb squirrel.StatementBuilderType
}

// NewYearRepository creates a new YearRepository
func NewYearRepository(store *db.DB) *YearRepository {
	return &YearRepository{db: store, sb: store.Builder()}
}

func scanYear(row squirrel.RowScanner) (*models.Year, error) {
	year := &models.Year{}
	if err := row.Scan(&year.ID, &year.CourseID, &year.YearNumber, &year.Name, &year.CreatedAt); err != nil {
		return nil, err
	}
	return year, nil
}

// Create inserts a year under year.CourseID. Returns ErrParentNotFound when the course does not exist.
func (r *YearRepository) Create(ctx context.Context, year *models.Year) (*models.Year, error) {
	query, args, err := r.sb.Insert("years").
		Columns("course_id", "year_number", "name").
		Values(year.CourseID, year.YearNumber, year.Name).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build create year query: %w", err)
	}

	id, err := insertReturningID(ctx, r.db, query, args)
	if err != nil {
		if !errors.Is(err, ErrParentNotFound) {
			logger.Error().Err(err).Int64("courseID", year.CourseID).Msg("Error executing create year query")
		}
		return nil, fmt.Errorf("error creating year: %w", err)
	}

	return r.GetByID(ctx, id)
}

// GetByID retrieves a year by ID
func (r *YearRepository) GetByID(ctx context.Context, id int64) (*models.Year, error) {
	query, args, err := r.sb.Select(yearColumns...).
		From("years").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get year query: %w", err)
	}

	year, err := scanYear(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error retrieving year: %w", err)
	}
	return year, nil
}

// ListByCourse retrieves the years of a course ordered by year number.
func (r *YearRepository) ListByCourse(ctx context.Context, courseID int64) ([]*models.Year, error) {
	query, args, err := r.sb.Select(yearColumns...).
		From("years").
		Where(squirrel.Eq{"course_id": courseID}).
		OrderBy("year_number ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list years query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		logger.Error().Err(err).Int64("courseID", courseID).Msg("Error executing list years query")
		return nil, fmt.Errorf("error querying years: %w", err)
	}
	defer rows.Close()

	years := []*models.Year{}
	for rows.Next() {
		year, err := scanYear(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning year row: %w", err)
		}
		years = append(years, year)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating year rows: %w", err)
	}
	return years, nil
}

// Update replaces year_number and name. The owning course never changes.
func (r *YearRepository) Update(ctx context.Context, year *models.Year) (*models.Year, error) {
	query, args, err := r.sb.Update("years").
		Set("year_number", year.YearNumber).
		Set("name", year.Name).
		Where(squirrel.Eq{"id": year.ID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build update year query: %w", err)
	}

	if err := execAffectingOne(ctx, r.db, query, args); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, year.ID)
}

// Delete removes a year and, through the store's cascade, everything below it.
func (r *YearRepository) Delete(ctx context.Context, id int64) error {
	query, args, err := r.sb.Delete("years").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete year query: %w", err)
	}
	return execAffectingOne(ctx, r.db, query, args)
}
