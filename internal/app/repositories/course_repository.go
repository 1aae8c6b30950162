package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"

	"github.com/coursehub/coursehub/internal/app/models"
	"github.com/coursehub/coursehub/internal/db"
	"github.com/coursehub/coursehub/internal/pkg/helpers"
	"github.com/coursehub/coursehub/internal/pkg/logger"
)

var courseColumns = []string{"id", "name", "description", "created_at"}

// CourseRepository handles course database operations
type CourseRepository struct {
	db *db.DB
	sb squirrel.StatementBuilderType
}

// NewCourseRepository creates a new CourseRepository
func NewCourseRepository(store *db.DB) *CourseRepository {
	return &CourseRepository{
		db: store,
		sb: store.Builder(),
	}
}

func scanCourse(row squirrel.RowScanner) (*models.Course, error) {
	course := &models.Course{}
	if err := row.Scan(&course.ID, &course.Name, &course.Description, &course.CreatedAt); err != nil {
		return nil, err
	}
	return course, nil
}

// Create inserts a course and returns the stored row.
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) (*models.Course, error) {
	query, args, err := r.sb.Insert("courses").
		Columns("name", "description").
		Values(course.Name, course.Description).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create course SQL")
		return nil, fmt.Errorf("failed to build create course query: %w", err)
	}

	id, err := insertReturningID(ctx, r.db, query, args)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing create course query")
		return nil, fmt.Errorf("error creating course: %w", err)
	}

	return r.GetByID(ctx, id)
}

// GetByID retrieves a course by ID
func (r *CourseRepository) GetByID(ctx context.Context, id int64) (*models.Course, error) {
	query, args, err := r.sb.Select(courseColumns...).
		From("courses").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get course query: %w", err)
	}

	course, err := scanCourse(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		logger.Error().Err(err).Int64("courseID", id).Msg("Error scanning course row")
		return nil, fmt.Errorf("error retrieving course: %w", err)
	}
	return course, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern matches term literally anywhere in a column.
func containsPattern(term string) string {
	return "%" + likeEscaper.Replace(term) + "%"
}

// List retrieves courses ordered by name, optionally filtered and windowed.
func (r *CourseRepository) List(ctx context.Context, opts helpers.ListOptions) ([]*models.Course, error) {
	builder := r.sb.Select(courseColumns...).
		From("courses").
		OrderBy("name ASC", "id ASC")

	if opts.Search != "" {
		pattern := containsPattern(opts.Search)
		like := r.db.LikeOperator()
		builder = builder.Where(squirrel.Or{
			squirrel.Expr("name "+like+" ? ESCAPE '\\'", pattern),
			squirrel.Expr("description "+like+" ? ESCAPE '\\'", pattern),
		})
	}
	if opts.Limit > 0 {
		builder = builder.Limit(opts.Limit)
	}
	if opts.Offset > 0 {
		if opts.Limit == 0 {
			// SQLite requires a LIMIT clause before OFFSET.
			builder = builder.Limit(uint64(1<<62))
		}
		builder = builder.Offset(opts.Offset)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list courses query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list courses query")
		return nil, fmt.Errorf("error querying courses: %w", err)
	}
	defer rows.Close()

	courses := []*models.Course{}
	for rows.Next() {
		course, err := scanCourse(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning course row: %w", err)
		}
		courses = append(courses, course)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating course rows: %w", err)
	}

	return courses, nil
}

// Update replaces the mutable fields of a course.
func (r *CourseRepository) Update(ctx context.Context, course *models.Course) (*models.Course, error) {
	query, args, err := r.sb.Update("courses").
		SetMap(map[string]interface{}{
			"name":        course.Name,
			"description": course.Description,
		}).
		Where(squirrel.Eq{"id": course.ID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build update course query: %w", err)
	}

	if err := execAffectingOne(ctx, r.db, query, args); err != nil {
		if !errors.Is(err, ErrNotFound) {
			logger.Error().Err(err).Int64("courseID", course.ID).Msg("Error executing update course query")
		}
		return nil, err
	}

	return r.GetByID(ctx, course.ID)
}

// Delete removes a course; the store cascades to years, semesters, units and documents.
func (r *CourseRepository) Delete(ctx context.Context, id int64) error {
	query, args, err := r.sb.Delete("courses").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete course query: %w", err)
	}

	return execAffectingOne(ctx, r.db, query, args)
}
