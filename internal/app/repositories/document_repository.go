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

var documentColumns = []string{
	"d.id", "d.unit_id", "d.filename", "d.original_filename",
	"d.file_path", "d.file_size", "d.mime_type", "d.created_at",
}

// DocumentRepository handles document database operations
type DocumentRepository struct {
	db *db.DB
	sb squirrel.StatementBuilderType
}

// NewDocumentRepository creates a new DocumentRepository
func NewDocumentRepository(store *db.DB) *DocumentRepository {
	return &DocumentRepository{db: store, sb: store.Builder()}
}

func documentScanTargets(doc *models.Document) []interface{} {
	return []interface{}{
		&doc.ID, &doc.UnitID, &doc.Filename, &doc.OriginalFilename,
		&doc.FilePath, &doc.FileSize, &doc.MimeType, &doc.CreatedAt,
	}
}

func scanDocument(row squirrel.RowScanner) (*models.Document, error) {
	doc := &models.Document{}
	if err := row.Scan(documentScanTargets(doc)...); err != nil {
		return nil, err
	}
	return doc, nil
}

// Create records an uploaded file. Returns ErrParentNotFound when the unit is gone
// and ErrDuplicate when the generated filename is already taken.
func (r *DocumentRepository) Create(ctx context.Context, doc *models.Document) (*models.Document, error) {
	query, args, err := r.sb.Insert("documents").
		Columns("unit_id", "filename", "original_filename", "file_path", "file_size", "mime_type").
		Values(doc.UnitID, doc.Filename, doc.OriginalFilename, doc.FilePath, doc.FileSize, doc.MimeType).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build create document query: %w", err)
	}

	id, err := insertReturningID(ctx, r.db, query, args)
	if err != nil {
		logger.Error().Err(err).
			Int64("unitID", doc.UnitID).
			Str("filename", doc.Filename).
			Msg("Error executing create document query")
		return nil, fmt.Errorf("error creating document: %w", err)
	}

	return r.GetByID(ctx, id)
}

// GetByID retrieves a document by ID
func (r *DocumentRepository) GetByID(ctx context.Context, id int64) (*models.Document, error) {
	query, args, err := r.sb.Select(documentColumns...).
		From("documents d").
		Where(squirrel.Eq{"d.id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get document query: %w", err)
	}

	doc, err := scanDocument(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error retrieving document: %w", err)
	}
	return doc, nil
}

// ListByUnit retrieves the documents of a unit, newest first.
func (r *DocumentRepository) ListByUnit(ctx context.Context, unitID int64) ([]*models.Document, error) {
	query, args, err := r.sb.Select(documentColumns...).
		From("documents d").
		Where(squirrel.Eq{"d.unit_id": unitID}).
		OrderBy("d.created_at DESC", "d.id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list documents query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		logger.Error().Err(err).Int64("unitID", unitID).Msg("Error executing list documents query")
		return nil, fmt.Errorf("error querying documents: %w", err)
	}
	defer rows.Close()

	docs := []*models.Document{}
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning document row: %w", err)
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating document rows: %w", err)
	}
	return docs, nil
}

// ListWithHierarchy retrieves documents joined with their ancestors, newest first,
// restricted to scope.
func (r *DocumentRepository) ListWithHierarchy(ctx context.Context, scope models.Scope) ([]*models.DocumentWithHierarchy, error) {
	columns := append(append([]string{}, documentColumns...),
		"u.code", "u.name",
		"s.id", "s.name", "s.semester_number",
		"y.id", "y.name", "y.year_number",
		"c.id", "c.name",
	)

	builder := r.sb.Select(columns...).
		From("documents d").
		Join("units u ON u.id = d.unit_id").
		Join(joinSemesters).
		Join(joinYears).
		Join(joinCourses).
		OrderBy("d.created_at DESC", "d.id DESC")
	if filter := scopeFilter(scope); filter != nil {
		builder = builder.Where(filter)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list documents with hierarchy query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		logger.Error().Err(err).Str("scope", scope.Level()).Msg("Error executing list documents with hierarchy query")
		return nil, fmt.Errorf("error querying documents: %w", err)
	}
	defer rows.Close()

	docs := []*models.DocumentWithHierarchy{}
	for rows.Next() {
		doc := &models.DocumentWithHierarchy{}
		targets := append(documentScanTargets(&doc.Document),
			&doc.UnitCode, &doc.UnitName,
			&doc.SemesterID, &doc.SemesterName, &doc.SemesterNumber,
			&doc.YearID, &doc.YearName, &doc.YearNumber,
			&doc.CourseID, &doc.CourseName,
		)
		if err := rows.Scan(targets...); err != nil {
			return nil, fmt.Errorf("error scanning document row: %w", err)
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating document rows: %w", err)
	}
	return docs, nil
}

// CountByScope counts the documents reachable from scope.
func (r *DocumentRepository) CountByScope(ctx context.Context, scope models.Scope) (int64, error) {
	builder := r.sb.Select("COUNT(*)").
		From("documents d").
		Join("units u ON u.id = d.unit_id").
		Join(joinSemesters).
		Join(joinYears)
	if filter := scopeFilter(scope); filter != nil {
		builder = builder.Where(filter)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count documents query: %w", err)
	}

	var count int64
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting documents: %w", err)
	}
	return count, nil
}

// Delete removes a document row. The file on disk is the caller's concern.
func (r *DocumentRepository) Delete(ctx context.Context, id int64) error {
	query, args, err := r.sb.Delete("documents").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete document query: %w", err)
	}
	return execAffectingOne(ctx, r.db, query, args)
}
