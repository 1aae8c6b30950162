package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/coursehub/coursehub/internal/app/models"
	"github.com/coursehub/coursehub/internal/db"
)

// HierarchyRepository answers questions that span several levels of the tree.
type HierarchyRepository struct {
	db *db.DB
	sb squirrel.StatementBuilderType
}

// NewHierarchyRepository creates a new HierarchyRepository
func NewHierarchyRepository(store *db.DB) *HierarchyRepository {
	return &HierarchyRepository{db: store, sb: store.Builder()}
}

// GetUnitHierarchy resolves the Unit → Semester → Year → Course chain in one query.
func (r *HierarchyRepository) GetUnitHierarchy(ctx context.Context, unitID int64) (*models.UnitHierarchy, error) {
	query, args, err := r.sb.Select(
		"c.id", "c.name",
		"y.id", "y.name",
		"s.id", "s.name",
		"u.id", "u.name",
	).
		From("units u").
		Join(joinSemesters).
		Join(joinYears).
		Join(joinCourses).
		Where(squirrel.Eq{"u.id": unitID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build unit hierarchy query: %w", err)
	}

	h := &models.UnitHierarchy{}
	err = r.db.QueryRowContext(ctx, query, args...).Scan(
		&h.CourseID, &h.CourseName,
		&h.YearID, &h.YearName,
		&h.SemesterID, &h.SemesterName,
		&h.UnitID, &h.UnitName,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error resolving unit hierarchy: %w", err)
	}
	return h, nil
}

// UnitIDsInScope lists the ids of every unit reachable from scope. It is used to
// find upload directories before a cascading delete removes the rows.
func (r *HierarchyRepository) UnitIDsInScope(ctx context.Context, scope models.Scope) ([]int64, error) {
	builder := r.sb.Select("u.id").
		From("units u").
		Join(joinSemesters).
		Join(joinYears).
		OrderBy("u.id")
	if filter := scopeFilter(scope); filter != nil {
		builder = builder.Where(filter)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build unit ids query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying unit ids: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("error scanning unit id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
