package repositories

import (
	"context"
	"fmt"

	"github.com/coursehub/coursehub/internal/db"
	"github.com/coursehub/coursehub/internal/pkg/dberrors"
)

// execAffectingOne runs an UPDATE/DELETE and maps "no row touched" to ErrNotFound.
func execAffectingOne(ctx context.Context, store *db.DB, query string, args []interface{}) error {
	result, err := store.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("error executing statement: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error reading affected rows: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// insertReturningID runs an INSERT ... RETURNING id, translating constraint
// violations into repository errors.
func insertReturningID(ctx context.Context, store *db.DB, query string, args []interface{}) (int64, error) {
	var id int64
	if err := store.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		switch {
		case dberrors.IsForeignKeyViolation(err):
			return 0, ErrParentNotFound
		case dberrors.IsUniqueViolation(err):
			return 0, ErrDuplicate
		}
		return 0, fmt.Errorf("error inserting row: %w", err)
	}
	return id, nil
}
