package repositories

import (
	"github.com/Masterminds/squirrel"

	"github.com/coursehub/coursehub/internal/app/models"
)

// Join clauses for the units → semesters → years → courses chain shared by scoped queries.
// Callers select from a table aliased so that "u", "s" and "y" resolve.
const (
	joinSemesters = "semesters s ON s.id = u.semester_id"
	joinYears     = "years y ON y.id = s.year_id"
	joinCourses   = "courses c ON c.id = y.course_id"
)

// scopeFilter restricts a hierarchy join to the most specific level set on scope.
// An empty scope yields nil, meaning no restriction.
func scopeFilter(scope models.Scope) squirrel.Sqlizer {
	switch {
	case scope.UnitID != nil:
		return squirrel.Eq{"u.id": *scope.UnitID}
	case scope.SemesterID != nil:
		return squirrel.Eq{"s.id": *scope.SemesterID}
	case scope.YearID != nil:
		return squirrel.Eq{"y.id": *scope.YearID}
	case scope.CourseID != nil:
		return squirrel.Eq{"y.course_id": *scope.CourseID}
	default:
		return nil
	}
}
