package models

// UnitHierarchy is the resolved ancestor chain of a Unit. It is forwarded to
// the question-answering backend as upload metadata.
type UnitHierarchy struct {
	CourseID     int64  `json:"course_id"`
	CourseName   string `json:"course_name"`
	YearID       int64  `json:"year_id"`
	YearName     string `json:"year_name"`
	SemesterID   int64  `json:"semester_id"`
	SemesterName string `json:"semester_name"`
	UnitID       int64  `json:"unit_id"`
	UnitName     string `json:"unit_name"`
}

// Scope identifies which level of the hierarchy a query is restricted to.
// The most specific non-nil id wins.
type Scope struct {
	CourseID   *int64 `json:"courseId,omitempty"`
	YearID     *int64 `json:"yearId,omitempty"`
	SemesterID *int64 `json:"semesterId,omitempty"`
	UnitID     *int64 `json:"unitId,omitempty"`
}

// Level names the most specific level set on the scope, or "" when unrestricted.
func (s Scope) Level() string {
	switch {
	case s.UnitID != nil:
		return "unit"
	case s.SemesterID != nil:
		return "semester"
	case s.YearID != nil:
		return "year"
	case s.CourseID != nil:
		return "course"
	default:
		return ""
	}
}
