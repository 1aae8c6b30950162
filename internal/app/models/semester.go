package models

import "time"

// Semester belongs to exactly one Year.
type Semester struct {
	ID             int64     `json:"id" db:"id"`
	YearID         int64     `json:"year_id" db:"year_id"`
	SemesterNumber int       `json:"semester_number" db:"semester_number"`
	Name           string    `json:"name" db:"name"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}
