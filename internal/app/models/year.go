package models

import "time"

// Year belongs to exactly one Course.
type Year struct {
	ID         int64     `json:"id" db:"id"`
	CourseID   int64     `json:"course_id" db:"course_id"`
	YearNumber int       `json:"year_number" db:"year_number"`
	Name       string    `json:"name" db:"name"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}
