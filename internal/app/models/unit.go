package models

import "time"

// Unit belongs to exactly one Semester and is where documents are attached.
type Unit struct {
	ID          int64     `json:"id" db:"id"`
	SemesterID  int64     `json:"semester_id" db:"semester_id"`
	Code        string    `json:"code" db:"code"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}
