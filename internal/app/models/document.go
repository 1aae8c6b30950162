package models

import "time"

// Document is an uploaded PDF attached to a Unit. Filename is the generated
// on-disk name; OriginalFilename is what the client sent.
type Document struct {
	ID               int64     `json:"id" db:"id"`
	UnitID           int64     `json:"unit_id" db:"unit_id"`
	Filename         string    `json:"filename" db:"filename"`
	OriginalFilename string    `json:"original_filename" db:"original_filename"`
	FilePath         string    `json:"file_path" db:"file_path"`
	FileSize         int64     `json:"file_size" db:"file_size"`
	MimeType         string    `json:"mime_type" db:"mime_type"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
}

// DocumentWithHierarchy is a Document joined with the names of its ancestors.
type DocumentWithHierarchy struct {
	Document
	UnitCode       string `json:"unit_code"`
	UnitName       string `json:"unit_name"`
	SemesterID     int64  `json:"semester_id"`
	SemesterName   string `json:"semester_name"`
	SemesterNumber int    `json:"semester_number"`
	YearID         int64  `json:"year_id"`
	YearName       string `json:"year_name"`
	YearNumber     int    `json:"year_number"`
	CourseID       int64  `json:"course_id"`
	CourseName     string `json:"course_name"`
}
