package dto

// CourseRequest is the body of course create and update calls
type CourseRequest struct {
	Name        string `json:"name" binding:"required" example:"Computer Science"`
	Description string `json:"description" example:"Undergraduate programme"`
}

// YearRequest is the body of year create and update calls
type YearRequest struct {
	YearNumber int    `json:"year_number" binding:"required,min=1" example:"1"`
	Name       string `json:"name" binding:"required" example:"Year 1"`
}

// SemesterRequest is the body of semester create and update calls
type SemesterRequest struct {
	SemesterNumber int    `json:"semester_number" binding:"required,min=1" example:"1"`
	Name           string `json:"name" binding:"required" example:"Sem 1"`
}

// UnitRequest is the body of unit create and update calls
type UnitRequest struct {
	Code        string `json:"code" binding:"required" example:"CS101"`
	Name        string `json:"name" binding:"required" example:"Introduction to Programming"`
	Description string `json:"description" example:"Fundamentals of programming in Go"`
}
