package repositories

import (
	"github.com/coursehub/coursehub/internal/db"
)

// Repositories holds all the repository instances
type Repositories struct {
	CourseRepository    *CourseRepository
	YearRepository      *YearRepository
	SemesterRepository  *SemesterRepository
	UnitRepository      *UnitRepository
	DocumentRepository  *DocumentRepository
	HierarchyRepository *HierarchyRepository
}

// NewRepositories initializes all repositories over one store handle.
func NewRepositories(store *db.DB) *Repositories {
	return &Repositories{
		CourseRepository:    NewCourseRepository(store),
		YearRepository:      NewYearRepository(store),
		SemesterRepository:  NewSemesterRepository(store),
		UnitRepository:      NewUnitRepository(store),
		DocumentRepository:  NewDocumentRepository(store),
		HierarchyRepository: NewHierarchyRepository(store),
	}
}
