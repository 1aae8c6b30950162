package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/coursehub/coursehub/internal/app/controllers"
)

// Controllers groups the handlers mounted by SetupRouter.
type Controllers struct {
	Course   *controllers.CourseController
	Year     *controllers.YearController
	Semester *controllers.SemesterController
	Unit     *controllers.UnitController
	Document *controllers.DocumentController
	Upload   *controllers.UploadController
	Ask      *controllers.AskController
	Backend  *controllers.BackendController
	Health   *controllers.HealthController
}

// SetupRouter configures all application routes
func SetupRouter(router *gin.Engine, c Controllers) {
	router.GET("/ping", c.Health.Ping)

	api := router.Group("/api")
	api.GET("/health", c.Health.Health)

	// --- Hierarchy ---
	courses := api.Group("/courses")
	{
		courses.GET("", c.Course.ListCourses)
		courses.POST("", c.Course.CreateCourse)
		courses.GET("/:id", c.Course.GetCourse)
		courses.PUT("/:id", c.Course.UpdateCourse)
		courses.DELETE("/:id", c.Course.DeleteCourse)
		courses.GET("/:id/years", c.Course.ListYears)
		courses.POST("/:id/years", c.Course.CreateYear)
	}

	years := api.Group("/years")
	{
		years.GET("/:id", c.Year.GetYear)
		years.PUT("/:id", c.Year.UpdateYear)
		years.DELETE("/:id", c.Year.DeleteYear)
		years.GET("/:id/semesters", c.Year.ListSemesters)
		years.POST("/:id/semesters", c.Year.CreateSemester)
	}

	semesters := api.Group("/semesters")
	{
		semesters.GET("/:id", c.Semester.GetSemester)
		semesters.PUT("/:id", c.Semester.UpdateSemester)
		semesters.DELETE("/:id", c.Semester.DeleteSemester)
		semesters.GET("/:id/units", c.Semester.ListUnits)
		semesters.POST("/:id/units", c.Semester.CreateUnit)
	}

	units := api.Group("/units")
	{
		units.GET("/:id", c.Unit.GetUnit)
		units.PUT("/:id", c.Unit.UpdateUnit)
		units.DELETE("/:id", c.Unit.DeleteUnit)
		units.GET("/:id/documents", c.Unit.ListDocuments)
	}

	documents := api.Group("/documents")
	{
		documents.GET("", c.Document.ListDocuments)
		documents.GET("/:id", c.Document.GetDocument)
		documents.DELETE("/:id", c.Document.DeleteDocument)
	}

	// --- Remote question-answering backend ---
	api.POST("/upload", c.Upload.Upload)
	api.POST("/ask", c.Ask.Ask)
	api.GET("/debug", c.Backend.Debug)
	api.GET("/backend/status", c.Backend.Status)
}
