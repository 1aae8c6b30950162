package seed

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	appModels "github.com/coursehub/coursehub/internal/app/models"
	appRepos "github.com/coursehub/coursehub/internal/app/repositories"
	"github.com/coursehub/coursehub/internal/pkg/helpers"
)

// SeedDemoData creates a minimal CS -> Year 1 -> Sem 1 -> CS101 hierarchy.
// It does nothing when any course already exists.
func SeedDemoData(ctx context.Context, repos *appRepos.Repositories, lgr zerolog.Logger) error {
	existing, err := repos.CourseRepository.List(ctx, helpers.ListOptions{Limit: 1})
	if err != nil {
		return fmt.Errorf("failed to check existing courses: %w", err)
	}
	if len(existing) > 0 {
		lgr.Info().Msg("Courses already present, skipping demo seed")
		return nil
	}

	lgr.Info().Msg("Creating demo hierarchy...")

	course, err := repos.CourseRepository.Create(ctx, &appModels.Course{
		Name:        "CS",
		Description: "Computer Science",
	})
	if err != nil {
		return fmt.Errorf("failed to seed course: %w", err)
	}

	year, err := repos.YearRepository.Create(ctx, &appModels.Year{
		CourseID:   course.ID,
		YearNumber: 1,
		Name:       "Year 1",
	})
	if err != nil {
		return fmt.Errorf("failed to seed year: %w", err)
	}

	semester, err := repos.SemesterRepository.Create(ctx, &appModels.Semester{
		YearID:         year.ID,
		SemesterNumber: 1,
		Name:           "Sem 1",
	})
	if err != nil {
		return fmt.Errorf("failed to seed semester: %w", err)
	}

	unit, err := repos.UnitRepository.Create(ctx, &appModels.Unit{
		SemesterID:  semester.ID,
		Code:        "CS101",
		Name:        "CS101",
		Description: "Introduction to Computer Science",
	})
	if err != nil {
		return fmt.Errorf("failed to seed unit: %w", err)
	}

	lgr.Info().Int64("courseId", course.ID).Int64("unitId", unit.ID).Msg("Demo hierarchy created")
	return nil
}
