package services

import (
	"context"
	"encoding/json"
	"net/url"

	"github.com/rs/zerolog"

	"github.com/coursehub/coursehub/internal/app/repositories"
	"github.com/coursehub/coursehub/internal/pkg/apperrors"
	"github.com/coursehub/coursehub/internal/pkg/filestorage"
	"github.com/coursehub/coursehub/internal/pkg/qaclient"
)

// BackendClient is the subset of the remote question-answering client the services use.
type BackendClient interface {
	BaseURL() string
	Ping(ctx context.Context) error
	Ask(ctx context.Context, in qaclient.AskRequest) (*qaclient.AskResult, error)
	Upload(ctx context.Context, in qaclient.UploadRequest) (map[string]any, error)
	Debug(ctx context.Context, filters url.Values) (json.RawMessage, error)
}

// Services bundles every service the controllers depend on.
type Services struct {
	Course   CourseService
	Year     YearService
	Semester SemesterService
	Unit     UnitService
	Document DocumentService
	Upload   UploadService
	Ask      AskService
	Backend  BackendService
}

// NewServices wires the services over the repositories, file storage and backend client.
func NewServices(repos *repositories.Repositories, storage filestorage.FileStorage, backend BackendClient, log zerolog.Logger) *Services {
	cleaner := &unitDirCleaner{
		hierarchy: repos.HierarchyRepository,
		storage:   storage,
		log:       log,
	}

	return &Services{
		Course:   NewCourseService(repos.CourseRepository, cleaner),
		Year:     NewYearService(repos.YearRepository, repos.CourseRepository, cleaner),
		Semester: NewSemesterService(repos.SemesterRepository, repos.YearRepository, cleaner),
		Unit:     NewUnitService(repos.UnitRepository, repos.SemesterRepository, cleaner),
		Document: NewDocumentService(repos.DocumentRepository, repos.UnitRepository, storage, log),
		Upload:   NewUploadService(repos.UnitRepository, repos.DocumentRepository, repos.HierarchyRepository, storage, backend, log),
		Ask:      NewAskService(repos.DocumentRepository, backend, log),
		Backend:  NewBackendService(backend, log),
	}
}

// internalError keeps the cause for logs while showing the caller a fixed message.
func internalError(err error, message string) error {
	return apperrors.NewCustomError(err, message)
}
