package services

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/coursehub/coursehub/internal/app/migrations"
	"github.com/coursehub/coursehub/internal/app/models"
	"github.com/coursehub/coursehub/internal/app/repositories"
	"github.com/coursehub/coursehub/internal/db"
	"github.com/coursehub/coursehub/internal/pkg/filestorage"
	"github.com/coursehub/coursehub/internal/pkg/qaclient"
)

const samplePDF = "%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj\ntrailer\n<< /Root 1 0 R >>\n%%EOF\n"

type testEnv struct {
	repos   *repositories.Repositories
	storage *filestorage.LocalStorage
	root    string
	svc     *Services
	unit    *models.Unit
	course  *models.Course
}

func newTestStore(t *testing.T) *repositories.Repositories {
	t.Helper()
	ctx := context.Background()

	store, err := db.OpenSQLite(ctx, filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	_, err = migrations.NewMigrator(store, zerolog.Nop()).Migrate(ctx)
	require.NoError(t, err)
	return repositories.NewRepositories(store)
}

// newRemote starts a fake question-answering backend and returns a client for it.
func newRemote(t *testing.T, handler http.Handler, mutate func(*qaclient.Config)) *qaclient.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	transport := &http.Transport{}
	t.Cleanup(func() {
		transport.CloseIdleConnections()
		srv.Close()
	})

	cfg := qaclient.Config{
		BaseURL:       srv.URL,
		PingTimeout:   time.Second,
		AskTimeout:    time.Second,
		UploadTimeout: time.Second,
		DebugTimeout:  time.Second,
		HTTPClient:    &http.Client{Transport: transport},
	}
	if mutate != nil {
		mutate(&cfg)
	}
	client, err := qaclient.New(zerolog.Nop(), cfg)
	require.NoError(t, err)
	return client
}

func newTestEnv(t *testing.T, backend BackendClient) *testEnv {
	t.Helper()
	repos := newTestStore(t)

	root := filepath.Join(t.TempDir(), "uploads")
	storage, err := filestorage.NewLocalStorage(root)
	require.NoError(t, err)

	env := &testEnv{
		repos:   repos,
		storage: storage,
		root:    root,
		svc:     NewServices(repos, storage, backend, zerolog.Nop()),
	}

	ctx := context.Background()
	env.course, err = env.svc.Course.CreateCourse(ctx, &models.Course{Name: "CS"})
	require.NoError(t, err)
	year, err := env.svc.Year.CreateYear(ctx, &models.Year{CourseID: env.course.ID, YearNumber: 1, Name: "Year 1"})
	require.NoError(t, err)
	sem, err := env.svc.Semester.CreateSemester(ctx, &models.Semester{YearID: year.ID, SemesterNumber: 1, Name: "Sem 1"})
	require.NoError(t, err)
	env.unit, err = env.svc.Unit.CreateUnit(ctx, &models.Unit{SemesterID: sem.ID, Code: "CS101", Name: "Intro"})
	require.NoError(t, err)

	return env
}

// fileHeaders builds one multipart file header per {name, content} pair.
func fileHeaders(t *testing.T, files ...[2]string) []*multipart.FileHeader {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for _, f := range files {
		part, err := w.CreateFormFile("files", f[0])
		require.NoError(t, err)
		_, err = part.Write([]byte(f[1]))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&body, w.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })
	require.Len(t, form.File["files"], len(files))
	return form.File["files"]
}

// fakeBackend records calls and returns canned answers.
type fakeBackend struct {
	pingErr   error
	askErr    error
	askResult *qaclient.AskResult
	debugRaw  json.RawMessage
	debugErr  error

	pings      int
	asks       []qaclient.AskRequest
	debugQuery url.Values
}

func (f *fakeBackend) BaseURL() string { return "http://backend.test" }

func (f *fakeBackend) Ping(context.Context) error {
	f.pings++
	return f.pingErr
}

func (f *fakeBackend) Ask(_ context.Context, in qaclient.AskRequest) (*qaclient.AskResult, error) {
	f.asks = append(f.asks, in)
	if f.askErr != nil {
		return nil, f.askErr
	}
	if f.askResult != nil {
		return f.askResult, nil
	}
	return &qaclient.AskResult{Answer: "42", Sources: []qaclient.Source{}}, nil
}

func (f *fakeBackend) Upload(context.Context, qaclient.UploadRequest) (map[string]any, error) {
	return map[string]any{"message": "ok"}, nil
}

func (f *fakeBackend) Debug(_ context.Context, filters url.Values) (json.RawMessage, error) {
	f.debugQuery = filters
	return f.debugRaw, f.debugErr
}
