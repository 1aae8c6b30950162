package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coursehub/coursehub/internal/app/models"
	"github.com/coursehub/coursehub/internal/app/models/dto"
	"github.com/coursehub/coursehub/internal/pkg/apperrors"
	"github.com/coursehub/coursehub/internal/pkg/qaclient"
)

func int64Ptr(v int64) *int64 { return &v }

// withDocument records one document for the env's unit without going through upload.
func withDocument(t *testing.T, env *testEnv) {
	t.Helper()
	_, err := env.repos.DocumentRepository.Create(context.Background(), &models.Document{
		UnitID:           env.unit.ID,
		Filename:         "gen-a.pdf",
		OriginalFilename: "a.pdf",
		FilePath:         "a.pdf",
	})
	require.NoError(t, err)
}

func TestAsk_RequiresQuestion(t *testing.T) {
	env := newTestEnv(t, &fakeBackend{})

	_, err := env.svc.Ask.Ask(context.Background(), dto.AskRequest{Question: "   "})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	assert.Equal(t, msgQuestionMissing, err.Error())
}

func TestAsk_NoDocumentsSkipsQuestion(t *testing.T) {
	backend := &fakeBackend{}
	env := newTestEnv(t, backend)

	resp, err := env.svc.Ask.Ask(context.Background(), dto.AskRequest{Question: "What is Go?"})
	require.NoError(t, err)
	assert.Equal(t, msgNoDocuments, resp.Answer)
	assert.NotNil(t, resp.Sources)
	assert.Empty(t, resp.Sources)
	assert.Equal(t, 1, backend.pings)
	assert.Empty(t, backend.asks)

	withDocument(t, env)
	resp, err = env.svc.Ask.Ask(context.Background(), dto.AskRequest{Question: "What is Go?", CourseID: int64Ptr(999)})
	require.NoError(t, err)
	assert.Equal(t, msgNoDocuments, resp.Answer)
	assert.Equal(t, 2, backend.pings)
	assert.Empty(t, backend.asks)
}

func TestAsk_BackendDownWithoutDocuments(t *testing.T) {
	backend := &fakeBackend{pingErr: errors.New("tunnel gone")}
	env := newTestEnv(t, backend)

	resp, err := env.svc.Ask.Ask(context.Background(), dto.AskRequest{Question: "q"})
	require.Error(t, err)
	assert.Nil(t, resp)
	assert.ErrorIs(t, err, apperrors.ErrBackendUnavailable)
	assert.Equal(t, msgCannotReach, err.Error())
	assert.Equal(t, 1, backend.pings)
	assert.Empty(t, backend.asks)
}

func TestAsk_ForwardsFilters(t *testing.T) {
	backend := &fakeBackend{askResult: &qaclient.AskResult{
		Answer:  "Goroutines are lightweight threads.",
		Sources: []qaclient.Source{{Title: "week1.pdf", Excerpt: "goroutine"}},
	}}
	env := newTestEnv(t, backend)
	withDocument(t, env)

	resp, err := env.svc.Ask.Ask(context.Background(), dto.AskRequest{
		Question: "  goroutines?  ",
		CourseID: int64Ptr(env.course.ID),
		YearID:   int64Ptr(0),
		UnitID:   int64Ptr(env.unit.ID),
	})
	require.NoError(t, err)

	assert.Equal(t, "Goroutines are lightweight threads.", resp.Answer)
	assert.Equal(t, []dto.SourceInfo{{Title: "week1.pdf", Excerpt: "goroutine"}}, resp.Sources)
	assert.Equal(t, "Searched documents from a specific unit.", resp.Context)

	require.Len(t, backend.asks, 1)
	sent := backend.asks[0]
	assert.Equal(t, "goroutines?", sent.Question)
	require.NotNil(t, sent.UnitID)
	assert.Equal(t, env.unit.ID, *sent.UnitID)
	require.NotNil(t, sent.CourseID)
	assert.Nil(t, sent.YearID, "non-positive ids are dropped")
	assert.Nil(t, sent.SemesterID)
}

func TestAsk_UnscopedContext(t *testing.T) {
	env := newTestEnv(t, &fakeBackend{})
	withDocument(t, env)

	resp, err := env.svc.Ask.Ask(context.Background(), dto.AskRequest{Question: "anything"})
	require.NoError(t, err)
	assert.Equal(t, "Searched all available documents.", resp.Context)
}

func TestAsk_BackendErrors(t *testing.T) {
	cases := []struct {
		name        string
		backend     *fakeBackend
		wantErr     error
		wantMessage string
		wantDetails bool
	}{
		{
			name:        "probe fails",
			backend:     &fakeBackend{pingErr: errors.New("Backend not reachable: 502")},
			wantErr:     apperrors.ErrBackendUnavailable,
			wantMessage: msgCannotReach,
			wantDetails: true,
		},
		{
			name:        "timeout",
			backend:     &fakeBackend{askErr: fmt.Errorf("backend ask timed out: %w", apperrors.ErrBackendTimeout)},
			wantErr:     apperrors.ErrBackendTimeout,
			wantMessage: msgAskTimedOut,
			wantDetails: true,
		},
		{
			name:        "remote failure",
			backend:     &fakeBackend{askErr: fmt.Errorf("Backend ask failed: 500: %w", apperrors.ErrBackendFailed)},
			wantErr:     apperrors.ErrBackendFailed,
			wantMessage: msgAskFailed,
			wantDetails: true,
		},
		{
			name:        "malformed",
			backend:     &fakeBackend{askErr: fmt.Errorf("decode ask response failed: %w", apperrors.ErrBackendMalformed)},
			wantErr:     apperrors.ErrBackendMalformed,
			wantMessage: msgAskMalformed,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			env := newTestEnv(t, tc.backend)
			withDocument(t, env)

			_, err := env.svc.Ask.Ask(context.Background(), dto.AskRequest{Question: "q"})
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.wantErr)
			assert.Equal(t, tc.wantMessage, err.Error())

			var ce *apperrors.CustomError
			require.ErrorAs(t, err, &ce)
			if tc.wantDetails {
				assert.NotEmpty(t, ce.Details)
			}
		})
	}
}
