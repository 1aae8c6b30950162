package services

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coursehub/coursehub/internal/pkg/apperrors"
)

func TestBackendService_Status(t *testing.T) {
	up := NewBackendService(&fakeBackend{}, zerolog.Nop()).Status(context.Background())
	assert.True(t, up.Connected)
	assert.Equal(t, "http://backend.test", up.BackendURL)
	assert.Empty(t, up.Error)

	down := NewBackendService(&fakeBackend{pingErr: errors.New("Backend not reachable: 502")}, zerolog.Nop()).
		Status(context.Background())
	assert.False(t, down.Connected)
	assert.Equal(t, "Backend not reachable: 502", down.Error)
}

func TestBackendService_DebugForwardsOnlyHierarchyFilters(t *testing.T) {
	backend := &fakeBackend{debugRaw: []byte(`{"chunks":[]}`)}
	svc := NewBackendService(backend, zerolog.Nop())

	raw, err := svc.Debug(context.Background(), url.Values{
		"unitId":   {"3"},
		"courseId": {" 1 "},
		"yearId":   {""},
		"token":    {"secret"},
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"chunks":[]}`, string(raw))
	assert.Equal(t, url.Values{"unitId": {"3"}, "courseId": {"1"}}, backend.debugQuery)
}

func TestBackendService_DebugMirrorsRemoteStatus(t *testing.T) {
	remote := newRemote(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}), nil)
	svc := NewBackendService(remote, zerolog.Nop())

	_, err := svc.Debug(context.Background(), url.Values{})
	require.Error(t, err)
	assert.Equal(t, "Backend responded with status 404", err.Error())

	var ce *apperrors.CustomError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, http.StatusNotFound, ce.Status)
}

func TestBackendService_DebugTransportFailure(t *testing.T) {
	backend := &fakeBackend{debugErr: errors.Join(apperrors.ErrBackendFailed, errors.New("connection refused"))}
	_, err := NewBackendService(backend, zerolog.Nop()).Debug(context.Background(), url.Values{})
	assert.ErrorIs(t, err, apperrors.ErrBackendFailed)
	assert.Equal(t, "Failed to fetch debug information", err.Error())
}
