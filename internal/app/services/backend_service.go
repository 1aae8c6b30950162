package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/rs/zerolog"

	"github.com/coursehub/coursehub/internal/app/models/dto"
	"github.com/coursehub/coursehub/internal/pkg/apperrors"
	"github.com/coursehub/coursehub/internal/pkg/qaclient"
)

// debugFilters are the only query parameters forwarded to the backend's /debug.
var debugFilters = []string{"unitId", "courseId", "yearId", "semesterId"}

// BackendService exposes backend liveness and diagnostics.
type BackendService interface {
	Status(ctx context.Context) dto.BackendStatusResponse
	Debug(ctx context.Context, query url.Values) (json.RawMessage, error)
}

type backendServiceImpl struct {
	backend BackendClient
	log     zerolog.Logger
}

// NewBackendService creates a new backend service instance
func NewBackendService(backend BackendClient, log zerolog.Logger) BackendService {
	return &backendServiceImpl{backend: backend, log: log}
}

// Status probes the backend. It never fails; the error is part of the report.
func (s *backendServiceImpl) Status(ctx context.Context) dto.BackendStatusResponse {
	status := dto.BackendStatusResponse{BackendURL: s.backend.BaseURL()}
	if err := s.backend.Ping(ctx); err != nil {
		status.Error = err.Error()
		return status
	}
	status.Connected = true
	return status
}

// Debug forwards the hierarchy filters to the backend's diagnostic endpoint.
func (s *backendServiceImpl) Debug(ctx context.Context, query url.Values) (json.RawMessage, error) {
	filters := url.Values{}
	for _, key := range debugFilters {
		if v := strings.TrimSpace(query.Get(key)); v != "" {
			filters.Set(key, v)
		}
	}

	raw, err := s.backend.Debug(ctx, filters)
	if err == nil {
		return raw, nil
	}

	s.log.Warn().Err(err).Msg("Error in debug endpoint")
	var opErr *qaclient.OperationError
	switch {
	case errors.As(err, &opErr) && opErr.Code == qaclient.OperationErrorStatus:
		return nil, apperrors.NewCustomError(err, fmt.Sprintf("Backend responded with status %d", opErr.StatusCode)).
			WithStatus(opErr.StatusCode)
	case errors.Is(err, apperrors.ErrBackendTimeout):
		return nil, apperrors.NewCustomError(err, "Debug request to the backend API timed out")
	case errors.Is(err, apperrors.ErrBackendFailed):
		return nil, apperrors.NewCustomError(err, "Failed to fetch debug information").WithDetails(err.Error())
	default:
		return nil, apperrors.NewCustomError(err, "Failed to fetch debug information")
	}
}
