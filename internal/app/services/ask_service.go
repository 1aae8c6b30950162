package services

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"github.com/coursehub/coursehub/internal/app/models"
	"github.com/coursehub/coursehub/internal/app/models/dto"
	"github.com/coursehub/coursehub/internal/app/repositories"
	"github.com/coursehub/coursehub/internal/pkg/apperrors"
	"github.com/coursehub/coursehub/internal/pkg/qaclient"
)

const (
	msgNoDocuments     = "There are no documents uploaded for the selected criteria. Please upload documents first."
	msgCannotReach     = "Cannot reach the backend API. The ngrok tunnel may have expired."
	msgAskTimedOut     = "The request to the backend API timed out. Please try again."
	msgAskFailed       = "Failed to process question with backend API"
	msgAskMalformed    = "Failed to process question"
	msgQuestionMissing = "Question is required"
)

// AskService forwards questions to the backend after checking there is something to search.
type AskService interface {
	Ask(ctx context.Context, req dto.AskRequest) (*dto.AskResponse, error)
}

type askServiceImpl struct {
	documentRepo *repositories.DocumentRepository
	backend      BackendClient
	log          zerolog.Logger
}

// NewAskService creates a new ask service instance
func NewAskService(documentRepo *repositories.DocumentRepository, backend BackendClient, log zerolog.Logger) AskService {
	return &askServiceImpl{
		documentRepo: documentRepo,
		backend:      backend,
		log:          log.With().Str("service", "ask").Logger(),
	}
}

// scopeFromRequest keeps positive ids only; the repository picks the most specific level.
func scopeFromRequest(req dto.AskRequest) models.Scope {
	keep := func(id *int64) *int64 {
		if id == nil || *id <= 0 {
			return nil
		}
		return id
	}
	return models.Scope{
		CourseID:   keep(req.CourseID),
		YearID:     keep(req.YearID),
		SemesterID: keep(req.SemesterID),
		UnitID:     keep(req.UnitID),
	}
}

func searchContext(scope models.Scope) string {
	if level := scope.Level(); level != "" {
		return "Searched documents from a specific " + level + "."
	}
	return "Searched all available documents."
}

// Ask probes the backend, then answers a question. Without matching documents
// the question itself is never forwarded.
func (s *askServiceImpl) Ask(ctx context.Context, req dto.AskRequest) (*dto.AskResponse, error) {
	question := strings.TrimSpace(req.Question)
	if question == "" {
		return nil, apperrors.NewValidationError(msgQuestionMissing)
	}
	scope := scopeFromRequest(req)

	if err := s.backend.Ping(ctx); err != nil {
		s.log.Warn().Err(err).Msg("Backend ping failed")
		return nil, apperrors.NewCustomError(apperrors.ErrBackendUnavailable, msgCannotReach).WithDetails(err.Error())
	}

	count, err := s.documentRepo.CountByScope(ctx, scope)
	if err != nil {
		return nil, internalError(err, msgAskMalformed)
	}
	if count == 0 {
		return &dto.AskResponse{Answer: msgNoDocuments, Sources: []dto.SourceInfo{}}, nil
	}

	result, err := s.backend.Ask(ctx, qaclient.AskRequest{
		Question:   question,
		CourseID:   scope.CourseID,
		YearID:     scope.YearID,
		SemesterID: scope.SemesterID,
		UnitID:     scope.UnitID,
	})
	if err != nil {
		s.log.Error().Err(err).Str("scope", scope.Level()).Msg("Error calling backend API")
		switch {
		case errors.Is(err, apperrors.ErrBackendTimeout):
			return nil, apperrors.NewCustomError(apperrors.ErrBackendTimeout, msgAskTimedOut).WithDetails(err.Error())
		case errors.Is(err, apperrors.ErrBackendMalformed):
			return nil, apperrors.NewCustomError(err, msgAskMalformed)
		default:
			return nil, apperrors.NewCustomError(apperrors.ErrBackendFailed, msgAskFailed).WithDetails(err.Error())
		}
	}

	sources := make([]dto.SourceInfo, 0, len(result.Sources))
	for _, src := range result.Sources {
		sources = append(sources, dto.SourceInfo{Title: src.Title, Excerpt: src.Excerpt})
	}

	return &dto.AskResponse{
		Answer:  result.Answer,
		Sources: sources,
		Context: searchContext(scope),
	}, nil
}
