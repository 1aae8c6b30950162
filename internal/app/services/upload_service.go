package services

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/coursehub/coursehub/internal/app/models"
	"github.com/coursehub/coursehub/internal/app/models/dto"
	"github.com/coursehub/coursehub/internal/app/repositories"
	"github.com/coursehub/coursehub/internal/pkg/apperrors"
	"github.com/coursehub/coursehub/internal/pkg/filestorage"
	"github.com/coursehub/coursehub/internal/pkg/qaclient"
)

// UploadStatus classifies the outcome of an upload batch.
type UploadStatus int

const (
	// UploadProcessed means files were saved and the backend accepted them.
	UploadProcessed UploadStatus = iota
	// UploadPartial means files were saved locally but the backend step failed.
	UploadPartial
	// UploadNoneSaved means every file in the batch was rejected or failed to save.
	UploadNoneSaved
)

const (
	msgOnlyPDF       = "Only PDF files are allowed"
	msgSaveFailed    = "Failed to save file"
	msgNoneSaved     = "No files were successfully saved."
	msgBackendDown   = "Files uploaded locally but backend is not available for processing. Please try again later."
	msgBackendFailed = "Files uploaded locally but there was an error with backend processing: %s"
)

// UploadOutcome is the response body plus its classification.
type UploadOutcome struct {
	Status   UploadStatus
	Response dto.UploadResponse
}

// UploadService saves PDFs for a unit and forwards them to the backend.
type UploadService interface {
	Upload(ctx context.Context, unitID int64, files []*multipart.FileHeader) (*UploadOutcome, error)
}

type uploadServiceImpl struct {
	unitRepo      *repositories.UnitRepository
	documentRepo  *repositories.DocumentRepository
	hierarchyRepo *repositories.HierarchyRepository
	storage       filestorage.FileStorage
	backend       BackendClient
	log           zerolog.Logger
}

// NewUploadService creates a new upload service instance
func NewUploadService(
	unitRepo *repositories.UnitRepository,
	documentRepo *repositories.DocumentRepository,
	hierarchyRepo *repositories.HierarchyRepository,
	storage filestorage.FileStorage,
	backend BackendClient,
	log zerolog.Logger,
) UploadService {
	return &uploadServiceImpl{
		unitRepo:      unitRepo,
		documentRepo:  documentRepo,
		hierarchyRepo: hierarchyRepo,
		storage:       storage,
		backend:       backend,
		log:           log.With().Str("service", "upload").Logger(),
	}
}

type savedDocument struct {
	doc  *models.Document
	name string
}

// Upload validates the unit, stores each PDF, then hands the batch to the backend.
// Local persistence is never rolled back when the backend step fails.
func (s *uploadServiceImpl) Upload(ctx context.Context, unitID int64, files []*multipart.FileHeader) (*UploadOutcome, error) {
	if _, err := s.unitRepo.GetByID(ctx, unitID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, errUnitNotFound
		}
		return nil, internalError(err, "Failed to process upload")
	}
	if len(files) == 0 {
		return nil, apperrors.NewBadRequestError("No files provided")
	}

	hierarchy := s.resolveHierarchy(ctx, unitID)

	results := make([]dto.UploadFileResult, 0, len(files))
	saved := make([]savedDocument, 0, len(files))
	for _, fh := range files {
		result, doc := s.saveOne(ctx, unitID, fh)
		results = append(results, result)
		if doc != nil {
			saved = append(saved, savedDocument{doc: doc, name: fh.Filename})
		}
	}

	if len(saved) == 0 {
		return &UploadOutcome{
			Status:   UploadNoneSaved,
			Response: dto.UploadResponse{Message: msgNoneSaved, Results: results},
		}, nil
	}

	if err := s.backend.Ping(ctx); err != nil {
		s.log.Warn().Err(err).Int64("unitID", unitID).Msg("Backend ping failed, skipping remote processing")
		return partial(msgBackendDown, results, err.Error()), nil
	}

	req := qaclient.UploadRequest{UnitID: unitID, Files: make([]qaclient.UploadFile, 0, len(saved))}
	if hierarchy != nil {
		req.Hierarchy = hierarchy
	}
	for _, sd := range saved {
		content, err := s.storage.ReadFile(sd.doc.FilePath)
		if err != nil {
			s.log.Error().Err(err).Str("path", sd.doc.FilePath).Msg("Failed to read saved file back")
			return partial(fmt.Sprintf(msgBackendFailed, err.Error()), results, err.Error()), nil
		}
		req.Files = append(req.Files, qaclient.UploadFile{Name: sd.name, Content: content})
	}

	backendResult, err := s.backend.Upload(ctx, req)
	if err != nil {
		s.log.Warn().Err(err).Int64("unitID", unitID).Int("files", len(req.Files)).Msg("Backend processing failed")
		reason := err.Error()
		if errors.Is(err, apperrors.ErrBackendMalformed) {
			reason = apperrors.ErrBackendMalformed.Error()
		}
		return partial(fmt.Sprintf(msgBackendFailed, reason), results, reason), nil
	}

	backendMessage := "Completed"
	if m, ok := backendResult["message"].(string); ok && strings.TrimSpace(m) != "" {
		backendMessage = m
	}

	return &UploadOutcome{
		Status: UploadProcessed,
		Response: dto.UploadResponse{
			Message:       fmt.Sprintf("Uploaded %d files successfully. Backend processing: %s", len(saved), backendMessage),
			Results:       results,
			BackendResult: backendResult,
		},
	}, nil
}

// saveOne stores one file and records it. A nil document means the file failed.
func (s *uploadServiceImpl) saveOne(ctx context.Context, unitID int64, fh *multipart.FileHeader) (dto.UploadFileResult, *models.Document) {
	result := dto.UploadFileResult{Name: fh.Filename}

	if !strings.EqualFold(filepath.Ext(fh.Filename), ".pdf") {
		result.Error = msgOnlyPDF
		return result, nil
	}

	stored, err := s.storage.SaveUnitFile(unitID, fh)
	if err != nil {
		s.log.Error().Err(err).Str("filename", fh.Filename).Msg("Error saving file")
		result.Error = msgSaveFailed
		return result, nil
	}

	doc, err := s.documentRepo.Create(ctx, &models.Document{
		UnitID:           unitID,
		Filename:         stored.Filename,
		OriginalFilename: fh.Filename,
		FilePath:         stored.Path,
		FileSize:         stored.Size,
		MimeType:         stored.MimeType,
	})
	if err != nil {
		s.log.Error().Err(err).Str("filename", fh.Filename).Msg("Error recording document")
		if rmErr := s.storage.DeleteFile(stored.Path); rmErr != nil {
			s.log.Warn().Err(rmErr).Str("path", stored.Path).Msg("Failed to remove orphaned file")
		}
		result.Error = msgSaveFailed
		return result, nil
	}

	result.Success = true
	result.ID = &doc.ID
	return result, doc
}

// resolveHierarchy is best-effort: a failure only drops the metadata.
func (s *uploadServiceImpl) resolveHierarchy(ctx context.Context, unitID int64) *models.UnitHierarchy {
	h, err := s.hierarchyRepo.GetUnitHierarchy(ctx, unitID)
	if err != nil {
		s.log.Warn().Err(err).Int64("unitID", unitID).Msg("Could not fetch complete course hierarchy")
		return nil
	}
	return h
}

func partial(message string, results []dto.UploadFileResult, backendErr string) *UploadOutcome {
	return &UploadOutcome{
		Status: UploadPartial,
		Response: dto.UploadResponse{
			Message:      message,
			Results:      results,
			BackendError: backendErr,
		},
	}
}
