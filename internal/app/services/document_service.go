package services

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/coursehub/coursehub/internal/app/models"
	"github.com/coursehub/coursehub/internal/app/repositories"
	"github.com/coursehub/coursehub/internal/pkg/apperrors"
	"github.com/coursehub/coursehub/internal/pkg/filestorage"
)

// DocumentService defines the interface for reading and removing uploaded documents
type DocumentService interface {
	ListUnitDocuments(ctx context.Context, unitID int64) ([]*models.Document, error)
	ListDocuments(ctx context.Context, scope models.Scope) ([]*models.DocumentWithHierarchy, error)
	GetDocument(ctx context.Context, id int64) (*models.Document, error)
	DeleteDocument(ctx context.Context, id int64) error
}

type documentServiceImpl struct {
	documentRepo *repositories.DocumentRepository
	unitRepo     *repositories.UnitRepository
	storage      filestorage.FileStorage
	log          zerolog.Logger
}

// NewDocumentService creates a new document service instance
func NewDocumentService(
	documentRepo *repositories.DocumentRepository,
	unitRepo *repositories.UnitRepository,
	storage filestorage.FileStorage,
	log zerolog.Logger,
) DocumentService {
	return &documentServiceImpl{
		documentRepo: documentRepo,
		unitRepo:     unitRepo,
		storage:      storage,
		log:          log,
	}
}

var errDocumentNotFound = apperrors.NewResourceNotFoundError("Document not found")

// ListUnitDocuments returns a unit's documents, newest first
func (s *documentServiceImpl) ListUnitDocuments(ctx context.Context, unitID int64) ([]*models.Document, error) {
	if _, err := s.unitRepo.GetByID(ctx, unitID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, errUnitNotFound
		}
		return nil, internalError(err, "Failed to fetch documents")
	}

	docs, err := s.documentRepo.ListByUnit(ctx, unitID)
	if err != nil {
		return nil, internalError(err, "Failed to fetch documents")
	}
	return docs, nil
}

// ListDocuments returns documents with their ancestor names, restricted to scope
func (s *documentServiceImpl) ListDocuments(ctx context.Context, scope models.Scope) ([]*models.DocumentWithHierarchy, error) {
	docs, err := s.documentRepo.ListWithHierarchy(ctx, scope)
	if err != nil {
		return nil, internalError(err, "Failed to fetch documents")
	}
	return docs, nil
}

func (s *documentServiceImpl) GetDocument(ctx context.Context, id int64) (*models.Document, error) {
	doc, err := s.documentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, errDocumentNotFound
		}
		return nil, internalError(err, "Failed to fetch document")
	}
	return doc, nil
}

// DeleteDocument removes the record, then the file. A file that cannot be
// removed is logged and left behind.
func (s *documentServiceImpl) DeleteDocument(ctx context.Context, id int64) error {
	doc, err := s.GetDocument(ctx, id)
	if err != nil {
		return err
	}

	if err := s.documentRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return errDocumentNotFound
		}
		return internalError(err, "Failed to delete document")
	}

	if err := s.storage.DeleteFile(doc.FilePath); err != nil {
		s.log.Warn().Err(err).Int64("documentID", id).Str("path", doc.FilePath).Msg("Failed to remove document file")
	}
	return nil
}
