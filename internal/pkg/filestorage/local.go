package filestorage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"github.com/coursehub/coursehub/internal/pkg/logger"
)

// LocalStorage handles saving files to the local filesystem.
type LocalStorage struct {
	basePath string // The root directory holding one sub-directory per unit
}

// NewLocalStorage creates a new LocalStorage instance rooted at basePath.
func NewLocalStorage(basePath string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, os.ModePerm); err != nil {
		logger.Error().Err(err).Str("path", basePath).Msg("Failed to create storage directory")
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}
	logger.Debug().Str("path", basePath).Msg("Local storage directory ensured")

	return &LocalStorage{basePath: basePath}, nil
}

// UnitDir returns the directory holding the files of a unit.
func (ls *LocalStorage) UnitDir(unitID int64) string {
	return filepath.Join(ls.basePath, fmt.Sprintf("unit-%d", unitID))
}

// GenerateFilename builds a collision-resistant name that keeps the client's
// base name readable: "<uuid>-<name with whitespace replaced by _>".
func GenerateFilename(original string) string {
	base := filepath.Base(strings.ReplaceAll(original, "\\", "/"))
	if base == "." || base == "/" {
		base = "file"
	}
	base = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return '_'
		}
		return r
	}, base)
	return uuid.New().String() + "-" + base
}

// SaveUnitFile saves an uploaded file into the unit's directory.
func (ls *LocalStorage) SaveUnitFile(unitID int64, fileHeader *multipart.FileHeader) (*StoredFile, error) {
	if fileHeader == nil {
		return nil, fmt.Errorf("no file provided")
	}

	file, err := fileHeader.Open()
	if err != nil {
		logger.Error().Err(err).Str("filename", fileHeader.Filename).Msg("Failed to open uploaded file")
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	// Concurrent uploads to one unit may both get here; MkdirAll tolerates that.
	dir := ls.UnitDir(unitID)
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		logger.Error().Err(err).Str("path", dir).Msg("Failed to create unit directory")
		return nil, fmt.Errorf("failed to create unit directory: %w", err)
	}

	name := GenerateFilename(fileHeader.Filename)
	dstPath := filepath.Join(dir, name)

	dst, err := os.OpenFile(dstPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to create destination file")
		return nil, fmt.Errorf("failed to create destination file: %w", err)
	}

	size, err := io.Copy(dst, file)
	closeErr := dst.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to copy uploaded file content")
		_ = os.Remove(dstPath)
		return nil, fmt.Errorf("failed to save file content: %w", err)
	}

	mimeType := "application/octet-stream"
	if mt, err := mimetype.DetectFile(dstPath); err == nil {
		mimeType = mt.String()
	} else {
		logger.Warn().Err(err).Str("path", dstPath).Msg("Failed to detect file type")
	}

	logger.Info().
		Str("filename", fileHeader.Filename).
		Str("saved_as", name).
		Int64("unitID", unitID).
		Str("mime", mimeType).
		Msg("File saved successfully")

	return &StoredFile{
		Filename: name,
		Path:     dstPath,
		Size:     size,
		MimeType: mimeType,
	}, nil
}

// ReadFile reads back a stored file.
func (ls *LocalStorage) ReadFile(filePath string) ([]byte, error) {
	physicalPath, err := ls.resolve(filePath)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(physicalPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return data, nil
}

// DeleteFile removes a file from the storage filesystem.
// Returns nil if deletion is successful or if the file doesn't exist.
func (ls *LocalStorage) DeleteFile(filePath string) error {
	if filePath == "" {
		return nil
	}

	physicalPath, err := ls.resolve(filePath)
	if err != nil {
		return err
	}

	if err := os.Remove(physicalPath); err != nil {
		if os.IsNotExist(err) {
			logger.Warn().Str("path", physicalPath).Msg("File to delete does not exist")
			return nil
		}
		logger.Error().Err(err).Str("path", physicalPath).Msg("Failed to delete file")
		return fmt.Errorf("failed to delete file: %w", err)
	}

	logger.Info().Str("path", physicalPath).Msg("File deleted successfully")
	return nil
}

// RemoveUnitDir deletes the unit's directory tree. A missing directory is not an error.
func (ls *LocalStorage) RemoveUnitDir(unitID int64) error {
	dir := ls.UnitDir(unitID)
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("failed to remove unit directory %s: %w", dir, err)
	}
	return nil
}

// resolve rejects paths that escape the storage root.
func (ls *LocalStorage) resolve(filePath string) (string, error) {
	cleaned := filepath.Clean(filePath)
	rel, err := filepath.Rel(ls.basePath, cleaned)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("invalid file path: %s", filePath)
	}
	return cleaned, nil
}
