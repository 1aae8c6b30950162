package filestorage

import (
	"mime/multipart"
)

// StoredFile describes a file written to storage.
type StoredFile struct {
	Filename string // Generated on-disk name
	Path     string // Path the file can be read back from
	Size     int64  // Size in bytes
	MimeType string // Detected content type
}

// FileStorage defines the storage operations needed for unit documents
type FileStorage interface {
	// SaveUnitFile writes an uploaded file into the unit's directory under a generated name
	SaveUnitFile(unitID int64, fileHeader *multipart.FileHeader) (*StoredFile, error)

	// ReadFile returns the content of a previously saved file
	ReadFile(filePath string) ([]byte, error)

	// DeleteFile removes a file. Missing files are not an error.
	DeleteFile(filePath string) error

	// RemoveUnitDir removes a unit's directory and everything in it
	RemoveUnitDir(unitID int64) error
}
