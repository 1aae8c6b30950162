package dto

// UploadFileResult reports the outcome for one submitted file.
type UploadFileResult struct {
	Name    string `json:"name" example:"week1.pdf"`
	Success bool   `json:"success" example:"true"`
	Error   string `json:"error,omitempty" example:"Only PDF files are allowed"`
	ID      *int64 `json:"id,omitempty" example:"12"`
}

// UploadResponse is returned by POST /api/upload. BackendResult is the
// backend's own JSON answer; BackendError is set on partial success.
type UploadResponse struct {
	Message       string             `json:"message"`
	Results       []UploadFileResult `json:"results"`
	BackendResult map[string]any     `json:"backendResult,omitempty" swaggertype:"object"`
	BackendError  string             `json:"backendError,omitempty"`
}
