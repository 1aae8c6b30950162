package dto

// AskRequest is a question with optional hierarchy filters; the most specific one wins.
type AskRequest struct {
	Question   string `json:"question" example:"What is a goroutine?"`
	CourseID   *int64 `json:"courseId,omitempty" example:"1"`
	YearID     *int64 `json:"yearId,omitempty"`
	SemesterID *int64 `json:"semesterId,omitempty"`
	UnitID     *int64 `json:"unitId,omitempty"`
}

// SourceInfo is a passage cited by the backend
type SourceInfo struct {
	Title   string `json:"title"`
	Excerpt string `json:"excerpt"`
}

// AskResponse is the answer returned to the view layer.
type AskResponse struct {
	Answer  string       `json:"answer"`
	Sources []SourceInfo `json:"sources"`
	Context string       `json:"context,omitempty" example:"Searched documents from a specific unit."`
}

// BackendStatusResponse reports whether the remote backend answers its liveness probe.
type BackendStatusResponse struct {
	Connected  bool   `json:"connected"`
	BackendURL string `json:"backendUrl" example:"https://example.ngrok-free.app"`
	Error      string `json:"error,omitempty"`
}
