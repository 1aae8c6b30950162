package dto

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error   string `json:"error" example:"Course not found"`
	Details string `json:"details,omitempty" example:"Backend ask failed: 500"`
}

// SuccessResponse is returned by delete endpoints.
type SuccessResponse struct {
	Success bool `json:"success" example:"true"`
}

// MessageResponse carries a single informational message.
type MessageResponse struct {
	Message string `json:"message" example:"pong"`
}
