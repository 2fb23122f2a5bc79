package handlers

// ErrorResponse represents a client or server error in API responses
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}
