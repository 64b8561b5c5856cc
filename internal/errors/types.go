package errors

// ErrorResponse represents a standardized error response
type ErrorResponse struct {
	Error   string `json:"error"`             // error code (e.g., "validation_error", "not_found")
	Message string `json:"message"`           // user-friendly message
	Details string `json:"details,omitempty"` // optional details (sanitized in production)
}

type ErrorInfo struct {
	category  string
	sanitized string
}

// a request error that should surface as 400 with its message intact
type RequestError struct {
	Code    string
	Message string
}

func (e *RequestError) Error() string {
	return e.Message
}

func NewValidationError(message string) *RequestError {
	return &RequestError{Code: CodeValidationError, Message: message}
}

func NewNotFoundError(message string) *RequestError {
	return &RequestError{Code: CodeNotFound, Message: message}
}
