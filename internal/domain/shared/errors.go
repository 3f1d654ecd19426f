package shared

// DomainError represents a domain-level error with a stable code the
// presentation layer can map to user-facing messages.
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	// ErrInvalidCredentials is returned when the server rejects a login attempt.
	ErrInvalidCredentials = NewDomainError("INVALID_CREDENTIALS", "Invalid username or password")
	// ErrSessionInvalid is returned when an authenticated call came back 401
	// and the stored credential has been discarded.
	ErrSessionInvalid = NewDomainError("SESSION_INVALID", "Session has expired, please log in again")
	// ErrForbidden is returned on 403: the session is valid but the user
	// lacks permission for the resource.
	ErrForbidden = NewDomainError("FORBIDDEN", "Access to this resource is forbidden")
	// ErrConnection is returned when no response was received at all.
	ErrConnection = NewDomainError("CONNECTION_ERROR", "Unable to reach the server, please check your connection")
	// ErrNotFound is returned when a resource does not exist.
	ErrNotFound = NewDomainError("NOT_FOUND", "Resource not found")
	// ErrInvalidInput is returned when client-side validation rejects a form.
	ErrInvalidInput = NewDomainError("INVALID_INPUT", "Invalid input provided")
	// ErrServer is returned for 5xx responses without a usable error payload.
	ErrServer = NewDomainError("SERVER_ERROR", "The server encountered an error, please try again")
)
