package errors

import "fmt"

// ErrorCode identifies a class of pipeline failure.
type ErrorCode string

const (
	ErrInvalidRequest ErrorCode = "INVALID_REQUEST" // 400
	ErrNotFound       ErrorCode = "NOT_FOUND"       // 404
	ErrEmptyRepo      ErrorCode = "EMPTY_REPO"      // 422
	ErrRateLimited    ErrorCode = "RATE_LIMITED"    // 429
	ErrInternal       ErrorCode = "INTERNAL"        // 500
	ErrUpstream       ErrorCode = "UPSTREAM"        // 502
	ErrLLM            ErrorCode = "LLM_ERROR"       // 502
)

// Error is a structured error with code, HTTP status, and details.
// Message is safe to show to callers; cause is for logs only.
type Error struct {
	Code    ErrorCode
	Status  int
	Message string
	Details map[string]any

	cause error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap exposes the underlying cause, if any.
func (e *Error) Unwrap() error {
	return e.cause
}

// NewInvalidRequest creates a 400 error for invalid request parameters.
func NewInvalidRequest(msg string) *Error {
	return &Error{
		Code:    ErrInvalidRequest,
		Status:  400,
		Message: msg,
	}
}

// NewNotFound creates a 404 error for a missing or private repository.
func NewNotFound(owner, repo string) *Error {
	return &Error{
		Code:    ErrNotFound,
		Status:  404,
		Message: fmt.Sprintf("repository %s/%s not found or is private", owner, repo),
		Details: map[string]any{"owner": owner, "repo": repo},
	}
}

// NewEmptyRepo creates a 422 error for when no file content could be
// retrieved at all. Distinct from NotFound: the repository exists but
// holds nothing usable.
func NewEmptyRepo(repo string) *Error {
	return &Error{
		Code:    ErrEmptyRepo,
		Status:  422,
		Message: fmt.Sprintf("no usable files retrieved from %s", repo),
		Details: map[string]any{"repo": repo},
	}
}

// NewRateLimited creates a 429 error for GitHub API rate limiting.
func NewRateLimited() *Error {
	return &Error{
		Code:    ErrRateLimited,
		Status:  429,
		Message: "GitHub API rate limit exceeded; set GITHUB_TOKEN to increase limits",
	}
}

// NewUpstream creates a 502 error for unexpected tree-provider responses.
func NewUpstream(status int, msg string) *Error {
	return &Error{
		Code:    ErrUpstream,
		Status:  502,
		Message: msg,
		Details: map[string]any{"upstream_status": status},
	}
}

// NewLLM creates a 502 error for text-generation failures.
func NewLLM(msg string) *Error {
	return &Error{
		Code:    ErrLLM,
		Status:  502,
		Message: msg,
	}
}

// NewInternal creates a 500 error for unexpected internal errors. The
// underlying error is kept for logging but never surfaced to callers.
func NewInternal(err error) *Error {
	return &Error{
		Code:    ErrInternal,
		Status:  500,
		Message: "an internal error occurred",
		cause:   err,
	}
}

// Is checks if an error is an Error with the given code.
func Is(err error, code ErrorCode) bool {
	if e, ok := err.(*Error); ok {
		return e.Code == code
	}
	return false
}

// StatusOf returns the HTTP status for an error, defaulting to 500.
func StatusOf(err error) int {
	if e, ok := err.(*Error); ok {
		return e.Status
	}
	return 500
}
