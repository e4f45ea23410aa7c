package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mindgrid/mindgrid-server/internal/model"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Error kinds. Every error leaving the API carries exactly one of
// these codes; anything unclassified collapses to CodeInternal with a
// generic message so implementation detail never leaks to the client.
const (
	CodeUnauthenticated    = "UNAUTHENTICATED"
	CodeInvalidArgument    = "INVALID_ARGUMENT"
	CodeAlreadyExists      = "ALREADY_EXISTS"
	CodeFailedPrecondition = "FAILED_PRECONDITION"
	CodePermissionDenied   = "PERMISSION_DENIED"
	CodeInternal           = "INTERNAL"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// IsClassified reports whether err maps to a known error kind. Callers
// log unclassified errors server-side before writing them, since the
// client only ever sees the generic internal message.
func IsClassified(err error) bool {
	var he *httpError
	if errors.As(err, &he) {
		return true
	}
	return toHTTPError(err).apiError.Code != CodeInternal
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	// Map model errors to their error kinds
	switch {
	case errors.Is(err, model.ErrUsernameMissing),
		errors.Is(err, model.ErrUsernameTooLong),
		errors.Is(err, model.ErrEmailMissing),
		errors.Is(err, model.ErrInvalidDifficulty):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidArgument, err.Error()}}

	case errors.Is(err, model.ErrHandleTaken):
		return &httpError{http.StatusConflict, APIError{CodeAlreadyExists, "That username is already taken"}}

	case errors.Is(err, model.ErrNoActiveGame):
		return &httpError{http.StatusConflict, APIError{CodeFailedPrecondition, "No active game"}}

	case errors.Is(err, model.ErrSessionInvalid):
		return &httpError{http.StatusConflict, APIError{CodeFailedPrecondition, "Invalid difficulty"}}

	case errors.Is(err, model.ErrAccountNotFound):
		return &httpError{http.StatusConflict, APIError{CodeFailedPrecondition, "Account is not registered"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternal, "Internal server error"}}
	}
}

// NewUnauthenticatedError creates an error for requests with no
// verified caller identity
func NewUnauthenticatedError() error {
	return &httpError{http.StatusUnauthorized, APIError{CodeUnauthenticated, "You must be signed in"}}
}

// NewInvalidArgumentError creates an invalid argument error
func NewInvalidArgumentError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidArgument, message}}
}

// NewPermissionDeniedError creates an error for callers lacking a
// required privilege
func NewPermissionDeniedError() error {
	return &httpError{http.StatusForbidden, APIError{CodePermissionDenied, "Caller lacks the required privilege"}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternal, "Internal server error"}}
}
