package dto

import "net/http"

// General error codes
const (
	ErrCodeInternal   = "INTERNAL_ERROR"
	ErrCodeBadRequest = "BAD_REQUEST"
	ErrCodeValidation = "VALIDATION_ERROR"
)

// Authentication error codes
const (
	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeForbidden    = "FORBIDDEN"
	ErrCodeTokenExpired = "TOKEN_EXPIRED"
	ErrCodeTokenInvalid = "TOKEN_INVALID"
)

// Resource error codes
const (
	ErrCodeNotFound      = "NOT_FOUND"
	ErrCodeAlreadyExists = "ALREADY_EXISTS"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes.
// Domain error codes map directly; anything unknown is a 500.
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeInternal:   http.StatusInternalServerError,
	ErrCodeBadRequest: http.StatusBadRequest,
	ErrCodeValidation: http.StatusBadRequest,

	ErrCodeUnauthorized: http.StatusUnauthorized,
	ErrCodeForbidden:    http.StatusForbidden,
	ErrCodeTokenExpired: http.StatusUnauthorized,
	ErrCodeTokenInvalid: http.StatusUnauthorized,

	ErrCodeNotFound:      http.StatusNotFound,
	ErrCodeAlreadyExists: http.StatusConflict,

	// Domain validation failures -> 400 Bad Request
	"INVALID_TITLE":    http.StatusBadRequest,
	"INVALID_LOCATION": http.StatusBadRequest,
	"INVALID_SCHEDULE": http.StatusBadRequest,
	"INVALID_STATUS":   http.StatusBadRequest,
	"INVALID_CREATOR":  http.StatusBadRequest,
	"INVALID_EMAIL":    http.StatusBadRequest,
	"INVALID_NAME":     http.StatusBadRequest,
	"INVALID_PASSWORD": http.StatusBadRequest,
	"INVALID_INPUT":    http.StatusBadRequest,
	"INVALID_KEY":      http.StatusBadRequest,
	"INVALID_SIZE":     http.StatusBadRequest,

	// Lifecycle rule violations -> 422 Unprocessable Entity
	"INVALID_TRANSITION": http.StatusUnprocessableEntity,
	"EVENT_LOCKED":       http.StatusUnprocessableEntity,
	"INVALID_STATE":      http.StatusUnprocessableEntity,

	// Public surface hides non-public events entirely
	"EVENT_NOT_PUBLIC": http.StatusNotFound,

	// Identity
	"INVALID_CREDENTIALS":      http.StatusUnauthorized,
	"EMAIL_ALREADY_REGISTERED": http.StatusConflict,
	"USER_NOT_FOUND":           http.StatusUnauthorized,
	"TOKEN_ERROR":              http.StatusUnauthorized,

	// Uploads
	"UNSUPPORTED_MEDIA_TYPE": http.StatusUnsupportedMediaType,
	"EMPTY_UPLOAD":           http.StatusBadRequest,
	"UPLOAD_TOO_LARGE":       http.StatusRequestEntityTooLarge,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Returns 500 Internal Server Error if the error code is not mapped.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
