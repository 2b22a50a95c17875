package dto

import "net/http"

// ErrorCodeHTTPStatus maps domain error codes to HTTP status codes.
// Codes not listed here render as 500.
var ErrorCodeHTTPStatus = map[string]int{
	// Input validation -> 400 Bad Request
	"BAD_REQUEST":      http.StatusBadRequest,
	"VALIDATION_ERROR": http.StatusBadRequest,
	"INVALID_INPUT":    http.StatusBadRequest,
	"INVALID_ROLE":     http.StatusBadRequest,
	"INVALID_EMAIL":    http.StatusBadRequest,
	"INVALID_PASSWORD": http.StatusBadRequest,
	"INVALID_DOMAIN":   http.StatusBadRequest,
	"INVALID_NAME":     http.StatusBadRequest,
	"INVALID_COMPANY":  http.StatusBadRequest,
	"INVALID_STATUS":   http.StatusBadRequest,

	// Authentication -> 401 Unauthorized
	"UNAUTHORIZED":        http.StatusUnauthorized,
	"INVALID_CREDENTIALS": http.StatusUnauthorized,
	"TOKEN_EXPIRED":       http.StatusUnauthorized,
	"TOKEN_INVALID":       http.StatusUnauthorized,
	"TOKEN_REVOKED":       http.StatusUnauthorized,
	"TOKEN_MAX_REFRESH":   http.StatusUnauthorized,
	"TOKEN_ERROR":         http.StatusUnauthorized,

	// Authorization -> 403 Forbidden
	"FORBIDDEN":           http.StatusForbidden,
	"ACCOUNT_DEACTIVATED": http.StatusForbidden,

	// Missing resources -> 404 Not Found
	"NOT_FOUND":         http.StatusNotFound,
	"USER_NOT_FOUND":    http.StatusNotFound,
	"PRODUCT_NOT_FOUND": http.StatusNotFound,
	"SHELF_NOT_FOUND":   http.StatusNotFound,

	// Conflicts -> 409 Conflict
	"ALREADY_EXISTS":       http.StatusConflict,
	"CONCURRENCY_CONFLICT": http.StatusConflict,

	// Business rules -> 422 Unprocessable Entity
	"INVALID_STATE": http.StatusUnprocessableEntity,

	// Payload limits
	"REQUEST_TOO_LARGE": http.StatusRequestEntityTooLarge,

	"INTERNAL_ERROR": http.StatusInternalServerError,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Returns 500 Internal Server Error if the error code is not found.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
