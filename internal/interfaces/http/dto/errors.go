package dto

import (
	"net/http"
	"strings"
)

// Error codes produced by the HTTP layer itself
const (
	ErrCodeInternal     = "INTERNAL_ERROR"
	ErrCodeBadRequest   = "BAD_REQUEST"
	ErrCodeValidation   = "VALIDATION_ERROR"
	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeForbidden    = "FORBIDDEN"
	ErrCodeNotFound     = "NOT_FOUND"
	ErrCodeConflict     = "CONFLICT"
)

// ErrorCodeHTTPStatus maps domain error codes to HTTP status codes.
// Codes not listed here fall back by prefix in GetHTTPStatus.
var ErrorCodeHTTPStatus = map[string]int{
	// Authentication
	"UNAUTHORIZED":        http.StatusUnauthorized,
	"INVALID_CREDENTIALS": http.StatusUnauthorized,

	// Authorization and plan gating
	"FORBIDDEN":                  http.StatusForbidden,
	"FEATURE_NOT_IN_PLAN":        http.StatusForbidden,
	"TRANSITION_FORBIDDEN":       http.StatusForbidden,
	"INTERNAL_COMMENT_FORBIDDEN": http.StatusForbidden,
	"USER_INACTIVE":              http.StatusForbidden,

	// Resources
	"NOT_FOUND":            http.StatusNotFound,
	"ALREADY_EXISTS":       http.StatusConflict,
	"CONFLICT":             http.StatusConflict,
	"CONCURRENCY_CONFLICT": http.StatusConflict,
	"DUPLICATE_PERIOD":     http.StatusConflict,
	"CODE_TAKEN":           http.StatusConflict,
	"NUMBER_TAKEN":         http.StatusConflict,
	"EMAIL_TAKEN":          http.StatusConflict,

	// Business rules -> 422 Unprocessable Entity
	"BILL_ALREADY_PAID":   http.StatusUnprocessableEntity,
	"INVALID_STATE":       http.StatusUnprocessableEntity,
	"INVALID_TRANSITION":  http.StatusUnprocessableEntity,
	"RESOLUTION_REQUIRED": http.StatusUnprocessableEntity,
	"EMPTY_BILL":          http.StatusUnprocessableEntity,
	"INVALID_ASSIGNEE":    http.StatusUnprocessableEntity,
	"ALREADY_ACTIVE":      http.StatusUnprocessableEntity,
	"ALREADY_INACTIVE":    http.StatusUnprocessableEntity,
	"ALREADY_VOIDED":      http.StatusUnprocessableEntity,

	// Input
	"BAD_REQUEST":      http.StatusBadRequest,
	"VALIDATION_ERROR": http.StatusBadRequest,
	"INVALID_INPUT":    http.StatusBadRequest,

	// Server
	"INTERNAL_ERROR": http.StatusInternalServerError,
}

// GetHTTPStatus returns the HTTP status code for a domain error code.
// Unlisted INVALID_* codes map to 400 Bad Request, everything else to 500.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	if strings.HasPrefix(code, "INVALID_") {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
