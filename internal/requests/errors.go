package requests

import (
	"errors"
	"net/http"
)

// Domain errors for request operations.
var (
	ErrNotFound     = errors.New("request not found")
	ErrDuplicate    = errors.New("request already exists")
	ErrInvalidKind  = errors.New("invalid input kind")
	ErrEmptyContent = errors.New("content is empty")
	ErrFileTooLarge = errors.New("file exceeds maximum upload size")
	ErrInvalidBody  = errors.New("invalid request body")
)

// MapHTTPStatus maps request domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrFileTooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	if errors.Is(err, ErrInvalidKind) || errors.Is(err, ErrEmptyContent) || errors.Is(err, ErrInvalidBody) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
