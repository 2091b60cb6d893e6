package compiler

import (
	"errors"
	"net/http"

	"github.com/JaimeStill/quill/pkg/handlers"
)

// Domain errors for compile operations.
var (
	ErrEmptyBatch     = errors.New("batch must contain at least one item")
	ErrBatchTooLarge  = errors.New("batch exceeds item limit")
	ErrPresetNotFound = errors.New("preset not found")
	ErrInvalidField   = errors.New("invalid field")
)

// MapHTTPStatus maps compile errors, and request decoding errors, to HTTP
// status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrPresetNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrBatchTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, ErrEmptyBatch), errors.Is(err, ErrInvalidField):
		return http.StatusBadRequest
	}
	return handlers.MapHTTPStatus(err)
}
