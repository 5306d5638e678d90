package server

import (
	"errors"
	"net/http"

	"github.com/jonathan/resume-builder/internal/editor"
	"github.com/jonathan/resume-builder/internal/export"
	"github.com/jonathan/resume-builder/internal/layout"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return "validation error: " + e.Field + " - " + e.Message
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var validation *ErrValidation
	var exportErr *export.Error
	switch {
	case errors.As(err, &validation):
		return http.StatusBadRequest
	case errors.Is(err, editor.ErrSectionNotFound):
		return http.StatusNotFound
	case errors.Is(err, editor.ErrResetNotConfirmed):
		return http.StatusConflict
	case errors.Is(err, layout.ErrCorruptSnapshot), errors.Is(err, layout.ErrUnknownField):
		return http.StatusBadRequest
	case errors.As(err, &exportErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
