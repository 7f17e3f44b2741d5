package http

import (
	"errors"
	"net/http"

	"file-processing-tasks/internal/task"
	"file-processing-tasks/internal/task/registry"
	pkgErrors "file-processing-tasks/pkg/errors"
	"file-processing-tasks/pkg/settingsio"
)

// mapError translates use-case errors into HTTP errors from pkg/errors. Only
// the tag and its message reach the caller; debug values and causes can hold
// expanded paths and stay in the log.
func (h *handler) mapError(err error) error {
	var httpErr *pkgErrors.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}

	msg := pkgErrors.Public(err)
	switch {
	case errors.Is(err, task.ErrUnknownType), errors.Is(err, task.ErrRunNotFound):
		return pkgErrors.NewHTTPError(http.StatusNotFound, msg)
	case errors.Is(err, task.ErrNotLicensed):
		return pkgErrors.NewHTTPError(http.StatusForbidden, msg)
	case errors.Is(err, task.ErrRunExists):
		return pkgErrors.NewHTTPError(http.StatusConflict, msg)
	case errors.Is(err, task.ErrInvalidSetting),
		errors.Is(err, task.ErrTaskUnselected),
		errors.Is(err, task.ErrFilePathEmpty),
		errors.Is(err, registry.ErrBadMagic),
		errors.Is(err, settingsio.ErrCorrupt),
		errors.Is(err, settingsio.ErrUnsupportedVersion):
		return pkgErrors.NewHTTPError(http.StatusBadRequest, msg)
	}

	// Any other tagged error is a processing failure of the task itself.
	if pkgErrors.CodeOf(err) != "" {
		return pkgErrors.NewHTTPError(http.StatusUnprocessableEntity, msg)
	}
	return pkgErrors.ErrInternalServerError
}
