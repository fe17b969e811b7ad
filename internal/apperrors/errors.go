// Package apperrors defines the error kinds shared by the scoring, import and query paths.
package apperrors

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

var (
	// ErrInput marks an absent, empty or malformed client payload.
	ErrInput = errors.New("invalid input")
	// ErrFeatureMismatch marks a feature vector that does not fit the model: wrong width,
	// a missing numeric field, or a scaler/model incompatibility.
	ErrFeatureMismatch = errors.New("feature mismatch")
	// ErrUpstream marks an unreachable import source or a non-200 answer from it.
	ErrUpstream = errors.New("upstream unavailable")
	// ErrStore marks a persistence failure on a single record.
	ErrStore = errors.New("store failure")
)

// HTTPStatus maps an error to the status code the API answers with.
func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return fiber.StatusOK
	case errors.Is(err, ErrInput):
		return fiber.StatusBadRequest
	case errors.Is(err, ErrFeatureMismatch):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, ErrUpstream):
		return fiber.StatusBadGateway
	case errors.Is(err, ErrStore):
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}
