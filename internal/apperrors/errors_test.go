package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil", err: nil, want: fiber.StatusOK},
		{name: "input", err: fmt.Errorf("no payload: %w", ErrInput), want: fiber.StatusBadRequest},
		{name: "feature mismatch", err: fmt.Errorf("missing Eta: %w", ErrFeatureMismatch), want: fiber.StatusUnprocessableEntity},
		{name: "upstream", err: fmt.Errorf("status 503: %w", ErrUpstream), want: fiber.StatusBadGateway},
		{name: "store", err: fmt.Errorf("insert 7: %w", ErrStore), want: fiber.StatusConflict},
		{name: "unknown", err: errors.New("boom"), want: fiber.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}
