package handlers

import (
	"loan-scorer/internal/apperrors"
	"loan-scorer/pkg/middleware"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// respondError maps err to its HTTP status. Internal failures are logged and answered with fallback.
func respondError(c *fiber.Ctx, logger *zap.Logger, err error, fallback string) error {
	status := apperrors.HTTPStatus(err)
	message := err.Error()

	switch {
	case status == fiber.StatusInternalServerError:
		middleware.Logger(c, logger).Error(fallback, zap.Error(err))
		message = fallback
	case status >= fiber.StatusInternalServerError:
		middleware.Logger(c, logger).Error(fallback, zap.Error(err))
	default:
		middleware.Logger(c, logger).Warn(fallback, zap.Error(err))
	}

	return c.Status(status).JSON(fiber.Map{
		"error": message,
	})
}

func queryLookup(c *fiber.Ctx) func(string) string {
	return func(key string) string {
		return c.Query(key)
	}
}
