package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// RateLimit admits perMinute requests per minute across all callers, with a burst of one.
// perMinute <= 0 disables the limit.
func RateLimit(perMinute int, logger *zap.Logger) fiber.Handler {
	if perMinute <= 0 {
		return func(c *fiber.Ctx) error { return c.Next() }
	}

	limiter := rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), 1)

	return func(c *fiber.Ctx) error {
		if !limiter.Allow() {
			Logger(c, logger).Warn("Rate limit exceeded", zap.String("path", c.Path()))
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests, retry later",
			})
		}
		return c.Next()
	}
}
