package api

import (
	"time"

	"loan-scorer/docs"
	"loan-scorer/internal/api/handlers"
	"loan-scorer/pkg/metrics"
	"loan-scorer/pkg/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
)

type Handlers struct {
	Scoring  *handlers.ScoringHandler
	Import   *handlers.ImportHandler
	Requests *handlers.RequestHandler
	Health   *handlers.HealthHandler
}

type Options struct {
	// ImportRatePerMinute bounds POST /importa; <= 0 disables the limit.
	ImportRatePerMinute int
	// Metrics is served on /metrics when non-nil.
	Metrics *metrics.Manager

	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

func SetupRouter(h Handlers, opts Options, appLogger *zap.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		ReadTimeout:  opts.ReadTimeout,
		WriteTimeout: opts.WriteTimeout,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			if code >= fiber.StatusInternalServerError {
				middleware.Logger(c, appLogger).Error("Unhandled error", zap.Error(err))
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	// Middleware
	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(cors.New(cors.Config{
		AllowOrigins:  "*",
		AllowMethods:  "GET,POST,OPTIONS",
		AllowHeaders:  "Origin,Content-Type,Accept," + middleware.RequestIDHeader,
		ExposeHeaders: "Content-Disposition," + middleware.RequestIDHeader,
	}))
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${locals:requestID} ${status} - ${latency} ${method} ${path}\n",
	}))

	// Swagger - importing docs registers the document through init()
	_ = docs.SwaggerInfo
	app.Get("/swagger/*", swagger.HandlerDefault)

	app.Get("/health", h.Health.Health)
	if opts.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(opts.Metrics.Handler()))
	}

	app.Post("/predict", h.Scoring.Predict)
	app.Post("/importa", middleware.RateLimit(opts.ImportRatePerMinute, appLogger), h.Import.Import)

	api := app.Group("/api")
	api.Get("/richieste", h.Requests.ListRequests)
	api.Get("/richieste/export", h.Requests.Export)
	api.Get("/statistiche", h.Requests.Statistics)

	return app
}
