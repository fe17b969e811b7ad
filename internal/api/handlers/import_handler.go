package handlers

import (
	"context"

	"loan-scorer/internal/dto"
	"loan-scorer/pkg/middleware"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type Importer interface {
	Import(ctx context.Context) (*dto.ImportResponse, error)
}

type ImportHandler struct {
	importer Importer
	logger   *zap.Logger
}

func NewImportHandler(importer Importer, logger *zap.Logger) *ImportHandler {
	return &ImportHandler{
		importer: importer,
		logger:   logger,
	}
}

// Import godoc
// @Summary Import financing requests
// @Description Fetch requests from the import source, score the new ones and store them
// @Tags import
// @Produce json
// @Success 200 {object} dto.ImportResponse
// @Failure 409 {object} dto.ErrorResponse
// @Failure 429 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Router /importa [post]
func (h *ImportHandler) Import(c *fiber.Ctx) error {
	resp, err := h.importer.Import(c.Context())
	if err != nil {
		return respondError(c, h.logger, err, "Failed to import requests")
	}

	middleware.Logger(c, h.logger).Info("Import completed",
		zap.String("import_id", resp.ImportID),
		zap.Int("imported", resp.Imported),
	)
	return c.JSON(resp)
}
