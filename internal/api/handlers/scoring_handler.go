package handlers

import (
	"bytes"
	"encoding/json"

	"loan-scorer/internal/dto"
	"loan-scorer/internal/features"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type Predictor interface {
	Predict(rec features.Record) (*dto.PredictResponse, error)
}

type ScoringHandler struct {
	scorer Predictor
	logger *zap.Logger
}

func NewScoringHandler(scorer Predictor, logger *zap.Logger) *ScoringHandler {
	return &ScoringHandler{
		scorer: scorer,
		logger: logger,
	}
}

// Predict godoc
// @Summary Score a financing request
// @Description Align a raw request to the model features and return the approval probability and class
// @Tags scoring
// @Accept json
// @Produce json
// @Param request body object true "Raw financing request"
// @Success 200 {object} dto.PredictResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Router /predict [post]
func (h *ScoringHandler) Predict(c *fiber.Ctx) error {
	var rec features.Record
	if len(bytes.TrimSpace(c.Body())) > 0 {
		dec := json.NewDecoder(bytes.NewReader(c.Body()))
		dec.UseNumber()
		if err := dec.Decode(&rec); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid request body",
			})
		}
	}
	if len(rec) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No input data provided",
		})
	}

	resp, err := h.scorer.Predict(rec)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to score request")
	}

	return c.JSON(resp)
}
