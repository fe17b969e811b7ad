package handlers

import (
	"loan-scorer/internal/query"

	"github.com/gofiber/fiber/v2"
)

// Statistics godoc
// @Summary Aggregate report over stored requests
// @Description Only the Sesso, TitoloStudio, InformazioniImmobile and ScopoFinanziamento filters apply
// @Tags requests
// @Produce json
// @Param Sesso query string false "Sex"
// @Param TitoloStudio query string false "Education"
// @Param InformazioniImmobile query string false "Real estate"
// @Param ScopoFinanziamento query string false "Purpose"
// @Success 200 {object} query.Report
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/statistiche [get]
func (h *RequestHandler) Statistics(c *fiber.Ctx) error {
	report, err := h.queries.Statistics(c.Context(), query.ParseFilter(queryLookup(c)))
	if err != nil {
		return respondError(c, h.logger, err, "Failed to compute statistics")
	}

	return c.JSON(report)
}
