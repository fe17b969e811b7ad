package handlers

import (
	"bytes"
	"context"

	"loan-scorer/internal/export"
	"loan-scorer/internal/models"
	"loan-scorer/internal/query"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type RequestQuerier interface {
	ListRequests(ctx context.Context, f query.Filter) ([]models.FinancingRequest, error)
	Statistics(ctx context.Context, f query.Filter) (*query.Report, error)
}

type RequestHandler struct {
	queries RequestQuerier
	logger  *zap.Logger
}

func NewRequestHandler(queries RequestQuerier, logger *zap.Logger) *RequestHandler {
	return &RequestHandler{
		queries: queries,
		logger:  logger,
	}
}

// ListRequests godoc
// @Summary List stored financing requests
// @Description Range filters use <field>_min / <field>_max, categorical filters use the field name
// @Tags requests
// @Produce json
// @Param Eta_min query number false "Minimum age"
// @Param Eta_max query number false "Maximum age"
// @Param ImportoRichiesto_min query number false "Minimum amount requested"
// @Param ImportoRichiesto_max query number false "Maximum amount requested"
// @Param ProbabilitaFinanziamentoApprovato_min query number false "Minimum approval probability"
// @Param Sesso query string false "Sex"
// @Param TitoloStudio query string false "Education"
// @Param InformazioniImmobile query string false "Real estate"
// @Param ScopoFinanziamento query string false "Purpose"
// @Param InadempienzeFinanziamentiPrecedenti query string false "Prior default"
// @Param limit query int false "Maximum number of rows"
// @Success 200 {array} models.FinancingRequest
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/richieste [get]
func (h *RequestHandler) ListRequests(c *fiber.Ctx) error {
	f := query.ParseFilter(queryLookup(c))

	records, err := h.queries.ListRequests(c.Context(), f)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to list requests")
	}
	if records == nil {
		records = []models.FinancingRequest{}
	}

	return c.JSON(records)
}

// Export godoc
// @Summary Export stored financing requests
// @Description Same filters as the list endpoint; limit is ignored
// @Tags requests
// @Produce text/csv
// @Produce json
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param format query string false "csv, json or excel" default(csv)
// @Success 200 {file} file
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/richieste/export [get]
func (h *RequestHandler) Export(c *fiber.Ctx) error {
	format, err := export.ParseFormat(c.Query("format"))
	if err != nil {
		return respondError(c, h.logger, err, "Invalid export format")
	}

	f := query.ParseFilter(queryLookup(c))
	f.Limit = 0

	records, err := h.queries.ListRequests(c.Context(), f)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to export requests")
	}

	var buf bytes.Buffer
	if err := export.Write(&buf, format, records); err != nil {
		return respondError(c, h.logger, err, "Failed to export requests")
	}

	if name := format.FileName(); name != "" {
		c.Attachment(name)
	}
	c.Set(fiber.HeaderContentType, format.ContentType())
	return c.Send(buf.Bytes())
}
