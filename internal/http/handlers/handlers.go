package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/tcrfreight/backend/internal/airtable"
	"github.com/tcrfreight/backend/internal/geocode"
	"github.com/tcrfreight/backend/internal/models"
	"github.com/tcrfreight/backend/internal/service"
)

type Handler struct {
	Tickets   *service.TicketService
	Tracer    *service.TracingService
	Validator *validator.Validate
	Logger    zerolog.Logger
}

func (h *Handler) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// @Summary Search freight ticket prices
// @Tags tickets
// @Produce json
// @Param pol query string true "Port of loading"
// @Param pod query string true "Port of discharge"
// @Param type query string true "Container type (20, 40 or a canonical token)"
// @Success 200 {array} models.TicketRecord
// @Failure 400 {object} map[string]any
// @Failure 404 {object} map[string]any
// @Router /api/tickets [get]
func (h *Handler) TicketsSearch(c *gin.Context) {
	var q models.TicketQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid query parameters", err.Error())
		return
	}
	if err := h.Validator.Struct(q); err != nil {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "pol, pod and type are required", err.Error())
		return
	}

	records, err := h.Tickets.Search(c.Request.Context(), q)
	if err != nil {
		h.writeServiceError(c, err, "ticket search failed")
		return
	}
	if len(records) == 0 {
		writeError(c, http.StatusNotFound, "NOT_FOUND", "No tickets match the given route and type", nil)
		return
	}
	c.JSON(http.StatusOK, records)
}

// @Summary Autocomplete a ticket column
// @Tags tickets
// @Produce json
// @Param query query string true "Free text"
// @Param field query string true "Column to suggest from (POL, POD, Type, Route)"
// @Success 200 {array} string
// @Failure 400 {object} map[string]any
// @Router /api/autocomplete [get]
func (h *Handler) Autocomplete(c *gin.Context) {
	var q models.AutocompleteQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid query parameters", err.Error())
		return
	}
	if err := h.Validator.Struct(q); err != nil {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "query and field are required", err.Error())
		return
	}

	suggestions, err := h.Tickets.Autocomplete(c.Request.Context(), q.Query, q.Field)
	if err != nil {
		h.writeServiceError(c, err, "autocomplete failed")
		return
	}
	c.JSON(http.StatusOK, suggestions)
}

// @Summary Trace a shipment by bill of lading
// @Tags tracing
// @Produce json
// @Param BL query string true "Bill of lading number"
// @Success 200 {object} models.TracingResult
// @Failure 400 {object} map[string]any
// @Failure 404 {object} map[string]any
// @Router /api/tracing [get]
func (h *Handler) Tracing(c *gin.Context) {
	bl := strings.TrimSpace(c.Query("BL"))
	if bl == "" {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "BL is required", nil)
		return
	}

	result, err := h.Tracer.Trace(c.Request.Context(), bl)
	if err != nil {
		h.writeServiceError(c, err, "tracing failed")
		return
	}
	c.JSON(http.StatusOK, result)
}

// @Summary List all tracing rows
// @Tags tracing
// @Produce json
// @Success 200 {array} airtable.Record
// @Failure 404 {object} map[string]any
// @Router /api/tracing_all [get]
func (h *Handler) TracingAll(c *gin.Context) {
	rows, err := h.Tracer.All(c.Request.Context())
	if err != nil {
		h.writeServiceError(c, err, "tracing list failed")
		return
	}
	c.JSON(http.StatusOK, rows)
}

// @Summary Diagnostic passthrough of the tickets table
// @Tags debug
// @Produce json
// @Success 200 {array} airtable.Record
// @Router /api/test [get]
func (h *Handler) TestPassthrough(c *gin.Context) {
	rows, err := h.Tickets.Airtable.SelectFirstPage(c.Request.Context(), h.Tickets.Table, nil)
	if err != nil {
		h.writeServiceError(c, err, "passthrough failed")
		return
	}
	c.JSON(http.StatusOK, rows)
}

// writeServiceError maps the error taxonomy onto HTTP statuses. The
// upstream services' messages stay server-side; the client gets the
// category and a short description.
func (h *Handler) writeServiceError(c *gin.Context, err error, logMsg string) {
	switch {
	case errors.Is(err, service.ErrValidation):
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
	case errors.Is(err, service.ErrNotFound):
		writeError(c, http.StatusNotFound, "NOT_FOUND", "No matching records", nil)
	case errors.Is(err, airtable.ErrUpstream):
		h.Logger.Error().Err(err).Msg(logMsg)
		writeError(c, http.StatusBadGateway, "UPSTREAM_ERROR", "Tabular data service unavailable", nil)
	case errors.Is(err, geocode.ErrNotFound):
		h.Logger.Error().Err(err).Msg(logMsg)
		writeError(c, http.StatusInternalServerError, "GEOCODE_ERROR", "Could not geocode shipment locations", nil)
	default:
		h.Logger.Error().Err(err).Msg(logMsg)
		writeError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Request could not be completed", nil)
	}
}

func writeError(c *gin.Context, status int, code string, message string, details any) {
	c.JSON(status, gin.H{
		"error": gin.H{
			"code":    code,
			"message": message,
			"details": details,
		},
	})
}
