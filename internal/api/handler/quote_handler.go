package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/cotizador/quoting-system/internal/api/metrics"
	"github.com/cotizador/quoting-system/internal/core/export"
	"github.com/cotizador/quoting-system/internal/core/ports"
)

// QuoteHandler handles HTTP requests for quote operations.
type QuoteHandler struct {
	service ports.QuoteService
}

func NewQuoteHandler(service ports.QuoteService) *QuoteHandler {
	return &QuoteHandler{service: service}
}

// Create handles POST /api/quotes.
//
// @Summary      Create a quote
// @Description  Prices every staffing line against the rate table and stores the quote as a draft.
// @Tags         quotes
// @Accept       json
// @Produce      json
// @Param        body  body      createQuoteRequest  true  "Quote form"
// @Success      201   {object}  quoteResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /api/quotes [post]
func (h *QuoteHandler) Create(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req createQuoteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	req.normalize()
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	q, err := h.service.CreateQuote(c.Request().Context(), toCreateInput(req, identity))
	if err != nil {
		return err
	}

	metrics.QuotesCreatedTotal.WithLabelValues(string(q.ProjectType)).Inc()
	metrics.QuoteEstimatedCost.Observe(q.EstimatedCost)

	return c.JSON(http.StatusCreated, toQuoteResponse(q))
}

// List handles GET /api/quotes. Consultants only see their own quotes.
//
// @Summary      List quotes
// @Tags         quotes
// @Produce      json
// @Param        status  query     string  false  "Filter by status"
// @Param        page    query     int     false  "Page number (1-based)"
// @Param        limit   query     int     false  "Page size (max 100)"
// @Success      200     {object}  listQuotesResponse
// @Failure      401     {object}  errorResponse
// @Router       /api/quotes [get]
func (h *QuoteHandler) List(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	result, err := h.service.ListQuotes(c.Request().Context(), ports.ListQuotesInput{
		Identity: *identity,
		Status:   c.QueryParam("status"),
		Page:     page,
		Limit:    limit,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toListResponse(result))
}

// Get handles GET /api/quotes/:id.
//
// @Summary      Get a quote
// @Tags         quotes
// @Produce      json
// @Param        id   path      string  true  "Quote ID"
// @Success      200  {object}  quoteResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/quotes/{id} [get]
func (h *QuoteHandler) Get(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	q, err := h.service.GetQuote(c.Request().Context(), c.Param("id"), *identity)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toQuoteResponse(q))
}

// Export handles GET /api/quotes/:id/export. It returns the field mapping
// consumed by the Word/PDF templates.
//
// @Summary      Export field mapping of a quote
// @Tags         quotes
// @Produce      json
// @Param        id   path      string  true  "Quote ID"
// @Success      200  {object}  exportResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/quotes/{id}/export [get]
func (h *QuoteHandler) Export(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	q, err := h.service.GetQuote(c.Request().Context(), c.Param("id"), *identity)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, exportResponse{QuoteID: q.ID, Document: export.Fields(q)})
}

// Review handles PATCH /admin/quotes/:id/status.
//
// @Summary      Change the review status of a quote
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id    path      string              true  "Quote ID"
// @Param        body  body      reviewQuoteRequest  true  "New status"
// @Success      200   {object}  quoteResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /admin/quotes/{id}/status [patch]
func (h *QuoteHandler) Review(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req reviewQuoteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	q, err := h.service.ReviewQuote(c.Request().Context(), ports.ReviewQuoteInput{
		QuoteID: c.Param("id"),
		Status:  req.Status,
		ActorID: identity.UserID,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toQuoteResponse(q))
}

// Delete handles DELETE /admin/quotes/:id.
//
// @Summary      Delete a quote
// @Tags         admin
// @Param        id   path  string  true  "Quote ID"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /admin/quotes/{id} [delete]
func (h *QuoteHandler) Delete(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	if err := h.service.DeleteQuote(c.Request().Context(), c.Param("id"), identity.UserID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// History handles GET /admin/quotes/:id/events.
//
// @Summary      Audit trail of a quote
// @Tags         admin
// @Produce      json
// @Param        id   path      string  true  "Quote ID"
// @Success      200  {array}   quoteEventResponse
// @Failure      403  {object}  errorResponse
// @Router       /admin/quotes/{id}/events [get]
func (h *QuoteHandler) History(c echo.Context) error {
	events, err := h.service.History(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toEventResponses(events))
}
