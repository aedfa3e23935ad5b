package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/cotizador/quoting-system/internal/core/domain"
	"github.com/cotizador/quoting-system/internal/core/ports"
)

// RateHandler exposes the rate table and the per-role profile options.
type RateHandler struct {
	service ports.RateService
}

func NewRateHandler(service ports.RateService) *RateHandler {
	return &RateHandler{service: service}
}

type upsertRateRequest struct {
	ServiceName string  `json:"service_name" validate:"required"`
	Level       string  `json:"level"        validate:"required,oneof=junior mid senior expert"`
	BasePrice   float64 `json:"base_price"   validate:"min=0"`
	Multiplier  float64 `json:"multiplier"   validate:"min=0"`
	Frequency   string  `json:"frequency"    validate:"omitempty,oneof=MONTHLY ONE_TIME"`
}

func (r *upsertRateRequest) normalize() {
	r.Level = strings.ToLower(strings.TrimSpace(r.Level))
	r.Frequency = strings.ToUpper(strings.TrimSpace(r.Frequency))
}

type profileOptionsResponse struct {
	Role      string                `json:"role"`
	Available bool                  `json:"available"`
	Options   []ports.ProfileOption `json:"options"`
}

// Options handles GET /api/rates/options.
// Tiers without a usable price are left out; an empty list means the
// profile is not available.
//
// @Summary      Selectable seniority tiers of a role
// @Tags         rates
// @Produce      json
// @Param        role           query     string  true   "Role / service name"
// @Param        default_price  query     number  false  "Default monthly price scaled by the seniority multipliers"
// @Success      200            {object}  profileOptionsResponse
// @Failure      400            {object}  errorResponse
// @Router       /api/rates/options [get]
func (h *RateHandler) Options(c echo.Context) error {
	role := strings.TrimSpace(c.QueryParam("role"))
	if role == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "role is required")
	}

	var defaultPrice *float64
	if raw := c.QueryParam("default_price"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v <= 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "default_price must be a positive number")
		}
		defaultPrice = &v
	}

	opts, err := h.service.ProfileOptions(c.Request().Context(), ports.ProfileOptionsInput{
		Role:         role,
		DefaultPrice: defaultPrice,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profileOptionsResponse{
		Role:      role,
		Available: len(opts) > 0,
		Options:   opts,
	})
}

// List handles GET /admin/rates.
//
// @Summary      List the rate table
// @Tags         admin
// @Produce      json
// @Success      200  {array}   domain.RateEntry
// @Failure      403  {object}  errorResponse
// @Router       /admin/rates [get]
func (h *RateHandler) List(c echo.Context) error {
	rates, err := h.service.ListRates(c.Request().Context())
	if err != nil {
		return err
	}
	if rates == nil {
		rates = []domain.RateEntry{}
	}
	return c.JSON(http.StatusOK, rates)
}

// Upsert handles PUT /admin/rates.
//
// @Summary      Create or replace a rate entry
// @Description  Entries are unique per (service, level, frequency).
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        body  body      upsertRateRequest  true  "Rate entry"
// @Success      200   {object}  domain.RateEntry
// @Failure      400   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /admin/rates [put]
func (h *RateHandler) Upsert(c echo.Context) error {
	var req upsertRateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	req.normalize()
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	entry, err := h.service.UpsertRate(c.Request().Context(), ports.UpsertRateInput{
		ServiceName: req.ServiceName,
		Level:       req.Level,
		BasePrice:   req.BasePrice,
		Multiplier:  req.Multiplier,
		Frequency:   req.Frequency,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, entry)
}

// Delete handles DELETE /admin/rates/:id.
//
// @Summary      Delete a rate entry
// @Tags         admin
// @Param        id   path  string  true  "Rate entry ID"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /admin/rates/{id} [delete]
func (h *RateHandler) Delete(c echo.Context) error {
	if err := h.service.DeleteRate(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
