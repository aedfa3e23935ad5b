package handler

import (
	"bytes"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/cotizador/quoting-system/internal/api/metrics"
	"github.com/cotizador/quoting-system/internal/core/domain"
	"github.com/cotizador/quoting-system/internal/core/ports"
)

const (
	headerWebhookSecret  = "X-Webhook-Secret"
	headerIdempotencyKey = "Idempotency-Key"
	maxWebhookBody       = 64 << 10
)

// webhookRequest is the board delivery. id may arrive as a string or a number.
type webhookRequest struct {
	ID      any            `json:"id" swaggertype:"string"`
	Updates map[string]any `json:"updates"`
}

// webhookResponse is the envelope the board expects on every answer,
// errors included.
type webhookResponse struct {
	Success       bool     `json:"success"`
	Error         string   `json:"error,omitempty"`
	Updated       bool     `json:"updated"`
	UpdatedFields []string `json:"updatedFields"`
}

// WebhookHandler receives partial quote updates from the tracking board.
type WebhookHandler struct {
	service ports.WebhookService
	secret  string
	log     zerolog.Logger
}

// NewWebhookHandler returns a handler. An empty secret disables the
// X-Webhook-Secret check.
func NewWebhookHandler(service ports.WebhookService, secret string, log zerolog.Logger) *WebhookHandler {
	return &WebhookHandler{service: service, secret: secret, log: log}
}

// Receive handles POST /api/webhooks/monday.
//
// @Summary      Apply a partial quote update from the tracking board
// @Description  Only status, budget and serviceType are applied; other keys are ignored.
// @Description  An update set with no applicable field is a successful no-op.
// @Tags         webhooks
// @Accept       json
// @Produce      json
// @Param        X-Webhook-Secret  header    string          false  "Shared secret, required when configured"
// @Param        Idempotency-Key   header    string          false  "Delivery key used to drop retries"
// @Param        body              body      webhookRequest  true   "Update"
// @Success      200               {object}  webhookResponse
// @Failure      400               {object}  webhookResponse
// @Failure      401               {object}  webhookResponse
// @Failure      404               {object}  webhookResponse
// @Failure      500               {object}  webhookResponse
// @Router       /api/webhooks/monday [post]
func (h *WebhookHandler) Receive(c echo.Context) error {
	if h.secret != "" {
		got := c.Request().Header.Get(headerWebhookSecret)
		if subtle.ConstantTimeCompare([]byte(got), []byte(h.secret)) != 1 {
			return h.fail(c, http.StatusUnauthorized, "unauthorized", "invalid webhook secret")
		}
	}

	req, err := decodeWebhook(c.Request().Body)
	if err != nil {
		return h.fail(c, http.StatusBadRequest, "invalid", "invalid payload")
	}
	id, ok := webhookID(req.ID)
	if !ok {
		return h.fail(c, http.StatusBadRequest, "invalid", "id is required")
	}

	result, err := h.service.Apply(c.Request().Context(), ports.WebhookUpdateInput{
		ID:             id,
		Updates:        req.Updates,
		IdempotencyKey: strings.TrimSpace(c.Request().Header.Get(headerIdempotencyKey)),
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrQuoteNotFound):
			return h.fail(c, http.StatusNotFound, "not_found", "quote not found")
		case errors.Is(err, domain.ErrValidation):
			return h.fail(c, http.StatusBadRequest, "invalid", err.Error())
		}
		h.log.Error().Err(err).Str("quote_id", id).Msg("webhook update failed")
		return h.fail(c, http.StatusInternalServerError, "error", "internal server error")
	}

	outcome := "noop"
	switch {
	case result.Duplicate:
		outcome = "duplicate"
	case result.Updated:
		outcome = "updated"
	}
	metrics.WebhookUpdatesTotal.WithLabelValues(outcome).Inc()

	fields := result.UpdatedFields
	if fields == nil {
		fields = []string{}
	}
	return c.JSON(http.StatusOK, webhookResponse{
		Success:       true,
		Updated:       result.Updated,
		UpdatedFields: fields,
	})
}

func (h *WebhookHandler) fail(c echo.Context, status int, outcome, msg string) error {
	metrics.WebhookUpdatesTotal.WithLabelValues(outcome).Inc()
	return c.JSON(status, webhookResponse{Success: false, Error: msg, UpdatedFields: []string{}})
}

// decodeWebhook keeps numbers as json.Number so large item ids and budgets
// survive without float rounding.
func decodeWebhook(body io.Reader) (*webhookRequest, error) {
	raw, err := io.ReadAll(io.LimitReader(body, maxWebhookBody))
	if err != nil {
		return nil, err
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var req webhookRequest
	if err := dec.Decode(&req); err != nil {
		return nil, err
	}
	if req.Updates == nil {
		req.Updates = map[string]any{}
	}
	return &req, nil
}

func webhookID(v any) (string, bool) {
	var id string
	switch t := v.(type) {
	case string:
		id = strings.TrimSpace(t)
	case json.Number:
		id = t.String()
	}
	return id, id != ""
}
