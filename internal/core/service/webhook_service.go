package service

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/cotizador/quoting-system/internal/core/domain"
	"github.com/cotizador/quoting-system/internal/core/ports"
)

// DedupChecker abstracts the delivery idempotency store (Redis).
type DedupChecker interface {
	IsDuplicate(ctx context.Context, key string) (bool, error)
	Mark(ctx context.Context, key string) error
}

// Keys accepted in a webhook "updates" object.
const (
	updateKeyStatus      = "status"
	updateKeyBudget      = "budget"
	updateKeyServiceType = "serviceType"
)

type webhookService struct {
	quotes ports.QuoteRepository
	events ports.QuoteEventRepository
	dedup  DedupChecker
	log    zerolog.Logger
	now    func() time.Time
}

// NewWebhookService returns a WebhookService implementation. dedup may be nil,
// in which case idempotency keys are ignored.
func NewWebhookService(
	quotes ports.QuoteRepository,
	events ports.QuoteEventRepository,
	dedup DedupChecker,
	log zerolog.Logger,
) ports.WebhookService {
	return &webhookService{
		quotes: quotes,
		events: events,
		dedup:  dedup,
		log:    log,
		now:    time.Now,
	}
}

// Apply copies the recognised fields of in.Updates onto the quote. Concurrent
// deliveries for the same quote are last-writer-wins.
func (s *webhookService) Apply(ctx context.Context, in ports.WebhookUpdateInput) (*ports.WebhookUpdateResult, error) {
	id := strings.TrimSpace(in.ID)
	if id == "" {
		return nil, fmt.Errorf("webhook: %w: id is required", domain.ErrValidation)
	}

	// 1. Delivery idempotency, only when the sender supplied a key.
	if in.IdempotencyKey != "" && s.dedup != nil {
		isDup, err := s.dedup.IsDuplicate(ctx, in.IdempotencyKey)
		if err != nil {
			s.log.Warn().Err(err).Str("quote_id", id).Msg("dedup check failed, processing anyway")
		} else if isDup {
			s.log.Debug().Str("quote_id", id).Str("key", in.IdempotencyKey).Msg("duplicate delivery skipped")
			return &ports.WebhookUpdateResult{Duplicate: true, UpdatedFields: []string{}}, nil
		}
	}

	// 2. Keep only the keys this application owns.
	fields, names := buildUpdateSet(in.Updates)
	if len(fields) == 0 {
		s.log.Debug().Str("quote_id", id).Msg("webhook carried no applicable fields")
		return &ports.WebhookUpdateResult{Updated: false, UpdatedFields: []string{}}, nil
	}

	// 3. Write. A missing quote surfaces as domain.ErrQuoteNotFound.
	if err := s.quotes.UpdateFields(ctx, id, fields); err != nil {
		return nil, fmt.Errorf("webhook: update quote %s: %w", id, err)
	}

	if in.IdempotencyKey != "" && s.dedup != nil {
		if err := s.dedup.Mark(ctx, in.IdempotencyKey); err != nil {
			s.log.Warn().Err(err).Str("quote_id", id).Msg("failed to set dedup key")
		}
	}

	// 4. Audit trail (non-fatal on failure).
	if s.events != nil {
		event := &domain.QuoteEvent{
			QuoteID:   id,
			Source:    domain.EventSourceWebhook,
			Fields:    fields,
			Timestamp: s.now().UTC(),
		}
		if err := s.events.InsertEvent(ctx, event); err != nil {
			s.log.Warn().Err(err).Str("quote_id", id).Msg("failed to insert audit event")
		}
	}

	s.log.Info().Str("quote_id", id).Strs("fields", names).Msg("webhook update applied")

	return &ports.WebhookUpdateResult{Updated: true, UpdatedFields: names}, nil
}

// buildUpdateSet maps webhook keys to quote columns. Unknown keys and values
// of the wrong shape are dropped. names keeps a stable order.
func buildUpdateSet(updates map[string]any) (map[string]any, []string) {
	fields := make(map[string]any, 3)
	names := make([]string, 0, 3)

	if v, ok := updates[updateKeyStatus].(string); ok && strings.TrimSpace(v) != "" {
		fields[domain.FieldStatus] = strings.TrimSpace(v)
		names = append(names, updateKeyStatus)
	}
	if raw, ok := updates[updateKeyBudget]; ok {
		if cost, ok := parseBudget(raw); ok {
			fields[domain.FieldEstimatedCost] = cost
			names = append(names, updateKeyBudget)
		}
	}
	if v, ok := updates[updateKeyServiceType].(string); ok && strings.TrimSpace(v) != "" {
		fields[domain.FieldServiceType] = strings.TrimSpace(v)
		names = append(names, updateKeyServiceType)
	}
	return fields, names
}

// parseBudget accepts a JSON number or a numeric string holding a finite value.
func parseBudget(raw any) (float64, bool) {
	var f float64
	switch v := raw.(type) {
	case float64:
		f = v
	case json.Number:
		n, err := v.Float64()
		if err != nil {
			return 0, false
		}
		f = n
	case string:
		n, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}
		f = n
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
