package ports

import "context"

// WebhookUpdateInput is the decoded body of a board webhook delivery.
// Updates keeps the raw values so unrecognised keys can be ignored and
// budget can arrive either as a number or a string.
type WebhookUpdateInput struct {
	ID             string
	Updates        map[string]any
	IdempotencyKey string
}

// WebhookUpdateResult reports which quote columns were written.
type WebhookUpdateResult struct {
	Updated       bool
	UpdatedFields []string
	Duplicate     bool
}

// WebhookService applies partial updates sent by the tracking board.
type WebhookService interface {
	Apply(ctx context.Context, in WebhookUpdateInput) (*WebhookUpdateResult, error)
}
