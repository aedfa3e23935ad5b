package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/cotizador/quoting-system/internal/core/domain"
	"github.com/cotizador/quoting-system/internal/core/ports"
	"github.com/cotizador/quoting-system/internal/core/pricing"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
	historyLimit     = 200
)

type QuoteService struct {
	repo   ports.QuoteRepository
	users  ports.UserRepository
	rates  *RateService
	events ports.QuoteEventRepository
	board  ports.BoardSyncQueue
	logger zerolog.Logger
}

// NewQuoteService wires the quote use cases. events and board may be nil.
func NewQuoteService(
	repo ports.QuoteRepository,
	users ports.UserRepository,
	rates *RateService,
	events ports.QuoteEventRepository,
	board ports.BoardSyncQueue,
	logger zerolog.Logger,
) *QuoteService {
	return &QuoteService{repo: repo, users: users, rates: rates, events: events, board: board, logger: logger}
}

// CreateQuote prices the staffing lines server-side and stores the quote as a
// draft owned by in.UserID.
func (s *QuoteService) CreateQuote(ctx context.Context, in ports.CreateQuoteInput) (*domain.Quote, error) {
	owner, err := s.caller(ctx, domain.Identity{UserID: in.UserID, Email: in.Email})
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.ClientName) == "" {
		return nil, fmt.Errorf("create quote: %w: client name is required", domain.ErrValidation)
	}
	projectType := domain.ProjectType(strings.ToUpper(strings.TrimSpace(in.ProjectType)))
	switch projectType {
	case domain.ProjectTypeProject, domain.ProjectTypeStaffing, domain.ProjectTypeSustain:
	default:
		return nil, fmt.Errorf("create quote: %w: unknown project type %q", domain.ErrValidation, in.ProjectType)
	}
	if len(in.TechnicalParameters) > 0 && !json.Valid(in.TechnicalParameters) {
		return nil, fmt.Errorf("create quote: %w: technical parameters must be valid JSON", domain.ErrValidation)
	}

	lines, err := s.rates.priceLines(ctx, in.Staffing)
	if err != nil {
		return nil, fmt.Errorf("create quote: %w", err)
	}

	now := time.Now().UTC()
	q := &domain.Quote{
		ID:                   uuid.NewString(),
		ClientName:           strings.TrimSpace(in.ClientName),
		ProjectType:          projectType,
		ServiceType:          strings.TrimSpace(in.ServiceType),
		TechnicalParameters:  in.TechnicalParameters,
		EstimatedCost:        pricing.Total(lines),
		StaffingRequirements: lines,
		DiagramDefinition:    in.DiagramDefinition,
		Status:               domain.StatusDraft,
		UserID:               owner.UserID,
		BoardItemID:          strings.TrimSpace(in.BoardItemID),
		CreatedAt:            now,
		UpdatedAt:            now,
	}

	if err := s.repo.Create(ctx, q); err != nil {
		s.logger.Error().Err(err).Msg("failed to create quote")
		return nil, fmt.Errorf("create quote: %w", err)
	}

	s.logger.Info().
		Str("quote_id", q.ID).
		Str("user_id", q.UserID).
		Float64("estimated_cost", q.EstimatedCost).
		Msg("quote created")
	return q, nil
}

// GetQuote returns the quote when the caller owns it or is an administrator.
func (s *QuoteService) GetQuote(ctx context.Context, id string, identity domain.Identity) (*domain.Quote, error) {
	caller, err := s.caller(ctx, identity)
	if err != nil {
		return nil, err
	}
	q, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if caller.Role != domain.RoleAdmin && q.UserID != caller.UserID {
		return nil, domain.ErrForbidden
	}
	return q, nil
}

// ListQuotes scopes non-admin callers to their own quotes.
func (s *QuoteService) ListQuotes(ctx context.Context, in ports.ListQuotesInput) (*ports.ListQuotesResult, error) {
	page := in.Page
	if page < 1 {
		page = 1
	}
	limit := in.Limit
	if limit <= 0 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	caller, err := s.caller(ctx, in.Identity)
	if err != nil {
		return nil, err
	}
	filter := ports.ListQuotesFilter{Status: in.Status, Page: page, Limit: limit}
	if caller.Role != domain.RoleAdmin {
		filter.UserID = caller.UserID
	}

	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list quotes: %w", err)
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return &ports.ListQuotesResult{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}, nil
}

// ReviewQuote applies an administrative status transition and mirrors it on
// the board when the quote is linked to a board item.
func (s *QuoteService) ReviewQuote(ctx context.Context, in ports.ReviewQuoteInput) (*domain.Quote, error) {
	status := domain.QuoteStatus(strings.ToUpper(strings.TrimSpace(in.Status)))
	if !status.IsReviewStatus() {
		return nil, fmt.Errorf("review quote: %w: %q", domain.ErrInvalidStatus, in.Status)
	}

	fields := map[string]any{domain.FieldStatus: string(status)}
	if err := s.repo.UpdateFields(ctx, in.QuoteID, fields); err != nil {
		return nil, fmt.Errorf("review quote: %w", err)
	}

	q, err := s.repo.FindByID(ctx, in.QuoteID)
	if err != nil {
		return nil, fmt.Errorf("review quote: reload: %w", err)
	}

	s.audit(ctx, &domain.QuoteEvent{
		QuoteID:   q.ID,
		Source:    domain.EventSourceAdmin,
		Actor:     in.ActorID,
		Fields:    fields,
		Timestamp: time.Now().UTC(),
	})

	if s.board != nil && q.BoardItemID != "" {
		s.board.Enqueue(ports.BoardStatusUpdate{
			QuoteID:     q.ID,
			BoardItemID: q.BoardItemID,
			Status:      string(status),
		})
	}

	s.logger.Info().Str("quote_id", q.ID).Str("status", string(status)).Str("actor", in.ActorID).Msg("quote reviewed")
	return q, nil
}

// DeleteQuote removes a quote. It is only reachable from the admin surface.
func (s *QuoteService) DeleteQuote(ctx context.Context, id, actorID string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete quote: %w", err)
	}
	s.audit(ctx, &domain.QuoteEvent{
		QuoteID:   id,
		Source:    domain.EventSourceAdmin,
		Actor:     actorID,
		Fields:    map[string]any{"deleted": true},
		Timestamp: time.Now().UTC(),
	})
	s.logger.Info().Str("quote_id", id).Str("actor", actorID).Msg("quote deleted")
	return nil
}

// History returns the audit trail of a quote, newest first.
func (s *QuoteService) History(ctx context.Context, id string) ([]domain.QuoteEvent, error) {
	if s.events == nil {
		return []domain.QuoteEvent{}, nil
	}
	events, err := s.events.ListByQuote(ctx, id, historyLimit)
	if err != nil {
		return nil, fmt.Errorf("quote history: %w", err)
	}
	return events, nil
}

func (s *QuoteService) audit(ctx context.Context, e *domain.QuoteEvent) {
	if s.events == nil {
		return
	}
	if err := s.events.InsertEvent(ctx, e); err != nil && !errors.Is(err, context.Canceled) {
		s.logger.Warn().Err(err).Str("quote_id", e.QuoteID).Msg("failed to insert audit event")
	}
}

// caller re-reads the user behind a session identity. The user id must belong
// to the provider-verified email, and the role always comes from the store.
func (s *QuoteService) caller(ctx context.Context, identity domain.Identity) (domain.Identity, error) {
	if identity.UserID == "" || identity.Email == "" {
		return domain.Identity{}, domain.ErrUnauthenticated
	}
	user, err := s.users.FindByID(ctx, identity.UserID)
	if errors.Is(err, domain.ErrUserNotFound) {
		return domain.Identity{}, domain.ErrForbidden
	}
	if err != nil {
		return domain.Identity{}, fmt.Errorf("resolve caller: %w", err)
	}
	if !strings.EqualFold(user.Email, identity.Email) {
		s.logger.Warn().
			Str("user_id", identity.UserID).
			Str("email", identity.Email).
			Msg("session user id does not belong to the signed-in account")
		return domain.Identity{}, domain.ErrForbidden
	}
	role := user.Role
	if !domain.IsKnownRole(role) {
		role = domain.RoleConsultor
	}
	return domain.Identity{UserID: user.ID, Name: identity.Name, Email: user.Email, Role: role}, nil
}
