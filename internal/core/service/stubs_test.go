package service

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/cotizador/quoting-system/internal/core/domain"
	"github.com/cotizador/quoting-system/internal/core/ports"
)

// ---------------------------------------------------------------------------
// Users
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	users     map[string]*domain.User // by email
	findErr   error
	upsertErr error
	finds     int
	upserts   int
}

func newStubUserRepo(users ...*domain.User) *stubUserRepo {
	r := &stubUserRepo{users: make(map[string]*domain.User)}
	for _, u := range users {
		r.users[u.Email] = u
	}
	return r
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.finds++
	if r.findErr != nil {
		return nil, r.findErr
	}
	u, ok := r.users[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) UpsertByEmail(_ context.Context, email, name, defaultRole string) (*domain.User, error) {
	r.upserts++
	if r.upsertErr != nil {
		return nil, r.upsertErr
	}
	if u, ok := r.users[email]; ok {
		if name != "" {
			u.Name = name
		}
		return cloneUser(u), nil
	}
	u := &domain.User{ID: "u-" + strings.Split(email, "@")[0], Email: email, Name: name, Role: defaultRole}
	r.users[email] = u
	return cloneUser(u), nil
}

// ---------------------------------------------------------------------------
// Quotes
// ---------------------------------------------------------------------------

type stubQuoteRepo struct {
	mu        sync.Mutex
	quotes    map[string]*domain.Quote
	updates   []map[string]any
	createErr error
	updateErr error
	lastList  ports.ListQuotesFilter
}

func newStubQuoteRepo(quotes ...*domain.Quote) *stubQuoteRepo {
	r := &stubQuoteRepo{quotes: make(map[string]*domain.Quote)}
	for _, q := range quotes {
		r.quotes[q.ID] = q
	}
	return r
}

func (r *stubQuoteRepo) Create(_ context.Context, q *domain.Quote) error {
	if r.createErr != nil {
		return r.createErr
	}
	c := *q
	r.quotes[q.ID] = &c
	return nil
}

func (r *stubQuoteRepo) FindByID(_ context.Context, id string) (*domain.Quote, error) {
	q, ok := r.quotes[id]
	if !ok {
		return nil, domain.ErrQuoteNotFound
	}
	c := *q
	return &c, nil
}

func (r *stubQuoteRepo) List(_ context.Context, f ports.ListQuotesFilter) ([]*domain.Quote, int64, error) {
	r.lastList = f
	var out []*domain.Quote
	for _, q := range r.quotes {
		if f.UserID != "" && q.UserID != f.UserID {
			continue
		}
		if f.Status != "" && string(q.Status) != f.Status {
			continue
		}
		out = append(out, q)
	}
	return out, int64(len(out)), nil
}

func (r *stubQuoteRepo) UpdateFields(_ context.Context, id string, fields map[string]any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.updateErr != nil {
		return r.updateErr
	}
	q, ok := r.quotes[id]
	if !ok {
		return domain.ErrQuoteNotFound
	}
	for k, v := range fields {
		switch k {
		case domain.FieldStatus:
			q.Status = domain.QuoteStatus(v.(string))
		case domain.FieldEstimatedCost:
			q.EstimatedCost = v.(float64)
		case domain.FieldServiceType:
			q.ServiceType = v.(string)
		}
	}
	r.updates = append(r.updates, fields)
	return nil
}

func (r *stubQuoteRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.quotes[id]; !ok {
		return domain.ErrQuoteNotFound
	}
	delete(r.quotes, id)
	return nil
}

// ---------------------------------------------------------------------------
// Audit events
// ---------------------------------------------------------------------------

type stubEventRepo struct {
	insertErr error
	inserted  []*domain.QuoteEvent
}

func (r *stubEventRepo) InsertEvent(_ context.Context, e *domain.QuoteEvent) error {
	if r.insertErr != nil {
		return r.insertErr
	}
	r.inserted = append(r.inserted, e)
	return nil
}

func (r *stubEventRepo) ListByQuote(_ context.Context, quoteID string, _ int) ([]domain.QuoteEvent, error) {
	var out []domain.QuoteEvent
	for i := len(r.inserted) - 1; i >= 0; i-- {
		if r.inserted[i].QuoteID == quoteID {
			out = append(out, *r.inserted[i])
		}
	}
	return out, nil
}

// ---------------------------------------------------------------------------
// Rates
// ---------------------------------------------------------------------------

type stubRateRepo struct {
	rates   []domain.RateEntry
	listErr error
	saved   []*domain.RateEntry
}

func (r *stubRateRepo) List(_ context.Context, freq domain.BillingFrequency) ([]domain.RateEntry, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	if freq == "" {
		return r.rates, nil
	}
	var out []domain.RateEntry
	for _, e := range r.rates {
		if e.Frequency == freq {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *stubRateRepo) Upsert(_ context.Context, e *domain.RateEntry) error {
	r.saved = append(r.saved, e)
	return nil
}

func (r *stubRateRepo) Delete(_ context.Context, id string) error {
	for i, e := range r.rates {
		if e.ID == id {
			r.rates = append(r.rates[:i], r.rates[i+1:]...)
			return nil
		}
	}
	return domain.ErrRateNotFound
}

// ---------------------------------------------------------------------------
// Board
// ---------------------------------------------------------------------------

type stubBoardQueue struct {
	enqueued []ports.BoardStatusUpdate
}

func (q *stubBoardQueue) Enqueue(u ports.BoardStatusUpdate) {
	q.enqueued = append(q.enqueued, u)
}

var errStoreDown = errors.New("store unavailable")
