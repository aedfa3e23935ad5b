package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/cotizador/quoting-system/internal/core/domain"
	"github.com/cotizador/quoting-system/internal/core/ports"
)

func monthlyRates() *stubRateRepo {
	return &stubRateRepo{rates: []domain.RateEntry{
		{ID: "r1", ServiceName: "Backend Developer", Level: domain.LevelSenior, BasePrice: 4200, Frequency: domain.FrequencyMonthly},
		{ID: "r2", ServiceName: "QA Analyst", Level: domain.LevelMid, BasePrice: 2100.5, Frequency: domain.FrequencyMonthly},
		{ID: "r3", ServiceName: "Backend Developer", Level: domain.LevelSenior, BasePrice: 9999, Frequency: domain.FrequencyOneTime},
	}}
}

func quoteUsers() *stubUserRepo {
	return newStubUserRepo(
		&domain.User{ID: "owner", Email: "owner@example.com", Role: domain.RoleConsultor},
		&domain.User{ID: "other", Email: "other@example.com", Role: domain.RoleConsultor},
		&domain.User{ID: "a", Email: "a@example.com", Role: domain.RoleConsultor},
		&domain.User{ID: "admin", Email: "admin@example.com", Role: domain.RoleAdmin},
	)
}

func asUser(id string, role string) domain.Identity {
	return domain.Identity{UserID: id, Email: id + "@example.com", Role: role}
}

func newQuoteSvc(repo *stubQuoteRepo, events *stubEventRepo, board *stubBoardQueue) *QuoteService {
	rates := NewRateService(monthlyRates(), nil, zerolog.Nop())
	// Keep nil stubs as nil interfaces.
	var ev ports.QuoteEventRepository
	if events != nil {
		ev = events
	}
	var bq ports.BoardSyncQueue
	if board != nil {
		bq = board
	}
	return NewQuoteService(repo, quoteUsers(), rates, ev, bq, zerolog.Nop())
}

func floatPtr(v float64) *float64 { return &v }

func TestCreateQuote_PricesServerSide(t *testing.T) {
	repo := newStubQuoteRepo()
	svc := newQuoteSvc(repo, &stubEventRepo{}, &stubBoardQueue{})

	q, err := svc.CreateQuote(context.Background(), ports.CreateQuoteInput{
		ClientName:          " Acme ",
		ProjectType:         "staffing",
		ServiceType:         "cloud",
		TechnicalParameters: json.RawMessage(`{"users":100}`),
		Staffing: []ports.StaffingInput{
			{Role: "backend developer", Level: "senior", Quantity: 2},
			{Role: "QA Analyst", Level: "mid"},
			{Role: "Architect", Level: "expert", DefaultPrice: floatPtr(3000)},
		},
		UserID: "owner",
		Email:  "owner@example.com",
	})
	if err != nil {
		t.Fatalf("CreateQuote returned error: %v", err)
	}

	// 2*4200 + 1*2100.5 + 3000*1.7
	if q.EstimatedCost != 15600.5 {
		t.Fatalf("unexpected total %v", q.EstimatedCost)
	}
	if q.Status != domain.StatusDraft || q.ProjectType != domain.ProjectTypeStaffing || q.ClientName != "Acme" {
		t.Fatalf("unexpected quote %+v", q)
	}
	if q.StaffingRequirements[1].Quantity != 1 {
		t.Fatalf("quantity should default to 1")
	}
	if _, ok := repo.quotes[q.ID]; !ok {
		t.Fatalf("quote not persisted")
	}
}

func TestCreateQuote_Validation(t *testing.T) {
	svc := newQuoteSvc(newStubQuoteRepo(), nil, nil)
	base := ports.CreateQuoteInput{ClientName: "Acme", ProjectType: "PROYECTO", UserID: "owner", Email: "owner@example.com"}

	tests := []struct {
		name    string
		mutate  func(*ports.CreateQuoteInput)
		wantErr error
	}{
		{"anonymous", func(in *ports.CreateQuoteInput) { in.UserID = "" }, domain.ErrUnauthenticated},
		{"foreign user id", func(in *ports.CreateQuoteInput) { in.UserID = "other" }, domain.ErrForbidden},
		{"no client", func(in *ports.CreateQuoteInput) { in.ClientName = " " }, domain.ErrValidation},
		{"bad project type", func(in *ports.CreateQuoteInput) { in.ProjectType = "OTRO" }, domain.ErrValidation},
		{"bad json", func(in *ports.CreateQuoteInput) { in.TechnicalParameters = json.RawMessage(`{`) }, domain.ErrValidation},
		{"unknown level", func(in *ports.CreateQuoteInput) {
			in.Staffing = []ports.StaffingInput{{Role: "QA Analyst", Level: "principal"}}
		}, domain.ErrValidation},
		{"unpriced role", func(in *ports.CreateQuoteInput) {
			in.Staffing = []ports.StaffingInput{{Role: "Designer", Level: "mid"}}
		}, domain.ErrProfileUnavailable},
		{"negative default price", func(in *ports.CreateQuoteInput) {
			in.Staffing = []ports.StaffingInput{{Role: "Designer", Level: "mid", DefaultPrice: floatPtr(-500)}}
		}, domain.ErrProfileUnavailable},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			in := base
			tc.mutate(&in)
			if _, err := svc.CreateQuote(context.Background(), in); !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestGetQuote_Ownership(t *testing.T) {
	repo := newStubQuoteRepo(&domain.Quote{ID: "Q1", UserID: "owner"})
	svc := newQuoteSvc(repo, nil, nil)
	ctx := context.Background()

	if _, err := svc.GetQuote(ctx, "Q1", asUser("owner", domain.RoleConsultor)); err != nil {
		t.Fatalf("owner should read the quote: %v", err)
	}
	if _, err := svc.GetQuote(ctx, "Q1", asUser("admin", domain.RoleAdmin)); err != nil {
		t.Fatalf("admin should read the quote: %v", err)
	}
	if _, err := svc.GetQuote(ctx, "Q1", asUser("other", domain.RoleConsultor)); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if _, err := svc.GetQuote(ctx, "nope", asUser("admin", domain.RoleAdmin)); !errors.Is(err, domain.ErrQuoteNotFound) {
		t.Fatalf("expected ErrQuoteNotFound, got %v", err)
	}
}

func TestListQuotes_ScopesConsultants(t *testing.T) {
	repo := newStubQuoteRepo(
		&domain.Quote{ID: "Q1", UserID: "a"},
		&domain.Quote{ID: "Q2", UserID: "b"},
		&domain.Quote{ID: "Q3", UserID: "a"},
	)
	svc := newQuoteSvc(repo, nil, nil)

	res, err := svc.ListQuotes(context.Background(), ports.ListQuotesInput{
		Identity: asUser("a", domain.RoleConsultor),
		Limit:    500,
	})
	if err != nil {
		t.Fatalf("ListQuotes returned error: %v", err)
	}
	if res.Total != 2 || repo.lastList.UserID != "a" {
		t.Fatalf("expected consultant scope, got total=%d filter=%+v", res.Total, repo.lastList)
	}
	if res.Limit != maxPageLimit || res.Page != 1 || res.TotalPages != 1 {
		t.Fatalf("unexpected paging %+v", res)
	}

	res, err = svc.ListQuotes(context.Background(), ports.ListQuotesInput{Identity: asUser("admin", domain.RoleAdmin)})
	if err != nil {
		t.Fatalf("admin ListQuotes returned error: %v", err)
	}
	if res.Total != 3 || repo.lastList.UserID != "" || res.Limit != defaultPageLimit {
		t.Fatalf("admin should see every quote, got %+v", res)
	}
}

func TestQuoteAccess_CookieClaimsAreRecheckedAgainstStore(t *testing.T) {
	repo := newStubQuoteRepo(
		&domain.Quote{ID: "Q1", UserID: "other"},
		&domain.Quote{ID: "Q2", UserID: "admin"},
	)
	svc := newQuoteSvc(repo, nil, nil)
	ctx := context.Background()

	// Signed in as other@example.com, claiming admin in the role cookie.
	elevated := domain.Identity{UserID: "other", Email: "other@example.com", Role: domain.RoleAdmin}
	res, err := svc.ListQuotes(ctx, ports.ListQuotesInput{Identity: elevated})
	if err != nil {
		t.Fatalf("ListQuotes returned error: %v", err)
	}
	if res.Total != 1 || repo.lastList.UserID != "other" {
		t.Fatalf("cookie role must not widen the scope, got total=%d filter=%+v", res.Total, repo.lastList)
	}
	if _, err := svc.GetQuote(ctx, "Q2", elevated); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for elevated role, got %v", err)
	}

	// Signed in as other@example.com, pointing the user id cookie at the admin.
	borrowed := domain.Identity{UserID: "admin", Email: "other@example.com", Role: domain.RoleAdmin}
	if _, err := svc.ListQuotes(ctx, ports.ListQuotesInput{Identity: borrowed}); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for borrowed user id, got %v", err)
	}
	if _, err := svc.GetQuote(ctx, "Q2", borrowed); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for borrowed user id, got %v", err)
	}

	if _, err := svc.GetQuote(ctx, "Q1", domain.Identity{UserID: "ghost", Email: "ghost@example.com"}); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for unknown user, got %v", err)
	}
}

func TestReviewQuote_AuditsAndSyncsBoard(t *testing.T) {
	repo := newStubQuoteRepo(&domain.Quote{ID: "Q1", Status: domain.StatusSent, BoardItemID: "987"})
	events := &stubEventRepo{}
	board := &stubBoardQueue{}
	svc := newQuoteSvc(repo, events, board)

	q, err := svc.ReviewQuote(context.Background(), ports.ReviewQuoteInput{QuoteID: "Q1", Status: "aprobada", ActorID: "admin-1"})
	if err != nil {
		t.Fatalf("ReviewQuote returned error: %v", err)
	}
	if q.Status != domain.StatusApproved {
		t.Fatalf("unexpected status %s", q.Status)
	}
	if len(events.inserted) != 1 || events.inserted[0].Actor != "admin-1" || events.inserted[0].Source != domain.EventSourceAdmin {
		t.Fatalf("expected admin audit event, got %+v", events.inserted)
	}
	if len(board.enqueued) != 1 || board.enqueued[0].BoardItemID != "987" || board.enqueued[0].Status != "APROBADA" {
		t.Fatalf("expected board sync, got %+v", board.enqueued)
	}
}

func TestReviewQuote_Rejections(t *testing.T) {
	repo := newStubQuoteRepo(&domain.Quote{ID: "Q1"})
	board := &stubBoardQueue{}
	svc := newQuoteSvc(repo, nil, board)

	if _, err := svc.ReviewQuote(context.Background(), ports.ReviewQuoteInput{QuoteID: "Q1", Status: "CERRADA"}); !errors.Is(err, domain.ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
	if _, err := svc.ReviewQuote(context.Background(), ports.ReviewQuoteInput{QuoteID: "nope", Status: "ENVIADA"}); !errors.Is(err, domain.ErrQuoteNotFound) {
		t.Fatalf("expected ErrQuoteNotFound, got %v", err)
	}

	// A quote without a board item is not synced.
	if _, err := svc.ReviewQuote(context.Background(), ports.ReviewQuoteInput{QuoteID: "Q1", Status: "ENVIADA"}); err != nil {
		t.Fatalf("ReviewQuote returned error: %v", err)
	}
	if len(board.enqueued) != 0 {
		t.Fatalf("expected no board sync")
	}
}

func TestDeleteQuoteAndHistory(t *testing.T) {
	repo := newStubQuoteRepo(&domain.Quote{ID: "Q1"})
	events := &stubEventRepo{}
	svc := newQuoteSvc(repo, events, nil)

	if err := svc.DeleteQuote(context.Background(), "Q1", "admin-1"); err != nil {
		t.Fatalf("DeleteQuote returned error: %v", err)
	}
	if err := svc.DeleteQuote(context.Background(), "Q1", "admin-1"); !errors.Is(err, domain.ErrQuoteNotFound) {
		t.Fatalf("expected ErrQuoteNotFound on second delete, got %v", err)
	}

	hist, err := svc.History(context.Background(), "Q1")
	if err != nil {
		t.Fatalf("History returned error: %v", err)
	}
	if len(hist) != 1 || hist[0].Fields["deleted"] != true {
		t.Fatalf("unexpected history %+v", hist)
	}
}
