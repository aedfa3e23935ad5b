package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/cotizador/quoting-system/internal/core/domain"
	"github.com/cotizador/quoting-system/internal/core/ports"
)

const collectionQuoteEvents = "quote_events"

type quoteEventDoc struct {
	QuoteID     string         `bson:"quote_id"`
	Source      string         `bson:"source"`
	Actor       string         `bson:"actor,omitempty"`
	Fields      map[string]any `bson:"fields"`
	Timestamp   time.Time      `bson:"timestamp"`
	ProcessedAt time.Time      `bson:"processed_at"`
}

// EventRepository implements ports.QuoteEventRepository using MongoDB.
type EventRepository struct {
	col *mongo.Collection
}

// NewEventRepository creates a new EventRepository.
func NewEventRepository(db *mongo.Database) *EventRepository {
	return &EventRepository{col: db.Collection(collectionQuoteEvents)}
}

var _ ports.QuoteEventRepository = (*EventRepository)(nil)

// EnsureIndexes creates the (quote_id, timestamp) index used by ListByQuote.
func (r *EventRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "quote_id", Value: 1}, {Key: "timestamp", Value: -1}},
	})
	if err != nil {
		return fmt.Errorf("quote_events index: %w", err)
	}
	return nil
}

// InsertEvent persists an applied change to the quote_events audit collection.
func (r *EventRepository) InsertEvent(ctx context.Context, event *domain.QuoteEvent) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.InsertOne(ctx, toEventDoc(event, time.Now().UTC()))
	return err
}

// ListByQuote returns the newest events of a quote first.
func (r *EventRepository) ListByQuote(ctx context.Context, quoteID string, limit int) ([]domain.QuoteEvent, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cur, err := r.col.Find(ctx, bson.M{"quote_id": quoteID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var docs []quoteEventDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}

	out := make([]domain.QuoteEvent, len(docs))
	for i, d := range docs {
		out[i] = fromEventDoc(d)
	}
	return out, nil
}

func toEventDoc(e *domain.QuoteEvent, processedAt time.Time) quoteEventDoc {
	return quoteEventDoc{
		QuoteID:     e.QuoteID,
		Source:      e.Source,
		Actor:       e.Actor,
		Fields:      e.Fields,
		Timestamp:   e.Timestamp.UTC(),
		ProcessedAt: processedAt,
	}
}

func fromEventDoc(d quoteEventDoc) domain.QuoteEvent {
	return domain.QuoteEvent{
		QuoteID:   d.QuoteID,
		Source:    d.Source,
		Actor:     d.Actor,
		Fields:    d.Fields,
		Timestamp: d.Timestamp,
	}
}
