package queue

import (
	"context"
	"hash/fnv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/cotizador/quoting-system/internal/core/ports"
)

const (
	defaultWorkers = 2
	channelBuffer  = 256
	maxAttempts    = 3
	baseBackoff    = 500 * time.Millisecond
)

// Outcomes reported to the OnResult hook.
const (
	OutcomeSynced  = "synced"
	OutcomeFailed  = "failed"
	OutcomeDropped = "dropped"
)

// Dispatcher pushes quote status changes to the tracking board from a fixed
// set of workers. Updates are sharded by quote id so changes to one quote are
// delivered in order.
type Dispatcher struct {
	workers []chan ports.BoardStatusUpdate
	client  ports.BoardClient
	log     zerolog.Logger
	backoff time.Duration
	wg      sync.WaitGroup

	// OnResult, when set, is called once per update with its outcome.
	OnResult func(outcome string)
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, client ports.BoardClient, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan ports.BoardStatusUpdate, numWorkers),
		client:  client,
		log:     log,
		backoff: baseBackoff,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.BoardStatusUpdate, channelBuffer)
	}
	return d
}

var _ ports.BoardSyncQueue = (*Dispatcher)(nil)

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Wait blocks until every worker has returned.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

// Enqueue hands the update to the worker responsible for its quote. It never
// blocks the caller: when that worker's buffer is full the update is dropped.
func (d *Dispatcher) Enqueue(update ports.BoardStatusUpdate) {
	select {
	case d.workers[d.shardIndex(update.QuoteID)] <- update:
	default:
		d.log.Warn().
			Str("quote_id", update.QuoteID).
			Str("board_item_id", update.BoardItemID).
			Msg("board sync queue full, update dropped")
		d.report(OutcomeDropped)
	}
}

// shardIndex maps a quote id deterministically to a worker index.
func (d *Dispatcher) shardIndex(quoteID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(quoteID))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.BoardStatusUpdate) {
	defer d.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case update, ok := <-ch:
			if !ok {
				return
			}
			if err := d.push(ctx, update); err != nil {
				d.log.Error().Err(err).
					Str("quote_id", update.QuoteID).
					Str("board_item_id", update.BoardItemID).
					Int("worker_id", id).
					Msg("board sync failed")
				d.report(OutcomeFailed)
				continue
			}
			d.report(OutcomeSynced)
		}
	}
}

// push retries with linear backoff. A board outage never reaches the quote.
func (d *Dispatcher) push(ctx context.Context, update ports.BoardStatusUpdate) error {
	var err error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err = d.client.PushStatus(ctx, update); err == nil {
			return nil
		}
		if attempt == maxAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(attempt) * d.backoff):
		}
	}
	return err
}

func (d *Dispatcher) report(outcome string) {
	if d.OnResult != nil {
		d.OnResult(outcome)
	}
}
