package ports

import "context"

// BoardStatusUpdate is a status change to mirror on the tracking board.
type BoardStatusUpdate struct {
	QuoteID     string
	BoardItemID string
	Status      string
}

// BoardClient pushes quote state to the external project-tracking board.
type BoardClient interface {
	PushStatus(ctx context.Context, update BoardStatusUpdate) error
}

// BoardSyncQueue accepts board updates for asynchronous delivery.
type BoardSyncQueue interface {
	Enqueue(update BoardStatusUpdate)
}
