package ports

import (
	"context"

	"github.com/goalpark/stadium-booking/internal/queue"
)

// EventPublisher pushes change-feed events.  Implementations must be
// safe to fail: the booking flow logs and ignores publish errors.
type EventPublisher interface {
	Publish(ctx context.Context, ev queue.BookingEvent) error
}
