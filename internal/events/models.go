package events

import (
	"context"
	"time"
)

// Type identifies a gateway event.
type Type string

const (
	TypeBookingCreated   Type = "BOOKING_CREATED"
	TypeBookingCancelled Type = "BOOKING_CANCELLED"
	TypePaymentProcessed Type = "PAYMENT_PROCESSED"
)

// Event is the envelope published after a successful mutating action. The
// consumer side uses it to drop stale per-user caches so the next
// notification fetch sees fresh upstream state.
type Event struct {
	ID         string    `json:"id"`
	Type       Type      `json:"type"`
	UserID     int64     `json:"user_id"`
	BookingID  int64     `json:"booking_id,omitempty"`
	HotelID    int64     `json:"hotel_id,omitempty"`
	Amount     float64   `json:"amount,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Publisher publishes gateway events.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// NopPublisher drops every event. Used when Kafka is disabled or
// unreachable; the gateway then falls back to direct cache invalidation.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }
func (NopPublisher) Close() error                         { return nil }
