package maintenance

import (
	"context"
	"time"

	"puntoventa/internal/core/id"
)

// Repository defines the interface for Reminder persistence.
type Repository interface {
	// Create inserts a new reminder.
	Create(ctx context.Context, r *Reminder) error

	// ListDue retrieves reminders due at or before until, soonest
	// first (with customer names).
	ListDue(ctx context.Context, until time.Time) ([]*Reminder, error)

	// Delete removes a reminder. Returns NotFound if absent.
	Delete(ctx context.Context, reminderID id.ID) error
}
