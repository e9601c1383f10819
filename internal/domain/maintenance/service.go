package maintenance

import (
	"context"
	"time"

	"puntoventa/internal/core/id"
	"puntoventa/pkg/logger"
)

// DefaultHorizonDays is the lookahead window for the due-reminders alert.
const DefaultHorizonDays = 14

// Service provides business operations for maintenance reminders.
type Service struct {
	repo Repository
}

// NewService creates a new maintenance service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Schedule creates a reminder due days from now, referencing the
// originating document. Staged into the ambient transaction when one
// is active.
func (s *Service) Schedule(ctx context.Context, customerID id.ID, days int, notes, refType string, refID id.ID) (*Reminder, error) {
	due := time.Now().UTC().AddDate(0, 0, days)
	r := New(customerID, due, notes)
	r.ReferenceType = refType
	r.ReferenceID = &refID

	if err := s.repo.Create(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

// ListDue retrieves reminders due within the next horizonDays.
func (s *Service) ListDue(ctx context.Context, horizonDays int) ([]*Reminder, error) {
	if horizonDays <= 0 {
		horizonDays = DefaultHorizonDays
	}
	until := time.Now().UTC().AddDate(0, 0, horizonDays)
	return s.repo.ListDue(ctx, until)
}

// Complete marks a reminder as handled by removing it.
func (s *Service) Complete(ctx context.Context, reminderID id.ID) error {
	if err := s.repo.Delete(ctx, reminderID); err != nil {
		return err
	}
	logger.Info(ctx, "maintenance reminder completed", "id", reminderID)
	return nil
}
