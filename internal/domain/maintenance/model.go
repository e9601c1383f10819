// Package maintenance provides maintenance reminders: follow-up notes
// scheduled when a sale document is issued with a maintenance interval.
package maintenance

import (
	"time"

	"puntoventa/internal/core/id"
)

// Reminder is a scheduled follow-up for a customer.
type Reminder struct {
	ID         id.ID     `db:"id" json:"id"`
	CustomerID id.ID     `db:"customer_id" json:"customerId"`
	DueDate    time.Time `db:"due_date" json:"dueDate"`
	Notes      string    `db:"notes" json:"notes,omitempty"`

	// ReferenceType/ReferenceID point at the originating document.
	ReferenceType string `db:"reference_type" json:"referenceType,omitempty"`
	ReferenceID   *id.ID `db:"reference_id" json:"referenceId,omitempty"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`

	// CustomerName is populated on reads via join, not stored
	CustomerName string `db:"customer_name" json:"-"`
}

// New creates a reminder with generated ID.
func New(customerID id.ID, dueDate time.Time, notes string) *Reminder {
	return &Reminder{
		ID:         id.New(),
		CustomerID: customerID,
		DueDate:    dueDate,
		Notes:      notes,
		CreatedAt:  time.Now().UTC(),
	}
}
