package dto

import (
	"time"

	"puntoventa/internal/domain/maintenance"
)

// ReminderResponse represents a due maintenance reminder.
type ReminderResponse struct {
	ID            string    `json:"id"`
	CustomerID    string    `json:"customerId"`
	CustomerName  string    `json:"customerName,omitempty"`
	DueDate       time.Time `json:"dueDate"`
	Notes         string    `json:"notes,omitempty"`
	ReferenceType string    `json:"referenceType,omitempty"`
	ReferenceID   string    `json:"referenceId,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

// FromReminder converts entity to response DTO.
func FromReminder(r *maintenance.Reminder) ReminderResponse {
	resp := ReminderResponse{
		ID:            r.ID.String(),
		CustomerID:    r.CustomerID.String(),
		CustomerName:  r.CustomerName,
		DueDate:       r.DueDate,
		Notes:         r.Notes,
		ReferenceType: r.ReferenceType,
		CreatedAt:     r.CreatedAt,
	}
	if r.ReferenceID != nil {
		resp.ReferenceID = r.ReferenceID.String()
	}
	return resp
}

// FromReminders converts a reminder slice to response DTOs.
func FromReminders(items []*maintenance.Reminder) []ReminderResponse {
	out := make([]ReminderResponse, 0, len(items))
	for _, r := range items {
		out = append(out, FromReminder(r))
	}
	return out
}
