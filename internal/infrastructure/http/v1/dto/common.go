// Package dto provides request and response types for the HTTP API.
// Money amounts cross the wire as JSON numbers; conversion from the
// decimal representation happens only here, at the boundary.
package dto

// IDResponse is a minimal creation acknowledgement.
type IDResponse struct {
	ID string `json:"id"`
}

// SuccessResponse is a generic operation acknowledgement.
type SuccessResponse struct {
	OK      bool   `json:"ok"`
	Message string `json:"message,omitempty"`
}

// ListResponse wraps a collection with its size.
type ListResponse[T any] struct {
	Items []T `json:"items"`
	Count int `json:"count"`
}

// NewListResponse builds a ListResponse, mapping nil to an empty slice
// so clients always receive a JSON array.
func NewListResponse[T any](items []T) ListResponse[T] {
	if items == nil {
		items = []T{}
	}
	return ListResponse[T]{Items: items, Count: len(items)}
}
