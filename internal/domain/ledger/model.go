// Package ledger provides the stock ledger: an append-only movement log
// plus the derived current-stock counter per product. It is the single
// mutation point for inventory quantity.
package ledger

import (
	"time"

	"puntoventa/internal/core/id"
)

// MovementType classifies the origin of a stock movement.
type MovementType string

const (
	MovementPurchase   MovementType = "purchase"
	MovementInvoice    MovementType = "invoice"
	MovementRemission  MovementType = "remission"
	MovementAdjustment MovementType = "adjustment"
	MovementInitial    MovementType = "initial"
)

// IsValid reports whether t is a member of the closed enumeration.
func (t MovementType) IsValid() bool {
	switch t {
	case MovementPurchase, MovementInvoice, MovementRemission, MovementAdjustment, MovementInitial:
		return true
	}
	return false
}

// Reference points at the document that originated a movement.
// Zero value means the movement has no originating document.
type Reference struct {
	Type string `db:"reference_type" json:"referenceType,omitempty"`
	ID   *id.ID `db:"reference_id" json:"referenceId,omitempty"`
}

// DocumentRef builds a Reference for a document row.
func DocumentRef(refType string, docID id.ID) Reference {
	return Reference{Type: refType, ID: &docID}
}

// Movement is one immutable audit row: a signed quantity change applied
// to a product's stock. Movements are never updated; for any product the
// sum of QuantityChange over its movements equals its current stock.
type Movement struct {
	ID        id.ID        `db:"id" json:"id"`
	ProductID id.ID        `db:"product_id" json:"productId"`
	Type      MovementType `db:"movement_type" json:"movementType"`

	// QuantityChange is the signed delta applied to current stock.
	QuantityChange int64 `db:"quantity_change" json:"quantityChange"`

	Note string `db:"note" json:"note,omitempty"`
	Reference
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// NewMovement creates a movement row with generated ID.
func NewMovement(productID id.ID, movementType MovementType, delta int64, note string, ref Reference) *Movement {
	return &Movement{
		ID:             id.New(),
		ProductID:      productID,
		Type:           movementType,
		QuantityChange: delta,
		Note:           note,
		Reference:      ref,
		CreatedAt:      time.Now().UTC(),
	}
}
