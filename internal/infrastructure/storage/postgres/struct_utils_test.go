package postgres

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"puntoventa/internal/core/id"
	"puntoventa/internal/domain/ledger"
)

type mockRow struct {
	ID        id.ID     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Hidden    string    `db:"-" json:"hidden"`
	Untagged  string    `json:"untagged"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

type mockEmbedded struct {
	ledger.Reference
	Quantity int64 `db:"quantity"`
}

func TestExtractDBColumns(t *testing.T) {
	cols := ExtractDBColumns[mockRow]()

	assert.Equal(t, []string{"id", "name", "created_at"}, cols)
}

func TestExtractDBColumns_EmbeddedStruct(t *testing.T) {
	cols := ExtractDBColumns[mockEmbedded]()

	assert.Contains(t, cols, "reference_type")
	assert.Contains(t, cols, "reference_id")
	assert.Contains(t, cols, "quantity")
}

func TestStructToMap(t *testing.T) {
	rowID := id.New()
	now := time.Now().UTC()
	row := mockRow{
		ID:        rowID,
		Name:      "Filtro de aire",
		Hidden:    "skip me",
		Untagged:  "skip me too",
		CreatedAt: now,
	}

	m := StructToMap(&row)

	assert.Equal(t, map[string]any{
		"id":         rowID,
		"name":       "Filtro de aire",
		"created_at": now,
	}, m)
}

func TestStructToMap_EmbeddedStruct(t *testing.T) {
	refID := id.New()
	row := mockEmbedded{
		Reference: ledger.Reference{Type: "invoice", ID: &refID},
		Quantity:  3,
	}

	m := StructToMap(row)

	assert.Equal(t, "invoice", m["reference_type"])
	assert.Equal(t, &refID, m["reference_id"])
	assert.Equal(t, int64(3), m["quantity"])
}
