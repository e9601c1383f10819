// Package report_repo provides PostgreSQL implementations for
// read-side report queries.
package report_repo

import (
	"context"
	"fmt"

	"github.com/georgysavva/scany/v2/pgxscan"

	"puntoventa/internal/core/id"
	"puntoventa/internal/domain/reports"
	"puntoventa/internal/infrastructure/storage/postgres"
)

// ReportRepo implements reports.Repository.
type ReportRepo struct {
	txm *postgres.TxManager
}

// NewReportRepo creates a new report repository.
func NewReportRepo(txm *postgres.TxManager) *ReportRepo {
	return &ReportRepo{txm: txm}
}

const totalSoldQuery = `
	SELECT product_id, SUM(quantity)::bigint AS total_sold
	FROM (
		SELECT product_id, quantity FROM invoice_items WHERE product_id = ANY($1)
		UNION ALL
		SELECT product_id, quantity FROM remission_items WHERE product_id = ANY($1)
	) sold
	GROUP BY product_id`

const lastSupplierQuery = `
	SELECT DISTINCT ON (pi.product_id) pi.product_id, s.name AS last_supplier_name
	FROM purchase_items pi
	JOIN purchases p ON p.id = pi.purchase_id
	JOIN suppliers s ON s.id = p.supplier_id
	WHERE pi.product_id = ANY($1)
	ORDER BY pi.product_id, p.date DESC, p.id DESC`

// ProductStats batches sales totals and last-supplier names for the
// given products. Products with no history are absent from the map.
func (r *ReportRepo) ProductStats(ctx context.Context, productIDs []id.ID) (map[id.ID]reports.ProductStats, error) {
	q := r.txm.GetQuerier(ctx)

	stats := make(map[id.ID]reports.ProductStats, len(productIDs))

	var sold []struct {
		ProductID id.ID `db:"product_id"`
		TotalSold int64 `db:"total_sold"`
	}
	if err := pgxscan.Select(ctx, q, &sold, totalSoldQuery, productIDs); err != nil {
		return nil, fmt.Errorf("failed to query sold quantities: %w", err)
	}
	for _, row := range sold {
		entry := stats[row.ProductID]
		entry.ProductID = row.ProductID
		entry.TotalSold = row.TotalSold
		stats[row.ProductID] = entry
	}

	var suppliers []struct {
		ProductID        id.ID  `db:"product_id"`
		LastSupplierName string `db:"last_supplier_name"`
	}
	if err := pgxscan.Select(ctx, q, &suppliers, lastSupplierQuery, productIDs); err != nil {
		return nil, fmt.Errorf("failed to query last suppliers: %w", err)
	}
	for _, row := range suppliers {
		entry := stats[row.ProductID]
		entry.ProductID = row.ProductID
		entry.LastSupplierName = row.LastSupplierName
		stats[row.ProductID] = entry
	}

	return stats, nil
}
