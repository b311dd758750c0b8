package postgres

import (
	"context"
	"fmt"

	"github.com/gcharles/autoshop-inventory/internal/domain/repository"
)

var _ repository.VendorMetricRepository = (*VendorMetricRepo)(nil)

// VendorMetricRepo lectura de muestras de desempeño de proveedores.
type VendorMetricRepo struct {
	q Querier
}

// NewVendorMetricRepository construye el adaptador. Pasar pool o tx (Querier).
func NewVendorMetricRepository(q Querier) *VendorMetricRepo {
	return &VendorMetricRepo{q: q}
}

// AverageScores agrupa por proveedor y promedia las tres métricas.
func (r *VendorMetricRepo) AverageScores(ctx context.Context) ([]repository.VendorScoreRow, error) {
	query := `
		SELECT COALESCE(vendor_name, ''),
			COALESCE(AVG(quality_score), 0),
			COALESCE(AVG(delivery_score), 0),
			COALESCE(AVG(cost_adherence), 0),
			COUNT(*)
		FROM vendor_metrics
		GROUP BY vendor_name`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("average vendor scores: %w", err)
	}
	defer rows.Close()

	var list []repository.VendorScoreRow
	for rows.Next() {
		var row repository.VendorScoreRow
		if err := rows.Scan(
			&row.VendorName, &row.AvgQuality, &row.AvgDelivery, &row.AvgCost, &row.SampleCount,
		); err != nil {
			return nil, fmt.Errorf("scan vendor score: %w", err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}
