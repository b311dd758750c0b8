package repository

import (
	"context"

	"github.com/shopspring/decimal"
)

// VendorScoreRow promedios por proveedor calculados en la consulta.
type VendorScoreRow struct {
	VendorName  string
	AvgQuality  decimal.Decimal
	AvgDelivery decimal.Decimal
	AvgCost     decimal.Decimal
	SampleCount int
}

// VendorMetricRepository puerto de solo lectura sobre las muestras de
// desempeño de proveedores.
type VendorMetricRepository interface {
	// AverageScores agrupa por proveedor y promedia las tres métricas.
	AverageScores(ctx context.Context) ([]VendorScoreRow, error)
}
