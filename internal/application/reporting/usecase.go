// Package reporting implementa los seis dashboards agregados del inventario.
// Cada reporte es una lectura pura sin bloqueos: toma una foto del estado y
// agrega en memoria. Dos llamadas sin mutación intermedia producen el mismo
// resultado.
package reporting

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/gcharles/autoshop-inventory/internal/application/dto"
	"github.com/gcharles/autoshop-inventory/internal/domain"
	"github.com/gcharles/autoshop-inventory/internal/domain/access"
	"github.com/gcharles/autoshop-inventory/internal/domain/entity"
	"github.com/gcharles/autoshop-inventory/internal/domain/repository"
	"github.com/gcharles/autoshop-inventory/pkg/logger"
)

const unassignedLocation = "Unassigned"

// Options parámetros del motor de reportes.
type Options struct {
	HistoryLimit int             // entradas máximas del historial
	AgedDays     int             // umbral de stock envejecido, en días
	AnnualCOGS   decimal.Decimal // COGS de respaldo sin historial de salidas
	CacheTTL     time.Duration
}

// UseCase motor de reportes de solo lectura.
type UseCase struct {
	items   repository.ItemRepository
	logs    repository.TransactionLogRepository
	vendors repository.VendorMetricRepository
	cache   Cache
	log     *logger.Logger
	opts    Options
	now     func() time.Time // inyectable en tests
}

// NewUseCase construye el motor. cache puede ser NopCache.
func NewUseCase(
	items repository.ItemRepository,
	logs repository.TransactionLogRepository,
	vendors repository.VendorMetricRepository,
	cache Cache,
	log *logger.Logger,
	opts Options,
) *UseCase {
	if opts.HistoryLimit <= 0 {
		opts.HistoryLimit = 50
	}
	if opts.AgedDays <= 0 {
		opts.AgedDays = 30
	}
	if opts.AnnualCOGS.IsZero() {
		opts.AnnualCOGS = decimal.NewFromInt(50000)
	}
	return &UseCase{
		items:   items,
		logs:    logs,
		vendors: vendors,
		cache:   cache,
		log:     log,
		opts:    opts,
		now:     time.Now,
	}
}

// GetDashboard despacha por índice de dashboard (1..6). El payload puede
// servirse desde el cache; un miss o fallo de cache degrada a lectura directa.
func (uc *UseCase) GetDashboard(ctx context.Context, id int) (any, error) {
	if id < 1 || id > access.DashboardCount() {
		return nil, fmt.Errorf("%w: unknown dashboard %d", domain.ErrInvalidInput, id)
	}

	key := fmt.Sprintf("report:dashboard:%d", id)
	if payload, ok := uc.cache.Get(ctx, key); ok {
		var cached json.RawMessage = payload
		return cached, nil
	}

	var (
		report any
		err    error
	)
	switch id {
	case access.DashboardStockOverview:
		report, err = uc.StockOverview(ctx)
	case access.DashboardLowStock:
		report, err = uc.LowStock(ctx)
	case access.DashboardHistory:
		report, err = uc.TransactionHistory(ctx)
	case access.DashboardTurns:
		report, err = uc.InventoryTurns(ctx)
	case access.DashboardVendors:
		report, err = uc.VendorPerformance(ctx)
	case access.DashboardLocations:
		report, err = uc.LocationBreakdown(ctx)
	}
	if err != nil {
		return nil, err
	}

	if payload, merr := json.Marshal(report); merr == nil {
		uc.cache.Set(ctx, key, payload, uc.opts.CacheTTL)
	}
	return report, nil
}

// StockOverview dashboard 1: inventario completo valorizado, total global y
// desglose de valor por ubicación.
func (uc *UseCase) StockOverview(ctx context.Context) (*dto.StockOverviewReport, error) {
	items, err := uc.items.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("stock overview: %w", err)
	}

	total := decimal.Zero
	byLocation := make(map[string]decimal.Decimal)
	data := make([]dto.StockOverviewItem, 0, len(items))
	for _, it := range items {
		value := it.Value()
		total = total.Add(value)

		loc := locationOrDefault(it.LocationID)
		byLocation[loc] = byLocation[loc].Add(value)

		data = append(data, dto.StockOverviewItem{
			SKU:          it.SKU,
			PartName:     it.PartName,
			Quantity:     it.Quantity,
			LocationID:   loc,
			UnitCost:     it.UnitCost.StringFixed(2),
			ReorderPoint: it.ReorderPoint,
			Value:        value.StringFixed(2),
		})
	}
	sort.Slice(data, func(i, j int) bool { return data[i].SKU < data[j].SKU })

	return &dto.StockOverviewReport{
		Success:             true,
		Data:                data,
		TotalInventoryValue: total.StringFixed(2),
		LocationChart:       chartFromValueMap(byLocation),
	}, nil
}

// LowStock dashboard 2: items en o bajo su punto de reorden, los más vacíos
// primero, con el par Crítico/OK del gráfico original.
func (uc *UseCase) LowStock(ctx context.Context) (*dto.LowStockReport, error) {
	items, err := uc.items.ListLowStock(ctx)
	if err != nil {
		return nil, fmt.Errorf("low stock: %w", err)
	}

	metrics := make([]dto.LowStockItem, 0, len(items))
	for _, it := range items {
		metrics = append(metrics, dto.LowStockItem{
			SKU:          it.SKU,
			PartName:     it.PartName,
			Quantity:     it.Quantity,
			ReorderPoint: it.ReorderPoint,
			LocationID:   locationOrDefault(it.LocationID),
		})
	}
	sort.SliceStable(metrics, func(i, j int) bool { return metrics[i].Quantity < metrics[j].Quantity })

	critical := len(metrics)
	ok := 100 - critical
	if ok < 0 {
		ok = 0
	}
	return &dto.LowStockReport{
		Success:       true,
		CriticalCount: critical,
		Metrics:       metrics,
		Chart: []dto.ChartPoint{
			{Label: "Critical", Value: fmt.Sprintf("%d", critical)},
			{Label: "OK", Value: fmt.Sprintf("%d", ok)},
		},
	}, nil
}

// TransactionHistory dashboard 3: las últimas N entradas del log, valorizadas
// al costo unitario ACTUAL del item vinculado.
func (uc *UseCase) TransactionHistory(ctx context.Context) (*dto.TransactionHistoryReport, error) {
	rows, err := uc.logs.ListRecent(ctx, uc.opts.HistoryLimit)
	if err != nil {
		return nil, fmt.Errorf("transaction history: %w", err)
	}

	data := make([]dto.TransactionHistoryEntry, 0, len(rows))
	for _, row := range rows {
		vendor := row.Entry.VendorName
		if vendor == "" {
			vendor = "N/A"
		}
		qty := decimal.NewFromInt(int64(row.Entry.QuantityChange))
		data = append(data, dto.TransactionHistoryEntry{
			Date:     row.Entry.CreatedAt.Format("2006-01-02 15:04"),
			Kind:     row.Entry.Kind,
			SKU:      row.Entry.SKU,
			Quantity: row.Entry.QuantityChange,
			Value:    qty.Mul(row.CurrentUnitCost).StringFixed(2),
			Vendor:   vendor,
		})
	}
	return &dto.TransactionHistoryReport{Success: true, Data: data}, nil
}

// InventoryTurns dashboard 4: antigüedad del stock por franjas y KPIs de
// rotación. El COGS sale de las salidas de los últimos 365 días; sin historial
// de salidas se usa la cifra anual configurada.
func (uc *UseCase) InventoryTurns(ctx context.Context) (*dto.InventoryTurnsReport, error) {
	items, err := uc.items.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("inventory turns: %w", err)
	}

	now := uc.now()
	total := decimal.Zero
	aged := decimal.Zero
	data := make([]dto.AgedStockItem, 0, len(items))
	for _, it := range items {
		value := it.Value()
		total = total.Add(value)

		ageDays := int(now.Sub(it.DateReceived).Hours() / 24)
		if ageDays < 0 {
			ageDays = 0
		}
		if ageDays > uc.opts.AgedDays {
			aged = aged.Add(value)
		}

		lastIssued := "N/A"
		if it.LastIssueDate != nil {
			lastIssued = it.LastIssueDate.Format("2006-01-02")
		}
		data = append(data, dto.AgedStockItem{
			SKU:         it.SKU,
			PartName:    it.PartName,
			Quantity:    it.Quantity,
			Value:       value.StringFixed(2),
			AgeDays:     ageDays,
			AgeCategory: ageCategory(ageDays),
			LastIssued:  lastIssued,
		})
	}
	sort.Slice(data, func(i, j int) bool { return data[i].AgeDays > data[j].AgeDays })

	cogs, err := uc.logs.SumIssuedValueSince(ctx, now.AddDate(-1, 0, 0))
	if err != nil {
		return nil, fmt.Errorf("inventory turns: %w", err)
	}
	if cogs.IsZero() {
		cogs = uc.opts.AnnualCOGS
	}

	turns := decimal.Zero
	dio := decimal.Zero
	if total.IsPositive() {
		turns = cogs.Div(total)
		if turns.IsPositive() {
			dio = decimal.NewFromInt(365).Div(turns)
		}
	}

	return &dto.InventoryTurnsReport{
		Success:             true,
		Data:                data,
		TotalInventoryValue: total.StringFixed(2),
		AgedStockValue:      aged.StringFixed(2),
		InventoryTurns:      turns.StringFixed(2),
		DIO:                 dio.StringFixed(1),
	}, nil
}

// VendorPerformance dashboard 5: promedios por proveedor (1 decimal) y ranking
// descendente por puntaje global.
func (uc *UseCase) VendorPerformance(ctx context.Context) (*dto.VendorPerformanceReport, error) {
	rows, err := uc.vendors.AverageScores(ctx)
	if err != nil {
		return nil, fmt.Errorf("vendor performance: %w", err)
	}

	three := decimal.NewFromInt(3)
	type ranked struct {
		score   dto.VendorScore
		overall decimal.Decimal
	}
	rankedRows := make([]ranked, 0, len(rows))
	for _, row := range rows {
		if row.VendorName == "" {
			continue // muestras sin proveedor no rankean
		}
		overall := row.AvgQuality.Add(row.AvgDelivery).Add(row.AvgCost).Div(three)
		rankedRows = append(rankedRows, ranked{
			score: dto.VendorScore{
				VendorName:    row.VendorName,
				QualityScore:  row.AvgQuality.StringFixed(1),
				DeliveryScore: row.AvgDelivery.StringFixed(1),
				CostAdherence: row.AvgCost.StringFixed(1),
				OverallScore:  overall.StringFixed(1),
			},
			overall: overall,
		})
	}
	sort.SliceStable(rankedRows, func(i, j int) bool {
		return rankedRows[i].overall.GreaterThan(rankedRows[j].overall)
	})

	data := make([]dto.VendorScore, 0, len(rankedRows))
	for _, r := range rankedRows {
		data = append(data, r.score)
	}
	return &dto.VendorPerformanceReport{Success: true, Data: data}, nil
}

// LocationBreakdown dashboard 6: items con stock agrupados por ubicación.
func (uc *UseCase) LocationBreakdown(ctx context.Context) (*dto.LocationBreakdownReport, error) {
	items, err := uc.items.ListInStock(ctx)
	if err != nil {
		return nil, fmt.Errorf("location breakdown: %w", err)
	}

	groups := make(map[string]*dto.LocationGroup)
	for _, it := range items {
		loc := locationOrDefault(it.LocationID)
		g, ok := groups[loc]
		if !ok {
			g = &dto.LocationGroup{LocationID: loc}
			groups[loc] = g
		}
		g.TotalQuantity += it.Quantity
		g.Items = append(g.Items, dto.LocationItem{
			SKU:      it.SKU,
			PartName: it.PartName,
			Quantity: it.Quantity,
		})
	}

	data := make([]dto.LocationGroup, 0, len(groups))
	chartValues := make(map[string]decimal.Decimal, len(groups))
	for loc, g := range groups {
		sort.Slice(g.Items, func(i, j int) bool { return g.Items[i].SKU < g.Items[j].SKU })
		data = append(data, *g)
		chartValues[loc] = decimal.NewFromInt(int64(g.TotalQuantity))
	}
	sort.Slice(data, func(i, j int) bool { return data[i].LocationID < data[j].LocationID })

	return &dto.LocationBreakdownReport{
		Success: true,
		Data:    data,
		Chart:   chartFromCountMap(chartValues),
	}, nil
}

// LowStockItems expone la consulta cruda de stock bajo para la alerta por
// correo y el reporte de consola.
func (uc *UseCase) LowStockItems(ctx context.Context) ([]*entity.InventoryItem, error) {
	return uc.items.ListLowStock(ctx)
}

func locationOrDefault(loc string) string {
	if loc == "" {
		return unassignedLocation
	}
	return loc
}

func ageCategory(days int) string {
	switch {
	case days <= 30:
		return "0-30 Days"
	case days <= 90:
		return "31-90 Days"
	case days <= 180:
		return "91-180 Days"
	default:
		return "180+ Days"
	}
}

// chartFromValueMap puntos label/valor (2dp) en orden de etiqueta estable.
func chartFromValueMap(m map[string]decimal.Decimal) []dto.ChartPoint {
	labels := make([]string, 0, len(m))
	for k := range m {
		labels = append(labels, k)
	}
	sort.Strings(labels)

	out := make([]dto.ChartPoint, 0, len(labels))
	for _, l := range labels {
		out = append(out, dto.ChartPoint{Label: l, Value: m[l].StringFixed(2)})
	}
	return out
}

// chartFromCountMap igual que chartFromValueMap pero con valores enteros.
func chartFromCountMap(m map[string]decimal.Decimal) []dto.ChartPoint {
	labels := make([]string, 0, len(m))
	for k := range m {
		labels = append(labels, k)
	}
	sort.Strings(labels)

	out := make([]dto.ChartPoint, 0, len(labels))
	for _, l := range labels {
		out = append(out, dto.ChartPoint{Label: l, Value: m[l].StringFixed(0)})
	}
	return out
}
