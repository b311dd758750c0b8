package dto

// Los seis dashboards devuelven estos DTOs. Todos llevan Success=true cuando
// el reporte se generó; los fallos se convierten en ReportError en el handler
// (forma vacía + success=false, nunca una excepción hacia la presentación).

// ReportError respuesta de un reporte que falló: datos vacíos + mensaje seguro.
type ReportError struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ── Dashboard 1: Stock Overview ───────────────────────────────────────────────

// StockOverviewItem fila del reporte de inventario valorizado.
type StockOverviewItem struct {
	SKU          string `json:"sku"`
	PartName     string `json:"part_name"`
	Quantity     int    `json:"quantity"`
	LocationID   string `json:"location_id"`
	UnitCost     string `json:"unit_cost"`
	ReorderPoint int    `json:"reorder_point"`
	Value        string `json:"value"` // quantity × unit_cost, 2 decimales
}

// StockOverviewReport inventario completo + valor total + desglose por ubicación.
type StockOverviewReport struct {
	Success             bool                `json:"success"`
	Data                []StockOverviewItem `json:"data"`
	TotalInventoryValue string              `json:"total_inventory_value"`
	LocationChart       []ChartPoint        `json:"location_chart"`
}

// ── Dashboard 2: Low Stock ────────────────────────────────────────────────────

// LowStockItem item en o por debajo de su punto de reorden.
type LowStockItem struct {
	SKU          string `json:"sku"`
	PartName     string `json:"part_name"`
	Quantity     int    `json:"quantity"`
	ReorderPoint int    `json:"reorder_point"`
	LocationID   string `json:"location_id"`
}

// LowStockReport items críticos ordenados por cantidad ascendente.
type LowStockReport struct {
	Success       bool           `json:"success"`
	CriticalCount int            `json:"critical_count"`
	Metrics       []LowStockItem `json:"metrics"`
	Chart         []ChartPoint   `json:"chart"`
}

// ── Dashboard 3: Transaction History ─────────────────────────────────────────

// TransactionHistoryEntry entrada del historial, valorizada al costo actual.
type TransactionHistoryEntry struct {
	Date     string `json:"date"` // timestamp formateado legible
	Kind     string `json:"kind"` // RECEIVE | ISSUE
	SKU      string `json:"sku"`
	Quantity int    `json:"quantity"` // con signo
	Value    string `json:"value"`    // quantity × costo unitario actual
	Vendor   string `json:"vendor"`   // "N/A" cuando no aplica
}

// TransactionHistoryReport últimas N transacciones, más recientes primero.
type TransactionHistoryReport struct {
	Success bool                      `json:"success"`
	Data    []TransactionHistoryEntry `json:"data"`
}

// ── Dashboard 4: Inventory Turns & Aged Stock ────────────────────────────────

// AgedStockItem item con su edad en días y su franja de antigüedad.
type AgedStockItem struct {
	SKU         string `json:"sku"`
	PartName    string `json:"part_name"`
	Quantity    int    `json:"quantity"`
	Value       string `json:"value"`
	AgeDays     int    `json:"age_days"`
	AgeCategory string `json:"age_category"` // 0-30 / 31-90 / 91-180 / 180+ Days
	LastIssued  string `json:"last_issued"`  // "N/A" si nunca
}

// InventoryTurnsReport antigüedad del stock + KPIs de rotación.
type InventoryTurnsReport struct {
	Success             bool            `json:"success"`
	Data                []AgedStockItem `json:"data"`
	TotalInventoryValue string          `json:"total_inventory_value"`
	AgedStockValue      string          `json:"aged_stock_value"`
	InventoryTurns      string          `json:"inventory_turns"`
	DIO                 string          `json:"dio"` // days of inventory outstanding = 365 / turns
}

// ── Dashboard 5: Vendor Performance ──────────────────────────────────────────

// VendorScore promedios de un proveedor y su puntaje global.
type VendorScore struct {
	VendorName    string `json:"vendor_name"`
	QualityScore  string `json:"quality_score"`
	DeliveryScore string `json:"delivery_score"`
	CostAdherence string `json:"cost_adherence"`
	OverallScore  string `json:"overall_score"` // promedio de las tres métricas
}

// VendorPerformanceReport ranking de proveedores, mejor puntaje primero.
type VendorPerformanceReport struct {
	Success bool          `json:"success"`
	Data    []VendorScore `json:"data"`
}

// ── Dashboard 6: Location Breakdown ──────────────────────────────────────────

// LocationItem item dentro del desglose por ubicación.
type LocationItem struct {
	SKU      string `json:"sku"`
	PartName string `json:"part_name"`
	Quantity int    `json:"quantity"`
}

// LocationGroup items y cantidad total de una ubicación.
type LocationGroup struct {
	LocationID    string         `json:"location_id"`
	TotalQuantity int            `json:"total_quantity"`
	Items         []LocationItem `json:"items"`
}

// LocationBreakdownReport items con stock agrupados por ubicación.
type LocationBreakdownReport struct {
	Success bool            `json:"success"`
	Data    []LocationGroup `json:"data"`
	Chart   []ChartPoint    `json:"chart"`
}
