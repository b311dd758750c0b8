package dto

// ReceiveStockRequest body para POST /api/inventory/receive.
// Las cantidades llegan como enteros; el costo como string decimal ("12.50").
type ReceiveStockRequest struct {
	ItemSKU      string `json:"item_sku"`
	PartName     string `json:"part_name"`
	Quantity     int    `json:"quantity"`
	ReorderPoint int    `json:"reorder_point"`
	UnitCost     string `json:"unit_cost"`
	LocationID   string `json:"location_id"`
	VendorName   string `json:"vendor_name"`
}

// IssueStockRequest body para POST /api/inventory/issue.
type IssueStockRequest struct {
	SKU      string `json:"sku"`
	Quantity int    `json:"quantity"`
}

// MutationResult resultado de una mutación de inventario exitosa.
type MutationResult struct {
	Success     bool   `json:"success"`
	Message     string `json:"message"`
	SKU         string `json:"sku"`
	NewQuantity int    `json:"new_quantity"`
}

// StockLookupResponse detalle de un SKU (GET /api/inventory/:sku).
type StockLookupResponse struct {
	SKU           string `json:"sku"`
	PartName      string `json:"part_name"`
	Quantity      int    `json:"quantity"`
	ReorderPoint  int    `json:"reorder_point"`
	UnitCost      string `json:"unit_cost"`
	LocationID    string `json:"location_id"`
	VendorName    string `json:"vendor_name"`
	DateReceived  string `json:"date_received"`
	LastIssueDate string `json:"last_issue_date"` // "N/A" si nunca hubo salida
	Status        string `json:"status"`          // CRITICAL | OK
}
