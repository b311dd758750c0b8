package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// InventoryItem representa una referencia (SKU) del inventario del taller.
// Quantity nunca baja de cero: una salida que lo dejaría negativo se rechaza
// antes de mutar. El motor nunca elimina items; se crean en la primera
// recepción y de ahí en adelante solo se actualizan.
type InventoryItem struct {
	ID            string
	SKU           string // forma canónica: trim + minúsculas, único
	PartName      string
	Quantity      int
	ReorderPoint  int
	UnitCost      decimal.Decimal
	LocationID    string
	VendorName    string
	DateReceived  time.Time
	LastIssueDate *time.Time // nil hasta la primera salida
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Value devuelve el valor del item (cantidad × costo unitario).
func (i *InventoryItem) Value() decimal.Decimal {
	return decimal.NewFromInt(int64(i.Quantity)).Mul(i.UnitCost)
}

// IsLowStock indica si el item está en o por debajo de su punto de reorden.
func (i *InventoryItem) IsLowStock() bool {
	return i.Quantity <= i.ReorderPoint
}

// NormalizeSKU lleva un SKU a su forma canónica (trim + minúsculas).
// Las revisiones previas del sistema mezclaban mayúsculas y campos distintos;
// toda búsqueda y todo registro usan esta única forma.
func NormalizeSKU(sku string) string {
	return strings.ToLower(strings.TrimSpace(sku))
}
