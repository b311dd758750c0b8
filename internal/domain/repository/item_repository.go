package repository

import (
	"context"

	"github.com/gcharles/autoshop-inventory/internal/domain/entity"
)

// ItemRepository define el puerto de persistencia para InventoryItem (DIP).
// Todas las búsquedas reciben el SKU ya en forma canónica (entity.NormalizeSKU).
type ItemRepository interface {
	Create(ctx context.Context, item *entity.InventoryItem) error
	Update(ctx context.Context, item *entity.InventoryItem) error
	GetBySKU(ctx context.Context, sku string) (*entity.InventoryItem, error)
	// GetBySKUForUpdate bloquea la fila (SELECT FOR UPDATE) dentro de la tx
	// activa; serializa las mutaciones concurrentes sobre el mismo SKU.
	GetBySKUForUpdate(ctx context.Context, sku string) (*entity.InventoryItem, error)
	List(ctx context.Context) ([]*entity.InventoryItem, error)
	// ListInStock devuelve los items con cantidad > 0.
	ListInStock(ctx context.Context) ([]*entity.InventoryItem, error)
	// ListLowStock devuelve los items con cantidad <= punto de reorden,
	// ordenados por cantidad ascendente (los más vacíos primero).
	ListLowStock(ctx context.Context) ([]*entity.InventoryItem, error)
}
