package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/gcharles/autoshop-inventory/internal/domain/entity"
	"github.com/gcharles/autoshop-inventory/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

const itemColumns = `id, sku, part_name, quantity, reorder_point, unit_cost,
		COALESCE(location_id, ''), COALESCE(vendor_name, ''),
		date_received, last_issue_date, created_at, updated_at`

// ItemRepo implementación de ItemRepository sobre PostgreSQL (usable con pool o tx).
type ItemRepo struct {
	q Querier
}

// NewItemRepository construye el adaptador de items. Pasar pool o tx (Querier).
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

// Create persiste un item nuevo.
func (r *ItemRepo) Create(ctx context.Context, item *entity.InventoryItem) error {
	query := `
		INSERT INTO inventory_items (id, sku, part_name, quantity, reorder_point, unit_cost,
			location_id, vendor_name, date_received, last_issue_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		item.ID, item.SKU, item.PartName, item.Quantity, item.ReorderPoint, item.UnitCost,
		item.LocationID, item.VendorName, item.DateReceived, item.LastIssueDate,
		item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("create item %s: sku duplicado: %w", item.SKU, err)
		}
		return fmt.Errorf("create item: %w", err)
	}
	return nil
}

// Update sobrescribe todos los campos mutables del item.
func (r *ItemRepo) Update(ctx context.Context, item *entity.InventoryItem) error {
	query := `
		UPDATE inventory_items
		SET part_name = $2, quantity = $3, reorder_point = $4, unit_cost = $5,
			location_id = $6, vendor_name = $7, date_received = $8,
			last_issue_date = $9, updated_at = $10
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		item.ID, item.PartName, item.Quantity, item.ReorderPoint, item.UnitCost,
		item.LocationID, item.VendorName, item.DateReceived, item.LastIssueDate,
		item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update item %s: no existe", item.ID)
	}
	return nil
}

// GetBySKU obtiene un item por SKU canónico; (nil, nil) si no existe.
func (r *ItemRepo) GetBySKU(ctx context.Context, sku string) (*entity.InventoryItem, error) {
	query := `SELECT ` + itemColumns + ` FROM inventory_items WHERE sku = $1`
	return r.scanOne(r.q.QueryRow(ctx, query, sku), "get item")
}

// GetBySKUForUpdate obtiene el item y bloquea la fila (SELECT FOR UPDATE)
// dentro de la transacción activa.
func (r *ItemRepo) GetBySKUForUpdate(ctx context.Context, sku string) (*entity.InventoryItem, error) {
	query := `SELECT ` + itemColumns + ` FROM inventory_items WHERE sku = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(ctx, query, sku), "get item for update")
}

// List devuelve el inventario completo ordenado por SKU.
func (r *ItemRepo) List(ctx context.Context) ([]*entity.InventoryItem, error) {
	query := `SELECT ` + itemColumns + ` FROM inventory_items ORDER BY sku`
	return r.scanMany(ctx, query, "list items")
}

// ListInStock devuelve los items con cantidad > 0 ordenados por SKU.
func (r *ItemRepo) ListInStock(ctx context.Context) ([]*entity.InventoryItem, error) {
	query := `SELECT ` + itemColumns + ` FROM inventory_items WHERE quantity > 0 ORDER BY sku`
	return r.scanMany(ctx, query, "list items in stock")
}

// ListLowStock devuelve los items con cantidad <= punto de reorden, los más
// vacíos primero.
func (r *ItemRepo) ListLowStock(ctx context.Context) ([]*entity.InventoryItem, error) {
	query := `SELECT ` + itemColumns + ` FROM inventory_items
		WHERE quantity <= reorder_point ORDER BY quantity ASC, sku`
	return r.scanMany(ctx, query, "list low stock")
}

func (r *ItemRepo) scanOne(row pgx.Row, op string) (*entity.InventoryItem, error) {
	var it entity.InventoryItem
	err := row.Scan(
		&it.ID, &it.SKU, &it.PartName, &it.Quantity, &it.ReorderPoint, &it.UnitCost,
		&it.LocationID, &it.VendorName, &it.DateReceived, &it.LastIssueDate,
		&it.CreatedAt, &it.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &it, nil
}

func (r *ItemRepo) scanMany(ctx context.Context, query, op string) ([]*entity.InventoryItem, error) {
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var list []*entity.InventoryItem
	for rows.Next() {
		var it entity.InventoryItem
		if err := rows.Scan(
			&it.ID, &it.SKU, &it.PartName, &it.Quantity, &it.ReorderPoint, &it.UnitCost,
			&it.LocationID, &it.VendorName, &it.DateReceived, &it.LastIssueDate,
			&it.CreatedAt, &it.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}
