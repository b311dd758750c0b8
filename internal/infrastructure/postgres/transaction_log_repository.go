package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/gcharles/autoshop-inventory/internal/domain/entity"
	"github.com/gcharles/autoshop-inventory/internal/domain/repository"
)

var _ repository.TransactionLogRepository = (*TransactionLogRepo)(nil)

// TransactionLogRepo implementación del log de auditoría (append-only) sobre
// PostgreSQL (usable con pool o tx).
type TransactionLogRepo struct {
	q Querier
}

// NewTransactionLogRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTransactionLogRepository(q Querier) *TransactionLogRepo {
	return &TransactionLogRepo{q: q}
}

// Create persiste una entrada del log. Las entradas nunca se modifican.
func (r *TransactionLogRepo) Create(ctx context.Context, e *entity.TransactionLogEntry) error {
	query := `
		INSERT INTO transaction_log (id, item_id, sku, quantity_change, kind, vendor_name, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	vendor := (*string)(nil)
	if e.VendorName != "" {
		vendor = &e.VendorName
	}
	_, err := r.q.Exec(ctx, query,
		e.ID, e.ItemID, e.SKU, e.QuantityChange, e.Kind, vendor, e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create log entry: %w", err)
	}
	return nil
}

// ListRecent devuelve las últimas `limit` entradas, más recientes primero,
// enriquecidas con el costo unitario ACTUAL del item vinculado.
func (r *TransactionLogRepo) ListRecent(ctx context.Context, limit int) ([]repository.TransactionWithCost, error) {
	query := `
		SELECT t.id, t.item_id, t.sku, t.quantity_change, t.kind,
			COALESCE(t.vendor_name, ''), t.created_at,
			COALESCE(i.unit_cost, 0)
		FROM transaction_log t
		LEFT JOIN inventory_items i ON i.id = t.item_id
		ORDER BY t.created_at DESC
		LIMIT $1`
	rows, err := r.q.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list recent transactions: %w", err)
	}
	defer rows.Close()

	var list []repository.TransactionWithCost
	for rows.Next() {
		var row repository.TransactionWithCost
		if err := rows.Scan(
			&row.Entry.ID, &row.Entry.ItemID, &row.Entry.SKU, &row.Entry.QuantityChange,
			&row.Entry.Kind, &row.Entry.VendorName, &row.Entry.CreatedAt,
			&row.CurrentUnitCost,
		); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}

// SumIssuedValueSince suma |quantity_change| × costo unitario actual de las
// salidas (ISSUE) desde la fecha dada. Base del cálculo de rotación.
func (r *TransactionLogRepo) SumIssuedValueSince(ctx context.Context, since time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(ABS(t.quantity_change) * i.unit_cost), 0)
		FROM transaction_log t
		JOIN inventory_items i ON i.id = t.item_id
		WHERE t.kind = $1 AND t.created_at >= $2`
	var total decimal.Decimal
	err := r.q.QueryRow(ctx, query, entity.TransactionKindIssue, since).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum issued value: %w", err)
	}
	return total, nil
}
