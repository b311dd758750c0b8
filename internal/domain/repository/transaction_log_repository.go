package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/gcharles/autoshop-inventory/internal/domain/entity"
)

// TransactionWithCost es una entrada del log enriquecida con el costo unitario
// ACTUAL del item vinculado (para valorar la transacción en el historial).
type TransactionWithCost struct {
	Entry           entity.TransactionLogEntry
	CurrentUnitCost decimal.Decimal
}

// TransactionLogRepository define el puerto del log de auditoría (append-only).
type TransactionLogRepository interface {
	Create(ctx context.Context, e *entity.TransactionLogEntry) error
	// ListRecent devuelve las últimas `limit` entradas, más recientes primero.
	ListRecent(ctx context.Context, limit int) ([]TransactionWithCost, error)
	// SumIssuedValueSince suma |quantity_change| × costo unitario actual de
	// las salidas (ISSUE) desde la fecha dada. Base del cálculo de rotación.
	SumIssuedValueSince(ctx context.Context, since time.Time) (decimal.Decimal, error)
}
