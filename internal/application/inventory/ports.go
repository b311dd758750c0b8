package inventory

import (
	"context"

	"github.com/gcharles/autoshop-inventory/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Junto con el bloqueo de fila por SKU
// (GetBySKUForUpdate) garantiza que la secuencia leer-validar-escribir-loguear
// de cada mutación sea atómica y serializada por SKU.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		items repository.ItemRepository,
		logs repository.TransactionLogRepository,
	) error) error
}

// Notifier dispara la alerta de stock bajo después de una mutación exitosa.
// Best-effort: la implementación registra sus fallos y nunca los propaga,
// de modo que una notificación caída jamás revierte ni falla la mutación.
type Notifier interface {
	TriggerLowStock(ctx context.Context, sku string)
}

// NopNotifier implementación nula (tests, cmd auxiliares).
type NopNotifier struct{}

// TriggerLowStock no hace nada.
func (NopNotifier) TriggerLowStock(context.Context, string) {}
