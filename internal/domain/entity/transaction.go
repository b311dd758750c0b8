package entity

import "time"

// Tipos de transacción del log de auditoría.
const (
	TransactionKindReceive = "RECEIVE"
	TransactionKindIssue   = "ISSUE"
)

// TransactionLogEntry es una fila del log de auditoría: exactamente una por
// mutación exitosa, nunca se modifica después de creada (append-only).
// QuantityChange es positivo en recepciones y negativo en salidas.
type TransactionLogEntry struct {
	ID             string
	ItemID         string // referencia al InventoryItem afectado
	SKU            string
	QuantityChange int
	Kind           string // RECEIVE | ISSUE
	VendorName     string // vacío en salidas
	CreatedAt      time.Time
}
