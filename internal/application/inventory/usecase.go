package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gcharles/autoshop-inventory/internal/application/dto"
	"github.com/gcharles/autoshop-inventory/internal/domain"
	"github.com/gcharles/autoshop-inventory/internal/domain/entity"
	"github.com/gcharles/autoshop-inventory/internal/domain/repository"
	"github.com/gcharles/autoshop-inventory/pkg/logger"
)

// Largo mínimo de un SKU ya normalizado.
const minSKULen = 3

// UseCase implementa el motor de mutaciones de inventario: recibir stock
// (crear-o-incrementar) y despachar stock (decrementar-con-validación).
// Cada operación corre en una transacción con bloqueo de fila por SKU y
// deja exactamente una entrada en el log de auditoría.
type UseCase struct {
	txRunner  TxRunner
	notifier  Notifier
	log       *logger.Logger
	opTimeout time.Duration // timeout explícito por operación remota; 0 = sin límite
}

// NewUseCase construye el motor. notifier puede ser NopNotifier.
func NewUseCase(txRunner TxRunner, notifier Notifier, log *logger.Logger, opTimeout time.Duration) *UseCase {
	return &UseCase{txRunner: txRunner, notifier: notifier, log: log, opTimeout: opTimeout}
}

func (uc *UseCase) opCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if uc.opTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, uc.opTimeout)
}

// ReceiveStock registra una recepción: valida, busca por SKU canónico y crea
// el item o suma la cantidad. En items existentes sobrescribe nombre, costo,
// punto de reorden, ubicación y proveedor, y renueva la fecha de recepción
// (contrato sobrescribir-al-recibir). Falla rápido sin escrituras parciales.
func (uc *UseCase) ReceiveStock(ctx context.Context, in dto.ReceiveStockRequest) (*dto.MutationResult, error) {
	sku := entity.NormalizeSKU(in.ItemSKU)
	if len(sku) < minSKULen {
		return nil, fmt.Errorf("%w: Item SKU must be provided and valid", domain.ErrInvalidInput)
	}
	if in.Quantity <= 0 {
		return nil, fmt.Errorf("%w: Quantity must be a whole positive number", domain.ErrInvalidInput)
	}
	if in.ReorderPoint < 0 {
		return nil, fmt.Errorf("%w: Reorder Point must be a non-negative whole number", domain.ErrInvalidInput)
	}
	unitCost, err := decimal.NewFromString(in.UnitCost)
	if err != nil || unitCost.IsNegative() {
		return nil, fmt.Errorf("%w: Unit Cost must be a non-negative number", domain.ErrInvalidInput)
	}
	if in.PartName == "" {
		return nil, fmt.Errorf("%w: Part Name must be provided", domain.ErrInvalidInput)
	}
	if in.VendorName == "" {
		return nil, fmt.Errorf("%w: Vendor Name must be provided", domain.ErrInvalidInput)
	}

	ctx, cancel := uc.opCtx(ctx)
	defer cancel()

	now := time.Now()
	var newQuantity, reorderPoint int

	err = uc.txRunner.Run(ctx, func(items repository.ItemRepository, logs repository.TransactionLogRepository) error {
		item, err := items.GetBySKUForUpdate(ctx, sku)
		if err != nil {
			return err
		}
		if item != nil {
			item.Quantity += in.Quantity
			item.PartName = in.PartName
			item.ReorderPoint = in.ReorderPoint
			item.UnitCost = unitCost
			item.LocationID = in.LocationID
			item.VendorName = in.VendorName
			item.DateReceived = now
			item.UpdatedAt = now
			if err := items.Update(ctx, item); err != nil {
				return err
			}
		} else {
			item = &entity.InventoryItem{
				ID:           uuid.New().String(),
				SKU:          sku,
				PartName:     in.PartName,
				Quantity:     in.Quantity,
				ReorderPoint: in.ReorderPoint,
				UnitCost:     unitCost,
				LocationID:   in.LocationID,
				VendorName:   in.VendorName,
				DateReceived: now,
				CreatedAt:    now,
				UpdatedAt:    now,
			}
			if err := items.Create(ctx, item); err != nil {
				return err
			}
		}
		newQuantity = item.Quantity
		reorderPoint = item.ReorderPoint

		return logs.Create(ctx, &entity.TransactionLogEntry{
			ID:             uuid.New().String(),
			ItemID:         item.ID,
			SKU:            sku,
			QuantityChange: in.Quantity,
			Kind:           entity.TransactionKindReceive,
			VendorName:     in.VendorName,
			CreatedAt:      now,
		})
	})
	if err != nil {
		return nil, fmt.Errorf("receive stock %s: %w", sku, err)
	}

	uc.log.Info().Str("sku", sku).Int("quantity", in.Quantity).Int("new_quantity", newQuantity).
		Msg("recepción registrada")

	// Una recepción también puede dejar el item bajo el punto de reorden
	// (el punto de reorden se sobrescribe en cada recepción).
	if newQuantity <= reorderPoint {
		uc.notifier.TriggerLowStock(ctx, sku)
	}

	return &dto.MutationResult{
		Success:     true,
		Message:     fmt.Sprintf("Successfully received %d units of %s. New stock level: %d.", in.Quantity, in.PartName, newQuantity),
		SKU:         sku,
		NewQuantity: newQuantity,
	}, nil
}

// IssueStock registra una salida: valida, verifica stock suficiente bajo el
// bloqueo de fila y decrementa. La precondición cantidad_actual >= solicitada
// se evalúa dentro de la misma transacción que la escritura, cerrando la
// carrera leer-luego-actuar de dos salidas concurrentes sobre el mismo SKU.
func (uc *UseCase) IssueStock(ctx context.Context, rawSKU string, quantity int) (*dto.MutationResult, error) {
	sku := entity.NormalizeSKU(rawSKU)
	if len(sku) < minSKULen {
		return nil, fmt.Errorf("%w: Item SKU must be provided and valid", domain.ErrInvalidInput)
	}
	if quantity <= 0 {
		return nil, fmt.Errorf("%w: Quantity to issue must be a whole positive number", domain.ErrInvalidInput)
	}

	ctx, cancel := uc.opCtx(ctx)
	defer cancel()

	now := time.Now()
	var newQuantity, reorderPoint int
	var partName string

	err := uc.txRunner.Run(ctx, func(items repository.ItemRepository, logs repository.TransactionLogRepository) error {
		item, err := items.GetBySKUForUpdate(ctx, sku)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrNotFound
		}
		if item.Quantity < quantity {
			return domain.ErrInsufficientStock
		}
		item.Quantity -= quantity
		item.LastIssueDate = &now
		item.UpdatedAt = now
		if err := items.Update(ctx, item); err != nil {
			return err
		}
		newQuantity = item.Quantity
		reorderPoint = item.ReorderPoint
		partName = item.PartName

		return logs.Create(ctx, &entity.TransactionLogEntry{
			ID:             uuid.New().String(),
			ItemID:         item.ID,
			SKU:            sku,
			QuantityChange: -quantity,
			Kind:           entity.TransactionKindIssue,
			CreatedAt:      now,
		})
	})
	if err != nil {
		if err == domain.ErrNotFound || err == domain.ErrInsufficientStock {
			return nil, err
		}
		return nil, fmt.Errorf("issue stock %s: %w", sku, err)
	}

	uc.log.Info().Str("sku", sku).Int("quantity", quantity).Int("new_quantity", newQuantity).
		Msg("salida registrada")

	// Disparo de la alerta de reorden: best-effort, el notifier traga sus
	// propios errores, así que la salida ya reportada nunca se ve afectada.
	if newQuantity <= reorderPoint {
		uc.notifier.TriggerLowStock(ctx, sku)
	}

	return &dto.MutationResult{
		Success:     true,
		Message:     fmt.Sprintf("Successfully issued %d units of %s. Remaining stock: %d.", quantity, partName, newQuantity),
		SKU:         sku,
		NewQuantity: newQuantity,
	}, nil
}

// LookupStock devuelve el detalle de un SKU con su estado de reorden.
func (uc *UseCase) LookupStock(ctx context.Context, items repository.ItemRepository, rawSKU string) (*dto.StockLookupResponse, error) {
	sku := entity.NormalizeSKU(rawSKU)
	if len(sku) < minSKULen {
		return nil, fmt.Errorf("%w: Item SKU must be provided and valid", domain.ErrInvalidInput)
	}

	ctx, cancel := uc.opCtx(ctx)
	defer cancel()

	item, err := items.GetBySKU(ctx, sku)
	if err != nil {
		return nil, fmt.Errorf("lookup stock %s: %w", sku, err)
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}

	lastIssued := "N/A"
	if item.LastIssueDate != nil {
		lastIssued = item.LastIssueDate.Format("2006-01-02")
	}
	status := "OK"
	if item.IsLowStock() {
		status = "CRITICAL"
	}
	return &dto.StockLookupResponse{
		SKU:           item.SKU,
		PartName:      item.PartName,
		Quantity:      item.Quantity,
		ReorderPoint:  item.ReorderPoint,
		UnitCost:      item.UnitCost.StringFixed(2),
		LocationID:    item.LocationID,
		VendorName:    item.VendorName,
		DateReceived:  item.DateReceived.Format("2006-01-02"),
		LastIssueDate: lastIssued,
		Status:        status,
	}, nil
}
