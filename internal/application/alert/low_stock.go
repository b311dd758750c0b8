// Package alert implementa la notificación de reorden: tras una mutación que
// deja un item en o bajo su punto de reorden, re-consulta el stock crítico y
// envía un reporte en texto plano por correo. Es best-effort: los fallos se
// loguean y se tragan, nunca afectan a la mutación que los disparó.
package alert

import (
	"context"
	"fmt"
	"strings"

	"github.com/gcharles/autoshop-inventory/internal/domain/entity"
	"github.com/gcharles/autoshop-inventory/internal/domain/repository"
	"github.com/gcharles/autoshop-inventory/pkg/logger"
)

// MailSender puerto de transporte de correo (implementado con gomail).
type MailSender interface {
	Send(to, subject, body string) error
}

// LowStockNotifier implementa inventory.Notifier sobre MailSender.
type LowStockNotifier struct {
	items     repository.ItemRepository
	sender    MailSender
	recipient string
	log       *logger.Logger
}

// NewLowStockNotifier construye el notifier. Con recipient vacío queda
// deshabilitado (solo loguea).
func NewLowStockNotifier(items repository.ItemRepository, sender MailSender, recipient string, log *logger.Logger) *LowStockNotifier {
	return &LowStockNotifier{items: items, sender: sender, recipient: recipient, log: log}
}

// TriggerLowStock re-consulta el stock crítico y envía el reporte. Nunca
// retorna error: cualquier fallo se registra y se descarta.
func (n *LowStockNotifier) TriggerLowStock(ctx context.Context, sku string) {
	items, err := n.items.ListLowStock(ctx)
	if err != nil {
		n.log.Error().Err(err).Str("sku", sku).Msg("alerta de stock bajo: consulta fallida")
		return
	}
	if len(items) == 0 {
		// el item pudo reponerse entre la mutación y esta lectura
		return
	}
	if n.recipient == "" {
		n.log.Warn().Str("sku", sku).Int("critical", len(items)).
			Msg("alerta de stock bajo sin destinatario configurado")
		return
	}

	subject := fmt.Sprintf("Low Stock Alert: %d item(s) at or below reorder point", len(items))
	if err := n.sender.Send(n.recipient, subject, ComposeReport(items)); err != nil {
		n.log.Error().Err(err).Str("sku", sku).Msg("alerta de stock bajo: envío fallido")
		return
	}
	n.log.Info().Str("sku", sku).Int("critical", len(items)).Str("to", n.recipient).
		Msg("alerta de stock bajo enviada")
}

// ComposeReport arma la tabla de texto plano del reporte de stock crítico.
// El mismo formato se usa en el correo y en el reporte de consola.
func ComposeReport(items []*entity.InventoryItem) string {
	const rowFmt = "%-15s %-30s %8s %8s  %-12s\n"

	var b strings.Builder
	b.WriteString("LOW STOCK REPORT\n")
	b.WriteString(strings.Repeat("=", 78) + "\n")
	fmt.Fprintf(&b, rowFmt, "SKU", "PART NAME", "QTY", "REORDER", "LOCATION")
	b.WriteString(strings.Repeat("-", 78) + "\n")
	for _, it := range items {
		loc := it.LocationID
		if loc == "" {
			loc = "Unassigned"
		}
		fmt.Fprintf(&b, rowFmt,
			truncate(it.SKU, 15),
			truncate(it.PartName, 30),
			fmt.Sprintf("%d", it.Quantity),
			fmt.Sprintf("%d", it.ReorderPoint),
			truncate(loc, 12),
		)
	}
	b.WriteString(strings.Repeat("=", 78) + "\n")
	fmt.Fprintf(&b, "%d item(s) at or below reorder point. Please review and reorder.\n", len(items))
	return b.String()
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
