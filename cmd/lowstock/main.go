// Reporte de stock crítico por consola. Con -email envía además el mismo
// reporte al destinatario configurado (útil para probar el transporte SMTP).
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/gcharles/autoshop-inventory/internal/application/alert"
	"github.com/gcharles/autoshop-inventory/internal/infrastructure/mail"
	"github.com/gcharles/autoshop-inventory/internal/infrastructure/postgres"
	"github.com/gcharles/autoshop-inventory/pkg/config"
	"github.com/gcharles/autoshop-inventory/pkg/logger"
)

func main() {
	sendEmail := flag.Bool("email", false, "enviar el reporte por correo al destinatario configurado")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "cargar configuración:", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "warn"})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fmt.Fprintln(os.Stderr, "conexión a PostgreSQL:", err)
		os.Exit(1)
	}
	defer pool.Close()

	items, err := postgres.NewItemRepository(pool).ListLowStock(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, "consulta de stock bajo:", err)
		os.Exit(1)
	}

	if len(items) == 0 {
		fmt.Println("No items at or below reorder point.")
		return
	}

	report := alert.ComposeReport(items)
	fmt.Print(report)

	if !*sendEmail {
		return
	}
	if cfg.Alert.Recipient == "" {
		fmt.Fprintln(os.Stderr, "RECIPIENT_EMAIL no configurado")
		os.Exit(1)
	}

	sender := mail.NewGomailSender(cfg.SMTP)
	subject := fmt.Sprintf("Low Stock Alert: %d item(s) at or below reorder point", len(items))
	if err := sender.Send(cfg.Alert.Recipient, subject, report); err != nil {
		log.Error().Err(err).Msg("envío del reporte fallido")
		os.Exit(1)
	}
	fmt.Println("Report sent to", cfg.Alert.Recipient)
}
