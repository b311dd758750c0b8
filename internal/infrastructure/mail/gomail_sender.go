// Package mail implementa el transporte SMTP de las alertas con gomail.
package mail

import (
	"fmt"
	"time"

	"gopkg.in/gomail.v2"

	"github.com/gcharles/autoshop-inventory/internal/application/alert"
	"github.com/gcharles/autoshop-inventory/pkg/config"
)

var _ alert.MailSender = (*GomailSender)(nil)

// Tiempo máximo de un envío completo (dial + auth + data), igual que el
// transporte original. gomail no impone límite propio.
const sendTimeout = 15 * time.Second

// GomailSender envía correo en texto plano vía SMTP con SSL (puerto 465).
type GomailSender struct {
	send    func(m *gomail.Message) error
	from    string
	timeout time.Duration
}

// NewGomailSender construye el sender con la configuración SMTP.
func NewGomailSender(cfg config.SMTPConfig) *GomailSender {
	d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password)
	d.SSL = cfg.Port == 465
	return &GomailSender{
		send:    func(m *gomail.Message) error { return d.DialAndSend(m) },
		from:    cfg.User,
		timeout: sendTimeout,
	}
}

// Send arma y despacha un mensaje de texto plano. El envío corre bajo el
// límite de tiempo del sender; si no termina, se reporta timeout y el intento
// en curso se abandona.
func (s *GomailSender) Send(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	errc := make(chan error, 1)
	go func() { errc <- s.send(m) }()
	select {
	case err := <-errc:
		return err
	case <-time.After(s.timeout):
		return fmt.Errorf("smtp: envío no completado en %s", s.timeout)
	}
}
