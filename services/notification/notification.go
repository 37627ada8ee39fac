package notification

import (
	"crypto/tls"
	"fmt"
	"strconv"
	"strings"

	"venue-booking/config"
	"venue-booking/logger"
	"venue-booking/models/reservation"

	"github.com/wneessen/go-mail"
)

// Notifier delivers booking-related messages. Callers invoke it only after
// the reservation has durably committed; failures are logged warnings and
// never roll anything back.
type Notifier interface {
	SendBookingConfirmation(res reservation.Reservation, contactEmail string) error
	SendPaymentConfirmed(res reservation.Reservation, contactEmail string) error
	NotifyAdmins(subject, body string) error
}

// EmailNotifier sends HTML email over SMTP.
type EmailNotifier struct {
	host      string
	port      int
	user      string
	password  string
	fromName  string
	fromEmail string
	admins    []string
}

// NewEmailNotifier builds a notifier from config. It returns nil when SMTP
// is not configured; callers treat a nil notifier as "notifications off".
func NewEmailNotifier(cfg config.Config) (*EmailNotifier, error) {
	if cfg.SMTPHost == "" || cfg.SMTPFromEmail == "" {
		return nil, nil
	}
	port, err := strconv.Atoi(cfg.SMTPPort)
	if err != nil {
		return nil, fmt.Errorf("invalid SMTP port: %w", err)
	}
	return &EmailNotifier{
		host:      cfg.SMTPHost,
		port:      port,
		user:      cfg.SMTPUser,
		password:  cfg.SMTPPassword,
		fromName:  cfg.SMTPFromName,
		fromEmail: cfg.SMTPFromEmail,
		admins:    cfg.AdminRecipients,
	}, nil
}

func (n *EmailNotifier) send(to, subject, htmlBody string) error {
	m := mail.NewMsg()
	if err := m.From(fmt.Sprintf("%s <%s>", n.fromName, n.fromEmail)); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}
	if err := m.To(to); err != nil {
		return fmt.Errorf("failed to set recipient: %w", err)
	}
	m.Subject(subject)
	m.SetBodyString(mail.TypeTextHTML, htmlBody)

	client, err := mail.NewClient(n.host,
		mail.WithPort(n.port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(n.user),
		mail.WithPassword(n.password),
		mail.WithTLSPolicy(mail.TLSMandatory),
		mail.WithTLSConfig(&tls.Config{ServerName: n.host}),
	)
	if err != nil {
		return fmt.Errorf("failed to create SMTP client (host=%s port=%d): %w", n.host, n.port, err)
	}
	if err := client.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email (host=%s port=%d): %w", n.host, n.port, err)
	}
	return nil
}

// SendBookingConfirmation mails the contact their confirmation number and
// reserved window.
func (n *EmailNotifier) SendBookingConfirmation(res reservation.Reservation, contactEmail string) error {
	w := res.Window()
	subject := fmt.Sprintf("Confirmación de Reserva %s", res.GetConfirmationNumber())
	body := fmt.Sprintf(`
		<!DOCTYPE html>
		<html>
		<body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
			<div style="background-color: #f8f9fa; padding: 20px; border-radius: 10px;">
				<h2 style="color: #333;">¡Gracias por tu reserva!</h2>
				<p style="color: #555; font-size: 16px;">Hemos registrado tu reserva con los siguientes datos:</p>
				<div style="background-color: white; padding: 15px; border-radius: 5px;">
					<p><strong>Número de Confirmación:</strong> %s</p>
					<p><strong>Entrada:</strong> %s</p>
					<p><strong>Salida:</strong> %s</p>
					<p><strong>Estado:</strong> %s</p>
				</div>
				<p style="color: #999; font-size: 14px;">Este es un correo automático, por favor no responder.</p>
			</div>
		</body>
		</html>`,
		res.GetConfirmationNumber(),
		w.Start.Format("02/01/2006 15:04"),
		w.End.Format("02/01/2006 15:04"),
		res.GetStatus(),
	)
	return n.send(contactEmail, subject, body)
}

// SendPaymentConfirmed mails the contact after a successful payment event
// has been reconciled.
func (n *EmailNotifier) SendPaymentConfirmed(res reservation.Reservation, contactEmail string) error {
	subject := fmt.Sprintf("Pago Recibido - Reserva %s", res.GetConfirmationNumber())
	body := fmt.Sprintf(`
		<!DOCTYPE html>
		<html>
		<body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
			<div style="background-color: #f8f9fa; padding: 20px; border-radius: 10px;">
				<h2 style="color: #333;">Pago confirmado</h2>
				<p style="color: #555; font-size: 16px;">
					Recibimos el pago de tu reserva <strong>%s</strong>.
					Estado actual: <strong>%s</strong>.
				</p>
				<p style="color: #999; font-size: 14px;">Este es un correo automático, por favor no responder.</p>
			</div>
		</body>
		</html>`,
		res.GetConfirmationNumber(),
		res.GetStatus(),
	)
	return n.send(contactEmail, subject, body)
}

// NotifyAdmins fans the message out to the configured staff recipients.
func (n *EmailNotifier) NotifyAdmins(subject, body string) error {
	if len(n.admins) == 0 {
		return nil
	}
	var failed []string
	for _, admin := range n.admins {
		if err := n.send(admin, subject, body); err != nil {
			logger.Error("Failed to notify admin "+admin, err)
			failed = append(failed, admin)
		}
	}
	if len(failed) > 0 {
		return fmt.Errorf("failed to notify admins: %s", strings.Join(failed, ", "))
	}
	return nil
}
