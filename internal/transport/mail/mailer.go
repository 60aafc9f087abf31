package mail

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/smtp"
	"strings"
)

type Mailer struct {
	host     string
	port     string
	username string
	password string
	from     string

	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func NewMailer(host, port, username, password, from string) *Mailer {
	return &Mailer{
		host:     strings.TrimSpace(host),
		port:     strings.TrimSpace(port),
		username: username,
		password: password,
		from:     strings.TrimSpace(from),
		send:     smtp.SendMail,
	}
}

func (m *Mailer) SendVerification(ctx context.Context, email, link string) error {
	body := fmt.Sprintf("Welcome! Confirm your email address by opening the link below:\n\n%s\n\nThe link expires in a few hours. If you did not create an account, ignore this email.", link)
	return m.deliver(ctx, email, "Confirm your email address", body)
}

func (m *Mailer) SendPasswordReset(ctx context.Context, email, link string) error {
	body := fmt.Sprintf("Use the link below to choose a new password:\n\n%s\n\nIf you did not request this, ignore this email.", link)
	return m.deliver(ctx, email, "Reset your password", body)
}

// SendCheckinCompleted notifies the hotel that a guest finished online check-in.
func (m *Mailer) SendCheckinCompleted(ctx context.Context, email, hotelName, reservationID string, guests []string) error {
	var body strings.Builder
	body.WriteString(fmt.Sprintf("Online check-in for reservation %s at %s has been completed.\n\n", reservationID, hotelName))
	if len(guests) > 0 {
		body.WriteString("Guests:\n")
		for _, guest := range guests {
			body.WriteString("  - " + guest + "\n")
		}
	}
	subject := fmt.Sprintf("Check-in completed: reservation %s", reservationID)
	return m.deliver(ctx, email, subject, body.String())
}

func (m *Mailer) deliver(ctx context.Context, email, subject, body string) error {
	if m == nil {
		return errors.New("mailer not configured")
	}
	if m.host == "" || m.port == "" || m.from == "" {
		return errors.New("mailer missing configuration")
	}
	if strings.ContainsAny(email, "\r\n") {
		return errors.New("invalid recipient")
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	addr := net.JoinHostPort(m.host, m.port)
	var auth smtp.Auth
	if m.username != "" || m.password != "" {
		auth = smtp.PlainAuth("", m.username, m.password, m.host)
	}
	return m.send(addr, auth, m.from, []string{email}, buildMessage(m.from, email, subject, body))
}

func buildMessage(from, to, subject, body string) []byte {
	message := strings.Builder{}
	message.WriteString(fmt.Sprintf("From: %s\r\n", from))
	message.WriteString(fmt.Sprintf("To: %s\r\n", to))
	message.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	message.WriteString("MIME-Version: 1.0\r\n")
	message.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	message.WriteString("Content-Transfer-Encoding: 8bit\r\n\r\n")
	message.WriteString(strings.ReplaceAll(body, "\n", "\r\n"))
	message.WriteString("\r\n")
	return []byte(message.String())
}
