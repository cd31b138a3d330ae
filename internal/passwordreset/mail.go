package passwordreset

import (
	"fmt"
	"log"
	"net/smtp"

	"station-api/internal/config"
)

// sendResetMail delivers the reset link. Delivery problems are logged,
// not surfaced: the endpoint must not reveal whether sending worked.
func sendResetMail(to, resetURL string) {
	mail := config.Mail()

	msg := fmt.Sprintf("Subject: Password Reset\n\nClick here to reset your password: %s", resetURL)

	var a smtp.Auth
	if mail.User != "" {
		a = smtp.PlainAuth("", mail.User, mail.Pass, mail.Host)
	}

	if err := smtp.SendMail(mail.Host+":"+mail.Port, a, mail.From, []string{to}, []byte(msg)); err != nil {
		log.Printf("⚠️  Failed to send reset mail to %s: %v", to, err)
	}
}
