package config_test

import (
	"testing"

	"station-api/internal/config"

	"github.com/stretchr/testify/assert"
)

func TestMail(t *testing.T) {
	t.Run("Defaults without environment", func(t *testing.T) {
		t.Setenv("SMTP_HOST", "")
		t.Setenv("SMTP_PORT", "")
		t.Setenv("MAIL_FROM", "")

		mail := config.Mail()
		assert.Equal(t, "localhost", mail.Host)
		assert.Equal(t, "587", mail.Port)
		assert.Equal(t, "noreply@localhost", mail.From)
		assert.Empty(t, mail.User)
	})

	t.Run("Environment overrides", func(t *testing.T) {
		t.Setenv("SMTP_HOST", "smtp.station.test")
		t.Setenv("SMTP_PORT", "2525")
		t.Setenv("SMTP_USER", "mailer")
		t.Setenv("MAIL_FROM", "noreply@station.test")

		mail := config.Mail()
		assert.Equal(t, "smtp.station.test", mail.Host)
		assert.Equal(t, "2525", mail.Port)
		assert.Equal(t, "mailer", mail.User)
		assert.Equal(t, "noreply@station.test", mail.From)
	})
}
