package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerAddr string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
}

func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		ServerAddr: getEnv("SERVER_ADDR", ":8080"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "station"),
	}

	log.Println("✅ Config loaded")
	return cfg
}

type MailConfig struct {
	Host string
	Port string
	User string
	Pass string
	From string
}

// Mail returns the SMTP settings for outbound mail.
func Mail() MailConfig {
	return MailConfig{
		Host: getEnv("SMTP_HOST", "localhost"),
		Port: getEnv("SMTP_PORT", "587"),
		User: getEnv("SMTP_USER", ""),
		Pass: getEnv("SMTP_PASS", ""),
		From: getEnv("MAIL_FROM", "noreply@localhost"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Debug reflects APP_DEBUG without needing a loaded Config. The error
// envelope uses it to decide whether to attach debug payloads.
func Debug() bool {
	return getEnv("APP_DEBUG", "false") == "true"
}
