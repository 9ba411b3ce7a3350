package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Env struct {
	AppAddr string
	GinMode string

	DBHost     string
	DBPort     int
	DBName     string
	DBUser     string
	DBPassword string

	JWTSecret    string
	JWTExpiresIn time.Duration

	MailAPIKey     string
	MailAPIURL     string
	MailSender     string
	MailSenderName string

	CORSOrigins []string
	FrontendURL string
}

// LoadEnv reads configuration from .env (when present) and the process
// environment. Missing values fall back to development defaults.
func LoadEnv() Env {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("no .env file, reading from system environment")
	}

	return Env{
		AppAddr: getEnv("APP_ADDR", ":8080"),
		GinMode: strings.TrimSpace(os.Getenv("GIN_MODE")),

		DBHost:     getEnv("DB_HOST", "127.0.0.1"),
		DBPort:     getEnvInt("DB_PORT", 3306),
		DBName:     getEnv("DB_NAME", "trust_you_go"),
		DBUser:     getEnv("DB_USER", "root"),
		DBPassword: getEnv("DB_PASSWORD", ""),

		JWTSecret:    getEnv("JWT_SECRET", "change-me-in-production"),
		JWTExpiresIn: getEnvDuration("JWT_EXPIRES_IN", 24*time.Hour),

		MailAPIKey:     getEnv("MAIL_API_KEY", ""),
		MailAPIURL:     getEnv("MAIL_API_URL", "https://api.brevo.com/v3/smtp/email"),
		MailSender:     getEnv("MAIL_SENDER", "info@trustyou-go.com"),
		MailSenderName: getEnv("MAIL_SENDER_NAME", "Trust You Go"),

		CORSOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173")),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:5173"),
	}
}

// DSN builds the MySQL connection string for the configured database.
func (e Env) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true&loc=Local&charset=utf8mb4&timeout=5s&readTimeout=30s&writeTimeout=30s",
		e.DBUser, e.DBPassword, e.DBHost, e.DBPort, e.DBName)
}

func getEnv(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}

func getEnvInt(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("invalid %s=%q, using default %d", key, v, def)
		return def
	}
	return n
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("invalid %s=%q, using default %s", key, v, def)
		return def
	}
	return d
}

func splitList(raw string) []string {
	out := []string{}
	for _, p := range strings.Split(raw, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
