package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds runtime configuration read from environment variables
type Config struct {
	ServerPort string

	// DATABASE_URL en formato de conexión de Postgres
	DatabaseURL string

	// Clave de la API de Google Places; vacía desactiva el enriquecimiento externo
	GoogleMapsAPIKey string

	// Secreto de firma de los tokens JWT
	JWTSecretKey string

	// Radios de búsqueda en metros
	DefaultSearchRadius int
	MaxSearchRadius     int

	// Orígenes permitidos para CORS, separados por coma
	CORSOrigins string

	// SMTP (opcional, sin host no se envían correos)
	SMTPHost      string
	SMTPPort      string
	SMTPUser      string
	SMTPPassword  string
	SMTPFromName  string
	SMTPFromEmail string
}

// LoadConfig reads the environment and validates required values
func LoadConfig() (*Config, error) {
	cfg := &Config{
		ServerPort:          envOrDefault("PORT", "5000"),
		DatabaseURL:         os.Getenv("DATABASE_URL"),
		GoogleMapsAPIKey:    os.Getenv("GOOGLE_MAPS_API_KEY"),
		JWTSecretKey:        os.Getenv("JWT_SECRET_KEY"),
		DefaultSearchRadius: envIntOrDefault("DEFAULT_SEARCH_RADIUS", 5000),
		MaxSearchRadius:     envIntOrDefault("MAX_SEARCH_RADIUS", 50000),
		CORSOrigins:         envOrDefault("CORS_ORIGINS", "http://localhost:3000,http://127.0.0.1:3000"),
		SMTPHost:            os.Getenv("SMTP_HOST"),
		SMTPPort:            envOrDefault("SMTP_PORT", "587"),
		SMTPUser:            os.Getenv("SMTP_USER"),
		SMTPPassword:        os.Getenv("SMTP_PASSWORD"),
		SMTPFromName:        envOrDefault("SMTP_FROM_NAME", "Barberías"),
		SMTPFromEmail:       os.Getenv("SMTP_FROM_EMAIL"),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL no está definida en variables de entorno")
	}
	if cfg.JWTSecretKey == "" {
		return nil, fmt.Errorf("JWT_SECRET_KEY no está definida en variables de entorno")
	}

	return cfg, nil
}

// GetDBConnString returns the Postgres connection string
func (c *Config) GetDBConnString() string {
	return c.DatabaseURL
}

func envOrDefault(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func envIntOrDefault(key string, fallback int) int {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return fallback
}
