package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Config agrupa todo lo que la app lee del entorno.
// No hay archivo de config: en deploy todo llega por env vars.
type Config struct {
	Port string

	// DSN de Postgres. Vacío => arrancamos directo en modo degradado.
	DBDSN string

	// Archivo espejo del store degradado.
	MirrorFile string

	// Credenciales de Resend para el notifier. Vacío => notifier deshabilitado (solo log).
	ResendAPIKey  string
	EmailFrom     string
	EmailFromName string

	// Token compartido para rutas de admin. Vacío => modo dev (todo abierto).
	AdminToken string

	LogLevel  string
	LogFormat string
}

// Load lee la configuración desde el entorno con defaults razonables.
func Load() Config {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", "8080")
	v.SetDefault("DB_DSN", "")
	v.SetDefault("MIRROR_FILE", "visitors.json")
	v.SetDefault("RESEND_API_KEY", "")
	v.SetDefault("EMAIL_FROM", "noreply@tripvenza.com")
	v.SetDefault("EMAIL_FROM_NAME", "TripVenza Visitor Desk")
	v.SetDefault("ADMIN_TOKEN", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	return Config{
		Port:          strings.TrimSpace(v.GetString("PORT")),
		DBDSN:         strings.TrimSpace(v.GetString("DB_DSN")),
		MirrorFile:    strings.TrimSpace(v.GetString("MIRROR_FILE")),
		ResendAPIKey:  strings.TrimSpace(v.GetString("RESEND_API_KEY")),
		EmailFrom:     strings.TrimSpace(v.GetString("EMAIL_FROM")),
		EmailFromName: strings.TrimSpace(v.GetString("EMAIL_FROM_NAME")),
		AdminToken:    strings.TrimSpace(v.GetString("ADMIN_TOKEN")),
		LogLevel:      strings.TrimSpace(v.GetString("LOG_LEVEL")),
		LogFormat:     strings.TrimSpace(v.GetString("LOG_FORMAT")),
	}
}
