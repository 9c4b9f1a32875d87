package domain

import "time"

// File permissions constants
const (
	// DirectoryPermissions is the default permission for directories (rwxr-xr-x)
	DirectoryPermissions = 0o755
	// ReportFilePermissions is the permission for exported reports (rw-r--r--)
	ReportFilePermissions = 0o644
)

// Environment variable names read at startup
const (
	EnvDBHost            = "DB_HOST"
	EnvDBPort            = "DB_PORT"
	EnvDBName            = "DB_NAME"
	EnvDBUser            = "DB_USER"
	EnvDBPassword        = "DB_PASSWORD"
	EnvDBSSLMode         = "DB_SSLMODE"
	EnvN8NWebhookBaseURL = "N8N_WEBHOOK_BASE_URL"
	EnvOpenAIAPIKey      = "OPENAI_API_KEY"
	EnvTelegramBotToken  = "TELEGRAM_BOT_TOKEN"
)

// Environment defaults (never used for secrets)
const (
	DefaultDBHost    = "localhost"
	DefaultDBPort    = "5432"
	DefaultDBName    = "lifeos_db"
	DefaultDBUser    = "lifeos_app"
	DefaultDBSSLMode = "disable"
	DefaultN8NURL    = "http://localhost:5678"
)

// Check thresholds and fixed paths
const (
	// ResourceThresholdPercent is the usage above which CPU, memory or disk is reported.
	ResourceThresholdPercent = 90.0
	// CPUSampleInterval is how long CPU utilisation is sampled.
	CPUSampleInterval = time.Second
	// N8NHealthPath is probed with GET before the webhook endpoints.
	N8NHealthPath = "/healthz"
	// PGNotifySuffix is appended to the webhook path for the pg-listener probe.
	PGNotifySuffix = "/pg-notify"
	// HealthCheckSource tags test payloads.
	HealthCheckSource = "health_check_script"
	// NoHealthCheckStatus is reported for running containers without a HEALTHCHECK.
	NoHealthCheckStatus = "running (no health check)"
)

// Time formats
const (
	// TimestampFormat is the standard timestamp format
	TimestampFormat = time.RFC3339
	// ExportFileTimeFormat is embedded in default export filenames.
	ExportFileTimeFormat = "20060102_150405"
)
