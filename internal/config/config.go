package config

import (
	"os"
	"strconv"
)

// DatabaseConfig holds metadata store connection settings.
// Driver selects the backend: "postgres" (default) or "sqlite".
type DatabaseConfig struct {
	Driver             string
	Host               string
	Port               string
	User               string
	Password           string
	Name               string
	SSLMode            string
	SQLitePath         string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeSec int
}

// MinIOConfig holds object storage settings for MinIO.
// When PublicBaseURL is set, page file URLs are built from it instead of presigned.
type MinIOConfig struct {
	Endpoint         string
	AccessKey        string
	SecretKey        string
	Bucket           string
	Region           string
	UseSSL           bool
	PublicBaseURL    string
	PresignExpirySec int
}

// TranscriptionConfig holds adapter settings.
type TranscriptionConfig struct {
	// Backend tags the adapter implementation to build.
	Backend string
	// DefaultImportType is used while the import type option row is unset.
	DefaultImportType string
	// BindingsFile optionally points to a TOML file overriding field bindings.
	BindingsFile string
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	AppHost       string
	Port          string
	LogTimezone   string
	Database      DatabaseConfig
	MinIO         MinIOConfig
	Transcription TranscriptionConfig
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
func Load() *AppConfig {
	return &AppConfig{
		AppHost:     getEnv("APP_HOST", "localhost:8080"),
		Port:        getEnv("PORT", "8080"),
		LogTimezone: getEnv("LOG_TIMEZONE", "UTC"),
		Database: DatabaseConfig{
			Driver:             getEnv("DB_DRIVER", "postgres"),
			Host:               getEnv("DB_HOST", ""),
			Port:               getEnv("DB_PORT", "5432"),
			User:               getEnv("DB_USER", ""),
			Password:           getEnv("DB_PASSWORD", ""),
			Name:               getEnv("DB_NAME", ""),
			SSLMode:            getEnv("DB_SSLMODE", "disable"),
			SQLitePath:         getEnv("SQLITE_PATH", "transcribe.db"),
			MaxOpenConns:       getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:       getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetimeSec: getEnvInt("DB_CONN_MAX_LIFETIME_SEC", 300),
		},
		MinIO: MinIOConfig{
			Endpoint:         getEnv("MINIO_ENDPOINT", ""),
			AccessKey:        getEnv("MINIO_ACCESS_KEY", ""),
			SecretKey:        getEnv("MINIO_SECRET_KEY", ""),
			Bucket:           getEnv("MINIO_BUCKET", ""),
			Region:           getEnv("MINIO_REGION", "us-east-1"),
			UseSSL:           getEnvBool("MINIO_USE_SSL", false),
			PublicBaseURL:    getEnv("STORAGE_PUBLIC_BASE_URL", ""),
			PresignExpirySec: getEnvInt("STORAGE_PRESIGN_EXPIRY_SEC", 3600),
		},
		Transcription: TranscriptionConfig{
			Backend:           getEnv("ADAPTER_BACKEND", "element-sets"),
			DefaultImportType: getEnv("TRANSCRIPTION_IMPORT_TYPE", "html"),
			BindingsFile:      getEnv("FIELD_BINDINGS_FILE", ""),
		},
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}
