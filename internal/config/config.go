package config

import (
	"os"
	"strconv"
)

// Document store backend identifiers. Selected at startup via DOCSTORE_BACKEND.
const (
	BackendInline     = "inline"
	BackendFilesystem = "filesystem"
	BackendBlob       = "blob"
)

// DatabaseConfig holds PostgreSQL metadata store connection settings.
type DatabaseConfig struct {
	Host               string
	Port               string
	User               string
	Password           string
	Name               string
	SSLMode            string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeSec int
}

// MinIOConfig holds object storage settings for the blob backend.
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// DocumentsConfig selects the content backend and its filesystem root.
type DocumentsConfig struct {
	Backend string
	Root    string
}

// MailerConfig holds SES settings for outbound notification email.
// AccessKey/SecretKey are optional; when empty the default AWS credential
// chain is used.
type MailerConfig struct {
	Region     string
	Sender     string
	SenderName string
	AccessKey  string
	SecretKey  string
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	AppHost   string
	Port      string
	Database  DatabaseConfig
	MinIO     MinIOConfig
	Documents DocumentsConfig
	Mailer    MailerConfig
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() *AppConfig {
	return &AppConfig{
		AppHost: getEnv("APP_HOST", "localhost:8080"),
		Port:    getEnv("PORT", "8080"), // default only for non-sensitive value
		Database: DatabaseConfig{
			Host:               getEnv("DB_HOST", ""),
			Port:               getEnv("DB_PORT", "5432"),
			User:               getEnv("DB_USER", ""),
			Password:           getEnv("DB_PASSWORD", ""),
			Name:               getEnv("DB_NAME", ""),
			SSLMode:            getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:       getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:       getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetimeSec: getEnvInt("DB_CONN_MAX_LIFETIME_SEC", 300),
		},
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", ""),
			AccessKey: getEnv("MINIO_ACCESS_KEY", ""),
			SecretKey: getEnv("MINIO_SECRET_KEY", ""),
			Bucket:    getEnv("MINIO_BUCKET", ""),
			UseSSL:    getEnvBool("MINIO_USE_SSL", false),
		},
		Documents: DocumentsConfig{
			Backend: getEnv("DOCSTORE_BACKEND", BackendInline),
			Root:    getEnv("DOCUMENTS_ROOT", "/mnt/legal-documents"),
		},
		Mailer: MailerConfig{
			Region:     getEnv("SES_REGION", "us-east-1"),
			Sender:     getEnv("SES_SENDER", ""),
			SenderName: getEnv("SES_SENDER_NAME", "Legal Team"),
			AccessKey:  getEnv("SES_ACCESS_KEY", ""),
			SecretKey:  getEnv("SES_SECRET_KEY", ""),
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
