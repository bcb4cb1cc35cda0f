package config

import (
	"os"
	"strconv"
	"time"
)

type R2 struct {
	AccountID     string
	AccessKey     string
	SecretKey     string
	BucketName    string
	PublicBaseURL string
}

type Config struct {
	Port               string
	PostgresURI        string
	UploadDir          string
	StorageBackend     string // "local" or "r2"
	DeployWebhookURL   string
	WebhookTimeout     time.Duration
	QueueSweepInterval string
	SecretKey          string
	APIKey             string
	CookieName         string
	R2                 R2
}

func LoadConfig() *Config {
	return &Config{
		Port:               getEnv("PORT", "3000"),
		PostgresURI:        getEnv("POSTGRES_URI", ""),
		UploadDir:          getEnv("UPLOAD_DIR", "uploads"),
		StorageBackend:     getEnv("STORAGE_BACKEND", "local"),
		DeployWebhookURL:   getEnv("DEPLOY_WEBHOOK_URL", ""),
		WebhookTimeout:     time.Duration(getEnvInt("WEBHOOK_TIMEOUT_SECONDS", 30)) * time.Second,
		QueueSweepInterval: getEnv("QUEUE_SWEEP_INTERVAL", "@every 0h1m0s"),
		SecretKey:          getEnv("SECRET_KEY", ""),
		APIKey:             getEnv("API_KEY", ""),
		CookieName:         getEnv("COOKIE_NAME", "socialcontrol_session"),
		R2: R2{
			AccountID:     getEnv("R2_ACCOUNT_ID", ""),
			AccessKey:     getEnv("R2_ACCESS_KEY", ""),
			SecretKey:     getEnv("R2_SECRET_KEY", ""),
			BucketName:    getEnv("R2_BUCKET_NAME", ""),
			PublicBaseURL: getEnv("R2_PUBLIC_BASE_URL", ""),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
