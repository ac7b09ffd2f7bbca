package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Storage  StorageConfig
	Email    EmailConfig
}

type ServerConfig struct {
	Port string
}

type DatabaseConfig struct {
	URL string
}

type JWTConfig struct {
	Secret string
}

type StorageConfig struct {
	Bucket string
	Region string
}

type EmailConfig struct {
	APIKey string
	From   string
}

func Load() *Config {
	godotenv.Load() // .env dosyasını yükle

	return &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "3000"),
		},
		Database: DatabaseConfig{
			URL: getEnv("DATABASE_URL", ""),
		},
		JWT: JWTConfig{
			Secret: getEnv("JWT_SECRET", "casavista-dev-secret"),
		},
		Storage: StorageConfig{
			Bucket: getEnv("AWS_BUCKET_NAME", "casavista-images"),
			Region: getEnv("AWS_REGION", "eu-central-1"),
		},
		Email: EmailConfig{
			APIKey: getEnv("RESEND_API_KEY", ""),
			From:   getEnv("EMAIL_FROM", "CasaVista <noreply@casavista.mx>"),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
