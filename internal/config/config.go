package config

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/Skotchmaster/storefront-admin/internal/models"
)

type Config struct {
	APP_ENV       string
	PORT          string
	CLIENT_ORIGIN string
	LOG_LEVEL     string

	DB_HOST     string
	DB_PORT     string
	DB_USER     string
	DB_PASSWORD string
	DB_NAME     string

	JWT_SECRET string

	KAFKA_ADDRESS string

	ES_URL      string
	ES_USER     string
	ES_PASSWORD string

	S3_ENDPOINT   string
	S3_REGION     string
	S3_ACCESS_KEY string
	S3_SECRET_KEY string
	S3_BUCKET     string
	S3_PUBLIC_URL string

	ADMIN_NAME     string
	ADMIN_EMAIL    string
	ADMIN_PASSWORD string
}

func LoadConfig() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Notice: .env file not found: %v. Using system environment variables", err)
	}

	config := &Config{
		APP_ENV:        getenvDefault("APP_ENV", "development"),
		PORT:           getenvDefault("PORT", "8080"),
		CLIENT_ORIGIN:  getenvDefault("CLIENT_ORIGIN", "http://localhost:3000"),
		LOG_LEVEL:      os.Getenv("LOG_LEVEL"),
		DB_HOST:        os.Getenv("DB_HOST"),
		DB_PORT:        os.Getenv("DB_PORT"),
		DB_USER:        os.Getenv("DB_USER"),
		DB_PASSWORD:    os.Getenv("DB_PASSWORD"),
		DB_NAME:        os.Getenv("DB_NAME"),
		JWT_SECRET:     os.Getenv("JWT_SECRET"),
		KAFKA_ADDRESS:  os.Getenv("KAFKA_ADDRESS"),
		ES_URL:         os.Getenv("ES_URL"),
		ES_USER:        os.Getenv("ES_USER"),
		ES_PASSWORD:    os.Getenv("ES_PASSWORD"),
		S3_ENDPOINT:    os.Getenv("S3_ENDPOINT"),
		S3_REGION:      getenvDefault("S3_REGION", "us-east-1"),
		S3_ACCESS_KEY:  os.Getenv("S3_ACCESS_KEY"),
		S3_SECRET_KEY:  os.Getenv("S3_SECRET_KEY"),
		S3_BUCKET:      os.Getenv("S3_BUCKET"),
		S3_PUBLIC_URL:  os.Getenv("S3_PUBLIC_URL"),
		ADMIN_NAME:     getenvDefault("ADMIN_NAME", "Super Admin"),
		ADMIN_EMAIL:    os.Getenv("ADMIN_EMAIL"),
		ADMIN_PASSWORD: os.Getenv("ADMIN_PASSWORD"),
	}

	if config.JWT_SECRET == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	return config, nil
}

func (c *Config) IsProduction() bool {
	return c.APP_ENV == "production"
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func InitDB(c *Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DB_USER, c.DB_PASSWORD, c.DB_HOST, c.DB_PORT, c.DB_NAME,
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Product{}, &models.Coupon{}, &models.FeatureBanner{}); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return db, nil
}
