package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/onenotebe/onenotebe/internal/models"
)

type Config struct {
	ServiceName string
	ServerPort  int
	LogLevel    string

	DatabaseURL string

	JWTSecret       string
	JWTExpirationMs int

	RateLimitRegisterRequests      int
	RateLimitRegisterWindowSeconds int

	AdminUsername string
	AdminPassword string
	AdminEmail    string

	ESURL       string
	ESUser      string
	ESPassword  string
	SearchIndex string

	KafkaAddress string
	EventsTopic  string
}

func Load() *Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Notice: .env file not found: %v. Using system environment variables", err)
	}

	return &Config{
		ServiceName: EnvDefault("SERVICE_NAME", "onenotebe"),
		ServerPort:  EnvIntDefault("SERVER_PORT", 8080),
		LogLevel:    EnvDefault("LOG_LEVEL", "info"),

		DatabaseURL: os.Getenv("DATABASE_URL"),

		JWTSecret:       os.Getenv("JWT_SECRET"),
		JWTExpirationMs: EnvIntDefault("JWT_EXPIRATION_MS", 900000),

		RateLimitRegisterRequests:      EnvIntDefault("RATE_LIMIT_REGISTER_REQUESTS", 5),
		RateLimitRegisterWindowSeconds: EnvIntDefault("RATE_LIMIT_REGISTER_WINDOW_SECONDS", 60),

		AdminUsername: EnvDefault("ADMIN_USERNAME", "admin"),
		AdminPassword: EnvDefault("ADMIN_PASSWORD", "admin123"),
		AdminEmail:    EnvDefault("ADMIN_EMAIL", "admin@example.com"),

		ESURL:       os.Getenv("ES_URL"),
		ESUser:      os.Getenv("ES_USER"),
		ESPassword:  os.Getenv("ES_PASSWORD"),
		SearchIndex: EnvDefault("SEARCH_INDEX", "posts"),

		KafkaAddress: os.Getenv("KAFKA_ADDRESS"),
		EventsTopic:  EnvDefault("EVENTS_TOPIC", "blog_events"),
	}
}

func (c *Config) TokenLifetime() time.Duration {
	return time.Duration(c.JWTExpirationMs) * time.Millisecond
}

func (c *Config) RegisterWindow() time.Duration {
	return time.Duration(c.RateLimitRegisterWindowSeconds) * time.Second
}

func InitDB(cfg *Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Category{}, &models.Post{}); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}

func EnvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func EnvIntDefault(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func MustNonEmpty(value, envName string) {
	if value == "" {
		log.Fatalf("missing required env %s", envName)
	}
}
