package config

import (
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Payment  PaymentConfig
	Shop     ShopConfig
}

type ServerConfig struct {
	Port int
	Env  string // "development", "production"
}

type DatabaseConfig struct {
	Host    string
	Port    string
	Name    string
	User    string
	Pass    string
	Charset string
}

type RedisConfig struct {
	Addr string
	Pass string
	DB   int
}

// PaymentConfig points at the gateway proxy that fronts the providers.
type PaymentConfig struct {
	ProxyBaseURL   string
	ProxyToken     string
	DefaultGateway string
	CallbackURL    string
}

// ShopConfig points at the storefront order backend.
type ShopConfig struct {
	BaseURL   string
	ProjectID string
}

// Endpoint returns the project-scoped root of the shop backend.
func (s *ShopConfig) Endpoint() string {
	base := strings.TrimRight(s.BaseURL, "/")
	if s.ProjectID == "" {
		return base
	}
	return base + "/functions/v1/shop/" + s.ProjectID
}

// Load reads configuration from .env file and environment variables.
func Load() (*Config, error) {
	// Load .env file (ignore error if missing)
	_ = godotenv.Load()

	viper.AutomaticEnv()

	// Set defaults
	viper.SetDefault("APP_PORT", 8080)
	viper.SetDefault("APP_ENV", "production")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "3306")
	viper.SetDefault("DB_CHARSET", "utf8mb4")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("PAYMENT_DEFAULT_GATEWAY", "zibal")

	cfg := &Config{
		Server: ServerConfig{
			Port: viper.GetInt("APP_PORT"),
			Env:  viper.GetString("APP_ENV"),
		},
		Database: DatabaseConfig{
			Host:    viper.GetString("DB_HOST"),
			Port:    viper.GetString("DB_PORT"),
			Name:    viper.GetString("DB_NAME"),
			User:    viper.GetString("DB_USER"),
			Pass:    viper.GetString("DB_PASS"),
			Charset: viper.GetString("DB_CHARSET"),
		},
		Redis: RedisConfig{
			Addr: viper.GetString("REDIS_ADDR"),
			Pass: viper.GetString("REDIS_PASS"),
			DB:   viper.GetInt("REDIS_DB"),
		},
		Payment: PaymentConfig{
			ProxyBaseURL:   viper.GetString("PAYMENT_PROXY_URL"),
			ProxyToken:     viper.GetString("PAYMENT_PROXY_TOKEN"),
			DefaultGateway: viper.GetString("PAYMENT_DEFAULT_GATEWAY"),
			CallbackURL:    viper.GetString("PAYMENT_CALLBACK_URL"),
		},
		Shop: ShopConfig{
			BaseURL:   viper.GetString("SHOP_API_URL"),
			ProjectID: viper.GetString("SHOP_PROJECT_ID"),
		},
	}

	if cfg.Database.Name == "" {
		log.Println("WARNING: DB_NAME is not set")
	}
	if cfg.Payment.ProxyBaseURL == "" {
		log.Println("WARNING: PAYMENT_PROXY_URL is not set")
	}

	return cfg, nil
}

// DSN returns the MySQL DSN string for GORM.
func (d *DatabaseConfig) DSN() string {
	return d.User + ":" + d.Pass + "@tcp(" + d.Host + ":" + d.Port + ")/" + d.Name + "?charset=" + d.Charset + "&parseTime=True&loc=Local"
}
