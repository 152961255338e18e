package config

import (
	"errors"
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	DatabaseURL       string `mapstructure:"DATABASE_URL"`
	Env               string `mapstructure:"ENV"`
	JWTSecret         string `mapstructure:"JWT_SECRET"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Redis configuration.
	RedisAddr           string `mapstructure:"REDIS_ADDR"`
	RedisPassword       string `mapstructure:"REDIS_PASSWORD"`
	RedisConversationDB int    `mapstructure:"REDIS_CONVERSATION_DB"`
	RedisQueueDB        int    `mapstructure:"REDIS_QUEUE_DB"`

	// Turn queue configuration.
	QueueConcurrency int `mapstructure:"QUEUE_CONCURRENCY"`
	QueueMaxRetry    int `mapstructure:"QUEUE_MAX_RETRY"`

	// Reservation configuration.
	PendingReservationTTLHours int `mapstructure:"PENDING_RESERVATION_TTL_HOURS"`
	SweepIntervalMinutes       int `mapstructure:"SWEEP_INTERVAL_MINUTES"`
	MaxStayNights              int `mapstructure:"MAX_STAY_NIGHTS"`

	// Chat gateway (outbound message delivery).
	ChatGatewayURL   string `mapstructure:"CHAT_GATEWAY_URL"`
	ChatGatewayToken string `mapstructure:"CHAT_GATEWAY_TOKEN"`

	// Admin API credentials.
	AdminEmail        string `mapstructure:"ADMIN_EMAIL"`
	AdminPasswordHash string `mapstructure:"ADMIN_PASSWORD_HASH"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CONVERSATION_DB", 0)
	viper.SetDefault("REDIS_QUEUE_DB", 1)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("QUEUE_CONCURRENCY", 1)
	viper.SetDefault("QUEUE_MAX_RETRY", 3)
	viper.SetDefault("PENDING_RESERVATION_TTL_HOURS", 24)
	viper.SetDefault("SWEEP_INTERVAL_MINUTES", 30)
	viper.SetDefault("MAX_STAY_NIGHTS", 30)
	viper.SetDefault("CHAT_GATEWAY_URL", "")
	viper.SetDefault("CHAT_GATEWAY_TOKEN", "")
	viper.SetDefault("ADMIN_EMAIL", "")
	viper.SetDefault("ADMIN_PASSWORD_HASH", "")

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

// Validate rejects configurations that are unsafe to run. Production must
// carry an explicit JWT secret; the dev fallback key is public knowledge.
func Validate() error {
	if IsProduction() && AppConfig.JWTSecret == "" {
		return errors.New("JWT_SECRET must be set in production")
	}
	return nil
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
