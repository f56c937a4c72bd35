package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort     string `mapstructure:"APP_PORT"`
	DatabaseURL string `mapstructure:"DATABASE_URL"`
	Env         string `mapstructure:"ENV"`
	JWTSecret   string `mapstructure:"JWT_SECRET"`
	LogLevel    string `mapstructure:"LOG_LEVEL"`

	// Redis configuration.
	RedisAddr            string `mapstructure:"REDIS_ADDR"`
	RedisPassword        string `mapstructure:"REDIS_PASSWORD"`
	RedisReminderQueueDB int    `mapstructure:"REDIS_REMINDER_QUEUE_DB"`

	// Stripe gateway.
	StripeKey             string `mapstructure:"STRIPE_KEY"`
	PaymentGatewayMock    bool   `mapstructure:"PAYMENT_GATEWAY_MOCK"`
	PaymentSuccessURL     string `mapstructure:"PAYMENT_SUCCESS_URL"`
	PaymentCancelURL      string `mapstructure:"PAYMENT_CANCEL_URL"`
	PaymentCallbackSecret string `mapstructure:"PAYMENT_CALLBACK_SECRET"`

	// Booking lifecycle deadlines and sweep cadence.
	AutoExpiryWindow time.Duration `mapstructure:"AUTO_EXPIRY_WINDOW"`
	PaymentDueWindow time.Duration `mapstructure:"PAYMENT_DUE_WINDOW"`
	SweepInterval    time.Duration `mapstructure:"SWEEP_INTERVAL"`
	GatewayTimeout   time.Duration `mapstructure:"GATEWAY_TIMEOUT"`

	// Firebase (push notifications).
	FirebaseCredentialsFile string `mapstructure:"FIREBASE_CREDENTIALS_FILE"`
	DefaultCurrency         string `mapstructure:"DEFAULT_CURRENCY"`
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
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_REMINDER_QUEUE_DB", 3)
	viper.SetDefault("STRIPE_KEY", "")
	viper.SetDefault("PAYMENT_GATEWAY_MOCK", false)
	viper.SetDefault("PAYMENT_SUCCESS_URL", "https://festoria.app/payments/success")
	viper.SetDefault("PAYMENT_CANCEL_URL", "https://festoria.app/payments/cancel")
	viper.SetDefault("PAYMENT_CALLBACK_SECRET", "")
	viper.SetDefault("AUTO_EXPIRY_WINDOW", 48*time.Hour)
	viper.SetDefault("PAYMENT_DUE_WINDOW", 24*time.Hour)
	viper.SetDefault("SWEEP_INTERVAL", 15*time.Minute)
	viper.SetDefault("GATEWAY_TIMEOUT", 15*time.Second)
	viper.SetDefault("FIREBASE_CREDENTIALS_FILE", "serviceAccountKey.json")
	viper.SetDefault("DEFAULT_CURRENCY", "usd")

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
