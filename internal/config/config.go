package config

import (
	"errors"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Postgres PostgresConfig
	Redis    RedisConfig
	Payments PaymentsConfig
	Email    EmailConfig
	Catalog  CatalogConfig
}

type AppConfig struct {
	Port  string
	Debug bool
}

type PostgresConfig struct {
	URL string
}

type RedisConfig struct {
	Addr     string
	Password string
}

type PaymentsConfig struct {
	BaseURL       string
	APIKey        string
	WebhookSecret string
	// Tolerance bounds how far a webhook's signed timestamp may drift
	// from the server clock before the event is rejected.
	Tolerance  time.Duration
	SuccessURL string
	CancelURL  string
}

type EmailConfig struct {
	BaseURL string
	APIKey  string
	Sender  string
}

type CatalogConfig struct {
	BaseURL string
	APIKey  string
}

func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("PAYMENT_TOLERANCE", "5m")
	viper.SetDefault("EMAIL_SENDER", "tickets@quickshow.example.com")
	viper.SetDefault("CATALOG_BASE_URL", "https://api.themoviedb.org/3")

	// A missing .env is fine, the environment alone may be enough.
	if err := viper.ReadInConfig(); err != nil {
		var parseErr viper.ConfigParseError
		if errors.As(err, &parseErr) {
			return nil, err
		}
	}

	viper.AutomaticEnv()

	cfg := &Config{
		App: AppConfig{
			Port:  viper.GetString("PORT"),
			Debug: viper.GetBool("DEBUG"),
		},
		Postgres: PostgresConfig{
			URL: viper.GetString("POSTGRES_URL"),
		},
		Redis: RedisConfig{
			Addr:     viper.GetString("REDIS_ADDR"),
			Password: viper.GetString("REDIS_PASSWORD"),
		},
		Payments: PaymentsConfig{
			BaseURL:       viper.GetString("PAYMENT_BASE_URL"),
			APIKey:        viper.GetString("PAYMENT_API_KEY"),
			WebhookSecret: viper.GetString("PAYMENT_WEBHOOK_SECRET"),
			Tolerance:     viper.GetDuration("PAYMENT_TOLERANCE"),
			SuccessURL:    viper.GetString("PAYMENT_SUCCESS_URL"),
			CancelURL:     viper.GetString("PAYMENT_CANCEL_URL"),
		},
		Email: EmailConfig{
			BaseURL: viper.GetString("EMAIL_BASE_URL"),
			APIKey:  viper.GetString("EMAIL_API_KEY"),
			Sender:  viper.GetString("EMAIL_SENDER"),
		},
		Catalog: CatalogConfig{
			BaseURL: viper.GetString("CATALOG_BASE_URL"),
			APIKey:  viper.GetString("CATALOG_API_KEY"),
		},
	}

	return cfg, nil
}
