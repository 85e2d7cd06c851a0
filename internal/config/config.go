package config

import (
	"fmt"

	pkgconfig "github.com/KeHamTruyen/SoCo-DATN-sub000/pkg/config"
)

// Config holds all configuration for the commerce engine.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// HTTP server
	HTTPPort int `env:"COMMERCE_HTTP_PORT" envDefault:"8004"`

	// Redis (voucher table)
	RedisAddr string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPass string `env:"REDIS_PASSWORD" envDefault:""`
	RedisDB   int    `env:"REDIS_DB" envDefault:"0"`

	// Kafka
	KafkaBrokers []string `env:"KAFKA_BROKERS" envDefault:"localhost:9092" envSeparator:","`

	// Order-creation collaborator
	OrderServiceURL string `env:"ORDER_SERVICE_URL" envDefault:"http://localhost:8005"`

	// Pricing constants, VND
	FreeShippingThreshold int64 `env:"FREE_SHIPPING_THRESHOLD" envDefault:"500000"`
	BaseShippingFee       int64 `env:"BASE_SHIPPING_FEE" envDefault:"30000"`

	// SeedVouchers installs the built-in voucher codes at startup.
	SeedVouchers bool `env:"SEED_VOUCHERS" envDefault:"true"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.Load(cfg); err != nil {
		return nil, fmt.Errorf("load commerce config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP port: %d", c.HTTPPort)
	}
	if c.FreeShippingThreshold < 0 {
		return fmt.Errorf("invalid free shipping threshold: %d", c.FreeShippingThreshold)
	}
	if c.BaseShippingFee < 0 {
		return fmt.Errorf("invalid base shipping fee: %d", c.BaseShippingFee)
	}
	if c.OrderServiceURL == "" {
		return fmt.Errorf("order service URL is required")
	}
	return nil
}
