package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, DB connection, gateway secrets), security settings
// - default: Values common across all environments (timezone, timeout, currency, etc.), standard settings
// -----------------------------------------------------------------------------

type Config struct {
	Server    ServerConfig
	DB        DBConfig
	CORS      CORSConfig
	Log       LogConfig
	JWT       JWTConfig
	Payment   PaymentConfig
	Checkout  CheckoutConfig
	Messaging MessagingConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" required:"true"`
	Password string `envconfig:"DB_PASSWORD" required:"true"`
	DBName   string `envconfig:"DB_NAME" required:"true"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
	TimeZone string `envconfig:"DB_TIMEZONE" default:"UTC"`
	MaxConns int32  `envconfig:"DB_MAX_CONNS" default:"20"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"UTC"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"0"`
}

type JWTConfig struct {
	Secret   string `envconfig:"JWT_SECRET" required:"true"`
	Duration string `envconfig:"JWT_DURATION" default:"24h"`
}

type PaymentConfig struct {
	SecretKey     string        `envconfig:"STRIPE_SECRET_KEY" required:"true"`
	WebhookSecret string        `envconfig:"STRIPE_WEBHOOK_SECRET" required:"true"`
	PublicBaseURL string        `envconfig:"PUBLIC_BASE_URL"`
	Currency      string        `envconfig:"PAYMENT_CURRENCY" default:"egp"`
	Timeout       time.Duration `envconfig:"STRIPE_TIMEOUT" default:"10s"`
}

type CheckoutConfig struct {
	TaxPrice      decimal.Decimal `envconfig:"CHECKOUT_TAX_PRICE" default:"0"`
	ShippingPrice decimal.Decimal `envconfig:"CHECKOUT_SHIPPING_PRICE" default:"0"`
	// on_delivery: cash bookings stay unpaid until an admin marks them paid.
	// on_create: cash bookings are created paid.
	CashPaymentPolicy string `envconfig:"CASH_PAYMENT_POLICY" default:"on_delivery"`
}

type MessagingConfig struct {
	// Empty RedisAddr selects the in-process channel transport.
	RedisAddr     string        `envconfig:"REDIS_ADDR"`
	RedisPassword string        `envconfig:"REDIS_PASSWORD"`
	RedisDB       int           `envconfig:"REDIS_DB" default:"0"`
	ConsumerGroup string        `envconfig:"PAYMENT_CONSUMER_GROUP" default:"svc-bookings.payment-conversion"`
	MaxRetries    int           `envconfig:"PAYMENT_CONVERSION_MAX_RETRIES" default:"5"`
	RetryInterval time.Duration `envconfig:"PAYMENT_CONVERSION_RETRY_INTERVAL" default:"200ms"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&timezone=%s&pool_max_conns=%d",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.TimeZone, c.MaxConns,
	)
}

func LoadConfig() (Config, error) {
	// .env is optional; real environment variables win over it.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load .env: %w", err)
	}

	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889", // Test port
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433", // Test DB port
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
			TimeZone: "UTC",
			MaxConns: 20,
		},
		Log: LogConfig{
			Level:      "error", // Error level only for tests
			TimeZone:   "UTC",
			TimeFormat: "2006-01-02 15:04:05.000",
		},
		JWT: JWTConfig{
			Secret:   "test-secret",
			Duration: "1h",
		},
		Payment: PaymentConfig{
			SecretKey:     "sk_test_dummy",
			WebhookSecret: "whsec_test",
			Currency:      "egp",
			Timeout:       5 * time.Second,
		},
		Checkout: CheckoutConfig{
			TaxPrice:          decimal.Zero,
			ShippingPrice:     decimal.Zero,
			CashPaymentPolicy: "on_delivery",
		},
		Messaging: MessagingConfig{
			ConsumerGroup: "svc-bookings.payment-conversion",
			MaxRetries:    2,
			RetryInterval: 10 * time.Millisecond,
		},
	}
}
