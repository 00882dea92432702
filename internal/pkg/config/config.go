package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, DB connection, etc.), security settings
// - default: Values common across all environments (timezone, timeout, etc.), standard settings
// -----------------------------------------------------------------------------

type Config struct {
	Server  ServerConfig
	DB      DBConfig
	CORS    CORSConfig
	Log     LogConfig
	JWT     JWTConfig
	Gateway GatewayConfig
	Sweeper SweeperConfig
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
	TimeZone string `envconfig:"DB_TIMEZONE" default:"Asia/Ho_Chi_Minh"`
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
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"Asia/Ho_Chi_Minh"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"25200"` // 7*60*60
}

type JWTConfig struct {
	Secret               string `envconfig:"JWT_SECRET" required:"true"`
	AccessTokenDuration  string `envconfig:"JWT_ACCESS_TOKEN_DURATION" default:"15m"`
	RefreshTokenDuration string `envconfig:"JWT_REFRESH_TOKEN_DURATION" default:"168h"`
}

// GatewayConfig holds the VNPay merchant settings. Amounts are sent in minor
// units and timestamps are formatted in the merchant-local timezone.
type GatewayConfig struct {
	MerchantCode string `envconfig:"VNPAY_MERCHANT_CODE" required:"true"`
	HashSecret   string `envconfig:"VNPAY_HASH_SECRET" required:"true"`
	PayURL       string `envconfig:"VNPAY_PAY_URL" default:"https://sandbox.vnpayment.vn/paymentv2/vpcpay.html"`
	ReturnURL    string `envconfig:"VNPAY_RETURN_URL" required:"true"`
	Version      string `envconfig:"VNPAY_VERSION" default:"2.1.0"`
	Command      string `envconfig:"VNPAY_COMMAND" default:"pay"`
	CurrencyCode string `envconfig:"VNPAY_CURRENCY_CODE" default:"VND"`
	OrderType    string `envconfig:"VNPAY_ORDER_TYPE" default:"other"`
	Locale       string `envconfig:"VNPAY_LOCALE" default:"vn"`
	TimeZone     string `envconfig:"VNPAY_TIMEZONE" default:"Asia/Ho_Chi_Minh"`
}

type SweeperConfig struct {
	Interval          time.Duration `envconfig:"SWEEPER_INTERVAL" default:"10m"`
	PendingBookingTTL time.Duration `envconfig:"SWEEPER_PENDING_BOOKING_TTL" default:"30m"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&timezone=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.TimeZone,
	)
}

func LoadConfig() (Config, error) {
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
			TimeZone: "Asia/Ho_Chi_Minh",
		},
		Log: LogConfig{
			Level:          "error", // Error level only for tests
			TimeZone:       "Asia/Ho_Chi_Minh",
			TimeFormat:     "2006-01-02 15:04:05.000",
			TimeZoneOffset: 25200,
		},
		JWT: JWTConfig{
			Secret:               "test-secret",
			AccessTokenDuration:  "15m",
			RefreshTokenDuration: "168h",
		},
		Gateway: GatewayConfig{
			MerchantCode: "TESTMERCH",
			HashSecret:   "test-hash-secret",
			PayURL:       "https://sandbox.vnpayment.vn/paymentv2/vpcpay.html",
			ReturnURL:    "http://localhost:8889/api/payments/callback",
			Version:      "2.1.0",
			Command:      "pay",
			CurrencyCode: "VND",
			OrderType:    "other",
			Locale:       "vn",
			TimeZone:     "Asia/Ho_Chi_Minh",
		},
		Sweeper: SweeperConfig{
			Interval:          time.Minute,
			PendingBookingTTL: 30 * time.Minute,
		},
	}
}
