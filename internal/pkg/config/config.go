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

const (
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"
)

type Config struct {
	Server    ServerConfig
	Store     StoreConfig
	DB        DBConfig
	CORS      CORSConfig
	Log       LogConfig
	JWT       JWTConfig
	Rental    RentalConfig
	Reclaimer ReclaimerConfig
	Kafka     KafkaConfig
	Telemetry TelemetryConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

type StoreConfig struct {
	Driver string `envconfig:"STORE_DRIVER" default:"postgres"`
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER"`
	Password string `envconfig:"DB_PASSWORD"`
	DBName   string `envconfig:"DB_NAME"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
	TimeZone string `envconfig:"DB_TIMEZONE" default:"UTC"`
	MaxConns int32  `envconfig:"DB_MAX_CONNS" default:"20"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length,Location"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"UTC"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"0"`
	// OTelBridge also sends records to the OTel log pipeline set up by telemetry.Setup.
	OTelBridge bool `envconfig:"LOG_OTEL_BRIDGE" default:"false"`
}

type JWTConfig struct {
	Secret   string        `envconfig:"JWT_SECRET" required:"true"`
	Issuer   string        `envconfig:"JWT_ISSUER" default:"book-rental"`
	Duration time.Duration `envconfig:"JWT_DURATION" default:"24h"`
}

type RentalConfig struct {
	DefaultDurationDays int `envconfig:"RENTAL_DEFAULT_DURATION_DAYS" default:"7"`
}

type ReclaimerConfig struct {
	Enabled        bool          `envconfig:"RECLAIMER_ENABLED" default:"true"`
	Interval       time.Duration `envconfig:"RECLAIMER_INTERVAL" default:"5m"`
	PendingTimeout time.Duration `envconfig:"RECLAIMER_PENDING_TIMEOUT" default:"15m"`
	BatchSize      int           `envconfig:"RECLAIMER_BATCH_SIZE" default:"500"`
}

type KafkaConfig struct {
	Brokers      []string      `envconfig:"KAFKA_BROKERS"`
	Topic        string        `envconfig:"KAFKA_RENTAL_TOPIC" default:"rental-events"`
	BatchTimeout time.Duration `envconfig:"KAFKA_BATCH_TIMEOUT" default:"50ms"`
	RelayPeriod  time.Duration `envconfig:"OUTBOX_RELAY_PERIOD" default:"2s"`
	RelayBatch   int           `envconfig:"OUTBOX_RELAY_BATCH" default:"100"`
}

type TelemetryConfig struct {
	ServiceName  string `envconfig:"OTEL_SERVICE_NAME" default:"book-rental"`
	OTLPEndpoint string `envconfig:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	Insecure     bool   `envconfig:"OTEL_EXPORTER_OTLP_INSECURE" default:"true"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&timezone=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.TimeZone,
	)
}

func (c KafkaConfig) Enabled() bool {
	return len(c.Brokers) > 0
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.Store.Driver {
	case StoreDriverPostgres:
		if c.DB.User == "" || c.DB.DBName == "" {
			return fmt.Errorf("DB_USER and DB_NAME are required when STORE_DRIVER=%s", StoreDriverPostgres)
		}
	case StoreDriverMemory:
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.Store.Driver)
	}
	if c.Reclaimer.Interval <= 0 || c.Reclaimer.PendingTimeout <= 0 {
		return fmt.Errorf("reclaimer interval and pending timeout must be positive")
	}
	if len(c.CORS.AllowOrigins) == 0 {
		return fmt.Errorf("CORS_ALLOW_ORIGINS must name at least one origin")
	}
	if c.Rental.DefaultDurationDays < 1 || c.Rental.DefaultDurationDays > 30 {
		return fmt.Errorf("RENTAL_DEFAULT_DURATION_DAYS must be between 1 and 30")
	}
	return nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889", // Test port
		},
		Store: StoreConfig{
			Driver: StoreDriverMemory,
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433", // Test DB port
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
			TimeZone: "UTC",
			MaxConns: 10,
		},
		CORS: CORSConfig{
			AllowOrigins:     []string{"http://localhost:3000"},
			AllowMethods:     []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
			ExposeHeaders:    []string{"Content-Length", "Location"},
			AllowCredentials: true,
			MaxAge:           time.Hour,
		},
		Log: LogConfig{
			Level:      "error", // Error level only for tests
			TimeZone:   "UTC",
			TimeFormat: "2006-01-02 15:04:05.000",
		},
		JWT: JWTConfig{
			Secret:   "test-secret",
			Issuer:   "book-rental-test",
			Duration: time.Hour,
		},
		Rental: RentalConfig{
			DefaultDurationDays: 7,
		},
		Reclaimer: ReclaimerConfig{
			Enabled:        false,
			Interval:       5 * time.Minute,
			PendingTimeout: 15 * time.Minute,
			BatchSize:      500,
		},
		Kafka: KafkaConfig{
			Topic:        "rental-events",
			BatchTimeout: 50 * time.Millisecond,
			RelayPeriod:  time.Second,
			RelayBatch:   100,
		},
		Telemetry: TelemetryConfig{
			ServiceName: "book-rental-test",
		},
	}
}
