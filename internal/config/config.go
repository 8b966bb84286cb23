package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"github.com/m04kA/BBQ-RentalService/internal/domain"
)

const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"
)

// Config корневая конфигурация сервиса
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Storage  StorageConfig  `toml:"storage"`
	Logs     LogsConfig     `toml:"logs"`
	Metrics  MetricsConfig  `toml:"metrics"`
	Auth     AuthConfig     `toml:"auth"`
	Booking  BookingConfig  `toml:"booking"`
	Redis    RedisConfig    `toml:"redis"`
	Kafka    KafkaConfig    `toml:"kafka"`
	Weather  WeatherConfig  `toml:"weather"`
	Catalog  CatalogConfig  `toml:"catalog"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`     // секунды
	WriteTimeout    int `toml:"write_timeout"`    // секунды
	IdleTimeout     int `toml:"idle_timeout"`     // секунды
	ShutdownTimeout int `toml:"shutdown_timeout"` // секунды
}

type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

type StorageConfig struct {
	Driver string `toml:"driver"` // postgres | memory
}

type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

type AuthConfig struct {
	JWTSecret   string   `toml:"jwt_secret"`
	TokenTTL    int      `toml:"token_ttl"` // минуты
	BcryptCost  int      `toml:"bcrypt_cost"`
	DriverCodes []string `toml:"driver_codes"`
}

type BookingConfig struct {
	MaxUnits         int      `toml:"max_units"`
	TimeSlots        []string `toml:"time_slots"`
	Timezone         string   `toml:"timezone"`
	AllowOverbooking bool     `toml:"allow_overbooking"`
	CleanupAmount    string   `toml:"cleanup_amount"`
}

// Location часовой пояс, в котором считаются календарные дни
func (b BookingConfig) Location() (*time.Location, error) {
	return time.LoadLocation(b.Timezone)
}

// CleanupDecimal фиксированная сумма взноса на уборку
func (b BookingConfig) CleanupDecimal() (decimal.Decimal, error) {
	return decimal.NewFromString(b.CleanupAmount)
}

type RedisConfig struct {
	Enabled         bool   `toml:"enabled"`
	Addr            string `toml:"addr"`
	Password        string `toml:"password"`
	DB              int    `toml:"db"`
	AvailabilityTTL int    `toml:"availability_ttl"` // секунды
}

type KafkaConfig struct {
	Enabled           bool     `toml:"enabled"`
	Brokers           []string `toml:"brokers"`
	AvailabilityTopic string   `toml:"availability_topic"`
	BookingTopic      string   `toml:"booking_topic"`
}

type WeatherConfig struct {
	URL     string `toml:"url"`
	APIKey  string `toml:"api_key"`
	Timeout int    `toml:"timeout"` // секунды
	Units   string `toml:"units"`
}

type CatalogConfig struct {
	File string `toml:"file"` // пусто - встроенный каталог
}

// Load читает TOML, затем .env и переменные окружения для секретов
func Load(path string) (*Config, error) {
	cfg := Default()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	// .env не обязателен
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default значения по умолчанию, поверх которых читается файл
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     10,
			WriteTimeout:    10,
			IdleTimeout:     60,
			ShutdownTimeout: 15,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    20,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Storage: StorageConfig{Driver: StorageDriverPostgres},
		Logs:    LogsConfig{Level: "info"},
		Metrics: MetricsConfig{Path: "/metrics", ServiceName: "bbq_rental_service"},
		Auth: AuthConfig{
			TokenTTL:   24 * 60,
			BcryptCost: 10,
		},
		Booking: BookingConfig{
			MaxUnits:      domain.DefaultMaxUnits,
			TimeSlots:     domain.DefaultTimeSlots,
			Timezone:      domain.DefaultTimezone,
			CleanupAmount: domain.DefaultCleanupAmount,
		},
		Redis: RedisConfig{Addr: "localhost:6379", AvailabilityTTL: 60},
		Kafka: KafkaConfig{
			AvailabilityTopic: "bbq.availability",
			BookingTopic:      "bbq.bookings",
		},
		Weather: WeatherConfig{
			URL:     "https://api.openweathermap.org/data/2.5",
			Timeout: 5,
			Units:   "metric",
		},
	}
}

// Validate проверяет согласованность значений
func (c *Config) Validate() error {
	if c.Storage.Driver != StorageDriverPostgres && c.Storage.Driver != StorageDriverMemory {
		return fmt.Errorf("config: unknown storage driver %q", c.Storage.Driver)
	}
	if c.Booking.MaxUnits <= 0 {
		return fmt.Errorf("config: booking.max_units must be positive, got %d", c.Booking.MaxUnits)
	}
	if _, err := domain.NewSlotTable(c.Booking.TimeSlots); err != nil {
		return fmt.Errorf("config: booking.time_slots: %w", err)
	}
	if _, err := c.Booking.Location(); err != nil {
		return fmt.Errorf("config: booking.timezone: %w", err)
	}
	if _, err := c.Booking.CleanupDecimal(); err != nil {
		return fmt.Errorf("config: booking.cleanup_amount: %w", err)
	}
	if c.Auth.JWTSecret == "" {
		return errors.New("config: auth.jwt_secret (or JWT_SECRET) is required")
	}
	if c.Kafka.Enabled && len(c.Kafka.Brokers) == 0 {
		return errors.New("config: kafka.brokers is required when kafka is enabled")
	}
	return nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		cfg.Database.Password = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		cfg.Auth.JWTSecret = v
	}
	if v := os.Getenv("WEATHER_API_KEY"); v != "" {
		cfg.Weather.APIKey = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		cfg.Redis.Password = v
	}
}
