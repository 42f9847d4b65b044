package config

import (
	"errors"
	"fmt"
	"os"
	"time"
	_ "time/tzdata" // часовые пояса в образах без zoneinfo

	"github.com/BurntSushi/toml"

	"github.com/m04kA/SMC-TableReservation/internal/domain"
)

// Storage drivers
const (
	DriverMemory   = "memory"
	DriverRedis    = "redis"
	DriverPostgres = "postgres"
)

// ErrInvalidConfig возвращается, когда конфигурация содержит недопустимые значения
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config конфигурация сервиса
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Logs      LogsConfig      `toml:"logs"`
	Metrics   MetricsConfig   `toml:"metrics"`
	Storage   StorageConfig   `toml:"storage"`
	Redis     RedisConfig     `toml:"redis"`
	Database  DatabaseConfig  `toml:"database"`
	Booking   BookingConfig   `toml:"booking"`
	Sessions  SessionsConfig  `toml:"sessions"`
	CORS      CORSConfig      `toml:"cors"`
	RateLimit RateLimitConfig `toml:"rate_limit"`
	Admin     AdminConfig     `toml:"admin"`
}

// ServerConfig параметры HTTP-сервера, таймауты в секундах
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// LogsConfig параметры логирования
type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"` // Пустая строка: только stdout
}

// MetricsConfig параметры Prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// StorageConfig выбор хранилища ключ-значение
type StorageConfig struct {
	Driver    string `toml:"driver"`    // memory | redis | postgres
	Namespace string `toml:"namespace"` // Префикс ключей одной установки виджета
}

// RedisConfig параметры подключения к Redis
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// DatabaseConfig параметры подключения к PostgreSQL
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

// DSN возвращает строку подключения для lib/pq
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// BookingConfig каталог слотов и вместимость
type BookingConfig struct {
	StartHour   int    `toml:"start_hour"`
	EndHour     int    `toml:"end_hour"`
	StepMinutes int    `toml:"step_minutes"`
	MaxPerSlot  int    `toml:"max_per_slot"`
	WindowDays  int    `toml:"window_days"`
	Timezone    string `toml:"timezone"` // IANA, например Europe/Moscow
}

// SlotsConfig конвертирует секцию в domain.SlotsConfig
func (c BookingConfig) SlotsConfig() domain.SlotsConfig {
	return domain.SlotsConfig{
		StartHour:   c.StartHour,
		EndHour:     c.EndHour,
		StepMinutes: c.StepMinutes,
		MaxPerSlot:  c.MaxPerSlot,
		WindowDays:  c.WindowDays,
	}
}

// Location возвращает часовой пояс ресторана
func (c BookingConfig) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	return time.LoadLocation(c.Timezone)
}

// SessionsConfig параметры реестра сессий формы
type SessionsConfig struct {
	TTLMinutes  int `toml:"ttl_minutes"`
	MaxSessions int `toml:"max_sessions"`
}

// TTL возвращает время жизни неактивной сессии
func (c SessionsConfig) TTL() time.Duration {
	return time.Duration(c.TTLMinutes) * time.Minute
}

// CORSConfig параметры CORS для страницы с виджетом
type CORSConfig struct {
	AllowedOrigins []string `toml:"allowed_origins"`
}

// RateLimitConfig ограничение частоты отправки и подтверждения с одного IP
type RateLimitConfig struct {
	Enabled           bool    `toml:"enabled"`
	RequestsPerSecond float64 `toml:"requests_per_second"`
	Burst             int     `toml:"burst"`
	TrustProxy        bool    `toml:"trust_proxy"` // Брать адрес клиента из X-Real-Ip
}

// AdminConfig доступ персонала к списку бронирований
type AdminConfig struct {
	Token string `toml:"token"` // Пустой токен отключает эндпоинт
}

// Default возвращает конфигурацию по умолчанию
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Enabled:     true,
			Path:        "/metrics",
			ServiceName: "table-reservation",
		},
		Storage: StorageConfig{
			Driver: DriverMemory,
		},
		Redis: RedisConfig{
			Addr: "localhost:6379",
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			User:            "postgres",
			DBName:          "reservations",
			SSLMode:         "disable",
			MaxOpenConns:    10,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Booking: BookingConfig{
			StartHour:   domain.DefaultSlotStartHour,
			EndHour:     domain.DefaultSlotEndHour,
			StepMinutes: domain.DefaultSlotStepMinutes,
			MaxPerSlot:  domain.DefaultMaxPerSlot,
			WindowDays:  domain.DefaultBookingWindow,
		},
		Sessions: SessionsConfig{
			TTLMinutes:  30,
			MaxSessions: 10000,
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{"*"},
		},
		RateLimit: RateLimitConfig{
			Enabled:           true,
			RequestsPerSecond: 1,
			Burst:             5,
		},
	}
}

// Load читает TOML-файл поверх значений по умолчанию и применяет переменные окружения
func Load(path string) (*Config, error) {
	cfg := Default()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config file %s: %w", path, err)
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv переопределяет секреты из окружения
func (c *Config) applyEnv() {
	if v := os.Getenv("DATABASE_PASSWORD"); v != "" {
		c.Database.Password = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		c.Redis.Password = v
	}
	if v := os.Getenv("ADMIN_TOKEN"); v != "" {
		c.Admin.Token = v
	}
}

// Validate проверяет значения конфигурации
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port=%d", ErrInvalidConfig, c.Server.HTTPPort)
	}

	switch c.Storage.Driver {
	case DriverMemory, DriverRedis, DriverPostgres:
	default:
		return fmt.Errorf("%w: storage.driver=%q, expected memory, redis or postgres", ErrInvalidConfig, c.Storage.Driver)
	}

	b := c.Booking
	if b.StartHour < 0 || b.EndHour > 23 || b.StartHour > b.EndHour {
		return fmt.Errorf("%w: booking hours %d..%d", ErrInvalidConfig, b.StartHour, b.EndHour)
	}
	if b.StepMinutes <= 0 {
		return fmt.Errorf("%w: booking.step_minutes must be positive", ErrInvalidConfig)
	}
	if b.MaxPerSlot <= 0 {
		return fmt.Errorf("%w: booking.max_per_slot must be positive", ErrInvalidConfig)
	}
	if b.WindowDays <= 0 {
		return fmt.Errorf("%w: booking.window_days must be positive", ErrInvalidConfig)
	}
	if _, err := b.Location(); err != nil {
		return fmt.Errorf("%w: booking.timezone: %v", ErrInvalidConfig, err)
	}

	if c.Sessions.TTLMinutes < 0 || c.Sessions.MaxSessions < 0 {
		return fmt.Errorf("%w: sessions limits must not be negative", ErrInvalidConfig)
	}

	if c.RateLimit.Enabled && (c.RateLimit.RequestsPerSecond <= 0 || c.RateLimit.Burst <= 0) {
		return fmt.Errorf("%w: rate_limit requires positive requests_per_second and burst", ErrInvalidConfig)
	}

	if c.Metrics.Enabled && c.Metrics.Path == "" {
		return fmt.Errorf("%w: metrics.path is required when metrics are enabled", ErrInvalidConfig)
	}

	return nil
}
