package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/JakobMartens/inselbahn/internal/domain"
)

var (
	// ErrInvalidConfig возвращается при некорректной конфигурации
	ErrInvalidConfig = errors.New("config: invalid configuration")
)

// Config конфигурация сервиса
type Config struct {
	Server   ServerConfig              `toml:"server"`
	Database DatabaseConfig            `toml:"database"`
	Logs     LogsConfig                `toml:"logs"`
	Metrics  MetricsConfig             `toml:"metrics"`
	Tours    ToursConfig               `toml:"tours"`
	Capacity map[string]CapacityConfig `toml:"capacity"`
	Locking  LockingConfig             `toml:"locking"`
	Redis    RedisConfig               `toml:"redis"`
	RabbitMQ RabbitMQConfig            `toml:"rabbitmq"`
	Mongo    MongoConfig               `toml:"mongo"`
	Tracing  TracingConfig             `toml:"tracing"`
}

// ServerConfig настройки HTTP сервера (таймауты в секундах)
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host                  string `toml:"host"`
	Port                  int    `toml:"port"`
	User                  string `toml:"user"`
	Password              string `toml:"password"`
	DBName                string `toml:"dbname"`
	SSLMode               string `toml:"sslmode"`
	MaxOpenConns          int    `toml:"max_open_conns"`
	MaxIdleConns          int    `toml:"max_idle_conns"`
	ConnMaxLifetime       int    `toml:"conn_max_lifetime"`
	StatementTimeoutMs    int    `toml:"statement_timeout_ms"`
	ApplyMigrationsOnBoot bool   `toml:"apply_migrations"`
}

// DSN возвращает строку подключения для lib/pq
// statement_timeout передается в PostgreSQL как runtime-параметр сессии
func (c DatabaseConfig) DSN() string {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
	if c.StatementTimeoutMs > 0 {
		dsn += fmt.Sprintf(" statement_timeout=%d", c.StatementTimeoutMs)
	}
	return dsn
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки Prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// ToursConfig параметры движка бронирований
type ToursConfig struct {
	Timezone            string `toml:"timezone"`
	HoldTTLMinutes      int    `toml:"hold_ttl_minutes"`
	ReapIntervalSeconds int    `toml:"reap_interval_seconds"`
	MinNoticeMinutes    int    `toml:"min_notice_minutes"`
	MaxAdvanceDays      int    `toml:"max_advance_days"`
	BookingCodePrefix   string `toml:"booking_code_prefix"`
	CodeRetryAttempts   int    `toml:"code_retry_attempts"`
	WalkInEmail         string `toml:"walk_in_email"`
	WalkInName          string `toml:"walk_in_name"`
}

// HoldTTL время жизни резерва мест
func (c ToursConfig) HoldTTL() time.Duration {
	return time.Duration(c.HoldTTLMinutes) * time.Minute
}

// ReapInterval период фоновой очистки просроченных резервов
func (c ToursConfig) ReapInterval() time.Duration {
	return time.Duration(c.ReapIntervalSeconds) * time.Second
}

// BookingWindow окно бронирования относительно отправления
func (c ToursConfig) BookingWindow() domain.BookingWindow {
	return domain.BookingWindow{
		MinNotice:  time.Duration(c.MinNoticeMinutes) * time.Minute,
		MaxAdvance: time.Duration(c.MaxAdvanceDays) * 24 * time.Hour,
	}
}

// Location часовой пояс, в котором заданы дата и время отправления
func (c ToursConfig) Location() (*time.Location, error) {
	return time.LoadLocation(c.Timezone)
}

// CapacityConfig потолки мест для одного типа тура
type CapacityConfig struct {
	Online  int `toml:"online"`
	Staffed int `toml:"staffed"`
}

// CapacityPolicy строит политику мест из таблицы [capacity.<TOUR>]
func (c *Config) CapacityPolicy() (*domain.CapacityPolicy, error) {
	ceilings := make(map[domain.TourType]domain.Ceiling, len(c.Capacity))
	for raw, capacity := range c.Capacity {
		tourType, err := domain.ParseTourType(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: capacity.%s: %v", ErrInvalidConfig, raw, err)
		}
		ceilings[tourType] = domain.Ceiling{Online: capacity.Online, Staffed: capacity.Staffed}
	}
	return domain.NewCapacityPolicy(ceilings), nil
}

// LockingConfig выбор механизма блокировки слота
type LockingConfig struct {
	Backend       string `toml:"backend"` // postgres | redis
	LockTTLMs     int    `toml:"lock_ttl_ms"`
	WaitTimeoutMs int    `toml:"wait_timeout_ms"`
	RetryDelayMs  int    `toml:"retry_delay_ms"`
}

// RedisConfig настройки Redis
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// RabbitMQConfig настройки очереди исходящих писем
type RabbitMQConfig struct {
	Enabled bool   `toml:"enabled"`
	URL     string `toml:"url"`
	Queue   string `toml:"queue"`
	Sender  string `toml:"sender"`
}

// MongoConfig настройки журнала аудита
type MongoConfig struct {
	Enabled    bool   `toml:"enabled"`
	URI        string `toml:"uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

// TracingConfig настройки OpenTelemetry
type TracingConfig struct {
	Enabled     bool   `toml:"enabled"`
	Endpoint    string `toml:"endpoint"`
	ServiceName string `toml:"service_name"`
}

// Load читает конфигурацию из TOML файла.
// Секреты можно переопределить переменными окружения (в том числе из .env)
func Load(path string) (*Config, error) {
	// .env необязателен
	_ = godotenv.Load()

	cfg := defaults()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate проверяет обязательные параметры
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 {
		return fmt.Errorf("%w: server.http_port must be positive", ErrInvalidConfig)
	}
	if c.Tours.HoldTTLMinutes <= 0 {
		return fmt.Errorf("%w: tours.hold_ttl_minutes must be positive", ErrInvalidConfig)
	}
	if c.Tours.ReapIntervalSeconds <= 0 {
		return fmt.Errorf("%w: tours.reap_interval_seconds must be positive", ErrInvalidConfig)
	}
	if c.Tours.MinNoticeMinutes < 0 || c.Tours.MaxAdvanceDays <= 0 {
		return fmt.Errorf("%w: tours booking window is invalid", ErrInvalidConfig)
	}
	if len(c.Tours.BookingCodePrefix) != 2 {
		return fmt.Errorf("%w: tours.booking_code_prefix must have 2 letters", ErrInvalidConfig)
	}
	if _, err := c.Tours.Location(); err != nil {
		return fmt.Errorf("%w: tours.timezone: %v", ErrInvalidConfig, err)
	}
	for _, tourType := range domain.TourTypes {
		if _, ok := c.Capacity[string(tourType)]; !ok {
			return fmt.Errorf("%w: capacity.%s is missing", ErrInvalidConfig, tourType)
		}
	}
	for tourType, capacity := range c.Capacity {
		if capacity.Online <= 0 || capacity.Staffed < capacity.Online {
			return fmt.Errorf("%w: capacity.%s needs 0 < online <= staffed", ErrInvalidConfig, tourType)
		}
	}
	switch c.Locking.Backend {
	case "postgres":
	case "redis":
		// ключ должен пережить хотя бы один оператор транзакции
		if c.Locking.LockTTLMs <= c.Database.StatementTimeoutMs {
			return fmt.Errorf("%w: locking.lock_ttl_ms must exceed database.statement_timeout_ms", ErrInvalidConfig)
		}
		if c.Locking.WaitTimeoutMs <= 0 {
			return fmt.Errorf("%w: locking.wait_timeout_ms must be positive", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: locking.backend must be postgres or redis", ErrInvalidConfig)
	}
	return nil
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     10,
			WriteTimeout:    10,
			IdleTimeout:     60,
			ShutdownTimeout: 15,
		},
		Database: DatabaseConfig{
			Port:               5432,
			SSLMode:            "disable",
			MaxOpenConns:       20,
			MaxIdleConns:       5,
			ConnMaxLifetime:    300,
			StatementTimeoutMs: 5000,
		},
		Logs: LogsConfig{Level: "info"},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "inselbahn",
		},
		Tours: ToursConfig{
			Timezone:            "Europe/Berlin",
			HoldTTLMinutes:      10,
			ReapIntervalSeconds: 60,
			MinNoticeMinutes:    60,
			MaxAdvanceDays:      7,
			BookingCodePrefix:   "IB",
			CodeRetryAttempts:   3,
			WalkInEmail:         "walkin@inselbahn.local",
			WalkInName:          "Laufkundschaft",
		},
		Locking: LockingConfig{
			Backend:       "postgres",
			LockTTLMs:     8000,
			WaitTimeoutMs: 3000,
			RetryDelayMs:  25,
		},
		RabbitMQ: RabbitMQConfig{Queue: "mail.outbound"},
		Mongo:    MongoConfig{Database: "inselbahn", Collection: "audit_logs"},
		Tracing:  TracingConfig{ServiceName: "inselbahn"},
	}
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("DB_HOST"); v != "" {
		cfg.Database.Host = v
	}
	if v := os.Getenv("DB_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Database.Port = port
		}
	}
	if v := os.Getenv("DB_USER"); v != "" {
		cfg.Database.User = v
	}
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		cfg.Database.Password = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		cfg.Redis.Password = v
	}
	if v := os.Getenv("RABBITMQ_URL"); v != "" {
		cfg.RabbitMQ.URL = v
	}
	if v := os.Getenv("MONGO_URI"); v != "" {
		cfg.Mongo.URI = v
	}
}
