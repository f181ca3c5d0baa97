package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// DefaultPath путь к конфигу, если не задан CONFIG_PATH
const DefaultPath = "config.toml"

// Переменные окружения, которые перекрывают значения из файла
const (
	EnvConfigPath   = "CONFIG_PATH"
	EnvDBPassword   = "DB_PASSWORD"
	EnvKafkaBrokers = "KAFKA_BROKERS"
)

var (
	// ErrReadConfig возвращается, если файл конфигурации не удалось прочитать
	ErrReadConfig = errors.New("config: failed to read config")

	// ErrInvalidConfig возвращается, если значения конфигурации некорректны
	ErrInvalidConfig = errors.New("config: invalid config")
)

// Config конфигурация сервиса
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Logs     LogsConfig     `toml:"logs"`
	Metrics  MetricsConfig  `toml:"metrics"`
	Redis    RedisConfig    `toml:"redis"`
	Kafka    KafkaConfig    `toml:"kafka"`
	Notifier NotifierConfig `toml:"notifier"`
	Booking  BookingConfig  `toml:"booking"`
}

// ServerConfig настройки HTTP сервера, таймауты в секундах
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig настройки PostgreSQL
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

// RedisConfig настройки кеша глобальных настроек
type RedisConfig struct {
	Enabled     bool   `toml:"enabled"`
	Addr        string `toml:"addr"`
	Password    string `toml:"password"`
	DB          int    `toml:"db"`
	SettingsTTL int    `toml:"settings_ttl"` // секунды
}

// KafkaConfig настройки публикации уведомлений
type KafkaConfig struct {
	Enabled            bool     `toml:"enabled"`
	Brokers            []string `toml:"brokers"`
	NotificationsTopic string   `toml:"notifications_topic"`
}

// NotifierConfig HTTP webhook внешнего сервиса доставки уведомлений
type NotifierConfig struct {
	WebhookURL     string `toml:"webhook_url"`
	WebhookTimeout int    `toml:"webhook_timeout"` // секунды
}

// WebhookTimeoutDuration таймаут HTTP клиента webhook
func (n NotifierConfig) WebhookTimeoutDuration() time.Duration {
	return time.Duration(n.WebhookTimeout) * time.Second
}

// BookingConfig параметры движка бронирований
type BookingConfig struct {
	Timezone             string `toml:"timezone"`
	RecurringWeeks       int    `toml:"recurring_weeks"`
	SerializationRetries int    `toml:"serialization_retries"`
	NotifyTimeout        int    `toml:"notify_timeout"` // секунды
	MaxSlotsPerRequest   int    `toml:"max_slots_per_request"`

	location *time.Location
}

// Location часовой пояс площадок, в котором клиенты передают дату и время
func (b BookingConfig) Location() *time.Location {
	if b.location == nil {
		return time.UTC
	}
	return b.location
}

// NotifyTimeoutDuration таймаут одной отправки уведомления
func (b BookingConfig) NotifyTimeoutDuration() time.Duration {
	return time.Duration(b.NotifyTimeout) * time.Second
}

// SettingsTTLDuration время жизни настроек в кеше
func (r RedisConfig) SettingsTTLDuration() time.Duration {
	return time.Duration(r.SettingsTTL) * time.Second
}

// Load читает конфигурацию из TOML файла, применяет значения по умолчанию,
// переменные окружения и валидирует результат
func Load(path string) (*Config, error) {
	cfg := Default()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrReadConfig, path, err)
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// PathFromEnv путь к конфигу из CONFIG_PATH или DefaultPath
func PathFromEnv() string {
	if path := os.Getenv(EnvConfigPath); path != "" {
		return path
	}
	return DefaultPath
}

// Default конфигурация со значениями по умолчанию
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 30,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "field_booking_service",
		},
		Redis: RedisConfig{
			Addr:        "localhost:6379",
			SettingsTTL: 60,
		},
		Kafka: KafkaConfig{
			NotificationsTopic: "booking-notifications",
		},
		Notifier: NotifierConfig{
			WebhookTimeout: 5,
		},
		Booking: BookingConfig{
			Timezone:             "UTC",
			RecurringWeeks:       12,
			SerializationRetries: 3,
			NotifyTimeout:        5,
			MaxSlotsPerRequest:   24,
		},
	}
}

func (c *Config) applyEnv() {
	if password := os.Getenv(EnvDBPassword); password != "" {
		c.Database.Password = password
	}
	if brokers := os.Getenv(EnvKafkaBrokers); brokers != "" {
		c.Kafka.Brokers = strings.Split(brokers, ",")
	}
}

// Validate проверяет значения конфигурации и резолвит часовой пояс
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port must be in 1..65535", ErrInvalidConfig)
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("%w: server.shutdown_timeout must be positive", ErrInvalidConfig)
	}
	if c.Database.Host == "" || c.Database.DBName == "" {
		return fmt.Errorf("%w: database.host and database.dbname are required", ErrInvalidConfig)
	}
	if c.Database.Port <= 0 || c.Database.Port > 65535 {
		return fmt.Errorf("%w: database.port must be in 1..65535", ErrInvalidConfig)
	}
	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		return fmt.Errorf("%w: metrics.path must start with /", ErrInvalidConfig)
	}
	if c.Redis.Enabled && c.Redis.SettingsTTL <= 0 {
		return fmt.Errorf("%w: redis.settings_ttl must be positive", ErrInvalidConfig)
	}
	if c.Kafka.Enabled && (len(c.Kafka.Brokers) == 0 || c.Kafka.NotificationsTopic == "") {
		return fmt.Errorf("%w: kafka.brokers and kafka.notifications_topic are required", ErrInvalidConfig)
	}
	if c.Notifier.WebhookURL != "" && c.Notifier.WebhookTimeout <= 0 {
		return fmt.Errorf("%w: notifier.webhook_timeout must be positive", ErrInvalidConfig)
	}
	if c.Booking.RecurringWeeks <= 0 {
		return fmt.Errorf("%w: booking.recurring_weeks must be positive", ErrInvalidConfig)
	}
	if c.Booking.SerializationRetries <= 0 {
		return fmt.Errorf("%w: booking.serialization_retries must be positive", ErrInvalidConfig)
	}
	if c.Booking.NotifyTimeout <= 0 {
		return fmt.Errorf("%w: booking.notify_timeout must be positive", ErrInvalidConfig)
	}
	if c.Booking.MaxSlotsPerRequest <= 0 {
		return fmt.Errorf("%w: booking.max_slots_per_request must be positive", ErrInvalidConfig)
	}

	loc, err := time.LoadLocation(c.Booking.Timezone)
	if err != nil {
		return fmt.Errorf("%w: booking.timezone %q: %v", ErrInvalidConfig, c.Booking.Timezone, err)
	}
	c.Booking.location = loc

	return nil
}
