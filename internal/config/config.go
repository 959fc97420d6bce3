package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/m04kA/SMC-ChairReservation/internal/domain"
	"github.com/m04kA/SMC-ChairReservation/pkg/ptr"
)

// Config конфигурация сервиса
type Config struct {
	Server        ServerConfig        `toml:"server"`
	Database      DatabaseConfig      `toml:"database"`
	Logs          LogsConfig          `toml:"logs"`
	Metrics       MetricsConfig       `toml:"metrics"`
	Redis         RedisConfig         `toml:"redis"`
	BookingWindow BookingWindowConfig `toml:"booking_window"`
	SlotRules     SlotRulesConfig     `toml:"slot_rules"`
	Eligibility   EligibilityConfig   `toml:"eligibility"`
	Cancellation  CancellationConfig  `toml:"cancellation"`
	RateLimit     RateLimitConfig     `toml:"rate_limit"`
	Fanout        FanoutConfig        `toml:"fanout"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`  // секунды
	WriteTimeout    int `toml:"write_timeout"` // секунды, 0 = без ограничения (нужно для SSE)
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
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
	ApplyMigrations bool   `toml:"apply_migrations"`
}

// DSN возвращает строку подключения к PostgreSQL
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
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

// RedisConfig настройки моста pub/sub между инстансами
// Если Enabled = false, события доставляются только подписчикам текущего инстанса
type RedisConfig struct {
	Enabled  bool   `toml:"enabled"`
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// BookingWindowConfig параметры недельного окна бронирования
type BookingWindowConfig struct {
	Timezone       string `toml:"timezone"`
	OpeningWeekday string `toml:"opening_weekday"`  // "friday"
	EarlyOpen      string `toml:"early_open"`       // "08:00", только для привилегированных
	GeneralOpen    string `toml:"general_open"`     // "08:30"
	CloseDayOffset *int   `toml:"close_day_offset"` // дней от понедельника активной недели, 0 допустим
	CloseTime      string `toml:"close_time"`       // "17:00"
}

// SlotRulesConfig сетка слотов на день
type SlotRulesConfig struct {
	StepMinutes int         `toml:"step_minutes"`
	Ranges      []TimeRange `toml:"ranges"`
}

type TimeRange struct {
	Start string `toml:"start"`
	End   string `toml:"end"`
}

type EligibilityConfig struct {
	MinGapDays int `toml:"min_gap_days"`
}

type CancellationConfig struct {
	LeadTimeMinutes int `toml:"lead_time_minutes"`
}

type RateLimitConfig struct {
	Enabled       bool `toml:"enabled"`
	Limit         int  `toml:"limit"`
	WindowSeconds int  `toml:"window_seconds"`
}

type FanoutConfig struct {
	SubscriberBuffer int `toml:"subscriber_buffer"`
	HeartbeatSeconds int `toml:"heartbeat_seconds"`
}

// Load загружает конфигурацию из TOML файла и подставляет значения по умолчанию
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}

	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Location возвращает таймзону оператора
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.BookingWindow.Timezone)
	if err != nil {
		return nil, fmt.Errorf("config: load timezone %q: %w", c.BookingWindow.Timezone, err)
	}
	return loc, nil
}

func (c *Config) applyDefaults() {
	if c.Server.HTTPPort == 0 {
		c.Server.HTTPPort = 8080
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 10
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 60
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 10
	}

	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 25
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = 5
	}
	if c.Database.ConnMaxLifetime == 0 {
		c.Database.ConnMaxLifetime = 300
	}

	if c.Logs.Level == "" {
		c.Logs.Level = "info"
	}

	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = "chair_reservation"
	}

	bw := &c.BookingWindow
	if bw.Timezone == "" {
		bw.Timezone = "Europe/Istanbul"
	}
	if bw.OpeningWeekday == "" {
		bw.OpeningWeekday = "friday"
	}
	if bw.EarlyOpen == "" {
		bw.EarlyOpen = "08:00"
	}
	if bw.GeneralOpen == "" {
		bw.GeneralOpen = "08:30"
	}
	if bw.CloseDayOffset == nil {
		bw.CloseDayOffset = ptr.Ptr(3)
	}
	if bw.CloseTime == "" {
		bw.CloseTime = "17:00"
	}

	if c.SlotRules.StepMinutes == 0 {
		c.SlotRules.StepMinutes = domain.DefaultSlotMinutes
	}
	if len(c.SlotRules.Ranges) == 0 {
		c.SlotRules.Ranges = []TimeRange{
			{Start: "08:30", End: "12:00"},
			{Start: "13:30", End: "17:00"},
		}
	}

	if c.Eligibility.MinGapDays == 0 {
		c.Eligibility.MinGapDays = domain.DefaultMinGapDays
	}
	if c.Cancellation.LeadTimeMinutes == 0 {
		c.Cancellation.LeadTimeMinutes = domain.DefaultCancelLeadTime
	}

	if c.RateLimit.Limit == 0 {
		c.RateLimit.Limit = 10
	}
	if c.RateLimit.WindowSeconds == 0 {
		c.RateLimit.WindowSeconds = 60
	}

	if c.Fanout.SubscriberBuffer == 0 {
		c.Fanout.SubscriberBuffer = 16
	}
	if c.Fanout.HeartbeatSeconds == 0 {
		c.Fanout.HeartbeatSeconds = 25
	}
}

func (c *Config) validate() error {
	if _, err := c.Location(); err != nil {
		return err
	}
	if _, err := ParseWeekday(c.BookingWindow.OpeningWeekday); err != nil {
		return err
	}
	if offset := *c.BookingWindow.CloseDayOffset; offset < 0 || offset > 6 {
		return fmt.Errorf("config: booking_window.close_day_offset must be in [0, 6], got %d", offset)
	}
	if c.SlotRules.StepMinutes < 5 {
		return fmt.Errorf("config: slot_rules.step_minutes must be >= 5, got %d", c.SlotRules.StepMinutes)
	}
	return nil
}

var isoWeekdayNames = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

// ParseWeekday парсит название дня недели на английском
// Возвращает номер по ISO: 1 (понедельник) .. 7 (воскресенье)
func ParseWeekday(name string) (int, error) {
	for i, day := range isoWeekdayNames {
		if strings.EqualFold(day, name) {
			return i + 1, nil
		}
	}
	return 0, fmt.Errorf("config: unknown weekday %q", name)
}
