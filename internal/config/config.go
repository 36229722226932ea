package config

import (
	"fmt"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// Config конфигурация сервиса, загружается из config.toml
type Config struct {
	Server         ServerConfig         `toml:"server"`
	Database       DatabaseConfig       `toml:"database"`
	Logs           LogsConfig           `toml:"logs"`
	Metrics        MetricsConfig        `toml:"metrics"`
	CatalogService CatalogServiceConfig `toml:"catalog_service"`
	Calendar       CalendarConfig       `toml:"calendar"`
}

// ServerConfig настройки HTTP сервера
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// DSN собирает строку подключения
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки Prometheus метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// CatalogServiceConfig настройки клиента каталога услуг
type CatalogServiceConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"`
}

// CalendarConfig недельное расписание салона и шаг сетки слотов
type CalendarConfig struct {
	OpenTime               string `toml:"open_time"`
	CloseTime              string `toml:"close_time"`
	WeeklyClosedDay        string `toml:"weekly_closed_day"`
	SlotGranularityMinutes int    `toml:"slot_granularity_minutes"`
}

// Weekday парсит день недели из конфигурации ("Monday", "Tuesday", ...)
func (c CalendarConfig) Weekday() (time.Weekday, error) {
	for d := time.Sunday; d <= time.Saturday; d++ {
		if d.String() == c.WeeklyClosedDay {
			return d, nil
		}
	}
	return 0, fmt.Errorf("invalid weekly_closed_day: %q", c.WeeklyClosedDay)
}

// BusinessCalendar собирает доменный календарь из конфигурации
func (c CalendarConfig) BusinessCalendar() (domain.BusinessCalendar, error) {
	closedDay, err := c.Weekday()
	if err != nil {
		return domain.BusinessCalendar{}, err
	}

	openTime, err := types.NewTimeStringFromString(c.OpenTime)
	if err != nil {
		return domain.BusinessCalendar{}, fmt.Errorf("invalid calendar.open_time: %w", err)
	}
	closeTime, err := types.NewTimeStringFromString(c.CloseTime)
	if err != nil {
		return domain.BusinessCalendar{}, fmt.Errorf("invalid calendar.close_time: %w", err)
	}

	return domain.BusinessCalendar{
		WeeklyClosedDay:        closedDay,
		OpenTime:               openTime,
		CloseTime:              closeTime,
		SlotGranularityMinutes: c.SlotGranularityMinutes,
	}, nil
}

// Load читает и валидирует конфигурацию из TOML файла
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config file %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Server.HTTPPort <= 0 {
		return fmt.Errorf("server.http_port must be positive")
	}

	if c.Database.Host == "" || c.Database.DBName == "" {
		return fmt.Errorf("database.host and database.dbname are required")
	}

	if c.CatalogService.URL == "" {
		return fmt.Errorf("catalog_service.url is required")
	}

	if c.Calendar.SlotGranularityMinutes <= 0 {
		return fmt.Errorf("calendar.slot_granularity_minutes must be positive")
	}

	if _, err := c.Calendar.Weekday(); err != nil {
		return err
	}

	openTime, err := types.NewTimeStringFromString(c.Calendar.OpenTime)
	if err != nil {
		return fmt.Errorf("invalid calendar.open_time: %w", err)
	}
	closeTime, err := types.NewTimeStringFromString(c.Calendar.CloseTime)
	if err != nil {
		return fmt.Errorf("invalid calendar.close_time: %w", err)
	}
	if !openTime.IsBefore(closeTime) {
		return fmt.Errorf("calendar.open_time must be before calendar.close_time")
	}

	return nil
}
