package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/FarhanAlam-Official/SewaBazaar-sub002/internal/domain"
	"github.com/FarhanAlam-Official/SewaBazaar-sub002/pkg/types"
)

// Config is the full service configuration loaded from a TOML file. Database
// credentials may additionally be overridden through environment variables
// (see Load), so the file can stay secret-free.
type Config struct {
	Server         ServerConfig         `toml:"server"`
	Database       DatabaseConfig       `toml:"database"`
	Logs           LogsConfig           `toml:"logs"`
	Metrics        MetricsConfig        `toml:"metrics"`
	CatalogService CatalogServiceConfig `toml:"catalog_service"`
	Scheduler      SchedulerConfig      `toml:"scheduler"`
	Slots          SlotsConfig          `toml:"slots"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig configures the Postgres connection pool.
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

// DSN builds the lib/pq connection string.
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// LogsConfig configures the file logger.
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig configures the Prometheus endpoint.
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// CatalogServiceConfig configures the CatalogService HTTP client.
type CatalogServiceConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"`
}

// SchedulerConfig configures the periodic job runner. Cron specs use the
// standard five-field format.
type SchedulerConfig struct {
	Enabled            bool   `toml:"enabled"`
	MaintenanceSpec    string `toml:"maintenance_spec"`
	AutoCancelSpec     string `toml:"auto_cancel_spec"`
	TimeBudgetSeconds  int    `toml:"time_budget_seconds"`
	GracePeriodDays    int    `toml:"grace_period_days"`
	MaintenanceEnabled bool   `toml:"maintenance_enabled"`
	AutoCancelEnabled  bool   `toml:"auto_cancel_enabled"`
}

// TimeBudget returns the soft per-run time budget for maintenance. Zero
// means unlimited.
func (s *SchedulerConfig) TimeBudget() time.Duration {
	return time.Duration(s.TimeBudgetSeconds) * time.Second
}

// SlotsConfig configures slot generation and the category band table.
type SlotsConfig struct {
	DaysAhead          int `toml:"days_ahead"`
	RetentionDays      int `toml:"retention_days"`
	MaxSlotsPerService int `toml:"max_slots_per_service"`
	BatchSize          int `toml:"batch_size"`

	CategoryRules []CategoryRuleConfig `toml:"category_rules"`
	CategoryFees  map[string]int       `toml:"category_fees"`
	CategoryNotes map[string]string    `toml:"category_notes"`
}

// CategoryRuleConfig is the TOML shape of one category band rule.
type CategoryRuleConfig struct {
	Name     string   `toml:"name"`
	Days     []string `toml:"days"`
	From     string   `toml:"from"`
	To       string   `toml:"to"`
	Category string   `toml:"category"`
}

// Load reads the TOML config at path, applies defaults and environment
// overrides (DB_HOST, DB_USER, DB_PASSWORD, DB_NAME), and validates the
// result.
func Load(path string) (*Config, error) {
	cfg := defaults()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
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
			ServiceName: "sewabazaar-slots",
		},
		CatalogService: CatalogServiceConfig{
			Timeout: 5,
		},
		Scheduler: SchedulerConfig{
			MaintenanceSpec:    "0 2 * * *",
			AutoCancelSpec:     "30 2 * * *",
			GracePeriodDays:    domain.DefaultGracePeriodDays,
			MaintenanceEnabled: true,
			AutoCancelEnabled:  true,
		},
		Slots: SlotsConfig{
			DaysAhead:          domain.DefaultDaysAhead,
			RetentionDays:      domain.DefaultRetentionDays,
			MaxSlotsPerService: domain.DefaultMaxSlotsPerService,
			BatchSize:          domain.DefaultBatchSize,
		},
	}
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("DB_HOST"); v != "" {
		cfg.Database.Host = v
	}
	if v := os.Getenv("DB_USER"); v != "" {
		cfg.Database.User = v
	}
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		cfg.Database.Password = v
	}
	if v := os.Getenv("DB_NAME"); v != "" {
		cfg.Database.DBName = v
	}
}

func (c *Config) validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("server.http_port %d out of range", c.Server.HTTPPort)
	}
	if c.Slots.DaysAhead <= 0 || c.Slots.DaysAhead > domain.MaxDaysAhead {
		return fmt.Errorf("slots.days_ahead %d out of range [1, %d]", c.Slots.DaysAhead, domain.MaxDaysAhead)
	}
	if c.Slots.RetentionDays < 0 {
		return fmt.Errorf("slots.retention_days must not be negative")
	}
	if c.Slots.MaxSlotsPerService <= 0 {
		return fmt.Errorf("slots.max_slots_per_service must be positive")
	}
	if c.Slots.BatchSize <= 0 {
		return fmt.Errorf("slots.batch_size must be positive")
	}
	if c.Scheduler.GracePeriodDays < 0 {
		return fmt.Errorf("scheduler.grace_period_days must not be negative")
	}
	if _, err := c.CategoryTable(); err != nil {
		return err
	}
	return nil
}

// CategoryTable builds the domain category table from config. When no rules
// are configured the built-in default table is used. Configured fee and note
// entries overlay the defaults so a partial table stays total.
func (c *Config) CategoryTable() (*domain.CategoryTable, error) {
	table := domain.DefaultCategoryTable()

	if len(c.Slots.CategoryRules) > 0 {
		rules := make([]domain.CategoryRule, 0, len(c.Slots.CategoryRules))
		for _, rc := range c.Slots.CategoryRules {
			rule, err := rc.toDomain()
			if err != nil {
				return nil, err
			}
			rules = append(rules, rule)
		}
		table.Rules = rules
	}

	for name, fee := range c.Slots.CategoryFees {
		table.FeePercentage[domain.SlotCategory(name)] = fee
	}
	for name, note := range c.Slots.CategoryNotes {
		table.NoteTemplates[domain.SlotCategory(name)] = note
	}

	if err := table.Validate(); err != nil {
		return nil, fmt.Errorf("slots.category_rules: %w", err)
	}
	return table, nil
}

func (rc *CategoryRuleConfig) toDomain() (domain.CategoryRule, error) {
	days := make([]time.Weekday, 0, len(rc.Days))
	for _, d := range rc.Days {
		day, err := parseWeekday(d)
		if err != nil {
			return domain.CategoryRule{}, fmt.Errorf("rule %q: %w", rc.Name, err)
		}
		days = append(days, day)
	}
	return domain.CategoryRule{
		Name:     rc.Name,
		Days:     days,
		From:     types.TimeString(rc.From),
		To:       types.TimeString(rc.To),
		Category: domain.SlotCategory(rc.Category),
	}, nil
}

func parseWeekday(s string) (time.Weekday, error) {
	switch strings.ToLower(s) {
	case "sun", "sunday":
		return time.Sunday, nil
	case "mon", "monday":
		return time.Monday, nil
	case "tue", "tuesday":
		return time.Tuesday, nil
	case "wed", "wednesday":
		return time.Wednesday, nil
	case "thu", "thursday":
		return time.Thursday, nil
	case "fri", "friday":
		return time.Friday, nil
	case "sat", "saturday":
		return time.Saturday, nil
	default:
		return 0, fmt.Errorf("unknown weekday %q", s)
	}
}
