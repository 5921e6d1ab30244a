package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Config holds all application configuration
type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Log      LogConfig
	HTTP     HTTPConfig
	Queue    QueueConfig
	PickHero PickHeroConfig
}

// AppConfig holds application-specific settings
type AppConfig struct {
	Name string
	Env  string
	Port string
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime int // in minutes
	ConnMaxIdleTime int // in minutes
}

// DSN returns the PostgreSQL connection string
func (c *DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.User, c.Password),
		Host:   fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:   c.DBName,
	}
	q := u.Query()
	q.Set("sslmode", c.SSLMode)
	u.RawQuery = q.Encode()
	return u.String()
}

// RedisConfig holds Redis connection settings. Redis backs the
// distributed per-order sync lock; when disabled an in-process lock is
// used instead.
type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Password string
	DB       int
}

// Addr returns the host:port address
func (c *RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr, or file path
}

// HTTPConfig holds HTTP server configuration
type HTTPConfig struct {
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// QueueConfig holds sync queue configuration
type QueueConfig struct {
	Workers    int
	BufferSize int
}

// StatusMappingEntry maps one warehouse order status to a local status
// handle. Entries are evaluated in order; the first match wins.
type StatusMappingEntry struct {
	PickHero string
	ChangeTo string
}

// FieldMappingEntry maps one local variant or product field to a
// warehouse product field.
type FieldMappingEntry struct {
	PickHeroField string
	LocalField    string
}

// PickHeroConfig holds warehouse integration settings
type PickHeroConfig struct {
	APIBaseURL string
	APIToken   string
	Debug      bool

	// WebhookBaseURL is the public base URL the warehouse calls back on.
	WebhookBaseURL string

	PushOrders            bool
	OrderStatusToPush     []string
	OrderStatusToProcess  []string
	PushPrices            bool
	CreateMissingProducts bool
	SyncOrderStatus       bool

	StatusMappings []StatusMappingEntry
	FieldMappings  []FieldMappingEntry
}

// validate checks the configuration for inconsistencies
func (c *Config) validate() error {
	if c.PickHero.PushOrders || c.PickHero.SyncOrderStatus {
		if c.PickHero.APIBaseURL == "" {
			return fmt.Errorf("pickhero.api_base_url is required when order sync is enabled")
		}
		if c.PickHero.APIToken == "" {
			return fmt.Errorf("pickhero.api_token is required when order sync is enabled")
		}
	}
	if c.PickHero.APIBaseURL != "" {
		u, err := url.Parse(c.PickHero.APIBaseURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("pickhero.api_base_url is not a valid URL: %q", c.PickHero.APIBaseURL)
		}
	}
	if c.PickHero.SyncOrderStatus && c.PickHero.WebhookBaseURL == "" {
		return fmt.Errorf("pickhero.webhook_base_url is required when status sync is enabled")
	}
	if c.App.Env == "production" && strings.HasPrefix(c.PickHero.APIBaseURL, "http://") {
		return fmt.Errorf("pickhero.api_base_url must use https in production")
	}
	return nil
}
