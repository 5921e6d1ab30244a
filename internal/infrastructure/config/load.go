package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Load loads configuration from TOML file and environment variables
// Priority (highest to lowest):
// 1. Environment variables with PICKHERO_ prefix (e.g., PICKHERO_DATABASE_PASSWORD)
// 2. config.toml
// 3. Built-in defaults
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")
	v.AddConfigPath("/app")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, we'll use defaults and env vars
	}

	v.SetEnvPrefix("PICKHERO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		App: AppConfig{
			Name: v.GetString("app.name"),
			Env:  v.GetString("app.env"),
			Port: v.GetString("app.port"),
		},
		Database: DatabaseConfig{
			Host:            v.GetString("database.host"),
			Port:            v.GetInt("database.port"),
			User:            v.GetString("database.user"),
			Password:        v.GetString("database.password"),
			DBName:          v.GetString("database.dbname"),
			SSLMode:         v.GetString("database.sslmode"),
			MaxOpenConns:    v.GetInt("database.max_open_conns"),
			MaxIdleConns:    v.GetInt("database.max_idle_conns"),
			ConnMaxLifetime: v.GetInt("database.conn_max_lifetime"),
			ConnMaxIdleTime: v.GetInt("database.conn_max_idle_time"),
		},
		Redis: RedisConfig{
			Enabled:  v.GetBool("redis.enabled"),
			Host:     v.GetString("redis.host"),
			Port:     v.GetInt("redis.port"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		HTTP: HTTPConfig{
			ReadTimeout:  v.GetDuration("http.read_timeout"),
			WriteTimeout: v.GetDuration("http.write_timeout"),
			IdleTimeout:  v.GetDuration("http.idle_timeout"),
		},
		Queue: QueueConfig{
			Workers:    v.GetInt("queue.workers"),
			BufferSize: v.GetInt("queue.buffer_size"),
		},
		PickHero: PickHeroConfig{
			APIBaseURL:            v.GetString("pickhero.api_base_url"),
			APIToken:              v.GetString("pickhero.api_token"),
			Debug:                 v.GetBool("pickhero.debug"),
			WebhookBaseURL:        v.GetString("pickhero.webhook_base_url"),
			PushOrders:            v.GetBool("pickhero.push_orders"),
			OrderStatusToPush:     v.GetStringSlice("pickhero.order_status_to_push"),
			OrderStatusToProcess:  v.GetStringSlice("pickhero.order_status_to_process"),
			PushPrices:            v.GetBool("pickhero.push_prices"),
			CreateMissingProducts: v.GetBool("pickhero.create_missing_products"),
			SyncOrderStatus:       v.GetBool("pickhero.sync_order_status"),
			StatusMappings:        loadStatusMappings(v),
			FieldMappings:         loadFieldMappings(v),
		},
	}

	applyDefaults(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadStatusMappings reads the ordered [[pickhero.status_mappings]] table
func loadStatusMappings(v *viper.Viper) []StatusMappingEntry {
	var raw []map[string]any
	if err := v.UnmarshalKey("pickhero.status_mappings", &raw); err != nil {
		return nil
	}
	entries := make([]StatusMappingEntry, 0, len(raw))
	for _, m := range raw {
		entry := StatusMappingEntry{}
		if s, ok := m["pickhero"].(string); ok {
			entry.PickHero = s
		}
		if s, ok := m["change_to"].(string); ok {
			entry.ChangeTo = s
		}
		if entry.PickHero != "" {
			entries = append(entries, entry)
		}
	}
	return entries
}

// loadFieldMappings reads the [[pickhero.field_mappings]] table
func loadFieldMappings(v *viper.Viper) []FieldMappingEntry {
	var raw []map[string]any
	if err := v.UnmarshalKey("pickhero.field_mappings", &raw); err != nil {
		return nil
	}
	entries := make([]FieldMappingEntry, 0, len(raw))
	for _, m := range raw {
		entry := FieldMappingEntry{}
		if s, ok := m["pickhero_field"].(string); ok {
			entry.PickHeroField = s
		}
		if s, ok := m["local_field"].(string); ok {
			entry.LocalField = s
		}
		if entry.PickHeroField != "" && entry.LocalField != "" {
			entries = append(entries, entry)
		}
	}
	return entries
}

// applyDefaults sets default values for any empty config fields
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "commerce-sync"
	}
	if cfg.App.Env == "" {
		cfg.App.Env = "development"
	}
	if cfg.App.Port == "" {
		cfg.App.Port = "8080"
	}
	if cfg.Database.Host == "" {
		cfg.Database.Host = "localhost"
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = 5432
	}
	if cfg.Database.User == "" {
		cfg.Database.User = "postgres"
	}
	if cfg.Database.DBName == "" {
		cfg.Database.DBName = "commerce_sync"
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = 25
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = 5
	}
	if cfg.Database.ConnMaxLifetime == 0 {
		cfg.Database.ConnMaxLifetime = 60
	}
	if cfg.Database.ConnMaxIdleTime == 0 {
		cfg.Database.ConnMaxIdleTime = 30
	}
	if cfg.Redis.Host == "" {
		cfg.Redis.Host = "localhost"
	}
	if cfg.Redis.Port == 0 {
		cfg.Redis.Port = 6379
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}
	if cfg.Log.Output == "" {
		cfg.Log.Output = "stdout"
	}
	if cfg.HTTP.ReadTimeout == 0 {
		cfg.HTTP.ReadTimeout = 15 * time.Second
	}
	if cfg.HTTP.WriteTimeout == 0 {
		cfg.HTTP.WriteTimeout = 45 * time.Second
	}
	if cfg.HTTP.IdleTimeout == 0 {
		cfg.HTTP.IdleTimeout = 60 * time.Second
	}
	if cfg.Queue.Workers == 0 {
		cfg.Queue.Workers = 4
	}
	if cfg.Queue.BufferSize == 0 {
		cfg.Queue.BufferSize = 256
	}
	if len(cfg.PickHero.OrderStatusToPush) == 0 {
		cfg.PickHero.OrderStatusToPush = []string{"new"}
	}
}
