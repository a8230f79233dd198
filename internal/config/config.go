// Package config loads fleetdesk settings from YAML, .env and the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the full fleetdesk configuration.
type Config struct {
	Database      DatabaseConfig      `yaml:"database"`
	HTTP          HTTPConfig          `yaml:"http"`
	Log           LogConfig           `yaml:"log"`
	Notifications NotificationsConfig `yaml:"notifications"`
}

type DatabaseConfig struct {
	Driver string `yaml:"driver"` // sqlite or postgres
	DSN    string `yaml:"dsn"`    // sqlite file path, ":memory:", or a postgres URL
}

type HTTPConfig struct {
	Addr string `yaml:"addr"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type NotificationsConfig struct {
	// DispatcherID receives LEAVE_REQUESTED notifications. Empty disables them.
	DispatcherID string      `yaml:"dispatcher_id"`
	Redis        RedisConfig `yaml:"redis"`
	MQTT         MQTTConfig  `yaml:"mqtt"`
	Kafka        KafkaConfig `yaml:"kafka"`
}

type RedisConfig struct {
	Enabled bool   `yaml:"enabled"`
	URL     string `yaml:"url"`
	Prefix  string `yaml:"prefix"`
}

type MQTTConfig struct {
	Enabled     bool          `yaml:"enabled"`
	Broker      string        `yaml:"broker"`
	ClientID    string        `yaml:"client_id"`
	TopicPrefix string        `yaml:"topic_prefix"`
	Timeout     time.Duration `yaml:"timeout"`
}

type KafkaConfig struct {
	Enabled bool     `yaml:"enabled"`
	Brokers []string `yaml:"brokers"`
	Topic   string   `yaml:"topic"`
}

// Defaults returns a config for a local single-user install.
func Defaults() *Config {
	return &Config{
		Database: DatabaseConfig{Driver: "sqlite"},
		HTTP:     HTTPConfig{Addr: ":8080"},
		Log:      LogConfig{Level: "info", Format: "text"},
		Notifications: NotificationsConfig{
			DispatcherID: "DSP-001",
			Redis: RedisConfig{
				URL:    "redis://localhost:6379/0",
				Prefix: "fleetdesk",
			},
			MQTT: MQTTConfig{
				Broker:      "tcp://localhost:1883",
				ClientID:    "fleetdesk",
				TopicPrefix: "fleetdesk",
				Timeout:     5 * time.Second,
			},
			Kafka: KafkaConfig{
				Brokers: []string{"localhost:9092"},
				Topic:   "fleetdesk.notifications",
			},
		},
	}
}

// DefaultPath returns ~/.fleetdesk/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".fleetdesk", "config.yaml"), nil
}

// Load reads the YAML file at path over Defaults, then applies .env and
// FLEETDESK_* environment overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("failed to read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}

	// .env never overrides variables already set in the process.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}
	cfg.ApplyEnv(os.LookupEnv)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overrides fields from FLEETDESK_* variables.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	set := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	set("FLEETDESK_DB_DRIVER", &c.Database.Driver)
	set("FLEETDESK_DB_DSN", &c.Database.DSN)
	set("FLEETDESK_HTTP_ADDR", &c.HTTP.Addr)
	set("FLEETDESK_LOG_LEVEL", &c.Log.Level)
	set("FLEETDESK_LOG_FORMAT", &c.Log.Format)
	set("FLEETDESK_DISPATCHER_ID", &c.Notifications.DispatcherID)

	if v, ok := lookup("FLEETDESK_REDIS_URL"); ok && v != "" {
		c.Notifications.Redis.URL = v
		c.Notifications.Redis.Enabled = true
	}
	if v, ok := lookup("FLEETDESK_MQTT_BROKER"); ok && v != "" {
		c.Notifications.MQTT.Broker = v
		c.Notifications.MQTT.Enabled = true
	}
	if v, ok := lookup("FLEETDESK_KAFKA_BROKERS"); ok && v != "" {
		c.Notifications.Kafka.Brokers = strings.Split(v, ",")
		c.Notifications.Kafka.Enabled = true
	}
}

// Validate checks the settings that cannot be fixed by a default.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "sqlite":
	case "postgres":
		if c.Database.DSN == "" {
			return fmt.Errorf("database.dsn is required for postgres")
		}
	default:
		return fmt.Errorf("unsupported database driver %q (want sqlite or postgres)", c.Database.Driver)
	}
	if c.Notifications.Kafka.Enabled && (len(c.Notifications.Kafka.Brokers) == 0 || c.Notifications.Kafka.Topic == "") {
		return fmt.Errorf("notifications.kafka needs brokers and a topic")
	}
	return nil
}

// Save writes cfg as YAML, creating the parent directory.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
