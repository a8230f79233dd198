package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func envOf(m map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Database.Driver != "sqlite" {
		t.Errorf("expected sqlite driver, got %q", cfg.Database.Driver)
	}
	if cfg.HTTP.Addr != ":8080" {
		t.Errorf("expected :8080, got %q", cfg.HTTP.Addr)
	}
	if cfg.Notifications.DispatcherID != "DSP-001" {
		t.Errorf("expected DSP-001 dispatcher, got %q", cfg.Notifications.DispatcherID)
	}
}

func TestLoad_YAMLOverDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := `
database:
  driver: postgres
  dsn: postgres://fleet@localhost/fleet
notifications:
  dispatcher_id: DSP-007
  mqtt:
    enabled: true
    timeout: 2s
`
	if err := os.WriteFile(path, []byte(yaml), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Database.Driver != "postgres" || cfg.Database.DSN != "postgres://fleet@localhost/fleet" {
		t.Errorf("unexpected database config: %+v", cfg.Database)
	}
	if cfg.Notifications.DispatcherID != "DSP-007" {
		t.Errorf("expected DSP-007, got %q", cfg.Notifications.DispatcherID)
	}
	if !cfg.Notifications.MQTT.Enabled || cfg.Notifications.MQTT.Timeout != 2*time.Second {
		t.Errorf("unexpected mqtt config: %+v", cfg.Notifications.MQTT)
	}
	// untouched keys keep their defaults
	if cfg.Notifications.MQTT.Broker != "tcp://localhost:1883" {
		t.Errorf("expected default broker, got %q", cfg.Notifications.MQTT.Broker)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("database: [unclosed"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("FLEETDESK_HTTP_ADDR=:9191\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("FLEETDESK_HTTP_ADDR", "")
	os.Unsetenv("FLEETDESK_HTTP_ADDR")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.HTTP.Addr != ":9191" {
		t.Errorf("expected .env addr :9191, got %q", cfg.HTTP.Addr)
	}
}

func TestApplyEnv(t *testing.T) {
	cfg := Defaults()
	cfg.ApplyEnv(envOf(map[string]string{
		"FLEETDESK_DB_DRIVER":     "postgres",
		"FLEETDESK_DB_DSN":        "postgres://x",
		"FLEETDESK_LOG_LEVEL":     "debug",
		"FLEETDESK_KAFKA_BROKERS": "k1:9092,k2:9092",
		"FLEETDESK_REDIS_URL":     "",
	}))

	if cfg.Database.Driver != "postgres" || cfg.Database.DSN != "postgres://x" {
		t.Errorf("database overrides not applied: %+v", cfg.Database)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("expected debug, got %q", cfg.Log.Level)
	}
	if !cfg.Notifications.Kafka.Enabled || len(cfg.Notifications.Kafka.Brokers) != 2 {
		t.Errorf("kafka override not applied: %+v", cfg.Notifications.Kafka)
	}
	if cfg.Notifications.Redis.Enabled {
		t.Error("empty FLEETDESK_REDIS_URL must not enable redis")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"unknown driver", func(c *Config) { c.Database.Driver = "mysql" }, true},
		{"postgres without dsn", func(c *Config) { c.Database.Driver = "postgres" }, true},
		{"kafka without topic", func(c *Config) {
			c.Notifications.Kafka.Enabled = true
			c.Notifications.Kafka.Topic = ""
		}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := Defaults()
	cfg.HTTP.Addr = ":7000"
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	t.Chdir(t.TempDir())
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.HTTP.Addr != ":7000" {
		t.Errorf("expected :7000, got %q", loaded.HTTP.Addr)
	}
}
