package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

func TestDefaults(t *testing.T) {
	v := viper.New()
	defaults(v)
	cfg, err := fromViper(v)
	if err != nil {
		t.Fatalf("fromViper: %v", err)
	}
	if cfg.Port != "8080" || cfg.Store.Driver != "memory" || cfg.Store.DBName != "taskdb" {
		t.Errorf("unexpected defaults %+v", cfg)
	}
	if cfg.LogLevel != logrus.InfoLevel {
		t.Errorf("Expected info level, got %s", cfg.LogLevel)
	}
	if cfg.CacheTTL != time.Minute || cfg.RateLimit != 2 || cfg.RateBurst != 20 {
		t.Errorf("unexpected defaults %+v", cfg)
	}
	if cfg.RedisAddr != "" || cfg.Kafka.Broker != "" {
		t.Errorf("cache and events must be disabled by default: %+v", cfg)
	}
}

func TestLoadFromEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	content := "PORT=9090\nLOG_LEVEL=debug\nSTORE_DRIVER=mysql\nDB_ADDRESS=db:3307\nKAFKA_BROKER=kafka:9092\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"PORT", "LOG_LEVEL", "STORE_DRIVER", "DB_ADDRESS", "KAFKA_BROKER"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "9090" || cfg.LogLevel != logrus.DebugLevel {
		t.Errorf("unexpected config %+v", cfg)
	}
	if cfg.Store.Driver != "mysql" || cfg.Store.DBAddress != "db:3307" {
		t.Errorf("unexpected store config %+v", cfg.Store)
	}
	if cfg.Kafka.Broker != "kafka:9092" || cfg.Kafka.Topic != "tasks" {
		t.Errorf("unexpected kafka config %+v", cfg.Kafka)
	}
}

func TestEnvironmentOverridesDefaults(t *testing.T) {
	t.Setenv("RATE_LIMIT", "10")
	t.Setenv("CACHE_TTL", "5s")
	t.Setenv("REDIS_ADDR", "redis:6379")

	v := viper.New()
	v.AutomaticEnv()
	defaults(v)
	cfg, err := fromViper(v)
	if err != nil {
		t.Fatalf("fromViper: %v", err)
	}
	if cfg.RateLimit != 10 || cfg.CacheTTL != 5*time.Second || cfg.RedisAddr != "redis:6379" {
		t.Errorf("unexpected config %+v", cfg)
	}
}

func TestInvalidConfig(t *testing.T) {
	v := viper.New()
	defaults(v)
	v.Set("LOG_LEVEL", "loud")
	if _, err := fromViper(v); err == nil {
		t.Error("expected an error for an invalid log level")
	}

	v = viper.New()
	defaults(v)
	v.Set("STORE_DRIVER", "postgres")
	if _, err := fromViper(v); err == nil {
		t.Error("expected an error for postgres without a DSN")
	}
}
