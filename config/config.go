// Package config reads the service settings from the environment.
// A .env file in the working directory is loaded first when present.
package config

import (
	"fmt"
	"time"

	"TodoWebService/store"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	Port      string
	LogLevel  logrus.Level
	Store     store.Config
	RedisAddr string
	CacheTTL  time.Duration
	Kafka     KafkaConfig
	RateLimit float64
	RateBurst int
}

type KafkaConfig struct {
	Broker string
	Topic  string
}

func defaults(v *viper.Viper) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("STORE_DRIVER", "memory")
	v.SetDefault("DB_ADDRESS", "localhost:3306")
	v.SetDefault("DB_NAME", "taskdb")
	v.SetDefault("CACHE_TTL", "60s")
	v.SetDefault("KAFKA_TOPIC", "tasks")
	v.SetDefault("RATE_LIMIT", 2)
	v.SetDefault("RATE_BURST", 20)
}

// Load reads .env files (a missing file is not an error) and then the environment.
func Load(envFiles ...string) (Config, error) {
	if err := godotenv.Load(envFiles...); err != nil {
		logrus.WithField("task operation", "load configuration").Info("no .env file loaded")
	}
	v := viper.New()
	v.AutomaticEnv()
	defaults(v)
	return fromViper(v)
}

func fromViper(v *viper.Viper) (Config, error) {
	level, err := logrus.ParseLevel(v.GetString("LOG_LEVEL"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}
	cfg := Config{
		Port:     v.GetString("PORT"),
		LogLevel: level,
		Store: store.Config{
			Driver:      v.GetString("STORE_DRIVER"),
			DBUsername:  v.GetString("DB_USERNAME"),
			DBPassword:  v.GetString("DB_PASSWORD"),
			DBAddress:   v.GetString("DB_ADDRESS"),
			DBName:      v.GetString("DB_NAME"),
			PostgresDSN: v.GetString("DB_POSTGRES_DSN"),
		},
		RedisAddr: v.GetString("REDIS_ADDR"),
		CacheTTL:  v.GetDuration("CACHE_TTL"),
		Kafka: KafkaConfig{
			Broker: v.GetString("KAFKA_BROKER"),
			Topic:  v.GetString("KAFKA_TOPIC"),
		},
		RateLimit: v.GetFloat64("RATE_LIMIT"),
		RateBurst: v.GetInt("RATE_BURST"),
	}
	if cfg.Store.Driver == "postgres" && cfg.Store.PostgresDSN == "" {
		return Config{}, fmt.Errorf("DB_POSTGRES_DSN is required for the postgres store")
	}
	return cfg, nil
}
