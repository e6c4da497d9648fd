package utils

import (
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Session  SessionConfig
	Booking  BookingConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
}

type AppConfig struct {
	Name    string
	Port    string
	Debug   bool
	LogPath string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32
}

type SessionConfig struct {
	TTLHours        int
	CacheTTLMinutes int
}

type BookingConfig struct {
	HoldTTLMinutes int
	SweepMinutes   int
}

// RedisConfig with an empty Addr disables the session cache.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// KafkaConfig with no brokers disables booking event publishing.
type KafkaConfig struct {
	Brokers            []string
	BookingEventsTopic string
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("SESSION_TTL_HOURS", 24)
	viper.SetDefault("SESSION_CACHE_TTL_MINUTES", 30)
	viper.SetDefault("BOOKING_HOLD_TTL_MINUTES", 30)
	viper.SetDefault("BOOKING_SWEEP_MINUTES", 5)
	viper.SetDefault("LOG_PATH", "logs/")

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	viper.AutomaticEnv()

	var brokers []string
	if raw := viper.GetString("KAFKA_BROKERS"); raw != "" {
		brokers = strings.Split(raw, ",")
	}

	config := &Config{
		App: AppConfig{
			Name:    viper.GetString("APP_NAME"),
			Port:    viper.GetString("PORT"),
			Debug:   viper.GetBool("DEBUG"),
			LogPath: viper.GetString("LOG_PATH"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASS"),
			MaxConns: viper.GetInt32("DB_MAX_CONNS"),
		},
		Session: SessionConfig{
			TTLHours:        viper.GetInt("SESSION_TTL_HOURS"),
			CacheTTLMinutes: viper.GetInt("SESSION_CACHE_TTL_MINUTES"),
		},
		Booking: BookingConfig{
			HoldTTLMinutes: viper.GetInt("BOOKING_HOLD_TTL_MINUTES"),
			SweepMinutes:   viper.GetInt("BOOKING_SWEEP_MINUTES"),
		},
		Redis: RedisConfig{
			Addr:     viper.GetString("REDIS_ADDR"),
			Password: viper.GetString("REDIS_PASS"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Kafka: KafkaConfig{
			Brokers:            brokers,
			BookingEventsTopic: viper.GetString("KAFKA_BOOKING_EVENTS_TOPIC"),
		},
	}

	return config, nil
}
