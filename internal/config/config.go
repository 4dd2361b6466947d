package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

const (
	DriverMemory   = "memory"
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"

	EventsNone  = "none"
	EventsNATS  = "nats"
	EventsKafka = "kafka"

	EnvProduction = "prod"
)

type Config struct {
	Env       string          `mapstructure:"env"`
	Server    ServerConfig    `mapstructure:"server"`
	Storage   StorageConfig   `mapstructure:"storage"`
	Events    EventsConfig    `mapstructure:"events"`
	Grpc      GrpcConfig      `mapstructure:"grpc"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
}

type ServerConfig struct {
	Port             string   `mapstructure:"port"`
	ReadTimeout      int      `mapstructure:"read_timeout_seconds"`
	WriteTimeout     int      `mapstructure:"write_timeout_seconds"`
	IdleTimeout      int      `mapstructure:"idle_timeout_seconds"`
	CORSOrigins      []string `mapstructure:"cors_origins"`
	ExposeTestRoutes bool     `mapstructure:"expose_test_routes"`
}

type StorageConfig struct {
	Driver   string         `mapstructure:"driver"`
	Mongo    MongoConfig    `mapstructure:"mongo"`
	Postgres DatabaseConfig `mapstructure:"postgres"`
}

type MongoConfig struct {
	URI             string `mapstructure:"uri"`
	Database        string `mapstructure:"database"`
	Collection      string `mapstructure:"collection"`
	ConnectTimeout  int    `mapstructure:"connect_timeout_seconds"`
	ConnectAttempts int    `mapstructure:"connect_attempts"`
}

type DatabaseConfig struct {
	Host            string `mapstructure:"host"`
	Port            string `mapstructure:"port"`
	User            string `mapstructure:"user"`
	Password        string `mapstructure:"password"`
	DBName          string `mapstructure:"name"`
	SSLMode         string `mapstructure:"ssl_mode"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime_seconds"`
	ConnMaxIdleTime int    `mapstructure:"conn_max_idle_time_seconds"`
}

type EventsConfig struct {
	Driver string      `mapstructure:"driver"`
	NATS   NATSConfig  `mapstructure:"nats"`
	Kafka  KafkaConfig `mapstructure:"kafka"`
}

type NATSConfig struct {
	URL     string `mapstructure:"url"`
	Subject string `mapstructure:"subject"`
}

type KafkaConfig struct {
	Brokers []string `mapstructure:"brokers"`
	Topic   string   `mapstructure:"topic"`
}

type GrpcConfig struct {
	Port string `mapstructure:"port"`
}

type TelemetryConfig struct {
	Enabled      bool   `mapstructure:"enabled"`
	OTLPEndpoint string `mapstructure:"otlp_endpoint"`
}

// TestRoutesEnabled reports whether the data-reset routes may be mounted.
// They are never mounted in the production profile.
func (c *Config) TestRoutesEnabled() bool {
	return c.Server.ExposeTestRoutes && c.Env != EnvProduction
}

func Load() (*Config, error) {
	// Get environment from ENV, default to "local"
	env := os.Getenv("ENV")
	if env == "" {
		env = "local"
	}

	v := viper.New()
	setDefaults(v, env)

	v.SetConfigName(fmt.Sprintf("config.%s", env))
	v.SetConfigType("yaml")
	v.AddConfigPath("/configs")      // Kubernetes mount
	v.AddConfigPath("./configs")     // Docker runtime / repo root
	v.AddConfigPath("../configs")    // IDE from cmd/
	v.AddConfigPath("../../configs") // package tests

	// Config file is optional - continue with defaults and ENV variables
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Environment variables take precedence over the config file
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.BindEnv("server.port", "SERVER_PORT", "PORT")
	v.BindEnv("storage.driver", "STORAGE_DRIVER")
	v.BindEnv("storage.mongo.uri", "MONGO_URI", "mongoURI")
	v.BindEnv("storage.postgres.user", "DB_USER")
	v.BindEnv("storage.postgres.password", "DB_PASSWORD")
	v.BindEnv("storage.postgres.host", "DB_HOST")
	v.BindEnv("events.nats.url", "NATS_URL")
	v.BindEnv("grpc.port", "GRPC_PORT")
	v.BindEnv("telemetry.otlp_endpoint", "OTEL_EXPORTER_OTLP_ENDPOINT")

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// KAFKA_BROKERS arrives as a comma separated list
	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		config.Events.Kafka.Brokers = strings.Split(brokers, ",")
	}

	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

func setDefaults(v *viper.Viper, env string) {
	v.SetDefault("env", env)

	v.SetDefault("server.port", "3000")
	v.SetDefault("server.read_timeout_seconds", 10)
	v.SetDefault("server.write_timeout_seconds", 10)
	v.SetDefault("server.idle_timeout_seconds", 60)
	v.SetDefault("server.expose_test_routes", false)

	v.SetDefault("storage.driver", DriverMemory)
	v.SetDefault("storage.mongo.uri", "mongodb://127.0.0.1:27017")
	v.SetDefault("storage.mongo.database", "mydb")
	v.SetDefault("storage.mongo.collection", "courses")
	v.SetDefault("storage.mongo.connect_timeout_seconds", 10)
	v.SetDefault("storage.mongo.connect_attempts", 3)

	v.SetDefault("storage.postgres.host", "localhost")
	v.SetDefault("storage.postgres.port", "5432")
	v.SetDefault("storage.postgres.user", "postgres")
	v.SetDefault("storage.postgres.password", "postgres")
	v.SetDefault("storage.postgres.name", "courses")
	v.SetDefault("storage.postgres.ssl_mode", "disable")

	v.SetDefault("events.driver", EventsNone)
	v.SetDefault("events.nats.subject", "courses.events")
	v.SetDefault("events.kafka.topic", "courses.events")
}

func (c *Config) validate() error {
	switch c.Storage.Driver {
	case DriverMemory, DriverMongo, DriverPostgres:
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}

	switch c.Events.Driver {
	case EventsNone, "":
	case EventsNATS:
		if c.Events.NATS.URL == "" {
			return fmt.Errorf("events.nats.url is required for the nats driver")
		}
	case EventsKafka:
		if len(c.Events.Kafka.Brokers) == 0 {
			return fmt.Errorf("events.kafka.brokers is required for the kafka driver")
		}
	default:
		return fmt.Errorf("unknown events driver %q", c.Events.Driver)
	}

	if c.Server.Port == "" {
		return fmt.Errorf("server.port is required")
	}
	return nil
}
