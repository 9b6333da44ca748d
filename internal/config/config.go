package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	StorageMongo  = "mongo"
	StorageMemory = "memory"
)

type Config struct {
	HTTP     HTTPConfig    `yaml:"http"`
	GRPC     GRPCConfig    `yaml:"grpc"`
	Storage  string        `yaml:"storage"`
	Mongo    MongoConfig   `yaml:"mongo"`
	NATS     NATSConfig    `yaml:"nats"`
	Kafka    KafkaConfig   `yaml:"kafka"`
	Consul   ConsulConfig  `yaml:"consul"`
	JWT      JWTConfig     `yaml:"jwt"`
	Log      LogConfig     `yaml:"log"`
	Shutdown time.Duration `yaml:"shutdownTimeout"`
}

type HTTPConfig struct {
	Port    string `yaml:"port"`
	GinMode string `yaml:"ginMode"`
}

type GRPCConfig struct {
	Port string `yaml:"port"`
}

type MongoConfig struct {
	URI string `yaml:"uri"`
	DB  string `yaml:"db"`
}

type NATSConfig struct {
	URL string `yaml:"url"`
}

type KafkaConfig struct {
	Brokers []string `yaml:"brokers"`
}

type ConsulConfig struct {
	Addr        string `yaml:"addr"`
	ServiceName string `yaml:"serviceName"`
	ServiceHost string `yaml:"serviceHost"`
}

type JWTConfig struct {
	Secret string        `yaml:"secret"`
	Expire time.Duration `yaml:"expire"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func defaults() *Config {
	return &Config{
		HTTP:    HTTPConfig{Port: "3000", GinMode: "release"},
		GRPC:    GRPCConfig{Port: "50051"},
		Storage: StorageMongo,
		Mongo: MongoConfig{
			URI: "mongodb://localhost:27017",
			DB:  "bookstore",
		},
		Consul:   ConsulConfig{ServiceName: "bookstore", ServiceHost: "localhost"},
		JWT:      JWTConfig{Expire: 30 * 24 * time.Hour},
		Log:      LogConfig{Level: "info", Format: "json"},
		Shutdown: 10 * time.Second,
	}
}

// Load reads .env (if present), then the optional YAML file named by
// CONFIG_FILE, then environment variables. Later sources win.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := defaults()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing YAML config: %w", err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	c.HTTP.Port = getEnv("HTTP_PORT", getEnv("PORT", c.HTTP.Port))
	c.HTTP.GinMode = getEnv("GIN_MODE", c.HTTP.GinMode)
	c.GRPC.Port = getEnv("GRPC_PORT", c.GRPC.Port)
	c.Storage = strings.ToLower(getEnv("STORAGE", c.Storage))
	c.Mongo.URI = getEnv("MONGO_URI", c.Mongo.URI)
	c.Mongo.DB = getEnv("MONGO_DB", c.Mongo.DB)
	c.NATS.URL = getEnv("NATS_URL", c.NATS.URL)
	if brokers := getEnv("KAFKA_BROKERS", ""); brokers != "" {
		c.Kafka.Brokers = splitList(brokers)
	}
	c.Consul.Addr = getEnv("CONSUL_ADDR", c.Consul.Addr)
	c.Consul.ServiceName = getEnv("CONSUL_SERVICE_NAME", c.Consul.ServiceName)
	c.Consul.ServiceHost = getEnv("CONSUL_SERVICE_HOST", c.Consul.ServiceHost)
	c.JWT.Secret = getEnv("JWT_SECRET", c.JWT.Secret)
	c.Log.Level = getEnv("LOG_LEVEL", c.Log.Level)
	c.Log.Format = getEnv("LOG_FORMAT", c.Log.Format)

	var err error
	if c.JWT.Expire, err = getDuration("JWT_EXPIRE", c.JWT.Expire); err != nil {
		return err
	}
	if c.Shutdown, err = getDuration("SHUTDOWN_TIMEOUT", c.Shutdown); err != nil {
		return err
	}
	return nil
}

func (c *Config) Validate() error {
	if c.HTTP.Port == "" {
		return fmt.Errorf("HTTP_PORT is required")
	}
	if c.GRPC.Port == "" {
		return fmt.Errorf("GRPC_PORT is required")
	}
	switch c.Storage {
	case StorageMongo:
		if c.Mongo.URI == "" {
			return fmt.Errorf("MONGO_URI is required")
		}
		if c.Mongo.DB == "" {
			return fmt.Errorf("MONGO_DB is required")
		}
	case StorageMemory:
	default:
		return fmt.Errorf("unknown STORAGE %q", c.Storage)
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.JWT.Expire <= 0 {
		return fmt.Errorf("JWT_EXPIRE must be positive")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
