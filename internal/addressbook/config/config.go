// Package config loads the service configuration from YAML.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/gartstein/connectify/internal/addressbook/db"
	"gopkg.in/yaml.v3"
)

// DefaultPath is used when no --config flag is given.
const DefaultPath = "internal/addressbook/config/config.yaml"

const (
	defaultGRPCPort = 50051
	defaultHTTPPort = 8080
	defaultDBPort   = 5432
	defaultTopic    = "connectify.address_book"
)

// Config struct for YAML configuration
type Config struct {
	GRPCPort     int      `yaml:"GRPC_PORT"`
	HTTPPort     int      `yaml:"HTTP_PORT"`
	DBDriver     string   `yaml:"DB_DRIVER"`
	DBHost       string   `yaml:"DB_HOST"`
	DBPort       int      `yaml:"DB_PORT"`
	DBUser       string   `yaml:"DB_USER"`
	DBPassword   string   `yaml:"DB_PASSWORD"`
	DBName       string   `yaml:"DB_NAME"`
	DBSSLMode    string   `yaml:"DB_SSLMODE"`
	SQLitePath   string   `yaml:"SQLITE_PATH"`
	KafkaBrokers []string `yaml:"KAFKA_BROKERS"`
	Topic        string   `yaml:"TOPIC"`
	JWTSecret    string   `yaml:"JWT_SECRET"`
}

// Load reads, defaults and validates the configuration at path.
func Load(path string) (*Config, error) {
	file, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(file)
}

// Parse decodes YAML, fills defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.GRPCPort == 0 {
		c.GRPCPort = defaultGRPCPort
	}
	if c.HTTPPort == 0 {
		c.HTTPPort = defaultHTTPPort
	}
	if c.DBDriver == "" {
		c.DBDriver = db.DriverPostgres
	}
	if c.DBPort == 0 {
		c.DBPort = defaultDBPort
	}
	if c.DBSSLMode == "" {
		c.DBSSLMode = "disable"
	}
	if c.Topic == "" {
		c.Topic = defaultTopic
	}
}

// Validate reports every problem found in the configuration.
func (c *Config) Validate() error {
	var errs []error
	if !validPort(c.GRPCPort) {
		errs = append(errs, fmt.Errorf("GRPC_PORT %d out of range", c.GRPCPort))
	}
	if !validPort(c.HTTPPort) {
		errs = append(errs, fmt.Errorf("HTTP_PORT %d out of range", c.HTTPPort))
	}
	if c.GRPCPort == c.HTTPPort {
		errs = append(errs, fmt.Errorf("GRPC_PORT and HTTP_PORT must differ"))
	}
	switch c.DBDriver {
	case db.DriverPostgres:
		if c.DBHost == "" || c.DBName == "" {
			errs = append(errs, fmt.Errorf("DB_HOST and DB_NAME are required for postgres"))
		}
		if !validPort(c.DBPort) {
			errs = append(errs, fmt.Errorf("DB_PORT %d out of range", c.DBPort))
		}
	case db.DriverSQLite:
	default:
		errs = append(errs, fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver))
	}
	if c.JWTSecret == "" {
		errs = append(errs, fmt.Errorf("JWT_SECRET is required"))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Database returns the repository settings.
func (c *Config) Database() *db.Config {
	return &db.Config{
		Driver:     c.DBDriver,
		Host:       c.DBHost,
		Port:       c.DBPort,
		User:       c.DBUser,
		Password:   c.DBPassword,
		DBName:     c.DBName,
		SSLMode:    c.DBSSLMode,
		SQLitePath: c.SQLitePath,
	}
}

func validPort(p int) bool {
	return p > 0 && p < 65536
}
