package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config holds every application parameter. Values come from the YAML file
// first and FLOOR_* environment variables override them.
type Config struct {
	Database  DatabaseConfig  `yaml:"database" envPrefix:"FLOOR_DB_"`
	RabbitMQ  RabbitMQConfig  `yaml:"rabbitmq" envPrefix:"FLOOR_RABBITMQ_"`
	HTTP      HTTPConfig      `yaml:"http" envPrefix:"FLOOR_HTTP_"`
	Log       LogConfig       `yaml:"log" envPrefix:"FLOOR_LOG_"`
	Telemetry TelemetryConfig `yaml:"telemetry" envPrefix:"FLOOR_OTEL_"`
}

type DatabaseConfig struct {
	Driver   string `yaml:"driver" env:"DRIVER"`
	Host     string `yaml:"host" env:"HOST"`
	Port     int    `yaml:"port" env:"PORT"`
	User     string `yaml:"user" env:"USER"`
	Password string `yaml:"password" env:"PASSWORD"`
	Database string `yaml:"database" env:"NAME"`
	SSLMode  string `yaml:"sslmode" env:"SSLMODE"`
	MaxConns int    `yaml:"max_conns" env:"MAX_CONNS"`
	// Path is the SQLite file, used only with the sqlite driver.
	Path string `yaml:"path" env:"PATH"`
}

type RabbitMQConfig struct {
	Enabled  bool   `yaml:"enabled" env:"ENABLED"`
	Host     string `yaml:"host" env:"HOST"`
	Port     int    `yaml:"port" env:"PORT"`
	User     string `yaml:"user" env:"USER"`
	Password string `yaml:"password" env:"PASSWORD"`
	VHost    string `yaml:"vhost" env:"VHOST"`
	UseTLS   bool   `yaml:"tls" env:"TLS"`
	Prefetch int    `yaml:"prefetch" env:"PREFETCH"`
}

type HTTPConfig struct {
	Port            int           `yaml:"port" env:"PORT"`
	ReadTimeout     time.Duration `yaml:"read_timeout" env:"READ_TIMEOUT"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env:"WRITE_TIMEOUT"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SHUTDOWN_TIMEOUT"`
}

type LogConfig struct {
	Level string `yaml:"level" env:"LEVEL"`
}

type TelemetryConfig struct {
	Endpoint string `yaml:"endpoint" env:"ENDPOINT"`
}

func Default() *Config {
	return &Config{
		Database: DatabaseConfig{
			Driver:   DriverPostgres,
			Port:     5432,
			SSLMode:  "disable",
			MaxConns: 10,
		},
		RabbitMQ: RabbitMQConfig{
			Port:     5672,
			VHost:    "/",
			Prefetch: 1,
		},
		HTTP: HTTPConfig{
			Port:            3000,
			ReadTimeout:     5 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 5 * time.Second,
		},
		Log: LogConfig{Level: "info"},
	}
}

// Load reads path (when non-empty), applies environment overrides and
// validates the result.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("couldn't open the configuration file: %w", err)
		}
		if err := yaml.Unmarshal(b, cfg); err != nil {
			return nil, fmt.Errorf("error reading %s: %w", path, err)
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	cfg.Database.Driver = strings.ToLower(strings.TrimSpace(cfg.Database.Driver))
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverPostgres:
		if c.Database.Host == "" || c.Database.User == "" || c.Database.Database == "" {
			return errors.New("invalid config: database host, user and database are required")
		}
	case DriverSQLite:
		if strings.TrimSpace(c.Database.Path) == "" {
			return errors.New("invalid config: database path is required for sqlite")
		}
	default:
		return fmt.Errorf("invalid config: unknown database driver %q", c.Database.Driver)
	}
	if c.RabbitMQ.Enabled && (c.RabbitMQ.Host == "" || c.RabbitMQ.User == "") {
		return errors.New("invalid config: rabbitmq host and user are required when enabled")
	}
	if c.HTTP.Port <= 0 {
		return errors.New("invalid config: http port must be positive")
	}
	return nil
}

// DSN renders the connection string for the configured driver.
func (d DatabaseConfig) DSN() string {
	if d.Driver == DriverSQLite {
		return d.Path
	}
	q := url.Values{}
	if d.SSLMode != "" {
		q.Set("sslmode", d.SSLMode)
	}
	if d.MaxConns > 0 {
		q.Set("pool_max_conns", strconv.Itoa(d.MaxConns))
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Password),
		Host:     net.JoinHostPort(d.Host, strconv.Itoa(d.Port)),
		Path:     "/" + d.Database,
		RawQuery: q.Encode(),
	}
	return u.String()
}

// FindConfig returns the first config file present in the working directory.
func FindConfig() (string, error) {
	candidates := []string{"config.yaml", "config.yml"}
	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return "", fs.ErrNotExist
}
