package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Env        string           `yaml:"env"`        // Env is the current environment: local, development, production.
	HTTP       HTTPConfig       `yaml:"http"`       // HTTP holds the members API server configuration
	Monitoring MonitoringConfig `yaml:"monitoring"` // Monitoring holds the metrics and health server configuration
	Postgres   PostgresConfig   `yaml:"postgres"`   // Postgres holds the database configuration
}

// HTTPConfig struct holds the configuration of the public REST server.
type HTTPConfig struct {
	Address         string        `yaml:"address"`          // Address is the listen address, e.g. `:8080`.
	ReadTimeout     time.Duration `yaml:"read_timeout"`     // ReadTimeout bounds reading a whole request.
	WriteTimeout    time.Duration `yaml:"write_timeout"`    // WriteTimeout bounds writing a response.
	IdleTimeout     time.Duration `yaml:"idle_timeout"`     // IdleTimeout bounds keep-alive connections.
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"` // ShutdownTimeout bounds graceful shutdown.
}

// MonitoringConfig struct holds the configuration of the monitoring server.
type MonitoringConfig struct {
	Port int `yaml:"port"` // Port serves /metrics and /healthz.
}

// PostgresConfig struct holds the configuration details for connecting to a PostgreSQL database.
type PostgresConfig struct {
	Host     string `yaml:"host"`     // Host is the database server address.
	Port     string `yaml:"port"`     // Port is the database server port.
	User     string `yaml:"user"`     // User is the database user.
	Password string `yaml:"password"` // Password is the database user's password.
	Dbname   string `yaml:"db_name"`  // Dbname is the name of the database.
}

var ErrMissingHost = errors.New("postgres.host must be set")

// MustLoad loads the configuration from the YAML file named by CONFIG_PATH and panics on failure.
func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		panic("config path is empty")
	}

	// check if file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}

	cfg, err := Load(configPath)
	if err != nil {
		panic("config error: " + err.Error())
	}

	return cfg
}

// Load reads the YAML configuration at configPath. Values may be overridden by environment variables.
func Load(configPath string) (*Config, error) {
	vpr := viper.New()
	vpr.SetConfigFile(configPath)
	vpr.SetConfigType("yaml")

	setDefaults(vpr)
	if err := bindEnv(vpr); err != nil {
		return nil, err
	}

	if err := vpr.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := &Config{
		Env: vpr.GetString("env"),
		HTTP: HTTPConfig{
			Address:         vpr.GetString("http.address"),
			ReadTimeout:     vpr.GetDuration("http.read_timeout"),
			WriteTimeout:    vpr.GetDuration("http.write_timeout"),
			IdleTimeout:     vpr.GetDuration("http.idle_timeout"),
			ShutdownTimeout: vpr.GetDuration("http.shutdown_timeout"),
		},
		Monitoring: MonitoringConfig{
			Port: vpr.GetInt("monitoring.port"),
		},
		Postgres: PostgresConfig{
			Host:     vpr.GetString("postgres.host"),
			Port:     vpr.GetString("postgres.port"),
			User:     vpr.GetString("postgres.user"),
			Password: vpr.GetString("postgres.password"),
			Dbname:   vpr.GetString("postgres.db_name"),
		},
	}

	if cfg.Postgres.Host == "" {
		return nil, ErrMissingHost
	}

	return cfg, nil
}

func setDefaults(vpr *viper.Viper) {
	vpr.SetDefault("env", "local")
	vpr.SetDefault("http.address", ":8080")
	vpr.SetDefault("http.read_timeout", 5*time.Second)
	vpr.SetDefault("http.write_timeout", 10*time.Second)
	vpr.SetDefault("http.idle_timeout", 60*time.Second)
	vpr.SetDefault("http.shutdown_timeout", 10*time.Second)
	vpr.SetDefault("monitoring.port", 9090)
	vpr.SetDefault("postgres.port", "5432")
}

func bindEnv(vpr *viper.Viper) error {
	bindings := map[string]string{
		"env":               "APP_ENV",
		"http.address":      "HTTP_ADDRESS",
		"postgres.host":     "DB_HOST",
		"postgres.port":     "DB_PORT",
		"postgres.user":     "DB_USERNAME",
		"postgres.password": "DB_PASSWORD",
		"postgres.db_name":  "DB_NAME",
	}

	for key, env := range bindings {
		if err := vpr.BindEnv(key, env); err != nil {
			return fmt.Errorf("failed to bind env %s: %w", env, err)
		}
	}

	return nil
}
