package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server      ServerConfig      `yaml:"server"`
	Database    DatabaseConfig    `yaml:"database"`
	Session     SessionConfig     `yaml:"session"`
	Security    SecurityConfig    `yaml:"security"`
	Webcam      WebcamConfig      `yaml:"webcam"`
	DefaultUser DefaultUserConfig `yaml:"default_user"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
	Mode string `yaml:"mode"`
}

type DatabaseConfig struct {
	Type   string       `yaml:"type"`
	SQLite SQLiteConfig `yaml:"sqlite"`
	MySQL  MySQLConfig  `yaml:"mysql"`
}

type SQLiteConfig struct {
	Path string `yaml:"path"`
}

type MySQLConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	Charset  string `yaml:"charset"`
}

type SessionConfig struct {
	Secret     string `yaml:"secret"`
	ExpiresIn  string `yaml:"expires_in"`
	Issuer     string `yaml:"issuer"`
	CookieName string `yaml:"cookie_name"`
}

type SecurityConfig struct {
	// PasswordScheme selects how stored password digests are computed:
	// "bcrypt" (default) or "sha1" for stores written by the legacy
	// initializer. The sha1 scheme is unsalted and fast to brute-force;
	// it exists only for compatibility.
	PasswordScheme string `yaml:"password_scheme"`
	BcryptCost     int    `yaml:"bcrypt_cost"`
}

type WebcamConfig struct {
	BackendURL string `yaml:"backend_url"`
	Timeout    string `yaml:"timeout"`
}

type DefaultUserConfig struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Role     string `yaml:"role"`
}

// RequestTimeout parses the webcam timeout, falling back to 10 seconds.
func (w WebcamConfig) RequestTimeout() time.Duration {
	d, err := time.ParseDuration(w.Timeout)
	if err != nil || d <= 0 {
		return 10 * time.Second
	}
	return d
}

// TTL parses the session lifetime, falling back to 24 hours.
func (s SessionConfig) TTL() time.Duration {
	d, err := time.ParseDuration(s.ExpiresIn)
	if err != nil || d <= 0 {
		return 24 * time.Hour
	}
	return d
}

// Load reads the configuration file and environment variables
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(&cfg)
	applyEnvOverrides(&cfg)

	// Ensure data directory exists for SQLite
	if cfg.Database.Type == "sqlite" {
		dataDir := filepath.Dir(cfg.Database.SQLite.Path)
		if err := os.MkdirAll(dataDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	// Validate MySQL configuration if MySQL is selected
	if cfg.Database.Type == "mysql" {
		if cfg.Database.MySQL.Username == "" {
			return nil, fmt.Errorf("MySQL username is required")
		}
		if cfg.Database.MySQL.Database == "" {
			return nil, fmt.Errorf("MySQL database name is required")
		}
	}

	if cfg.Session.Secret == "" {
		return nil, fmt.Errorf("session secret is required")
	}

	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "0.0.0.0"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 5000
	}
	if cfg.Database.Type == "" {
		cfg.Database.Type = "sqlite"
	}
	if cfg.Database.SQLite.Path == "" {
		cfg.Database.SQLite.Path = "data/farm_management.db"
	}
	if cfg.Session.ExpiresIn == "" {
		cfg.Session.ExpiresIn = "24h"
	}
	if cfg.Session.Issuer == "" {
		cfg.Session.Issuer = "farmpanel"
	}
	if cfg.Session.CookieName == "" {
		cfg.Session.CookieName = "farm_session"
	}
	if cfg.Security.PasswordScheme == "" {
		cfg.Security.PasswordScheme = "bcrypt"
	}
	if cfg.Security.BcryptCost == 0 {
		cfg.Security.BcryptCost = 12
	}
	if cfg.Webcam.BackendURL == "" {
		cfg.Webcam.BackendURL = "http://localhost:8081"
	}
	if cfg.Webcam.Timeout == "" {
		cfg.Webcam.Timeout = "10s"
	}
}

func applyEnvOverrides(cfg *Config) {
	if secret := os.Getenv("FARMPANEL_SESSION_SECRET"); secret != "" {
		cfg.Session.Secret = secret
	}

	if dbType := os.Getenv("FARMPANEL_DB_TYPE"); dbType != "" {
		cfg.Database.Type = dbType
	}

	if dbPath := os.Getenv("FARMPANEL_DB_PATH"); dbPath != "" {
		cfg.Database.SQLite.Path = dbPath
	}

	if mysqlHost := os.Getenv("FARMPANEL_MYSQL_HOST"); mysqlHost != "" {
		cfg.Database.MySQL.Host = mysqlHost
	}

	if mysqlUser := os.Getenv("FARMPANEL_MYSQL_USER"); mysqlUser != "" {
		cfg.Database.MySQL.Username = mysqlUser
	}

	if mysqlPass := os.Getenv("FARMPANEL_MYSQL_PASSWORD"); mysqlPass != "" {
		cfg.Database.MySQL.Password = mysqlPass
	}

	if mysqlDB := os.Getenv("FARMPANEL_MYSQL_DATABASE"); mysqlDB != "" {
		cfg.Database.MySQL.Database = mysqlDB
	}

	if backendURL := os.Getenv("FARMPANEL_WEBCAM_BACKEND_URL"); backendURL != "" {
		cfg.Webcam.BackendURL = backendURL
	}
}
