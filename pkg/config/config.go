package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Ledger   LedgerConfig
	Client   ClientConfig
	Logger   LoggerConfig
}

type LoggerConfig struct {
	Level string `yaml:"level"`
}

type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	StaticDir    string
}

type DatabaseConfig struct {
	Driver   string
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
	// Path is the SQLite database file, ":memory:" for a throwaway store.
	Path string
}

// LedgerConfig identifies the user every request is booked against.
// There is no login; the API acts on behalf of one demo user.
type LedgerConfig struct {
	UserID   string
	Username string
}

type ClientConfig struct {
	APIURL  string        `yaml:"api_url"`
	Timeout time.Duration `yaml:"timeout"`
}

func Load() (*Config, error) {
	// Try to load .env file from current directory or project root
	envFiles := []string{".env", "../.env", "../../.env"}
	for _, envFile := range envFiles {
		if err := godotenv.Load(envFile); err == nil {
			break
		}
	}

	readTimeout, _ := strconv.Atoi(getEnv("SERVER_READ_TIMEOUT", "30"))
	writeTimeout, _ := strconv.Atoi(getEnv("SERVER_WRITE_TIMEOUT", "30"))
	clientTimeout, _ := strconv.Atoi(getEnv("LEDGER_API_TIMEOUT", "10"))

	cfg := &Config{
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "5000"),
			ReadTimeout:  time.Duration(readTimeout) * time.Second,
			WriteTimeout: time.Duration(writeTimeout) * time.Second,
			StaticDir:    getEnv("STATIC_DIR", ""),
		},
		Database: DatabaseConfig{
			Driver:   strings.ToLower(getEnv("DB_DRIVER", DriverPostgres)),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "stock_system"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
			Path:     getEnv("DB_PATH", "stock_system.db"),
		},
		Ledger: LedgerConfig{
			UserID:   getEnv("LEDGER_USER_ID", "00000000-0000-0000-0000-000000000001"),
			Username: getEnv("LEDGER_USERNAME", "demo"),
		},
		Client: ClientConfig{
			APIURL:  getEnv("LEDGER_API_URL", "http://127.0.0.1:5000"),
			Timeout: time.Duration(clientTimeout) * time.Second,
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverPostgres:
	case DriverSQLite:
		if c.Database.Path == "" {
			return fmt.Errorf("database path cannot be empty for sqlite")
		}
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}

	if c.Ledger.UserID == "" {
		return fmt.Errorf("ledger user id cannot be empty")
	}
	if c.Client.APIURL == "" {
		return fmt.Errorf("ledger api url cannot be empty")
	}
	if c.Client.Timeout <= 0 {
		return fmt.Errorf("ledger api timeout must be greater than 0")
	}

	return nil
}

// clientFile is the layout of the CLI's optional YAML file.
type clientFile struct {
	Client ClientConfig `yaml:"client"`
	Logger LoggerConfig `yaml:"logger"`
}

// LoadClientFile overrides the client and logger sections with the
// values present in a YAML file. Absent keys keep their current value.
func (c *Config) LoadClientFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	var file clientFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("failed to parse config from YAML: %w", err)
	}

	if file.Client.APIURL != "" {
		c.Client.APIURL = file.Client.APIURL
	}
	if file.Client.Timeout > 0 {
		c.Client.Timeout = file.Client.Timeout
	}
	if file.Logger.Level != "" {
		c.Logger.Level = file.Logger.Level
	}

	return c.Validate()
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
