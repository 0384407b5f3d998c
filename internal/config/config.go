package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strings"

	"github.com/caarlos0/env/v9"
	"github.com/go-sql-driver/mysql"
	"github.com/hashicorp/go-multierror"
	"github.com/lib/pq"
	"gopkg.in/yaml.v3"
)

// Supported database drivers.
const (
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
	DriverSQLite   = "sqlite"
)

const (
	defaultPort          = 8080
	defaultModel         = "gpt-4o-mini"
	defaultMaxTokens     = 1024
	defaultSQLitePath    = "promptlens.db"
	defaultPreviewMaxLen = 200
)

type Config struct {
	Server struct {
		Port           int      `yaml:"port" env:"SERVER_PORT"`
		AllowedOrigins []string `yaml:"allowedOrigins" env:"SERVER_ALLOWED_ORIGINS" envSeparator:","`
	} `yaml:"server"`

	Log struct {
		Level string `yaml:"level" env:"LOG_LEVEL"`
	} `yaml:"log"`

	// Model is any OpenAI-compatible vision chat endpoint.
	Model struct {
		APIKey    string `yaml:"apiKey" env:"OPENAI_API_KEY"`
		BaseURL   string `yaml:"baseURL" env:"OPENAI_BASE_URL"`
		Name      string `yaml:"name" env:"OPENAI_MODEL"`
		MaxTokens int    `yaml:"maxTokens" env:"OPENAI_MAX_TOKENS"`
	} `yaml:"model"`

	Database struct {
		Driver   string `yaml:"driver" env:"DATABASE_DRIVER"`
		URL      string `yaml:"url" env:"DATABASE_URL"`
		Host     string `yaml:"host" env:"DB_HOST"`
		Port     int    `yaml:"port" env:"DB_PORT"`
		User     string `yaml:"user" env:"DB_USER"`
		Password string `yaml:"password" env:"DB_PASSWORD"`
		Name     string `yaml:"name" env:"DB_NAME"`
	} `yaml:"database"`

	Minio struct {
		Enabled    bool   `yaml:"enabled" env:"MINIO_ENABLED"`
		Endpoint   string `yaml:"endpoint" env:"MINIO_ENDPOINT"`
		AccessKey  string `yaml:"accessKey" env:"MINIO_ACCESS_KEY"`
		SecretKey  string `yaml:"secretKey" env:"MINIO_SECRET_KEY"`
		BucketName string `yaml:"bucketName" env:"MINIO_BUCKET"`
		Region     string `yaml:"region" env:"MINIO_REGION"`
		UseSSL     bool   `yaml:"useSSL" env:"MINIO_USE_SSL"`
		PublicURL  string `yaml:"publicURL" env:"MINIO_PUBLIC_URL"`
	} `yaml:"minio"`

	History struct {
		// PreviewMaxLen caps stored image_url length in runes. 0 means the
		// default, a negative value disables truncation.
		PreviewMaxLen int `yaml:"previewMaxLen" env:"HISTORY_PREVIEW_MAX_LEN"`
	} `yaml:"history"`
}

// Load baca file config.yaml, lalu override dari environment.
// A missing file is fine; everything can come from the environment.
func Load(path string) (*Config, error) {
	var cfg Config
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist):
	default:
		return nil, err
	}

	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parsing env config: %w", err)
	}
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = defaultPort
	}
	if len(c.Server.AllowedOrigins) == 0 {
		c.Server.AllowedOrigins = []string{"*"}
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Model.Name == "" {
		c.Model.Name = defaultModel
	}
	if c.Model.MaxTokens == 0 {
		c.Model.MaxTokens = defaultMaxTokens
	}
	if c.Database.Driver == "" {
		c.Database.Driver = DriverSQLite
	}
	if c.History.PreviewMaxLen == 0 {
		c.History.PreviewMaxLen = defaultPreviewMaxLen
	}
}

// Validate collects every configuration problem. A missing model API key is
// not one of them: the analyze endpoint reports it per request.
func (c *Config) Validate() error {
	var result *multierror.Error

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		result = multierror.Append(result, fmt.Errorf("server.port %d out of range", c.Server.Port))
	}
	if c.Model.MaxTokens < 0 {
		result = multierror.Append(result, fmt.Errorf("model.maxTokens must be positive"))
	}

	switch c.Database.Driver {
	case DriverSQLite:
		if err := checkURLMatchesDriver(c.Database.Driver, c.Database.URL); err != nil {
			result = multierror.Append(result, err)
		}
	case DriverPostgres, DriverMySQL:
		if c.Database.URL == "" && (c.Database.Host == "" || c.Database.Name == "") {
			result = multierror.Append(result, fmt.Errorf("database.url or database.host and database.name are required for %s", c.Database.Driver))
		}
		if err := checkURLMatchesDriver(c.Database.Driver, c.Database.URL); err != nil {
			result = multierror.Append(result, err)
		}
	default:
		result = multierror.Append(result, fmt.Errorf("unsupported database.driver %q", c.Database.Driver))
	}

	if c.Minio.Enabled {
		if c.Minio.Endpoint == "" {
			result = multierror.Append(result, errors.New("minio.endpoint is required when minio is enabled"))
		}
		if c.Minio.BucketName == "" {
			result = multierror.Append(result, errors.New("minio.bucketName is required when minio is enabled"))
		}
		if c.Minio.AccessKey == "" || c.Minio.SecretKey == "" {
			result = multierror.Append(result, errors.New("minio.accessKey and minio.secretKey are required when minio is enabled"))
		}
	}

	return result.ErrorOrNil()
}

// ModelConfigured reports whether the model credential is present.
func (c *Config) ModelConfigured() bool { return c.Model.APIKey != "" }

// checkURLMatchesDriver rejects a database.url that belongs to another
// driver, e.g. a sqlite file path left in the file while DATABASE_DRIVER
// switches to postgres.
func checkURLMatchesDriver(driver, raw string) error {
	if raw == "" {
		return nil
	}
	switch driver {
	case DriverPostgres:
		if strings.Contains(raw, "://") {
			if _, err := pq.ParseURL(raw); err != nil {
				return fmt.Errorf("database.url is not a postgres URL: %w", err)
			}
			return nil
		}
		if !strings.Contains(raw, "=") {
			return fmt.Errorf("database.url %q is not a postgres DSN", raw)
		}
	case DriverMySQL:
		if _, err := mysql.ParseDSN(raw); err != nil {
			return fmt.Errorf("database.url is not a mysql DSN: %w", err)
		}
	case DriverSQLite:
		if strings.HasPrefix(raw, "postgres://") || strings.HasPrefix(raw, "postgresql://") ||
			strings.Contains(raw, "@tcp(") || strings.Contains(raw, "@unix(") {
			return fmt.Errorf("database.url %q is not a sqlite path", raw)
		}
	}
	return nil
}

// MySQLDSN builds a go-sql-driver DSN. A supplied url keeps its settings but
// always gets parseTime so created_at scans into time.Time.
func (c *Config) MySQLDSN() string {
	if c.Database.URL != "" {
		dsn, err := mysql.ParseDSN(c.Database.URL)
		if err != nil {
			return c.Database.URL
		}
		dsn.ParseTime = true
		return dsn.FormatDSN()
	}
	port := c.Database.Port
	if port == 0 {
		port = 3306
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true&charset=utf8mb4&loc=UTC",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		port,
		c.Database.Name,
	)
}

// PostgresDSN builds a lib/pq connection URL.
func (c *Config) PostgresDSN() string {
	if c.Database.URL != "" {
		return c.Database.URL
	}
	port := c.Database.Port
	if port == 0 {
		port = 5432
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.Database.User, c.Database.Password),
		Host:     fmt.Sprintf("%s:%d", c.Database.Host, port),
		Path:     "/" + c.Database.Name,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}

// SQLiteDSN returns the database file path (or ":memory:").
func (c *Config) SQLiteDSN() string {
	if c.Database.URL != "" {
		return c.Database.URL
	}
	return defaultSQLitePath
}
