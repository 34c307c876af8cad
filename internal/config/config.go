// Package config provides configuration loading and validation for the resume builder.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g. RESUME_BUILDER_STORE_BACKEND
const EnvPrefix = "RESUME_BUILDER"

// ConfigName is the base name of the optional config file
const ConfigName = "resume_builder"

// Store backends
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Page engines
const (
	EngineFPDF   = "fpdf"
	EngineChrome = "chrome"
)

// Config holds all configuration for the CLI and the HTTP server
type Config struct {
	StateDir string       `mapstructure:"state_dir" validate:"required"`
	Verbose  bool         `mapstructure:"verbose"`
	Store    StoreConfig  `mapstructure:"store"`
	Export   ExportConfig `mapstructure:"export"`
	Server   ServerConfig `mapstructure:"server"`
	Auth     AuthConfig   `mapstructure:"auth"`
}

// StoreConfig selects where builder snapshots are persisted
type StoreConfig struct {
	Backend string `mapstructure:"backend" validate:"oneof=memory file sqlite"`
	Path    string `mapstructure:"path"`
	Key     string `mapstructure:"key" validate:"required"`
}

// ExportConfig controls document generation
type ExportConfig struct {
	Dir           string        `mapstructure:"dir" validate:"required"`
	Engine        string        `mapstructure:"engine" validate:"oneof=fpdf chrome"`
	ChromePath    string        `mapstructure:"chrome_path"`
	ChromeTimeout time.Duration `mapstructure:"chrome_timeout" validate:"min=0"`
	PreviewLimit  int           `mapstructure:"preview_limit" validate:"min=1"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port           int      `mapstructure:"port" validate:"min=1,max=65535"`
	DatabaseURL    string   `mapstructure:"database_url"`
	RateLimitRPS   float64  `mapstructure:"rate_limit_rps" validate:"gt=0"`
	RateLimitBurst int      `mapstructure:"rate_limit_burst" validate:"min=1"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// AuthConfig holds the raw auth settings. Use JWT and Password to get
// normalized configurations.
type AuthConfig struct {
	JWTSecret          string `mapstructure:"jwt_secret"`
	JWTExpirationHours int    `mapstructure:"jwt_expiration_hours"`
	BcryptCost         int    `mapstructure:"bcrypt_cost"`
	PasswordPepper     string `mapstructure:"password_pepper"`
}

var validate = validator.New()

// Load reads configuration from defaults, an optional YAML file and the
// environment, in increasing order of precedence. An empty path searches the
// working directory and the user config directory for resume_builder.yaml.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigType("yaml")
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(ConfigName)
		v.AddConfigPath(".")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "resume-builder"))
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindLegacyEnv(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.fillDerived()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("state_dir", defaultStateDir())
	v.SetDefault("verbose", false)

	v.SetDefault("store.backend", BackendFile)
	v.SetDefault("store.path", "")
	v.SetDefault("store.key", "resume-builder-state")

	v.SetDefault("export.dir", ".")
	v.SetDefault("export.engine", EngineFPDF)
	v.SetDefault("export.chrome_path", "")
	v.SetDefault("export.chrome_timeout", 30*time.Second)
	v.SetDefault("export.preview_limit", 32)

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.database_url", "")
	v.SetDefault("server.rate_limit_rps", 10.0)
	v.SetDefault("server.rate_limit_burst", 20)
	v.SetDefault("server.allowed_origins", []string{"*"})

	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.jwt_expiration_hours", 24)
	v.SetDefault("auth.bcrypt_cost", 12)
	v.SetDefault("auth.password_pepper", "")
}

// bindLegacyEnv keeps the unprefixed variable names deployments already set.
func bindLegacyEnv(v *viper.Viper) {
	_ = v.BindEnv("server.database_url", EnvPrefix+"_SERVER_DATABASE_URL", "DATABASE_URL")
	_ = v.BindEnv("server.port", EnvPrefix+"_SERVER_PORT", "PORT")
	_ = v.BindEnv("auth.jwt_secret", EnvPrefix+"_AUTH_JWT_SECRET", "JWT_SECRET")
	_ = v.BindEnv("auth.jwt_expiration_hours", EnvPrefix+"_AUTH_JWT_EXPIRATION_HOURS", "JWT_EXPIRATION_HOURS")
	_ = v.BindEnv("auth.bcrypt_cost", EnvPrefix+"_AUTH_BCRYPT_COST", "BCRYPT_COST")
	_ = v.BindEnv("auth.password_pepper", EnvPrefix+"_AUTH_PASSWORD_PEPPER", "PASSWORD_PEPPER")
}

func defaultStateDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "resume-builder")
	}
	return ".resume-builder"
}

// fillDerived sets the store path from the state directory when it is not
// configured explicitly.
func (c *Config) fillDerived() {
	if c.Store.Path != "" {
		return
	}
	switch c.Store.Backend {
	case BackendFile:
		c.Store.Path = filepath.Join(c.StateDir, "snapshots")
	case BackendSQLite:
		c.Store.Path = filepath.Join(c.StateDir, "builder.db")
	}
}

// Validate checks the configuration against its struct constraints
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fmt.Sprintf("%s (%s)", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("invalid config: %s", strings.Join(fields, ", "))
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Addr returns the listen address for the HTTP server
func (c ServerConfig) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
