package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"go.yaml.in/yaml/v3"

	"github.com/vadimtrunov/cinemart/internal/metadata/tmdb"
)

const (
	envPrefix      = "CINEMART"
	defaultTimeout = 15 * time.Second
)

// Config represents the main application configuration
type Config struct {
	// Metadata provider
	TMDb TMDbConfig `yaml:"tmdb"`

	// Frontends
	Telegram *TelegramConfig `yaml:"telegram,omitempty"`

	// Application settings
	App AppConfig `yaml:"app"`
}

// TMDbConfig holds TMDb API configuration
type TMDbConfig struct {
	APIKey  string        `yaml:"api_key" validate:"required"`
	BaseURL string        `yaml:"base_url,omitempty" validate:"omitempty,url"`
	Timeout time.Duration `yaml:"timeout,omitempty" validate:"gte=0"`
}

// TelegramConfig holds Telegram bot configuration
type TelegramConfig struct {
	BotToken       string  `yaml:"bot_token" validate:"required"`
	AllowedUserIDs []int64 `yaml:"allowed_user_ids,omitempty"`
}

// AppConfig holds application-level settings
type AppConfig struct {
	LogLevel string `yaml:"log_level" validate:"omitempty,oneof=debug info warn warning error"`
	LogFile  string `yaml:"log_file,omitempty"` // Rotated log file; empty = no file
}

// envOverrides lists the CINEMART_* variables that override file values.
type envOverrides struct {
	TMDbAPIKey       string        `envconfig:"TMDB_API_KEY"`
	TMDbBaseURL      string        `envconfig:"TMDB_BASE_URL"`
	TMDbTimeout      time.Duration `envconfig:"TMDB_TIMEOUT"`
	TelegramBotToken string        `envconfig:"TELEGRAM_BOT_TOKEN"`
	LogLevel         string        `envconfig:"LOG_LEVEL"`
	LogFile          string        `envconfig:"LOG_FILE"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("yaml"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Load loads configuration from a YAML file and a .env file in the working
// directory, with environment variable overrides.
func Load(path string) (*Config, error) {
	return LoadWithEnvFile(path, ".env")
}

// LoadWithEnvFile is Load with an explicit dotenv file. A missing config
// file or dotenv file is not an error: the API key may come from the environment alone.
func LoadWithEnvFile(path, envFile string) (*Config, error) {
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
	}

	var cfg Config
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	case errors.Is(err, fs.ErrNotExist):
		// Environment-only configuration.
	default:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// applyEnvOverrides overrides config values with environment variables
func (c *Config) applyEnvOverrides() error {
	var env envOverrides
	if err := envconfig.Process(envPrefix, &env); err != nil {
		return fmt.Errorf("failed to read environment: %w", err)
	}

	// TMDb
	if env.TMDbAPIKey != "" {
		c.TMDb.APIKey = env.TMDbAPIKey
	}
	if env.TMDbBaseURL != "" {
		c.TMDb.BaseURL = env.TMDbBaseURL
	}
	if env.TMDbTimeout != 0 {
		c.TMDb.Timeout = env.TMDbTimeout
	}

	// Telegram
	if env.TelegramBotToken != "" {
		if c.Telegram == nil {
			c.Telegram = &TelegramConfig{}
		}
		c.Telegram.BotToken = env.TelegramBotToken
	}

	// App
	if env.LogLevel != "" {
		c.App.LogLevel = env.LogLevel
	}
	if env.LogFile != "" {
		c.App.LogFile = env.LogFile
	}
	return nil
}

// Validate validates the configuration and fills in defaults
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return errors.New(fieldMessage(verrs[0]))
		}
		return err
	}

	// Set defaults
	if c.TMDb.BaseURL == "" {
		c.TMDb.BaseURL = tmdb.DefaultBaseURL
	}
	if c.TMDb.Timeout == 0 {
		c.TMDb.Timeout = defaultTimeout
	}
	if c.App.LogLevel == "" {
		c.App.LogLevel = "info"
	}

	return nil
}

// fieldMessage renders a validation failure using the YAML key path.
func fieldMessage(fe validator.FieldError) string {
	field := fe.Namespace()
	if _, rest, ok := strings.Cut(field, "."); ok {
		field = rest
	}
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "url":
		return fmt.Sprintf("%s must be a valid URL", field)
	case "gte":
		return fmt.Sprintf("%s must not be negative", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
