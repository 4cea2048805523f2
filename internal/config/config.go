package config

import (
	"fmt"
	"path/filepath"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Config struct {
	Storage    StorageConfig    `mapstructure:"storage"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Corpus     CorpusConfig     `mapstructure:"corpus"`
	Translator TranslatorConfig `mapstructure:"translator"`
	Sync       SyncConfig       `mapstructure:"sync"`
	Server     ServerConfig     `mapstructure:"server"`
	OpenAI     OpenAIConfig     `mapstructure:"openai"`
	Templates  TemplatesConfig  `mapstructure:"templates"`
	Outputs    OutputsConfig    `mapstructure:"outputs"`
}

// StorageConfig selects where the saved phrases, sync code and caches are kept.
type StorageConfig struct {
	Driver    string `mapstructure:"driver" validate:"oneof=file memory sqlite3 mysql postgres"`
	Directory string `mapstructure:"directory" validate:"required_if=Driver file"`
	Watch     bool   `mapstructure:"watch"`
}

type DatabaseConfig struct {
	Host            string            `mapstructure:"host"`
	Port            int               `mapstructure:"port"`
	Database        string            `mapstructure:"database"`
	Username        string            `mapstructure:"username"`
	Password        string            `mapstructure:"password"`
	TLS             bool              `mapstructure:"tls"`
	Params          map[string]string `mapstructure:"params"`
	Path            string            `mapstructure:"path"`
	MaxOpenConns    int               `mapstructure:"max_open_conns"`
	MaxIdleConns    int               `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int               `mapstructure:"conn_max_lifetime_seconds"`
}

type CorpusConfig struct {
	File string `mapstructure:"file" validate:"omitempty,file"`
}

type TranslatorConfig struct {
	BaseURL           string `mapstructure:"base_url" validate:"omitempty,url"`
	ImageMonthlyLimit int    `mapstructure:"image_monthly_limit" validate:"gte=0"`
}

type SyncConfig struct {
	BaseURL       string `mapstructure:"base_url" validate:"omitempty,url"`
	RetryAttempts uint   `mapstructure:"retry_attempts"`
}

type ServerConfig struct {
	Port          int             `mapstructure:"port" validate:"gte=0,lte=65535"`
	CORS          CORSConfig      `mapstructure:"cors"`
	RateLimit     RateLimitConfig `mapstructure:"rate_limit"`
	MaxImageBytes int64           `mapstructure:"max_image_bytes" validate:"gt=0"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type RateLimitConfig struct {
	RequestsPerSecond float64 `mapstructure:"requests_per_second" validate:"gte=0"`
	Burst             int     `mapstructure:"burst" validate:"gte=0"`
}

type OpenAIConfig struct {
	APIKey        string `mapstructure:"api_key"`
	Model         string `mapstructure:"model"`
	RetryAttempts uint   `mapstructure:"retry_attempts"`
}

type TemplatesConfig struct {
	PhrasebookTemplate string `mapstructure:"phrasebook_template" validate:"omitempty,file"`
}

type OutputsConfig struct {
	Directory string `mapstructure:"directory"`
}

type ConfigLoader struct {
	viper      *viper.Viper
	validator  *validator.Validate
	translator ut.Translator
}

func NewConfigLoader(configFile string) (*ConfigLoader, error) {
	validate, trans, err := newValidator()
	if err != nil {
		return nil, fmt.Errorf("failed to create new validator: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/phrasebook")
	}

	return &ConfigLoader{
		viper:      v,
		validator:  validate,
		translator: trans,
	}, nil
}

func (loader *ConfigLoader) Load() (*Config, error) {
	v := loader.viper

	v.SetDefault("storage.driver", "file")
	v.SetDefault("storage.directory", filepath.Join("data", "storage"))
	v.SetDefault("storage.watch", true)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 3306)
	v.SetDefault("database.database", "phrasebook")
	v.SetDefault("database.username", "user")
	v.SetDefault("database.path", filepath.Join("data", "phrasebook.db"))
	// Corpus is optional - if not specified, the embedded corpus is used
	v.SetDefault("corpus.file", "")
	v.SetDefault("translator.base_url", "http://localhost:8080")
	v.SetDefault("translator.image_monthly_limit", 30)
	v.SetDefault("sync.base_url", "http://localhost:8080")
	v.SetDefault("sync.retry_attempts", 2)
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.cors.allowed_origins", []string{"http://localhost:5173"})
	v.SetDefault("server.rate_limit.requests_per_second", 5)
	v.SetDefault("server.rate_limit.burst", 10)
	v.SetDefault("server.max_image_bytes", 10<<20)
	v.SetDefault("openai.model", "gpt-4o-mini")
	v.SetDefault("openai.retry_attempts", 2)
	v.SetDefault("templates.phrasebook_template", "")
	v.SetDefault("outputs.directory", filepath.Join("outputs"))

	// Bind OpenAI config to environment variables only (not from config file)
	if err := v.BindEnv("openai.api_key", "OPENAI_API_KEY"); err != nil {
		return nil, fmt.Errorf("failed to bind OPENAI_API_KEY environment variable: %w", err)
	}
	if err := v.BindEnv("openai.model", "OPENAI_MODEL"); err != nil {
		return nil, fmt.Errorf("failed to bind OPENAI_MODEL environment variable: %w", err)
	}

	if err := v.BindEnv("translator.base_url", "PHRASEBOOK_API_BASE_URL"); err != nil {
		return nil, fmt.Errorf("failed to bind PHRASEBOOK_API_BASE_URL environment variable: %w", err)
	}
	if err := v.BindEnv("sync.base_url", "PHRASEBOOK_SYNC_BASE_URL"); err != nil {
		return nil, fmt.Errorf("failed to bind PHRASEBOOK_SYNC_BASE_URL environment variable: %w", err)
	}

	// Bind database password to environment variable
	if err := v.BindEnv("database.password", "DB_PASSWORD"); err != nil {
		return nil, fmt.Errorf("failed to bind DB_PASSWORD environment variable: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("configuration file found but could not be read: %w. Please check the file format and permissions", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration format: %w", err)
	}

	if err := loader.validator.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %s", TranslateError(err, loader.translator))
	}

	return &cfg, nil
}
