package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Storage   StorageConfig   `mapstructure:"storage"`
	Advisor   AdvisorConfig   `mapstructure:"advisor"`
	Remote    RemoteConfig    `mapstructure:"remote"`
	Assistant AssistantConfig `mapstructure:"assistant"`
	Cleanup   CleanupConfig   `mapstructure:"cleanup"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// StorageConfig selects and configures the session-store backend
type StorageConfig struct {
	Backend string        `mapstructure:"backend"` // file, sqlite or redis
	File    FileConfig    `mapstructure:"file"`
	SQLite  SQLiteConfig  `mapstructure:"sqlite"`
	Redis   RedisConfig   `mapstructure:"redis"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type FileConfig struct {
	Dir string `mapstructure:"dir"`
}

type SQLiteConfig struct {
	Path string `mapstructure:"path"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// AdvisorConfig configures answer resolution: the remote ask endpoint,
// the optional Gemini provider and the local fallback responder.
type AdvisorConfig struct {
	AskURL   string         `mapstructure:"ask_url"`
	Timeout  time.Duration  `mapstructure:"timeout"`
	Retries  int            `mapstructure:"retries"`
	Gemini   GeminiConfig   `mapstructure:"gemini"`
	Fallback FallbackConfig `mapstructure:"fallback"`
}

type GeminiConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

type FallbackConfig struct {
	MinDelay time.Duration `mapstructure:"min_delay"`
	MaxDelay time.Duration `mapstructure:"max_delay"`
}

// RemoteConfig points at the backend history endpoints used
// opportunistically for session listing and clear-all.
type RemoteConfig struct {
	HistoryURL string        `mapstructure:"history_url"`
	ClearURL   string        `mapstructure:"clear_url"`
	Timeout    time.Duration `mapstructure:"timeout"`
}

type AssistantConfig struct {
	Language string `mapstructure:"language"` // en or hi
}

type CleanupConfig struct {
	OnStart    bool `mapstructure:"on_start"`
	MaxAgeDays int  `mapstructure:"max_age_days"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from file and environment variables
func Load() (*Config, error) {
	v := viper.New()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./configs/config.yaml"
	}

	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			if _, statErr := os.Stat(configPath); statErr == nil {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
		// Config file not found, use defaults and env vars
	}

	v.AutomaticEnv()
	bindEnvVars(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	// Server
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.shutdown_timeout", "10s")

	// Storage
	v.SetDefault("storage.backend", "file")
	v.SetDefault("storage.file.dir", "./data")
	v.SetDefault("storage.sqlite.path", "./data/chat.db")
	v.SetDefault("storage.redis.host", "localhost")
	v.SetDefault("storage.redis.port", 6379)
	v.SetDefault("storage.redis.db", 0)
	v.SetDefault("storage.timeout", "5s")

	// Advisor
	v.SetDefault("advisor.timeout", "30s")
	v.SetDefault("advisor.retries", 1)
	v.SetDefault("advisor.gemini.model", "gemini-1.5-flash")
	v.SetDefault("advisor.fallback.min_delay", "1s")
	v.SetDefault("advisor.fallback.max_delay", "3s")

	// Remote history
	v.SetDefault("remote.timeout", "15s")

	// Assistant
	v.SetDefault("assistant.language", "en")

	// Cleanup
	v.SetDefault("cleanup.on_start", true)
	v.SetDefault("cleanup.max_age_days", 90)

	// Logging
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}

func bindEnvVars(v *viper.Viper) {
	// Storage
	v.BindEnv("storage.backend", "STORAGE_BACKEND")
	v.BindEnv("storage.file.dir", "STORAGE_DIR")
	v.BindEnv("storage.sqlite.path", "SQLITE_PATH")
	v.BindEnv("storage.redis.password", "REDIS_PASSWORD")

	// Advisor
	v.BindEnv("advisor.ask_url", "UPAJ_ASK_URL")
	v.BindEnv("advisor.gemini.api_key", "GEMINI_API_KEY")

	// Remote history
	v.BindEnv("remote.history_url", "UPAJ_HISTORY_URL")
	v.BindEnv("remote.clear_url", "UPAJ_CLEAR_URL")

	// Assistant
	v.BindEnv("assistant.language", "UPAJ_LANGUAGE")
}
