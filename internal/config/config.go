package config

import (
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	DB         DBConfig         `mapstructure:"db"`
	Storage    StorageConfig    `mapstructure:"storage"`
	Session    SessionConfig    `mapstructure:"session"`
	Admin      AdminConfig      `mapstructure:"admin"`
	Log        LogConfig        `mapstructure:"log"`
	Translator TranslatorConfig `mapstructure:"translator"`
	Contact    ContactConfig    `mapstructure:"contact"`
}

// ServerConfig holds server-specific configuration.
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// DBConfig holds database-specific configuration.
type DBConfig struct {
	Driver string `mapstructure:"driver"` // "mysql" or "sqlite"
	DSN    string `mapstructure:"dsn"`
}

// StorageConfig selects the storage backend for the application.
// "db" uses the relational store configured in DBConfig; "memory" runs
// against an in-process store and needs no database at all.
type StorageConfig struct {
	Backend string `mapstructure:"backend"`
}

// SessionConfig holds session cookie configuration.
type SessionConfig struct {
	SecretKey string `mapstructure:"secretkey"`
	Lifetime  int    `mapstructure:"lifetime"` // hours
}

// AdminConfig holds the bootstrap admin credentials.
type AdminConfig struct {
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `mapstructure:"level"`  // e.g., "debug", "info", "warn", "error"
	Format string `mapstructure:"format"` // e.g., "json", "console"
}

// TranslatorConfig holds the settings-translation API client configuration.
// Translation is best-effort: an empty APIKey disables the feature.
type TranslatorConfig struct {
	BaseURL string `mapstructure:"base_url"`
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
}

// ContactConfig holds contact-form intake configuration.
type ContactConfig struct {
	NotifyEmail string `mapstructure:"notify_email"`
}

// LoadConfig reads configuration from file and environment variables.
func LoadConfig() (*Config, error) {
	// A local .env file is a development convenience only.
	_ = godotenv.Load()

	// Set default values. Every struct key needs a default (or an explicit
	// BindEnv): viper.Unmarshal only surfaces keys it already knows about,
	// so an env-only key without a default would never reach the struct.
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("server.allowed_origins", []string{"*"})
	viper.SetDefault("db.driver", "mysql")
	viper.SetDefault("db.dsn", "")
	viper.SetDefault("storage.backend", "db")
	viper.SetDefault("session.secretkey", "CHANGE_ME_IN_PRODUCTION_SECRET!!")
	viper.SetDefault("session.lifetime", 24)
	viper.SetDefault("admin.username", "")
	viper.SetDefault("admin.password", "")
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "console")
	viper.SetDefault("translator.base_url", "https://api.openai.com/v1")
	viper.SetDefault("translator.api_key", "")
	viper.SetDefault("translator.model", "gpt-4o-mini")
	viper.SetDefault("contact.notify_email", "")

	// Set up viper to read from config file
	viper.SetConfigName("config")
	viper.SetConfigType("yml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath("/etc/go-sites-app/")

	// Attempt to read the config file
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Config file was found but another error was produced
			return nil, err
		}
		// Config file not found; proceed with defaults and env vars
	}

	// Set up viper to read from environment variables
	viper.SetEnvPrefix("SITES")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Unmarshal the config into the Config struct
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
