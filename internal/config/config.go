package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type Config struct {
	Server struct {
		Addr string `mapstructure:"addr"`
		Port string `mapstructure:"port"`
	} `mapstructure:"server"`

	Database struct {
		// DSN for the PostgreSQL note store. Empty means the in-memory store.
		DSN string `mapstructure:"dsn"`
	} `mapstructure:"database"`

	Workspace struct {
		Token             string  `mapstructure:"token"`
		DatabaseID        string  `mapstructure:"database_id"`
		RequestsPerSecond float64 `mapstructure:"requests_per_second"`
	} `mapstructure:"workspace"`

	Categorization struct {
		Provider     string `mapstructure:"provider"` // "openai", "gemini" or "none"
		Model        string `mapstructure:"model"`
		OpenaiApiKey string `mapstructure:"openai_api_key"`
		GoogleApiKey string `mapstructure:"google_api_key"`
	} `mapstructure:"categorization"`
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	viper.AutomaticEnv()
	// Common keys people already have exported; bind them explicitly so no
	// prefix convention is needed.
	viper.BindEnv("categorization.openai_api_key", "OPENAI_API_KEY")
	viper.BindEnv("categorization.google_api_key", "GEMINI_API_KEY")
	viper.BindEnv("workspace.token", "NOTION_TOKEN")
	viper.BindEnv("workspace.database_id", "NOTION_DATABASE_ID")

	viper.SetDefault("server.addr", "127.0.0.1")
	viper.SetDefault("server.port", "8000")
	viper.SetDefault("workspace.requests_per_second", 3.0)
	viper.SetDefault("categorization.provider", "none")

	if err := viper.ReadInConfig(); err != nil {
		// Missing config file is fine; env vars and defaults may be enough.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}
	return &config, nil
}
