package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const envPrefix = "SALES_ATLAS"

type Config struct {
	API        APIConfig    `mapstructure:"api"`
	Server     ServerConfig `mapstructure:"server"`
	Board      BoardConfig  `mapstructure:"board"`
	BrandsFile string       `mapstructure:"brands_file"`
	Locale     string       `mapstructure:"locale"`
}

type APIConfig struct {
	BaseURL string        `mapstructure:"base_url" validate:"required"`
	Timeout time.Duration `mapstructure:"timeout"`
	Cookie  string        `mapstructure:"cookie"`
}

type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            string        `mapstructure:"port"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type BoardConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.base_url", "http://127.0.0.1:5000")
	v.SetDefault("api.timeout", "30s")
	v.SetDefault("api.cookie", "")
	v.SetDefault("server.host", "127.0.0.1")
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.shutdown_timeout", "10s")
	v.SetDefault("board.ttl", "30m")
	v.SetDefault("brands_file", "")
	v.SetDefault("locale", "ko")
}

// LoadConfig reads the configuration file at path, if any, and applies
// SALES_ATLAS_* environment overrides (SALES_ATLAS_API_BASE_URL, ...). The
// plain SERVER_HOST and SERVER_PORT variables are honoured as well.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("server.host", envPrefix+"_SERVER_HOST", "SERVER_HOST"); err != nil {
		return nil, fmt.Errorf("failed to bind server host: %w", err)
	}
	if err := v.BindEnv("server.port", envPrefix+"_SERVER_PORT", "SERVER_PORT"); err != nil {
		return nil, fmt.Errorf("failed to bind server port: %w", err)
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.API.BaseURL == "" {
		return nil, fmt.Errorf("api.base_url is required")
	}
	return &cfg, nil
}
