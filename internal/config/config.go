package config

import (
	"github.com/spf13/viper"
)

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	// Server
	Port int    `mapstructure:"PORT"`
	Env  string `mapstructure:"APP_ENV"` // development | production

	// Remote inventory backend
	BackendURL string `mapstructure:"BACKEND_URL"`
	// BackendToken is an optional static bearer token; when empty the token
	// obtained at login is used instead.
	BackendToken      string `mapstructure:"BACKEND_TOKEN"`
	BackendTimeoutSec int    `mapstructure:"BACKEND_TIMEOUT_SEC"`

	// Session cookies
	SessionSecret string `mapstructure:"SESSION_SECRET"`

	// Reports
	PDFStoragePath string `mapstructure:"PDF_STORAGE_PATH"`
}

// Load reads configuration from environment variables (and optional .env file).
func Load() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	// Sensible defaults for development
	viper.SetDefault("PORT", 8080)
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("BACKEND_URL", "https://backend-inventario-balcon.onrender.com")
	viper.SetDefault("BACKEND_TIMEOUT_SEC", 30)
	viper.SetDefault("SESSION_SECRET", "inventario-el-balcon-dev-secret")
	viper.SetDefault("PDF_STORAGE_PATH", "/tmp/elbalcon/pdfs")

	// Optional .env file for local development — does not fail if missing
	_ = viper.ReadInConfig()

	cfg := &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
