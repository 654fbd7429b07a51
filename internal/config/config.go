package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds the application configuration.
type Config struct {
	Port    string `mapstructure:"PORT"`
	GinMode string `mapstructure:"GIN_MODE"`

	LogLevel string `mapstructure:"LOG_LEVEL"`
	LogFile  string `mapstructure:"LOG_FILE"`

	// StorageDriver selects the persistence backend: file, sqlite,
	// postgres or redis.
	StorageDriver string `mapstructure:"STORAGE_DRIVER"`
	StoragePath   string `mapstructure:"STORAGE_PATH"`
	DatabaseURL   string `mapstructure:"DATABASE_URL"`
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`

	JWTSecret    string `mapstructure:"JWT_SECRET"`
	AuthPassword string `mapstructure:"AUTH_PASSWORD"`

	// RAWGAPIKey enables the real search provider; the mock catalog is
	// used when it is empty.
	RAWGAPIKey  string `mapstructure:"RAWG_API_KEY"`
	RAWGBaseURL string `mapstructure:"RAWG_BASE_URL"`

	CORSOrigins []string `mapstructure:"CORS_ORIGINS"`
}

// Load reads configuration from a .env file and environment variables.
func Load() (*Config, error) {
	viper.AddConfigPath(".")
	viper.SetConfigName(".env")
	viper.SetConfigType("env")

	viper.AutomaticEnv()

	// Every key needs a default so AutomaticEnv can see it during Unmarshal.
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("GIN_MODE", "debug")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_FILE", "logs/app.log")
	viper.SetDefault("STORAGE_DRIVER", "file")
	viper.SetDefault("STORAGE_PATH", "data/library.json")
	viper.SetDefault("DATABASE_URL", "")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("JWT_SECRET", "")
	viper.SetDefault("AUTH_PASSWORD", "")
	viper.SetDefault("RAWG_API_KEY", "")
	viper.SetDefault("RAWG_BASE_URL", "")
	viper.SetDefault("CORS_ORIGINS", []string{"http://localhost:3000"})

	if err := viper.ReadInConfig(); err != nil {
		log.Println("Warning: .env file not found, loading from environment variables")
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
