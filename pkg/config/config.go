package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config groups application configuration, read via Viper from environment
// variables with an optional .env file as fallback.
type Config struct {
	App  AppConfig
	DB   DBConfig
	JWT  JWTConfig
	HTTP HTTPConfig
}

type AppConfig struct {
	Env      string // development, production
	Name     string
	Timezone string
	LogLevel string
}

// DBConfig locates the embedded SQLite database file.
type DBConfig struct {
	Path string
}

type JWTConfig struct {
	Secret            string
	ExpirationMinutes int
	Issuer            string
}

type HTTPConfig struct {
	Host string
	Port int
}

// Addr returns the listen address (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Load reads configuration from environment variables, falling back to an
// optional .env file in the working directory. Env vars take priority.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // missing file is fine

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("APP_ENV", "development")
	v.SetDefault("APP_NAME", "sindigo")
	v.SetDefault("TZ", "America/Maceio")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("DB_PATH", filepath.Join("data", "sindigo.db"))
	v.SetDefault("JWT_SECRET", "change_me_in_production")
	v.SetDefault("JWT_EXPIRATION_MINUTES", 480)
	v.SetDefault("JWT_ISSUER", "sindigo")
	v.SetDefault("HTTP_HOST", "0.0.0.0")
	v.SetDefault("HTTP_PORT", 8080)

	cfg := &Config{
		App: AppConfig{
			Env:      v.GetString("APP_ENV"),
			Name:     v.GetString("APP_NAME"),
			Timezone: v.GetString("TZ"),
			LogLevel: v.GetString("LOG_LEVEL"),
		},
		DB: DBConfig{
			Path: v.GetString("DB_PATH"),
		},
		JWT: JWTConfig{
			Secret:            v.GetString("JWT_SECRET"),
			ExpirationMinutes: v.GetInt("JWT_EXPIRATION_MINUTES"),
			Issuer:            v.GetString("JWT_ISSUER"),
		},
		HTTP: HTTPConfig{
			Host: v.GetString("HTTP_HOST"),
			Port: v.GetInt("HTTP_PORT"),
		},
	}

	return cfg, nil
}
