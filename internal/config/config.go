package config

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	Journal Journal `mapstructure:"journal"`
	Server  Server  `mapstructure:"server"`
	UI      UI      `mapstructure:"ui"`
	Logger  Logger  `mapstructure:"logger"`
}

// Journal holds the configuration for the remote trade API.
type Journal struct {
	BaseURL        string        `mapstructure:"base_url"`
	Timeout        time.Duration `mapstructure:"timeout"`
	RateLimit      float64       `mapstructure:"rate_limit"`
	RateLimitBurst int           `mapstructure:"rate_limit_burst"`
}

// Server holds the configuration for the web server.
type Server struct {
	Port int `mapstructure:"port"`
}

// UI holds how long notices stay on screen before they dismiss themselves.
type UI struct {
	ListingNotice time.Duration `mapstructure:"listing_notice"`
	FormNotice    time.Duration `mapstructure:"form_notice"`
}

// Logger holds the configuration for the logger.
type Logger struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// LoadConfig reads configuration from file or environment variables.
// A missing config file is not an error; defaults and the environment apply.
func LoadConfig(path string) (config Config, err error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config") // name of config file (without extension)
	v.SetConfigType("yml")

	// Allow environment variables to override config file
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err = v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return
		}
		err = nil
	}

	err = v.Unmarshal(&config)
	return
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("journal.base_url", "https://trade-cd4a.onrender.com")
	v.SetDefault("journal.timeout", 15*time.Second)
	v.SetDefault("journal.rate_limit", 5)       // requests per second
	v.SetDefault("journal.rate_limit_burst", 5) // burst size
	v.SetDefault("server.port", 8080)
	v.SetDefault("ui.listing_notice", 3*time.Second)
	v.SetDefault("ui.form_notice", 6*time.Second)
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
}
