// Package config provides application configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration values loaded from file or environment variables.
// The delay values tune the simulated network latency of each operation; tests
// run with all of them at zero.
type Config struct {
	Port           string `mapstructure:"PORT"`
	RedisURL       string `mapstructure:"REDIS_URL"`
	AllowedOrigins string `mapstructure:"ALLOWED_ORIGINS"`
	Env            string `mapstructure:"APP_ENV"`

	// DemoSeed seeds the demo content generator. Zero means time-based.
	DemoSeed int64 `mapstructure:"DEMO_SEED"`

	// ExitRedirectURL is where the emergency exit points clients.
	ExitRedirectURL string `mapstructure:"EXIT_REDIRECT_URL"`

	// ExitFlushDelay is how long the emergency exit waits for the response
	// to flush before stopping the process.
	ExitFlushDelay time.Duration `mapstructure:"EXIT_FLUSH_DELAY"`

	FeedPeriod time.Duration `mapstructure:"FEED_PERIOD"`
	FeedChance float64       `mapstructure:"FEED_CHANCE"`
	NoticeTTL  time.Duration `mapstructure:"NOTICE_TTL"`

	DelayPosts         time.Duration `mapstructure:"DELAY_POSTS"`
	DelayCreatePost    time.Duration `mapstructure:"DELAY_CREATE_POST"`
	DelayLike          time.Duration `mapstructure:"DELAY_LIKE"`
	DelayComments      time.Duration `mapstructure:"DELAY_COMMENTS"`
	DelayCreateComment time.Duration `mapstructure:"DELAY_CREATE_COMMENT"`
	DelayRooms         time.Duration `mapstructure:"DELAY_ROOMS"`
	DelayJoinRoom      time.Duration `mapstructure:"DELAY_JOIN_ROOM"`
	DelayMessage       time.Duration `mapstructure:"DELAY_MESSAGE"`
	DelayResources     time.Duration `mapstructure:"DELAY_RESOURCES"`
	DelayReport        time.Duration `mapstructure:"DELAY_REPORT"`
	DelayLogout        time.Duration `mapstructure:"DELAY_LOGOUT"`

	TracingEnabled  bool    `mapstructure:"TRACING_ENABLED"`
	TracingExporter string  `mapstructure:"TRACING_EXPORTER"`
	OTLPEndpoint    string  `mapstructure:"OTLP_ENDPOINT"`
	SamplerRatio    float64 `mapstructure:"SAMPLER_RATIO"`
}

// LoadConfig loads application configuration from file and environment variables.
func LoadConfig() (*Config, error) {
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	viper.SetConfigName("config")
	viper.SetConfigType("yml")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFoundErr viper.ConfigFileNotFoundError
		if errors.As(err, &notFoundErr) {
			log.Println("Config file not found; using environment variables and defaults")
		} else {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	// Set default values
	viper.SetDefault("PORT", "8390")
	viper.SetDefault("REDIS_URL", "localhost:6379")
	viper.SetDefault("ALLOWED_ORIGINS", "http://localhost:5173,http://localhost:3000,http://127.0.0.1:5173")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("DEMO_SEED", 0)
	viper.SetDefault("EXIT_REDIRECT_URL", "https://www.google.com")
	viper.SetDefault("EXIT_FLUSH_DELAY", "100ms")
	viper.SetDefault("FEED_PERIOD", "5s")
	viper.SetDefault("FEED_CHANCE", 0.3)
	viper.SetDefault("NOTICE_TTL", "5s")
	viper.SetDefault("DELAY_POSTS", "1s")
	viper.SetDefault("DELAY_CREATE_POST", "1500ms")
	viper.SetDefault("DELAY_LIKE", "500ms")
	viper.SetDefault("DELAY_COMMENTS", "800ms")
	viper.SetDefault("DELAY_CREATE_COMMENT", "1s")
	viper.SetDefault("DELAY_ROOMS", "1200ms")
	viper.SetDefault("DELAY_JOIN_ROOM", "800ms")
	viper.SetDefault("DELAY_MESSAGE", "500ms")
	viper.SetDefault("DELAY_RESOURCES", "800ms")
	viper.SetDefault("DELAY_REPORT", "1500ms")
	viper.SetDefault("DELAY_LOGOUT", "500ms")
	viper.SetDefault("TRACING_ENABLED", false)
	viper.SetDefault("TRACING_EXPORTER", "stdout")
	viper.SetDefault("OTLP_ENDPOINT", "localhost:4318")
	viper.SetDefault("SAMPLER_RATIO", 1.0)

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Validate ensures that required configuration values are present and sane.
func (c *Config) Validate() error {
	if c.Port == "" {
		return errors.New("PORT is required")
	}
	if c.FeedPeriod <= 0 {
		return errors.New("FEED_PERIOD must be positive")
	}
	if c.FeedChance < 0 || c.FeedChance > 1 {
		return errors.New("FEED_CHANCE must be between 0 and 1")
	}
	if c.NoticeTTL <= 0 {
		return errors.New("NOTICE_TTL must be positive")
	}
	if c.SamplerRatio < 0 || c.SamplerRatio > 1 {
		return errors.New("SAMPLER_RATIO must be between 0 and 1")
	}
	return nil
}
