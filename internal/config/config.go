package config

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration, loaded from environment
// variables with an optional .env file override for local development.
type Config struct {
	ServerPort   string `mapstructure:"SERVER_PORT"`
	AppEnv       string `mapstructure:"APP_ENV"`
	ClientOrigin string `mapstructure:"CLIENT_ORIGIN"`

	// Per-call timeout applied to every outbound provider request.
	HTTPTimeoutSeconds int `mapstructure:"HTTP_TIMEOUT_SECONDS"`

	GeocodeBaseURL   string `mapstructure:"GEOCODE_BASE_URL"`
	RoutingBaseURL   string `mapstructure:"ROUTING_BASE_URL"`
	KnowledgeBaseURL string `mapstructure:"KNOWLEDGE_BASE_URL"`
	PlacesBaseURL    string `mapstructure:"PLACES_BASE_URL"`
	PlacesAPIKey     string `mapstructure:"PLACES_API_KEY"`

	OpenAIAPIKey string `mapstructure:"OPENAI_API_KEY"`
	OpenAIModel  string `mapstructure:"OPENAI_MODEL"`

	// Comma-separated list of travel modes the directions provider accepts.
	// The first entry is the default when a request omits the mode.
	TravelModes string `mapstructure:"TRAVEL_MODES"`
}

// LoadConfig reads configuration from the given directory's .env file (if
// present) and from the process environment, which takes precedence.
func LoadConfig(path string) (Config, error) {
	viper.AddConfigPath(path)
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("CLIENT_ORIGIN", "http://localhost:5173")
	viper.SetDefault("HTTP_TIMEOUT_SECONDS", 10)
	viper.SetDefault("GEOCODE_BASE_URL", "https://nominatim.openstreetmap.org")
	viper.SetDefault("ROUTING_BASE_URL", "https://router.project-osrm.org")
	viper.SetDefault("KNOWLEDGE_BASE_URL", "https://en.wikipedia.org")
	viper.SetDefault("PLACES_BASE_URL", "https://api.foursquare.com")
	viper.SetDefault("OPENAI_MODEL", "gpt-4o-mini")
	viper.SetDefault("TRAVEL_MODES", "driving,walking,cycling")

	if err := viper.ReadInConfig(); err != nil {
		// A missing .env file is fine; the environment is authoritative.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, err
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}

	if len(cfg.AllowedTravelModes()) == 0 {
		return Config{}, errors.New("TRAVEL_MODES must list at least one mode")
	}

	return cfg, nil
}

// AllowedTravelModes parses the configured mode list, trimming whitespace
// and dropping empty entries.
func (c Config) AllowedTravelModes() []string {
	parts := strings.Split(c.TravelModes, ",")
	modes := make([]string, 0, len(parts))
	for _, p := range parts {
		if m := strings.ToLower(strings.TrimSpace(p)); m != "" {
			modes = append(modes, m)
		}
	}
	return modes
}

// HTTPTimeout returns the provider call timeout as a duration.
func (c Config) HTTPTimeout() time.Duration {
	return time.Duration(c.HTTPTimeoutSeconds) * time.Second
}
