package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config contains client configuration parameters.
type Config struct {
	LogLevel int    `env:"LOG_LEVEL" envDefault:"0"`
	BaseURL  string `env:"BASE_URL" envDefault:"http://127.0.0.1:4000/api/bff/auth"`
	// NavigateDelay is how long success feedback stays visible before the
	// navigate-home effect fires.
	NavigateDelay time.Duration `env:"NAVIGATE_DELAY" envDefault:"600ms"`
	HTTP          HTTP          `envPrefix:"HTTP_"`
	Google        Google        `envPrefix:"GOOGLE_"`
}

// HTTP contains transport timeouts.
type HTTP struct {
	ConnectTimeout time.Duration `env:"CONNECT_TIMEOUT" envDefault:"10s"`
	CallTimeout    time.Duration `env:"CALL_TIMEOUT" envDefault:"30s"`
}

// Google contains OAuth parameters for the google identity provider.
type Google struct {
	ClientID     string `env:"CLIENT_ID"`
	ClientSecret string `env:"CLIENT_SECRET"`
	RedirectURL  string `env:"REDIRECT_URL" envDefault:"http://127.0.0.1:4000/oauth/callback"`
}

// NewConfig loads configuration from environment variables.
func NewConfig() (*Config, error) {
	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &cfg, nil
}
