package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"
)

const (
	// EnvToken is the environment variable carrying the bearer credential.
	EnvToken = "HF_TOKEN"

	// DefaultEndpoint is the Hugging Face router, an OpenAI-compatible
	// chat-completions API.
	DefaultEndpoint = "https://router.huggingface.co/v1"

	DefaultTimeoutSeconds = 60
)

var ErrMissingToken = errors.New("HF_TOKEN environment variable is required")

// Config holds everything the process needs to talk to the API.
// Built once at command entry and passed explicitly; nothing reads
// the environment after Load returns.
type Config struct {
	Token    string
	Endpoint string
	Timeout  time.Duration
}

// Load resolves the bearer credential from the environment and applies
// defaults for the endpoint and timeout. It performs no file or network
// I/O, so a missing credential fails before anything else happens.
func Load(endpoint string, timeoutSeconds int) (*Config, error) {
	token := os.Getenv(EnvToken)
	if token == "" {
		return nil, ErrMissingToken
	}

	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if err := ValidateEndpoint(endpoint); err != nil {
		return nil, err
	}

	if timeoutSeconds <= 0 {
		timeoutSeconds = DefaultTimeoutSeconds
	}

	return &Config{
		Token:    token,
		Endpoint: endpoint,
		Timeout:  time.Duration(timeoutSeconds) * time.Second,
	}, nil
}

// ValidateEndpoint checks that an endpoint is an absolute http(s) URL.
func ValidateEndpoint(endpoint string) error {
	u, err := url.Parse(endpoint)
	if err != nil {
		return fmt.Errorf("invalid endpoint %q: %w", endpoint, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid endpoint %q: must be an absolute http(s) URL", endpoint)
	}
	return nil
}
