package assistant

import (
	"fmt"
	"strings"
	"time"
)

const (
	completionPath = "/functions/v1/chat-response"
	ingestionPath  = "/functions/v1/generate-embeddings"
)

type Config struct {
	BaseURL string        // host of the hosted edge functions
	APIKey  string        // anon key sent on every request
	Timeout time.Duration // per-request timeout
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.BaseURL) == "" {
		return fmt.Errorf("base_url is required")
	}
	if strings.TrimSpace(c.APIKey) == "" {
		return fmt.Errorf("api_key is required")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	return nil
}

func DefaultConfig(baseURL, apiKey string) *Config {
	return &Config{
		BaseURL: strings.TrimRight(baseURL, "/"),
		APIKey:  apiKey,
		Timeout: 60 * time.Second,
	}
}
