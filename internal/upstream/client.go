// Package upstream talks to the marcelle-mobi data API that backs the dashboard.
package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/sony/gobreaker"
)

var validate = validator.New()

// Client fetches the weather, air-quality and alert payloads. It implements the
// three dashboard source interfaces.
type Client struct {
	baseURL  string
	httpCfg  HTTPClientConfig
	breakers map[string]*gobreaker.CircuitBreaker
}

// NewClient creates a client rooted at baseURL, e.g. "https://api.example.org/api".
func NewClient(client *http.Client, baseURL string, backoff BackoffConfig) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpCfg: HTTPClientConfig{
			Client:  client,
			Backoff: backoff,
		},
		breakers: map[string]*gobreaker.CircuitBreaker{
			weatherPath: newBreaker("weather"),
			airPath:     newBreaker("air-quality"),
			alertsPath:  newBreaker("alerts"),
		},
	}
}

// getJSON fetches path and decodes the body into out, then validates it.
func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	buildRequest := func(ctx context.Context) (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "application/json")
		return req, nil
	}

	resp, err := doRequestWithResilience(ctx, c.httpCfg, c.breakers[path], buildRequest)
	if err != nil {
		return fmt.Errorf("GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

func validatePayload(path string, v any) error {
	if err := validate.Struct(v); err != nil {
		return fmt.Errorf("invalid %s payload: %w", path, err)
	}
	return nil
}
