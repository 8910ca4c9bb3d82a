package estimate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/oauth2/clientcredentials"

	"quotebuilder/internal/config"
)

// Client talks to the pricing service's quote-calculation endpoint.
type Client struct {
	url    string
	apiKey string
	http   *http.Client
}

// NewClient builds a pricing client from configuration. When OAuth
// client-credentials are configured the underlying http.Client refreshes
// tokens itself; otherwise apiKey (from the OS credential manager) is sent
// as a bearer token.
func NewClient(cfg *config.Config, apiKey string) *Client {
	timeout := time.Duration(cfg.RequestTimeout) * time.Second
	httpClient := &http.Client{Timeout: timeout}

	if cfg.OAuthClientID != "" && cfg.OAuthTokenURL != "" {
		cc := clientcredentials.Config{
			ClientID:     cfg.OAuthClientID,
			ClientSecret: cfg.OAuthClientSecret,
			TokenURL:     cfg.OAuthTokenURL,
		}
		httpClient = cc.Client(context.Background())
		httpClient.Timeout = timeout
	}

	return &Client{
		url:    cfg.PricingURL,
		apiKey: apiKey,
		http:   httpClient,
	}
}

// Calculate submits the request and decodes the authoritative response.
func (c *Client) Calculate(ctx context.Context, req Request) (*Response, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("pricing service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("pricing service returned %d: %s", resp.StatusCode, msg)
	}

	var out Response
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &out, nil
}
