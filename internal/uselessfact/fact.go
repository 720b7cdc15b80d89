// Package uselessfact fetches short text facts from uselessfacts.jsph.pl.
package uselessfact

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// BaseURL is the useless facts API base URL.
const BaseURL = "https://uselessfacts.jsph.pl/api/v2"

// DefaultLanguage is used when the caller passes an empty language.
const DefaultLanguage = "en"

// Fact is one short text fact.
type Fact struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Source    string `json:"source"`
	SourceURL string `json:"source_url"`
	Language  string `json:"language"`
	Permalink string `json:"permalink"`
}

// Client fetches facts.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL sets a custom base URL (for testing).
func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.baseURL = u
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient creates a useless facts API client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    BaseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Daily fetches the fact of the day in the given language.
func (c *Client) Daily(ctx context.Context, language string) (*Fact, error) {
	return c.fetch(ctx, "/facts/today", language)
}

// Random fetches a random fact in the given language.
func (c *Client) Random(ctx context.Context, language string) (*Fact, error) {
	return c.fetch(ctx, "/facts/random", language)
}

func (c *Client) fetch(ctx context.Context, path, language string) (*Fact, error) {
	if language == "" {
		language = DefaultLanguage
	}

	u := c.baseURL + path + "?language=" + url.QueryEscape(language)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching fact: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fact API returned %s", resp.Status)
	}

	var f Fact
	if err := json.NewDecoder(resp.Body).Decode(&f); err != nil {
		return nil, fmt.Errorf("decoding fact response: %w", err)
	}
	return &f, nil
}
