// Package meme fetches a random meme from the meme-api.com service.
package meme

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// BaseURL is the meme API endpoint.
const BaseURL = "https://meme-api.com"

// Meme is one meme link as served by the API.
type Meme struct {
	Subreddit string   `json:"subreddit"`
	Title     string   `json:"title"`
	URL       string   `json:"url"`
	NSFW      bool     `json:"nsfw"`
	Spoiler   bool     `json:"spoiler"`
	Author    string   `json:"author"`
	Ups       int      `json:"ups"`
	Preview   []string `json:"preview"`
}

// Client fetches memes. The zero value is not usable; use NewClient.
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

// NewClient creates a meme API client.
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

// Get fetches one random meme.
func (c *Client) Get(ctx context.Context) (*Meme, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/gimme", nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching meme: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("meme API returned %s", resp.Status)
	}

	var m Meme
	if err := json.NewDecoder(resp.Body).Decode(&m); err != nil {
		return nil, fmt.Errorf("decoding meme response: %w", err)
	}
	return &m, nil
}
