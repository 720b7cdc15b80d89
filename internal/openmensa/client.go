// Package openmensa provides a client for the OpenMensa v2 API.
package openmensa

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const (
	// BaseURL is the OpenMensa v2 API base URL.
	BaseURL = "https://openmensa.org/api/v2"

	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 30 * time.Second

	// RateLimit caps requests per second against the public API.
	RateLimit = 10.0

	// DateFormat is the date layout the API expects in meal URLs.
	DateFormat = "2006-01-02"
)

// Errors.
var (
	ErrNotFound = errors.New("canteen not found")
	ErrAPIError = errors.New("openmensa API error")
)

// Client is a rate-limited HTTP client for the OpenMensa API.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	baseURL    string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithBaseURL sets a custom base URL (for testing).
func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.baseURL = u
	}
}

// NewClient creates a new OpenMensa API client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		limiter:    rate.NewLimiter(rate.Limit(RateLimit), 1),
		baseURL:    BaseURL,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// get performs a rate-limited GET and decodes the JSON response body into out.
// The total page count from the X-Total-Pages header is returned when present.
func (c *Client) get(ctx context.Context, path string, query url.Values, out any) (int, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return 0, err
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return 0, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("requesting %s: %w", path, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return 0, ErrNotFound
	case resp.StatusCode != http.StatusOK:
		return 0, fmt.Errorf("%w: %s returned %s", ErrAPIError, path, resp.Status)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return 0, fmt.Errorf("decoding %s response: %w", path, err)
	}

	totalPages := 1
	if v := resp.Header.Get("X-Total-Pages"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			totalPages = n
		}
	}
	return totalPages, nil
}

// ListCanteens fetches all canteens known to the API, following pagination.
func (c *Client) ListCanteens(ctx context.Context) ([]Canteen, error) {
	var all []Canteen

	page := 1
	for {
		var batch []Canteen
		query := url.Values{"page": {strconv.Itoa(page)}}
		totalPages, err := c.get(ctx, "/canteens", query, &batch)
		if err != nil {
			return nil, err
		}
		all = append(all, batch...)

		if page >= totalPages || len(batch) == 0 {
			break
		}
		page++
	}

	return all, nil
}

// GetCanteenByID fetches a single canteen. Returns ErrNotFound when the id is
// unknown to the API.
func (c *Client) GetCanteenByID(ctx context.Context, id int) (*Canteen, error) {
	var canteen Canteen
	if _, err := c.get(ctx, fmt.Sprintf("/canteens/%d", id), nil, &canteen); err != nil {
		return nil, err
	}
	return &canteen, nil
}

// GetCanteensByIDs fetches the given canteens in one batched call.
func (c *Client) GetCanteensByIDs(ctx context.Context, ids []int) ([]Canteen, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}

	var canteens []Canteen
	query := url.Values{"ids": {strings.Join(parts, ",")}}
	if _, err := c.get(ctx, "/canteens", query, &canteens); err != nil {
		return nil, err
	}
	return canteens, nil
}

// GetCanteensByLocation returns canteens matching a free-text location query.
// Matching is a case-insensitive substring test against city and name; an
// empty result is not an error.
func (c *Client) GetCanteensByLocation(ctx context.Context, location string) ([]Canteen, error) {
	all, err := c.ListCanteens(ctx)
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(strings.TrimSpace(location))
	var matched []Canteen
	for _, canteen := range all {
		if strings.Contains(strings.ToLower(canteen.City), needle) ||
			strings.Contains(strings.ToLower(canteen.Name), needle) {
			matched = append(matched, canteen)
		}
	}
	return matched, nil
}

// GetCanteenByName returns the canteen whose name matches exactly.
// Returns ErrNotFound when no canteen carries that name.
func (c *Client) GetCanteenByName(ctx context.Context, name string) (*Canteen, error) {
	all, err := c.ListCanteens(ctx)
	if err != nil {
		return nil, err
	}

	for i := range all {
		if all[i].Name == name {
			return &all[i], nil
		}
	}
	return nil, ErrNotFound
}

// GetMeals fetches the meals a canteen offers on the given date. An empty
// list means the canteen published no menu for that day.
func (c *Client) GetMeals(ctx context.Context, canteen *Canteen, date time.Time) ([]Meal, error) {
	path := fmt.Sprintf("/canteens/%d/days/%s/meals", canteen.ID, date.Format(DateFormat))

	var meals []Meal
	if _, err := c.get(ctx, path, nil, &meals); err != nil {
		// The API answers 404 for days a canteen is closed.
		if errors.Is(err, ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return meals, nil
}
