package coolors

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Version is the palette-extractor release reported by the CLI.
const Version = "0.3.0"

const (
	// DefaultBaseURL is the site palettes are scraped from.
	DefaultBaseURL = "https://coolors.co"
	// DefaultPagePath is the trending palettes page.
	DefaultPagePath = "/palettes/trending"
	// DefaultUserAgent is the desktop browser identity sent on every request.
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

	defaultAPITimeout  = 10 * time.Second
	defaultPageTimeout = 15 * time.Second

	// maxBodySize caps how much of a response is read into memory.
	maxBodySize = 16 << 20
)

// DefaultAPIPaths are the API-style endpoints tried in order.
var DefaultAPIPaths = []string{
	"/api/palettes/trending",
	"/api/explore/trending",
}

// Settings configures a Client. Zero values fall back to the defaults above.
type Settings struct {
	BaseURL     string
	PagePath    string
	APIPaths    []string
	UserAgent   string
	APITimeout  time.Duration
	PageTimeout time.Duration
}

// Client talks to the palette site with browser-like request headers.
// It performs a single attempt per request: no retries, no caching.
type Client struct {
	settings   Settings
	httpClient *http.Client
}

// NewClient creates a client for the given settings.
func NewClient(s Settings) *Client {
	if s.BaseURL == "" {
		s.BaseURL = DefaultBaseURL
	}
	s.BaseURL = strings.TrimRight(s.BaseURL, "/")
	if s.PagePath == "" {
		s.PagePath = DefaultPagePath
	}
	if len(s.APIPaths) == 0 {
		s.APIPaths = DefaultAPIPaths
	}
	if s.UserAgent == "" {
		s.UserAgent = DefaultUserAgent
	}
	if s.APITimeout <= 0 {
		s.APITimeout = defaultAPITimeout
	}
	if s.PageTimeout <= 0 {
		s.PageTimeout = defaultPageTimeout
	}

	transport := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        10,
		IdleConnTimeout:     90 * time.Second,
		MaxIdleConnsPerHost: 10,
	}

	return &Client{
		settings: s,
		// Per-request deadlines come from the context; this is only an upper bound.
		httpClient: &http.Client{
			Timeout:   s.PageTimeout + s.APITimeout,
			Transport: transport,
		},
	}
}

// PageURL returns the absolute URL of the trending palettes page.
func (c *Client) PageURL() string {
	return c.settings.BaseURL + c.settings.PagePath
}

// APIURLs returns the absolute API endpoint URLs in the order they are tried.
func (c *Client) APIURLs() []string {
	urls := make([]string, len(c.settings.APIPaths))
	for i, p := range c.settings.APIPaths {
		urls[i] = c.settings.BaseURL + p
	}
	return urls
}

// UserAgent returns the User-Agent header value sent with every request.
func (c *Client) UserAgent() string {
	return c.settings.UserAgent
}

// Host returns the hostname of the configured site, e.g. "coolors.co".
func (c *Client) Host() string {
	u, err := url.Parse(c.settings.BaseURL)
	if err != nil {
		return ""
	}
	return u.Hostname()
}

// GetAPI fetches one API endpoint and returns the raw response body.
// Anything but a 200 response is an error.
func (c *Client) GetAPI(ctx context.Context, endpoint string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.settings.APITimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", c.settings.UserAgent)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Referer", c.PageURL())

	return c.do(req)
}

// GetTrendingPage fetches the trending palettes page as HTML text.
func (c *Client) GetTrendingPage(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.settings.PageTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.PageURL(), nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", c.settings.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	body, err := c.do(req)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

func (c *Client) do(req *http.Request) ([]byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{URL: req.URL.String(), StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return body, nil
}

// StatusError reports a non-200 response.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("request to %s failed with status %d", e.URL, e.StatusCode)
}
