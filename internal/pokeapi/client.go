package pokeapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// ListingFetcher fetches the ordered entity listing.
type ListingFetcher interface {
	FetchListing(ctx context.Context, limit int) ([]ListingEntry, error)
}

// DetailFetcher fetches one entity's detail payload.
type DetailFetcher interface {
	FetchDetail(ctx context.Context, sourceURL string) (*PokemonDetail, error)
}

// Ensure Client implements both fetchers at compile time.
var (
	_ ListingFetcher = (*Client)(nil)
	_ DetailFetcher  = (*Client)(nil)
)

const (
	// DefaultBaseURL is the public PokeAPI v2 root.
	DefaultBaseURL = "https://pokeapi.co/api/v2/"
	// DefaultListingLimit covers the national dex in one page.
	DefaultListingLimit = 1025

	defaultUserAgent = "pokedex/0.1"
	defaultTimeout   = 15 * time.Second
	defaultDetailRPS = 10
)

// Options tune a Client. Zero values use defaults.
type Options struct {
	Timeout   time.Duration
	DetailRPS float64
	UserAgent string
}

// Client talks to PokeAPI.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
	limiter   *rate.Limiter
}

// NewClient builds a Client rooted at base.
func NewClient(base string, opts Options) (*Client, error) {
	u, err := parseBaseURL(base)
	if err != nil {
		return nil, err
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	rps := opts.DetailRPS
	if rps <= 0 {
		rps = defaultDetailRPS
	}
	ua := strings.TrimSpace(opts.UserAgent)
	if ua == "" {
		ua = defaultUserAgent
	}
	return &Client{
		baseURL:   u,
		http:      &http.Client{Timeout: timeout},
		userAgent: ua,
		limiter:   rate.NewLimiter(rate.Limit(rps), 1),
	}, nil
}

// BaseURL returns the normalized API root.
func (c *Client) BaseURL() string {
	if c == nil {
		return ""
	}
	return c.baseURL.String()
}

// FetchListing retrieves the first limit entries of the listing in order.
func (c *Client) FetchListing(ctx context.Context, limit int) ([]ListingEntry, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	if limit <= 0 {
		limit = DefaultListingLimit
	}
	values := url.Values{}
	values.Set("limit", strconv.Itoa(limit))
	rel := &url.URL{Path: "pokemon", RawQuery: values.Encode()}

	var payload ListingResponse
	if err := c.get(ctx, c.baseURL.ResolveReference(rel), &payload); err != nil {
		return nil, err
	}
	return payload.Results, nil
}

// FetchDetail retrieves the detail payload at sourceURL. Relative references
// resolve against the base URL.
func (c *Client) FetchDetail(ctx context.Context, sourceURL string) (*PokemonDetail, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	trimmed := strings.TrimSpace(sourceURL)
	if trimmed == "" {
		return nil, fmt.Errorf("detail url required")
	}
	ref, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse detail url %q: %w", sourceURL, err)
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("wait for rate limiter: %w", err)
	}

	var payload PokemonDetail
	if err := c.get(ctx, c.baseURL.ResolveReference(ref), &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

func (c *Client) get(ctx context.Context, reqURL *url.URL, dest any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("api %s returned status %d", reqURL.Path, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func parseBaseURL(base string) (*url.URL, error) {
	trimmed := strings.TrimSpace(base)
	if trimmed == "" {
		trimmed = DefaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api base %q: %w", base, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse api base %q: missing host", base)
	}
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
