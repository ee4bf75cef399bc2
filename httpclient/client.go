package httpclient

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
)

// EnvBaseURL names the environment variable holding the API base URL.
const EnvBaseURL = "API_URL"

// DefaultBaseURL is used when EnvBaseURL is unset or blank.
const DefaultBaseURL = "http://localhost:8090"

// ResolveBaseURL returns the API base URL from the environment, falling back to DefaultBaseURL.
func ResolveBaseURL() string {
	if v := strings.TrimSpace(os.Getenv(EnvBaseURL)); v != "" {
		return v
	}
	return DefaultBaseURL
}

// Client issues requests against a fixed API base URL through an authenticated http.Client.
// It is safe for concurrent use if the configured session is.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
}

// BaseURL returns a copy of the configured base URL.
func (c *Client) BaseURL() *url.URL {
	u := *c.baseURL
	return &u
}

// HTTPClient returns the underlying http.Client for callers that build their own requests.
func (c *Client) HTTPClient() *http.Client {
	return c.httpClient
}

// ResolveURL joins path onto the base URL. The base path acts as a prefix and the query
// of path is kept. Absolute URLs are returned unchanged. Scheme-relative
// references such as "//host/x" are rejected rather than losing their host.
func (c *Client) ResolveURL(path string) (*url.URL, error) {
	ref, err := url.Parse(path)
	if err != nil {
		return nil, fmt.Errorf("httpclient: invalid request path %q: %w", path, err)
	}
	if ref.IsAbs() {
		return ref, nil
	}
	if ref.Host != "" || ref.User != nil {
		return nil, fmt.Errorf("httpclient: invalid request path %q: scheme-relative URLs are not supported", path)
	}

	u := c.BaseURL()
	if ref.Path != "" {
		u.Path = strings.TrimRight(u.Path, "/") + "/" + strings.TrimLeft(ref.Path, "/")
		u.RawPath = ""
	}
	u.RawQuery = ref.RawQuery
	u.Fragment = ref.Fragment
	return u, nil
}

// NewRequest builds a request for path relative to the base URL.
func (c *Client) NewRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	u, err := c.ResolveURL(path)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return nil, fmt.Errorf("httpclient: build request: %w", err)
	}
	return req, nil
}

// Do sends req through the authenticated client.
// Response handling, including non-2xx statuses, is left to the caller.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	return c.httpClient.Do(req)
}

// Get issues a GET request for path relative to the base URL.
func (c *Client) Get(ctx context.Context, path string) (*http.Response, error) {
	req, err := c.NewRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	return c.Do(req)
}

// parseBaseURL validates an absolute http(s) base URL.
func parseBaseURL(raw string) (*url.URL, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, errors.New("base URL is empty")
	}

	u, err := url.Parse(raw)
	if err != nil {
		return nil, err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return nil, errors.New("base URL must include a host")
	}
	return u, nil
}
