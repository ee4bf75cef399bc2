package httpclient

import (
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/MacarenaGarciaM/Tingeso1/session"
)

// Builder provides a fluent interface for constructing API clients
// with bearer authentication from a session and optional TLS/mTLS support.
type Builder struct {
	baseURL string

	// Authentication
	session session.Session

	// Extra request interceptors
	requestIDEnabled bool
	requestIDHeader  string
	interceptors     []Interceptor

	// TLS configuration
	tlsEnabled    bool
	tlsCAFile     string
	tlsCertFile   string
	tlsKeyFile    string
	tlsSkipVerify bool

	// HTTP client configuration
	timeout         time.Duration
	baseTransport   http.RoundTripper
	followRedirects bool
	logger          Logger
}

// NewBuilder creates a new client builder. The base URL starts as ResolveBaseURL().
func NewBuilder() *Builder {
	return &Builder{
		baseURL:         ResolveBaseURL(),
		timeout:         30 * time.Second, // Default 30s timeout
		followRedirects: true,
	}
}

// WithBaseURL overrides the base URL taken from the environment.
func (b *Builder) WithBaseURL(baseURL string) *Builder {
	b.baseURL = baseURL
	return b
}

// WithSession sets the session bearer tokens are read from.
// Calling it again replaces the session; the bearer interceptor is registered once.
func (b *Builder) WithSession(s session.Session) *Builder {
	b.session = s
	return b
}

// WithInterceptor registers additional request interceptors.
// They run after bearer and request-id injection, in registration order.
func (b *Builder) WithInterceptor(interceptors ...Interceptor) *Builder {
	b.interceptors = append(b.interceptors, interceptors...)
	return b
}

// WithRequestID sets a random UUID in header on requests that lack one.
// An empty header uses DefaultRequestIDHeader.
func (b *Builder) WithRequestID(header string) *Builder {
	b.requestIDEnabled = true
	b.requestIDHeader = header
	return b
}

// WithTLS enables TLS for the connection.
//
// Parameters:
//   - caFile: Path to CA certificate for server verification (optional, uses system roots if empty)
//   - certFile: Path to client certificate for mTLS (optional, must be paired with keyFile)
//   - keyFile: Path to client private key for mTLS (optional, must be paired with certFile)
//
// TLS options are applied to a clone of the base transport, which must be an
// *http.Transport; Build fails otherwise.
func (b *Builder) WithTLS(caFile, certFile, keyFile string) *Builder {
	b.tlsEnabled = true
	b.tlsCAFile = caFile
	b.tlsCertFile = certFile
	b.tlsKeyFile = keyFile
	return b
}

// WithInsecureSkipVerify disables TLS certificate verification (NOT RECOMMENDED for production).
// This should only be used for testing or development purposes.
func (b *Builder) WithInsecureSkipVerify() *Builder {
	b.tlsSkipVerify = true
	return b
}

// WithTimeout sets the request timeout for the HTTP client.
// Default is 30 seconds if not specified.
func (b *Builder) WithTimeout(timeout time.Duration) *Builder {
	b.timeout = timeout
	return b
}

// WithBaseTransport sets a custom base transport.
// This is useful for adding custom middleware or using a custom connection pool.
// A custom *http.Transport is cloned, never mutated, when TLS options are set.
func (b *Builder) WithBaseTransport(transport http.RoundTripper) *Builder {
	b.baseTransport = transport
	return b
}

// WithoutRedirects disables automatic redirect following.
// By default, the client follows up to 10 redirects.
func (b *Builder) WithoutRedirects() *Builder {
	b.followRedirects = false
	return b
}

// WithLogger logs one line per outgoing request. Token values are never logged.
func (b *Builder) WithLogger(logger Logger) *Builder {
	b.logger = logger
	return b
}

// Build constructs the client with the configured options.
//
// Returns:
//   - *Client: Configured client
//   - error: Error if the base URL or TLS configuration is invalid
func (b *Builder) Build() (*Client, error) {
	baseURL, err := parseBaseURL(b.baseURL)
	if err != nil {
		return nil, fmt.Errorf("httpclient: invalid base URL %q: %w", b.baseURL, err)
	}

	httpClient, err := b.buildHTTPClient()
	if err != nil {
		return nil, err
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
	}, nil
}

func (b *Builder) buildHTTPClient() (*http.Client, error) {
	transport, err := b.buildBaseTransport()
	if err != nil {
		return nil, err
	}

	if interceptors := b.buildInterceptors(); len(interceptors) > 0 || b.logger != nil {
		transport = &InterceptorTransport{
			Base:         transport,
			Interceptors: interceptors,
			Logger:       b.logger,
		}
	}

	client := &http.Client{
		Transport: transport,
		Timeout:   b.timeout,
	}

	if !b.followRedirects {
		client.CheckRedirect = func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		}
	}

	return client, nil
}

// buildInterceptors returns the interceptor chain. Bearer injection comes first and
// appears at most once.
func (b *Builder) buildInterceptors() []Interceptor {
	var interceptors []Interceptor

	if b.session != nil {
		interceptors = append(interceptors, BearerInterceptor(b.session))
	}

	if b.requestIDEnabled {
		interceptors = append(interceptors, RequestIDInterceptor(b.requestIDHeader, nil))
	}

	return append(interceptors, b.interceptors...)
}

func (b *Builder) buildBaseTransport() (http.RoundTripper, error) {
	base := b.baseTransport
	if base == nil {
		base = http.DefaultTransport
	}
	tlsRequested := b.tlsEnabled || b.tlsSkipVerify

	httpTransport, ok := base.(*http.Transport)
	if !ok {
		if tlsRequested {
			return nil, fmt.Errorf("httpclient: TLS options need an *http.Transport base, got %T", base)
		}
		// Custom round tripper or a stubbed default transport (e.g. in tests)
		return base, nil
	}
	if b.baseTransport != nil && !tlsRequested {
		return base, nil
	}
	httpTransport = httpTransport.Clone()

	if tlsRequested {
		tlsConfig, err := b.buildTLSConfig()
		if err != nil {
			return nil, fmt.Errorf("httpclient: TLS config failed: %w", err)
		}
		httpTransport.TLSClientConfig = tlsConfig
	} else {
		httpTransport.TLSClientConfig = &tls.Config{
			MinVersion: tls.VersionTLS12,
		}
	}

	return httpTransport, nil
}

// buildTLSConfig constructs the TLS configuration for the HTTP client.
func (b *Builder) buildTLSConfig() (*tls.Config, error) {
	tlsConfig := &tls.Config{
		MinVersion:         tls.VersionTLS12,
		InsecureSkipVerify: b.tlsSkipVerify, // #nosec G402
	}

	if b.tlsCAFile != "" {
		caCert, err := os.ReadFile(b.tlsCAFile)
		if err != nil {
			return nil, fmt.Errorf("read CA file: %w", err)
		}

		certPool := x509.NewCertPool()
		if !certPool.AppendCertsFromPEM(caCert) {
			return nil, errors.New("failed to parse CA certificate")
		}
		tlsConfig.RootCAs = certPool
	}

	// Load client certificate for mTLS (if both cert and key are provided)
	if b.tlsCertFile != "" && b.tlsKeyFile != "" {
		cert, err := tls.LoadX509KeyPair(b.tlsCertFile, b.tlsKeyFile)
		if err != nil {
			return nil, fmt.Errorf("load client certificate: %w", err)
		}
		tlsConfig.Certificates = []tls.Certificate{cert}
	} else if b.tlsCertFile != "" || b.tlsKeyFile != "" {
		return nil, errors.New("both TLS cert and key files must be provided for mTLS")
	}

	return tlsConfig, nil
}

// New is a convenience function that creates a client for ResolveBaseURL() with bearer
// authentication from s. For more configuration options, use Builder instead.
//
// Example:
//
//	kc := session.NewKeycloak()
//	client, err := httpclient.New(kc)
//	resp, err := client.Get(ctx, "/api/tools")
func New(s session.Session) (*Client, error) {
	return NewBuilder().WithSession(s).Build()
}

// NewHTTPClient returns a plain *http.Client that adds bearer tokens from s.
func NewHTTPClient(s session.Session) *http.Client {
	return &http.Client{
		Transport: NewBearerTransport(s, nil),
		Timeout:   30 * time.Second,
	}
}
