package httpclient

import (
	"fmt"
	"net/http"

	"github.com/MacarenaGarciaM/Tingeso1/session"
	"github.com/google/uuid"
)

// AuthorizationHeader is the header carrying the bearer token.
const AuthorizationHeader = "Authorization"

// DefaultRequestIDHeader is the header used by WithRequestID when no name is given.
const DefaultRequestIDHeader = "X-Request-ID"

// Logger is an interface for optional request logging.
// *log.Logger and *zerolog.Logger both satisfy it.
type Logger interface {
	Printf(format string, args ...any)
}

// Interceptor inspects or mutates an outgoing request before it is sent.
// The request it receives is already a clone owned by the transport.
// Returning an error aborts the request.
type Interceptor func(req *http.Request) error

// BearerInterceptor returns an Interceptor that sets "Authorization: Bearer <token>"
// when s currently holds a token. Without a token the request is left untouched.
func BearerInterceptor(s session.Session) Interceptor {
	return func(req *http.Request) error {
		if token := tokenOf(s); token != "" {
			req.Header.Set(AuthorizationHeader, "Bearer "+token)
		}
		return nil
	}
}

// RequestIDInterceptor returns an Interceptor that sets header to a fresh id when the
// request does not already carry one. A nil newID uses random UUIDs.
func RequestIDInterceptor(header string, newID func() string) Interceptor {
	if header == "" {
		header = DefaultRequestIDHeader
	}
	if newID == nil {
		newID = uuid.NewString
	}

	return func(req *http.Request) error {
		if req.Header.Get(header) == "" {
			req.Header.Set(header, newID())
		}
		return nil
	}
}

// tokenOf reads the current token, treating a nil session as logged out.
func tokenOf(s session.Session) string {
	if s == nil {
		return ""
	}
	return s.Token()
}

// BearerTransport is an http.RoundTripper that adds the session's bearer token
// to outgoing HTTP requests.
//
// The token is read on every request, so logins and logouts on the session take
// effect immediately. Requests issued while the session has no token are passed
// to the base transport unchanged.
type BearerTransport struct {
	// Base is the underlying HTTP transport. If nil, http.DefaultTransport is used.
	Base http.RoundTripper

	// Session provides the access token.
	Session session.Session
}

// RoundTrip implements http.RoundTripper interface.
// It never fails on its own; errors come from the base transport.
func (t *BearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}

	token := tokenOf(t.Session)
	if token == "" {
		return base.RoundTrip(req)
	}

	// Clone the request to avoid modifying the original
	reqClone := cloneRequest(req)
	reqClone.Header.Set(AuthorizationHeader, "Bearer "+token)

	return base.RoundTrip(reqClone)
}

// NewBearerTransport creates a new BearerTransport reading tokens from s.
// The base transport defaults to http.DefaultTransport if not specified.
func NewBearerTransport(s session.Session, base http.RoundTripper) *BearerTransport {
	if base == nil {
		base = http.DefaultTransport
	}

	return &BearerTransport{
		Base:    base,
		Session: s,
	}
}

// InterceptorTransport runs a fixed list of interceptors, in order, on a clone of
// each request before delegating to Base.
type InterceptorTransport struct {
	// Base is the underlying HTTP transport. If nil, http.DefaultTransport is used.
	Base http.RoundTripper

	// Interceptors run in registration order.
	Interceptors []Interceptor

	// Logger receives one line per request when set. Header values are never logged.
	Logger Logger
}

// RoundTrip implements http.RoundTripper interface.
func (t *InterceptorTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}

	reqClone := cloneRequest(req)
	for _, intercept := range t.Interceptors {
		if intercept == nil {
			continue
		}
		if err := intercept(reqClone); err != nil {
			// RoundTrip must close the body, including on errors.
			if req.Body != nil {
				_ = req.Body.Close()
			}
			return nil, fmt.Errorf("httpclient: interceptor failed: %w", err)
		}
	}

	if t.Logger != nil {
		auth := "none"
		if reqClone.Header.Get(AuthorizationHeader) != "" {
			auth = "bearer"
		}
		t.Logger.Printf("httpclient: %s %s (auth: %s)", reqClone.Method, reqClone.URL.Redacted(), auth)
	}

	return base.RoundTrip(reqClone)
}

func cloneRequest(req *http.Request) *http.Request {
	reqClone := req.Clone(req.Context())
	if reqClone.Header == nil {
		reqClone.Header = make(http.Header)
	}
	return reqClone
}
