package session

import (
	"log"
	"strings"
	"sync"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/oauth2"
)

// Session exposes the access token of an identity-provider login.
// An empty string means there is no token and requests go out unauthenticated.
type Session interface {
	Token() string
}

// Logger is an interface for optional logging in Keycloak.
// Implementations can log login and logout events if desired.
type Logger interface {
	Printf(format string, args ...any)
}

// Keycloak holds the token of a Keycloak login and is safe for concurrent access.
//
// The login flow itself lives outside this package; whoever completes it calls
// SetToken, and HTTP or gRPC clients read the current value through Token.
// A nil *Keycloak behaves as a logged-out session that ignores writes.
type Keycloak struct {
	mu     sync.RWMutex
	token  string
	parsed jwt.MapClaims
	logger Logger // optional logger
}

// Option is a functional option for configuring Keycloak.
type Option func(*Keycloak)

// WithLogger sets a custom logger for session events.
// If not set, no logging will occur.
func WithLogger(logger Logger) Option {
	return func(k *Keycloak) {
		k.logger = logger
	}
}

// WithLoggingEnabled enables logging using the default Go log package.
func WithLoggingEnabled() Option {
	return func(k *Keycloak) {
		k.logger = log.Default()
	}
}

// WithToken seeds the session with an initial token.
func WithToken(raw string) Option {
	return func(k *Keycloak) {
		k.token, k.parsed = raw, parseUnverified(raw)
	}
}

// NewKeycloak creates an empty session.
func NewKeycloak(opts ...Option) *Keycloak {
	k := &Keycloak{}

	for _, opt := range opts {
		opt(k)
	}

	return k
}

// Token returns the current raw access token, or "" when not logged in.
// A nil *Keycloak reports no token.
func (k *Keycloak) Token() string {
	if k == nil {
		return ""
	}

	k.mu.RLock()
	defer k.mu.RUnlock()
	return k.token
}

// SetToken replaces the current access token.
// Surrounding whitespace is trimmed; a blank value is equivalent to Clear.
// On a nil *Keycloak it does nothing.
func (k *Keycloak) SetToken(raw string) {
	if k == nil {
		return
	}

	raw = strings.TrimSpace(raw)
	parsed := parseUnverified(raw)

	k.mu.Lock()
	k.token = raw
	k.parsed = parsed
	k.mu.Unlock()

	if k.logger != nil {
		if raw == "" {
			k.logger.Printf("session: token cleared")
		} else {
			k.logger.Printf("session: token set (subject: %q)", subjectOf(parsed))
		}
	}
}

// Clear drops the current token.
func (k *Keycloak) Clear() {
	k.SetToken("")
}

// Authenticated reports whether a token is present.
func (k *Keycloak) Authenticated() bool {
	return k.Token() != ""
}

// TokenParsed returns a copy of the token's claims, decoded without verifying
// the signature. It returns nil when there is no token or the token is not a JWT.
func (k *Keycloak) TokenParsed() jwt.MapClaims {
	if k == nil {
		return nil
	}

	k.mu.RLock()
	defer k.mu.RUnlock()

	if k.parsed == nil {
		return nil
	}

	claims := make(jwt.MapClaims, len(k.parsed))
	for key, value := range k.parsed {
		claims[key] = value
	}
	return claims
}

// Subject returns the "sub" claim of the current token, or "".
func (k *Keycloak) Subject() string {
	if k == nil {
		return ""
	}

	k.mu.RLock()
	defer k.mu.RUnlock()
	return subjectOf(k.parsed)
}

// parseUnverified decodes JWT claims without checking signature or expiry.
func parseUnverified(raw string) jwt.MapClaims {
	if raw == "" {
		return nil
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return nil
	}
	return claims
}

func subjectOf(claims jwt.MapClaims) string {
	if claims == nil {
		return ""
	}
	sub, err := claims.GetSubject()
	if err != nil {
		return ""
	}
	return sub
}

// Static is a Session that always returns the same token.
type Static string

// Token returns the fixed token.
func (s Static) Token() string {
	return string(s)
}

// Func adapts an ordinary function to a Session.
type Func func() string

// Token calls f.
func (f Func) Token() string {
	if f == nil {
		return ""
	}
	return f()
}

// FromTokenSource adapts an oauth2.TokenSource to a Session.
//
// Errors from the source and invalid tokens are reported as "no token".
// Any refreshing is left to the source itself.
func FromTokenSource(ts oauth2.TokenSource) Session {
	return tokenSourceSession{ts: ts}
}

type tokenSourceSession struct {
	ts oauth2.TokenSource
}

func (s tokenSourceSession) Token() string {
	if s.ts == nil {
		return ""
	}

	tok, err := s.ts.Token()
	if err != nil || !tok.Valid() {
		return ""
	}
	return tok.AccessToken
}
