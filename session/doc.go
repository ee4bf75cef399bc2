// Package session models the identity-provider session that HTTP and gRPC clients read
// bearer tokens from.
//
// A Session only has to expose its current access token. An empty token means the user is
// not logged in, and clients then send requests without an Authorization header.
//
// # Implementations
//
//   - Keycloak: mutable, concurrency-safe holder updated by the login flow (SetToken/Clear),
//     with unverified access to the token's claims via TokenParsed and Subject
//   - Static: a fixed token, handy for scripts and tests
//   - Func: adapt any func() string
//   - FromTokenSource: adapt a golang.org/x/oauth2 TokenSource
//
// # Quick Start
//
//	kc := session.NewKeycloak(session.WithLoggingEnabled())
//	kc.SetToken(accessToken)
//
//	client, err := httpclient.NewBuilder().
//	    WithSession(kc).
//	    Build()
//
// Tokens are never validated here: signature, audience and expiry checks belong to the server.
package session
