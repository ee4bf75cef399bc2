// Package httpclient builds API clients that attach the current session's bearer token to every
// outgoing request.
//
// The base URL comes from the API_URL environment variable and falls back to
// "http://localhost:8090". Before each request the token is read from a session.Session; when one is
// present the request carries "Authorization: Bearer <token>", otherwise it is sent unchanged.
// Absence of a token is not an error.
//
// # Features
//
//   - Fluent Builder producing a Client with base URL resolution
//   - Bearer injection registered exactly once, reading the token at dispatch time
//   - Request interceptors (request id via google/uuid, or your own)
//   - TLS 1.2+ by default, with custom CA/mTLS and optional InsecureSkipVerify
//   - Custom timeouts, base transport override, and redirect disabling
//   - Reusable BearerTransport for manual composition
//
// # Quick Start
//
//	kc := session.NewKeycloak()
//	kc.SetToken(accessToken)
//
//	client, err := httpclient.NewBuilder().
//	    WithSession(kc).
//	    WithRequestID("").
//	    WithTimeout(10 * time.Second).
//	    Build()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	resp, err := client.Get(ctx, "/api/tools")
//
// # Manual Transport Wrapping
//
//	transport := httpclient.NewBearerTransport(kc, nil)
//	client := &http.Client{Transport: transport}
//
// Transports never modify the caller's request; they work on a clone.
package httpclient
