// Package testutil provides test helpers for the client packages.
//
// # Utilities
//
//   - NewLocalHTTPServer: start httptest server bound to 127.0.0.1
//   - RoundTripFunc, StaticResponse, RecordingTransport: in-memory transports that capture requests
//   - MockOAuth2Server: stub OAuth2 token endpoint reachable through its Ctx
//   - NewTestToken: HS256 JWTs with a subject, for session tests
//   - WriteTestCACert / WriteTestCertAndKey: generate temporary CA and leaf certificates for tests
package testutil
