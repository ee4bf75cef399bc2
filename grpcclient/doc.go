// Package grpcclient provides a fluent builder for gRPC client connections that forward the
// session's bearer token as "authorization" metadata.
//
// It defaults to TLS 1.2+ using system roots to avoid accidental plaintext connections. When the
// session has no token, calls go out without authorization metadata.
//
// # Quick Start
//
//	conn, err := grpcclient.NewBuilder().
//	    WithAddress("server.example.com:9090").
//	    WithSession(kc).
//	    WithTLS("/path/to/ca.crt", "", "", "server.example.com").
//	    Build(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer conn.Close()
//
// The interceptors are also usable on their own via UnaryClientInterceptor and StreamClientInterceptor.
package grpcclient
