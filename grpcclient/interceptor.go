package grpcclient

import (
	"context"

	"github.com/MacarenaGarciaM/Tingeso1/session"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
)

// authorizationKey is the metadata key carrying the bearer token.
const authorizationKey = "authorization"

// withBearer appends the session token to the outgoing metadata when one is present.
func withBearer(ctx context.Context, s session.Session) context.Context {
	if s == nil {
		return ctx
	}
	if token := s.Token(); token != "" {
		return metadata.AppendToOutgoingContext(ctx, authorizationKey, "Bearer "+token)
	}
	return ctx
}

// UnaryClientInterceptor returns a gRPC unary client interceptor that adds
// "authorization: Bearer <token>" metadata while the session holds a token.
// Calls made without a token proceed unauthenticated.
//
// Usage:
//
//	conn, err := grpc.NewClient(
//	    "server:9090",
//	    grpc.WithUnaryInterceptor(grpcclient.UnaryClientInterceptor(kc)),
//	)
func UnaryClientInterceptor(s session.Session) grpc.UnaryClientInterceptor {
	return func(
		ctx context.Context,
		method string,
		req, reply interface{},
		cc *grpc.ClientConn,
		invoker grpc.UnaryInvoker,
		opts ...grpc.CallOption,
	) error {
		return invoker(withBearer(ctx, s), method, req, reply, cc, opts...)
	}
}

// StreamClientInterceptor returns a gRPC stream client interceptor that adds
// "authorization: Bearer <token>" metadata while the session holds a token.
func StreamClientInterceptor(s session.Session) grpc.StreamClientInterceptor {
	return func(
		ctx context.Context,
		desc *grpc.StreamDesc,
		cc *grpc.ClientConn,
		method string,
		streamer grpc.Streamer,
		opts ...grpc.CallOption,
	) (grpc.ClientStream, error) {
		return streamer(withBearer(ctx, s), desc, cc, method, opts...)
	}
}
