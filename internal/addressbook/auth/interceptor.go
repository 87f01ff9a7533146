// Package auth guards the mutating address book operations with HS256
// bearer tokens, over gRPC metadata and HTTP headers alike.
package auth

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// Interceptor requires a token on a fixed set of gRPC methods.
type Interceptor struct {
	jwtSecret string
	protected map[string]struct{}
}

// NewAuthInterceptor protects the given full method names
// ("/package.Service/Method"). Every other method passes through.
func NewAuthInterceptor(jwtSecret string, protectedMethods []string) *Interceptor {
	protected := make(map[string]struct{}, len(protectedMethods))
	for _, m := range protectedMethods {
		protected[m] = struct{}{}
	}
	return &Interceptor{jwtSecret: jwtSecret, protected: protected}
}

// Protects reports whether fullMethod needs a token.
func (i *Interceptor) Protects(fullMethod string) bool {
	_, ok := i.protected[fullMethod]
	return ok
}

// Unary returns a gRPC unary interceptor for token validation on protected methods.
func (i *Interceptor) Unary() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		if !i.Protects(info.FullMethod) {
			return handler(ctx, req)
		}
		var header string
		if md, ok := metadata.FromIncomingContext(ctx); ok {
			if values := md.Get("authorization"); len(values) > 0 {
				header = values[0]
			}
		}
		authed, err := authenticate(ctx, header, i.jwtSecret)
		if err != nil {
			return nil, status.Error(codes.Unauthenticated, err.Error())
		}
		return handler(authed, req)
	}
}
