package middleware

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
)

type ctxKey string

const (
	StoreIDKey ctxKey = "store_id"
	UserIDKey  ctxKey = "user_id"
)

// ContextInterceptor copies x-store-id / x-user-id metadata into the request context.
func ContextInterceptor() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		if md, ok := metadata.FromIncomingContext(ctx); ok {
			if v := md.Get("x-store-id"); len(v) > 0 && v[0] != "" {
				ctx = context.WithValue(ctx, StoreIDKey, v[0])
			}
			if v := md.Get("x-user-id"); len(v) > 0 && v[0] != "" {
				ctx = context.WithValue(ctx, UserIDKey, v[0])
			}
		}
		return handler(ctx, req)
	}
}
