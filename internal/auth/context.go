package auth

import (
	"context"

	"github.com/fekuna/omnipos-storefront-service/internal/pkg/middleware"
	"google.golang.org/grpc/metadata"
)

// GetStoreID returns the tenant (store) the merchant request acts on.
func GetStoreID(ctx context.Context) string {
	// Check if added to context by interceptor
	if val, ok := ctx.Value(middleware.StoreIDKey).(string); ok {
		return val
	}

	// Fallback to metadata
	md, ok := metadata.FromIncomingContext(ctx)
	if ok {
		if val := md.Get("x-store-id"); len(val) > 0 {
			return val[0]
		}
	}
	return ""
}

func GetUserID(ctx context.Context) string {
	if val, ok := ctx.Value(middleware.UserIDKey).(string); ok {
		return val
	}
	md, ok := metadata.FromIncomingContext(ctx)
	if ok {
		if val := md.Get("x-user-id"); len(val) > 0 {
			return val[0]
		}
	}
	return ""
}
