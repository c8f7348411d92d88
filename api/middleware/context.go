package middleware

import "context"

type contextKey string

const (
	ctxStoreID     contextKey = "store_id"
	ctxAccessToken contextKey = "store_access_token"
)

func StoreIDFromContext(ctx context.Context) uint64 {
	if ctx == nil {
		return 0
	}
	if v, ok := ctx.Value(ctxStoreID).(uint64); ok {
		return v
	}
	return 0
}

func AccessTokenFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxAccessToken).(string); ok {
		return v
	}
	return ""
}

// WithStoreID injects the resolved store identifier into the context.
func WithStoreID(ctx context.Context, storeID uint64) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxStoreID, storeID)
}

// WithAccessToken injects the store's platform token for downstream proxies.
func WithAccessToken(ctx context.Context, token string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxAccessToken, token)
}
