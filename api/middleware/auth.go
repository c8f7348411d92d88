package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/nexofaq/nexofaq-backend/api/responses"
	"github.com/nexofaq/nexofaq-backend/internal/stores"
	pkgauth "github.com/nexofaq/nexofaq-backend/pkg/auth"
	pkgerrors "github.com/nexofaq/nexofaq-backend/pkg/errors"
	"github.com/nexofaq/nexofaq-backend/pkg/logger"
)

// CredentialsSource narrows the stores service to what the middleware needs.
type CredentialsSource interface {
	Credentials(ctx context.Context, storeID uint64) (*stores.CredentialsDTO, error)
}

// NexoAuth decodes the embedded-app bearer token, resolves the installed
// store and seeds the request context with the store id and platform token.
// A token for a store that never installed the app reads as not found.
func NexoAuth(stores CredentialsSource, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := strings.TrimSpace(r.Header.Get("Authorization"))
			if raw == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			token := raw
			if strings.HasPrefix(strings.ToLower(token), "bearer ") {
				token = strings.TrimSpace(token[7:])
			}
			if token == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			claims, err := pkgauth.DecodeStoreToken(token)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid token"))
				return
			}

			creds, err := stores.Credentials(r.Context(), claims.StoreID)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}

			ctx := WithStoreID(r.Context(), creds.StoreID)
			ctx = WithAccessToken(ctx, creds.AccessToken)
			if logg != nil {
				ctx = logg.WithStoreID(ctx, creds.StoreID)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
