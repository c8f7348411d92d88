package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

var defaultCORSOrigins = []string{
	"http://localhost:3000",             // local dev
	"https://*.lojavirtualnuvem.com.br", // storefront domains
	"https://*.mitiendanube.com",
	"https://*.nuvemshop.com.br",
}

// CORS returns middleware that applies the API's allowed origin policy. The
// public resolution endpoints are called straight from storefront pages, so
// the storefront wildcard domains stay open.
func CORS() func(http.Handler) http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins:   defaultCORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "Idempotency-Key", "X-Requested-With"},
		ExposedHeaders:   []string{"X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           300,
	}).Handler
}
