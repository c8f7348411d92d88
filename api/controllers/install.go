package controllers

import (
	"net/http"
	"strings"

	"github.com/nexofaq/nexofaq-backend/api/responses"
	storesvc "github.com/nexofaq/nexofaq-backend/internal/stores"
	pkgerrors "github.com/nexofaq/nexofaq-backend/pkg/errors"
	"github.com/nexofaq/nexofaq-backend/pkg/logger"
)

// Install completes the OAuth handshake: the platform redirects here with an
// authorization code, the service exchanges it for an access token and
// upserts the store record.
func Install(svc storesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "store service unavailable"))
			return
		}

		code := strings.TrimSpace(r.URL.Query().Get("code"))
		if code == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "authorization code is required"))
			return
		}

		store, err := svc.Install(r.Context(), code)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, store)
	}
}
