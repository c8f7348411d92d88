package controllers

import (
	"net/http"
	"strings"

	"github.com/nexofaq/nexofaq-backend/api/middleware"
	"github.com/nexofaq/nexofaq-backend/api/responses"
	"github.com/nexofaq/nexofaq-backend/api/validators"
	pkgerrors "github.com/nexofaq/nexofaq-backend/pkg/errors"
	"github.com/nexofaq/nexofaq-backend/pkg/logger"
	"github.com/nexofaq/nexofaq-backend/pkg/nuvemshop"
)

// ListCatalogProducts proxies the store's product list so the admin panel can
// pick binding targets without holding the platform token itself.
func ListCatalogProducts(client *nuvemshop.Client, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		storeID, err := storeFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		token := middleware.AccessTokenFromContext(r.Context())
		if token == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "store token missing"))
			return
		}

		page, err := validators.ParseQueryInt(r, "page", 1, 1, 10000)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		perPage, err := validators.ParseQueryInt(r, "per_page", 30, 1, 200)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		products, err := client.ListProducts(r.Context(), storeID, token, nuvemshop.ProductListParams{
			Query:   strings.TrimSpace(r.URL.Query().Get("q")),
			Page:    page,
			PerPage: perPage,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, products)
	}
}

// ListCatalogCategories proxies the store's category list.
func ListCatalogCategories(client *nuvemshop.Client, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		storeID, err := storeFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		token := middleware.AccessTokenFromContext(r.Context())
		if token == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "store token missing"))
			return
		}

		categories, err := client.ListCategories(r.Context(), storeID, token)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, categories)
	}
}
