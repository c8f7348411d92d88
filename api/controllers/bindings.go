package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nexofaq/nexofaq-backend/api/responses"
	"github.com/nexofaq/nexofaq-backend/api/validators"
	bindingsvc "github.com/nexofaq/nexofaq-backend/internal/bindings"
	"github.com/nexofaq/nexofaq-backend/pkg/logger"
)

type addProductBindingRequest struct {
	ProductID uint64 `json:"product_id" validate:"required"`
}

type addCategoryBindingRequest struct {
	CategoryID     uint64  `json:"category_id" validate:"required"`
	CategoryHandle *string `json:"category_handle"`
}

func AddProductBinding(svc bindingsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		storeID, err := storeFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		faqID, err := faqIDFromRoute(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload addProductBindingRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		binding, err := svc.AddProductBinding(r.Context(), storeID, faqID, payload.ProductID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, binding)
	}
}

func RemoveProductBinding(svc bindingsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		storeID, err := storeFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		faqID, err := faqIDFromRoute(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		productID, err := validators.ParsePathID(chi.URLParam(r, "productId"), "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.RemoveProductBinding(r.Context(), storeID, faqID, productID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]bool{"removed": true})
	}
}

func AddCategoryBinding(svc bindingsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		storeID, err := storeFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		faqID, err := faqIDFromRoute(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload addCategoryBindingRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		binding, err := svc.AddCategoryBinding(r.Context(), storeID, faqID, bindingsvc.CategoryBindingInput{
			CategoryID:     payload.CategoryID,
			CategoryHandle: payload.CategoryHandle,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, binding)
	}
}

func RemoveCategoryBinding(svc bindingsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		storeID, err := storeFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		faqID, err := faqIDFromRoute(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		categoryID, err := validators.ParsePathID(chi.URLParam(r, "categoryId"), "categoryId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.RemoveCategoryBinding(r.Context(), storeID, faqID, categoryID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]bool{"removed": true})
	}
}
