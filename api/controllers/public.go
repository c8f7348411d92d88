package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/nexofaq/nexofaq-backend/api/responses"
	"github.com/nexofaq/nexofaq-backend/api/validators"
	faqsvc "github.com/nexofaq/nexofaq-backend/internal/faqs"
	pkgerrors "github.com/nexofaq/nexofaq-backend/pkg/errors"
	"github.com/nexofaq/nexofaq-backend/pkg/logger"
)

// Public resolution endpoints. The store id rides in the path because these
// are hit straight from storefront pages without any auth.

func publicStoreID(r *http.Request) (uint64, error) {
	return validators.ParsePathID(chi.URLParam(r, "storeId"), "storeId")
}

func PublicFaqByProduct(svc faqsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		storeID, err := publicStoreID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		productID, err := validators.ParsePathID(chi.URLParam(r, "productId"), "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		faq, err := svc.ResolveByProduct(r.Context(), storeID, productID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, faq)
	}
}

func PublicFaqByCategory(svc faqsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		storeID, err := publicStoreID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		handle := strings.TrimSpace(chi.URLParam(r, "categoryHandle"))
		if handle == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "category handle is required"))
			return
		}

		faq, err := svc.ResolveByCategory(r.Context(), storeID, handle)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, faq)
	}
}

func PublicFaqByHomepage(svc faqsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		storeID, err := publicStoreID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		faq, err := svc.ResolveHomepage(r.Context(), storeID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, faq)
	}
}

func CheckProductFaq(svc faqsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		storeID, err := publicStoreID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		productID, err := validators.ParsePathID(chi.URLParam(r, "productId"), "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		probe, err := svc.CheckProduct(r.Context(), storeID, productID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, probe)
	}
}

func CheckCategoryFaq(svc faqsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		storeID, err := publicStoreID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		handle := strings.TrimSpace(chi.URLParam(r, "categoryHandle"))
		if handle == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "category handle is required"))
			return
		}

		probe, err := svc.CheckCategory(r.Context(), storeID, handle)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, probe)
	}
}

func CheckHomepageFaq(svc faqsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		storeID, err := publicStoreID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		probe, err := svc.CheckHomepage(r.Context(), storeID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, probe)
	}
}
