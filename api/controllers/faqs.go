package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nexofaq/nexofaq-backend/api/middleware"
	"github.com/nexofaq/nexofaq-backend/api/responses"
	"github.com/nexofaq/nexofaq-backend/api/validators"
	faqsvc "github.com/nexofaq/nexofaq-backend/internal/faqs"
	pkgerrors "github.com/nexofaq/nexofaq-backend/pkg/errors"
	"github.com/nexofaq/nexofaq-backend/pkg/logger"
)

func storeFromContext(r *http.Request) (uint64, error) {
	storeID := middleware.StoreIDFromContext(r.Context())
	if storeID == 0 {
		return 0, pkgerrors.New(pkgerrors.CodeForbidden, "store context missing")
	}
	return storeID, nil
}

func faqIDFromRoute(r *http.Request) (uint64, error) {
	return validators.ParsePathID(chi.URLParam(r, "faqId"), "faqId")
}

func ListFaqs(svc faqsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		storeID, err := storeFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		faqs, err := svc.List(r.Context(), storeID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, faqs)
	}
}

func GetFaq(svc faqsvc.Service, logg *logger.Logger) http.HandlerFunc {
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

		faq, err := svc.Get(r.Context(), storeID, faqID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, faq)
	}
}

func CreateFaq(svc faqsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		storeID, err := storeFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload faqsvc.CreateFaqDTO
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		faq, err := svc.Create(r.Context(), storeID, payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, faq)
	}
}

func UpdateFaq(svc faqsvc.Service, logg *logger.Logger) http.HandlerFunc {
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

		var payload faqsvc.UpdateFaqDTO
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		faq, err := svc.Update(r.Context(), storeID, faqID, payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, faq)
	}
}

func DeleteFaq(svc faqsvc.Service, logg *logger.Logger) http.HandlerFunc {
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

		if err := svc.Delete(r.Context(), storeID, faqID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]bool{"deleted": true})
	}
}
