package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nexofaq/nexofaq-backend/api/responses"
	"github.com/nexofaq/nexofaq-backend/api/validators"
	faqsvc "github.com/nexofaq/nexofaq-backend/internal/faqs"
	"github.com/nexofaq/nexofaq-backend/pkg/logger"
)

func questionIDFromRoute(r *http.Request) (uint64, error) {
	return validators.ParsePathID(chi.URLParam(r, "questionId"), "questionId")
}

func AddQuestion(svc faqsvc.Service, logg *logger.Logger) http.HandlerFunc {
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

		var payload faqsvc.AddQuestionDTO
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		question, err := svc.AddQuestion(r.Context(), storeID, faqID, payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, question)
	}
}

func UpdateQuestion(svc faqsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		storeID, err := storeFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		questionID, err := questionIDFromRoute(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload faqsvc.UpdateQuestionDTO
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		question, err := svc.UpdateQuestion(r.Context(), storeID, questionID, payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, question)
	}
}

func DeleteQuestion(svc faqsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		storeID, err := storeFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		questionID, err := questionIDFromRoute(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteQuestion(r.Context(), storeID, questionID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]bool{"deleted": true})
	}
}
