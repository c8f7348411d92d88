package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/nexofaq/nexofaq-backend/api/middleware"
	"github.com/nexofaq/nexofaq-backend/internal/faqs"
	pkgerrors "github.com/nexofaq/nexofaq-backend/pkg/errors"
)

type stubFaqService struct {
	faq    *faqs.FaqDTO
	list   []faqs.FaqDTO
	public *faqs.PublicFaqDTO
	probe  *faqs.CheckResultDTO
	err    error
}

func (s stubFaqService) List(ctx context.Context, storeID uint64) ([]faqs.FaqDTO, error) {
	return s.list, s.err
}

func (s stubFaqService) Get(ctx context.Context, storeID, faqID uint64) (*faqs.FaqDTO, error) {
	return s.faq, s.err
}

func (s stubFaqService) Create(ctx context.Context, storeID uint64, input faqs.CreateFaqDTO) (*faqs.FaqDTO, error) {
	return s.faq, s.err
}

func (s stubFaqService) Update(ctx context.Context, storeID, faqID uint64, input faqs.UpdateFaqDTO) (*faqs.FaqDTO, error) {
	return s.faq, s.err
}

func (s stubFaqService) Delete(ctx context.Context, storeID, faqID uint64) error {
	return s.err
}

func (s stubFaqService) AddQuestion(ctx context.Context, storeID, faqID uint64, input faqs.AddQuestionDTO) (*faqs.QuestionDTO, error) {
	return nil, s.err
}

func (s stubFaqService) UpdateQuestion(ctx context.Context, storeID, questionID uint64, input faqs.UpdateQuestionDTO) (*faqs.QuestionDTO, error) {
	return nil, s.err
}

func (s stubFaqService) DeleteQuestion(ctx context.Context, storeID, questionID uint64) error {
	return s.err
}

func (s stubFaqService) ResolveByProduct(ctx context.Context, storeID, productID uint64) (*faqs.PublicFaqDTO, error) {
	return s.public, s.err
}

func (s stubFaqService) ResolveByCategory(ctx context.Context, storeID uint64, categoryHandle string) (*faqs.PublicFaqDTO, error) {
	return s.public, s.err
}

func (s stubFaqService) ResolveHomepage(ctx context.Context, storeID uint64) (*faqs.PublicFaqDTO, error) {
	return s.public, s.err
}

func (s stubFaqService) CheckProduct(ctx context.Context, storeID, productID uint64) (*faqs.CheckResultDTO, error) {
	return s.probe, s.err
}

func (s stubFaqService) CheckCategory(ctx context.Context, storeID uint64, categoryHandle string) (*faqs.CheckResultDTO, error) {
	return s.probe, s.err
}

func (s stubFaqService) CheckHomepage(ctx context.Context, storeID uint64) (*faqs.CheckResultDTO, error) {
	return s.probe, s.err
}

func requestWithParams(method, target string, body string, params map[string]string) *http.Request {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rc := chi.NewRouteContext()
	for key, value := range params {
		rc.URLParams.Add(key, value)
	}
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rc))
}

func TestListFaqsSuccess(t *testing.T) {
	list := []faqs.FaqDTO{{ID: 1, StoreID: 100, Title: "Envio", Active: true}}
	handler := ListFaqs(stubFaqService{list: list}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/faqs", nil)
	req = req.WithContext(middleware.WithStoreID(req.Context(), 100))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}

	var envelope struct {
		Data []faqs.FaqDTO `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(envelope.Data) != 1 || envelope.Data[0].Title != "Envio" {
		t.Fatalf("unexpected payload %+v", envelope.Data)
	}
}

func TestListFaqsMissingStoreContext(t *testing.T) {
	handler := ListFaqs(stubFaqService{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/faqs", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 got %d", rec.Code)
	}
}

func TestCreateFaqRejectsUnknownFields(t *testing.T) {
	handler := CreateFaq(stubFaqService{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/faqs", strings.NewReader(`{"title":"Envio","bogus":true}`))
	req = req.WithContext(middleware.WithStoreID(req.Context(), 100))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}

func TestCreateFaqSuccess(t *testing.T) {
	dto := &faqs.FaqDTO{ID: 7, StoreID: 100, Title: "Envio", Active: true}
	handler := CreateFaq(stubFaqService{faq: dto}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/faqs", strings.NewReader(`{"title":"Envio"}`))
	req = req.WithContext(middleware.WithStoreID(req.Context(), 100))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d", rec.Code)
	}
}

func TestGetFaqNotFound(t *testing.T) {
	handler := GetFaq(stubFaqService{err: pkgerrors.New(pkgerrors.CodeNotFound, "faq not found")}, nil)

	req := requestWithParams(http.MethodGet, "/api/faqs/42", "", map[string]string{"faqId": "42"})
	req = req.WithContext(middleware.WithStoreID(req.Context(), 100))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", rec.Code)
	}
}

func TestGetFaqRejectsBadID(t *testing.T) {
	handler := GetFaq(stubFaqService{}, nil)

	req := requestWithParams(http.MethodGet, "/api/faqs/abc", "", map[string]string{"faqId": "abc"})
	req = req.WithContext(middleware.WithStoreID(req.Context(), 100))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}

func TestPublicFaqByHomepage(t *testing.T) {
	public := &faqs.PublicFaqDTO{ID: 3, Title: "Geral", Active: true}
	handler := PublicFaqByHomepage(stubFaqService{public: public}, nil)

	req := requestWithParams(http.MethodGet, "/api/public/faqs/100/homepage", "", map[string]string{"storeId": "100"})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}

	var envelope struct {
		Data faqs.PublicFaqDTO `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.ID != 3 {
		t.Fatalf("unexpected payload %+v", envelope.Data)
	}
}

func TestCheckHomepageEmptyProbe(t *testing.T) {
	handler := CheckHomepageFaq(stubFaqService{probe: &faqs.CheckResultDTO{Exists: false}}, nil)

	req := requestWithParams(http.MethodGet, "/api/public/check/homepage/100", "", map[string]string{"storeId": "100"})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}

	var envelope struct {
		Data faqs.CheckResultDTO `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.Exists || envelope.Data.Data != nil {
		t.Fatalf("expected empty probe, got %+v", envelope.Data)
	}
}
