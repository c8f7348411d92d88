package nuvemshop

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/nexofaq/nexofaq-backend/pkg/config"
	pkgerrors "github.com/nexofaq/nexofaq-backend/pkg/errors"
)

func testConfig() config.NuvemshopConfig {
	return config.NuvemshopConfig{
		ClientID:     "app-id",
		ClientSecret: "app-secret",
		TokenURL:     "http://platform.test/apps/authorize/token",
		APIBaseURL:   "http://platform.test/v1",
		UserAgent:    "NexoFAQ (suporte@nexofaq.com.br)",
	}
}

func TestAuthorizeExchangesCode(t *testing.T) {
	var capturedForm url.Values
	var capturedHeaders http.Header

	rt := roundTripFunc(func(req *http.Request) (*http.Response, error) {
		capturedHeaders = req.Header.Clone()
		body, err := io.ReadAll(req.Body)
		if err != nil {
			t.Fatalf("read request body: %v", err)
		}
		capturedForm, err = url.ParseQuery(string(body))
		if err != nil {
			t.Fatalf("parse form body: %v", err)
		}
		respBody := `{"access_token":"tok-123","refresh_token":"refresh-456","token_type":"bearer","scope":"read_products","expires_in":86400,"user_id":445566}`
		return &http.Response{
			StatusCode: http.StatusOK,
			Body:       io.NopCloser(strings.NewReader(respBody)),
			Header:     http.Header{},
		}, nil
	})

	client, err := NewClient(testConfig(), WithHTTPClient(&http.Client{Transport: rt}))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	auth, err := client.Authorize(context.Background(), "code-abc")
	if err != nil {
		t.Fatalf("authorize: %v", err)
	}
	if auth.StoreID != 445566 {
		t.Fatalf("expected store 445566, got %d", auth.StoreID)
	}
	if auth.AccessToken != "tok-123" {
		t.Fatalf("unexpected access token %q", auth.AccessToken)
	}
	if auth.RefreshToken != "refresh-456" {
		t.Fatalf("unexpected refresh token %q", auth.RefreshToken)
	}
	if auth.ExpiresIn != 86400 {
		t.Fatalf("unexpected expires_in %d", auth.ExpiresIn)
	}
	if auth.Raw["refresh_token"] != "refresh-456" || auth.Raw["user_id"] != float64(445566) {
		t.Fatalf("expected raw payload preserved, got %v", auth.Raw)
	}

	if capturedForm.Get("grant_type") != "authorization_code" {
		t.Fatalf("unexpected grant_type %q", capturedForm.Get("grant_type"))
	}
	if capturedForm.Get("client_id") != "app-id" || capturedForm.Get("client_secret") != "app-secret" {
		t.Fatalf("credentials missing from form: %v", capturedForm)
	}
	if capturedForm.Get("code") != "code-abc" {
		t.Fatalf("unexpected code %q", capturedForm.Get("code"))
	}
	if got := capturedHeaders.Get("User-Agent"); got != "NexoFAQ (suporte@nexofaq.com.br)" {
		t.Fatalf("unexpected user agent %q", got)
	}
}

func TestAuthorizeRejectsUpstreamError(t *testing.T) {
	rt := roundTripFunc(func(req *http.Request) (*http.Response, error) {
		respBody := `{"error":"invalid_grant","error_description":"code expired"}`
		return &http.Response{
			StatusCode: http.StatusOK,
			Body:       io.NopCloser(strings.NewReader(respBody)),
			Header:     http.Header{},
		}, nil
	})

	client, err := NewClient(testConfig(), WithHTTPClient(&http.Client{Transport: rt}))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	_, err = client.Authorize(context.Background(), "stale-code")
	if err == nil {
		t.Fatalf("expected error for rejected exchange")
	}
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency error, got %v", err)
	}
}

func TestListProductsSimplifiesCatalog(t *testing.T) {
	var capturedURL string
	var capturedAuth string

	rt := roundTripFunc(func(req *http.Request) (*http.Response, error) {
		capturedURL = req.URL.String()
		capturedAuth = req.Header.Get("Authentication")
		respBody := `[
			{"id":11,"name":{"pt":"Camiseta","es":"Camiseta ES"},"images":[{"src":"https://cdn.test/camiseta.jpg"}]},
			{"id":12,"name":{"es":"Gorra"},"images":[]}
		]`
		return &http.Response{
			StatusCode: http.StatusOK,
			Body:       io.NopCloser(strings.NewReader(respBody)),
			Header:     http.Header{},
		}, nil
	})

	client, err := NewClient(testConfig(), WithHTTPClient(&http.Client{Transport: rt}))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	products, err := client.ListProducts(context.Background(), 445566, "tok-123", ProductListParams{Query: "camiseta", Page: 1, PerPage: 20})
	if err != nil {
		t.Fatalf("list products: %v", err)
	}
	if len(products) != 2 {
		t.Fatalf("expected 2 products, got %d", len(products))
	}
	if products[0].Name != "Camiseta" || products[0].Image != "https://cdn.test/camiseta.jpg" {
		t.Fatalf("unexpected first product %+v", products[0])
	}
	if products[1].Name != "Gorra" || products[1].Image != "" {
		t.Fatalf("unexpected second product %+v", products[1])
	}

	if !strings.Contains(capturedURL, "/445566/products") {
		t.Fatalf("unexpected URL %q", capturedURL)
	}
	if !strings.Contains(capturedURL, "fields=id%2Cname%2Cvariants%2Cimages") {
		t.Fatalf("fields filter missing from URL %q", capturedURL)
	}
	if !strings.Contains(capturedURL, "q=camiseta") || !strings.Contains(capturedURL, "page=1") || !strings.Contains(capturedURL, "per_page=20") {
		t.Fatalf("pagination params missing from URL %q", capturedURL)
	}
	if capturedAuth != "bearer tok-123" {
		t.Fatalf("unexpected Authentication header %q", capturedAuth)
	}
}

func TestListCategoriesResolvesHandles(t *testing.T) {
	rt := roundTripFunc(func(req *http.Request) (*http.Response, error) {
		respBody := `[{"id":7,"name":{"pt":"Promoções"},"handle":{"pt":"promocoes"}}]`
		return &http.Response{
			StatusCode: http.StatusOK,
			Body:       io.NopCloser(strings.NewReader(respBody)),
			Header:     http.Header{},
		}, nil
	})

	client, err := NewClient(testConfig(), WithHTTPClient(&http.Client{Transport: rt}))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	categories, err := client.ListCategories(context.Background(), 445566, "tok-123")
	if err != nil {
		t.Fatalf("list categories: %v", err)
	}
	if len(categories) != 1 {
		t.Fatalf("expected 1 category, got %d", len(categories))
	}
	if categories[0].Handle != "promocoes" || categories[0].Name != "Promoções" {
		t.Fatalf("unexpected category %+v", categories[0])
	}
}

func TestFetchStoreNamePrefersPortuguese(t *testing.T) {
	rt := roundTripFunc(func(req *http.Request) (*http.Response, error) {
		respBody := `{"name":{"es":"Tienda","pt":"Loja"}}`
		return &http.Response{
			StatusCode: http.StatusOK,
			Body:       io.NopCloser(strings.NewReader(respBody)),
			Header:     http.Header{},
		}, nil
	})

	client, err := NewClient(testConfig(), WithHTTPClient(&http.Client{Transport: rt}))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	name, err := client.FetchStoreName(context.Background(), 445566, "tok-123")
	if err != nil {
		t.Fatalf("fetch store name: %v", err)
	}
	if name != "Loja" {
		t.Fatalf("expected pt name, got %q", name)
	}
}

func TestGetJSONSurfacesUpstreamStatus(t *testing.T) {
	rt := roundTripFunc(func(req *http.Request) (*http.Response, error) {
		return &http.Response{
			StatusCode: http.StatusUnauthorized,
			Body:       io.NopCloser(strings.NewReader(`{"message":"Invalid access token"}`)),
			Header:     http.Header{},
		}, nil
	})

	client, err := NewClient(testConfig(), WithHTTPClient(&http.Client{Transport: rt}))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	_, err = client.ListProducts(context.Background(), 445566, "revoked", ProductListParams{})
	if err == nil {
		t.Fatalf("expected error for upstream 401")
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency error, got %v", err)
	}
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}
