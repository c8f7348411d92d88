package nuvemshop

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/nexofaq/nexofaq-backend/pkg/config"
	pkgerrors "github.com/nexofaq/nexofaq-backend/pkg/errors"
	"github.com/nexofaq/nexofaq-backend/pkg/types"
)

const (
	defaultTokenURL      = "https://www.nuvemshop.com.br/apps/authorize/token"
	defaultAPIBaseURL    = "https://api.nuvemshop.com.br/2025-03"
	productFields        = "id,name,variants,images"
	categoryFields       = "id,name,handle"
	requestBodyReadLimit = int64(1024)
	tokenBodyReadLimit   = int64(64 * 1024)
	defaultTimeout       = 15 * time.Second
)

// Client wraps the Nuvemshop OAuth and Admin APIs used by the app.
type Client struct {
	httpClient   *http.Client
	tokenURL     string
	apiBaseURL   string
	clientID     string
	clientSecret string
	userAgent    string
}

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithTokenURL overrides the OAuth token endpoint.
func WithTokenURL(tokenURL string) Option {
	return func(c *Client) {
		trimmed := strings.TrimSpace(tokenURL)
		if trimmed != "" {
			c.tokenURL = trimmed
		}
	}
}

// WithAPIBaseURL overrides the Admin API base URL.
func WithAPIBaseURL(baseURL string) Option {
	return func(c *Client) {
		trimmed := strings.TrimSpace(baseURL)
		if trimmed != "" {
			c.apiBaseURL = trimmed
		}
	}
}

// NewClient builds the Nuvemshop client from app credentials.
func NewClient(cfg config.NuvemshopConfig, opts ...Option) (*Client, error) {
	if strings.TrimSpace(cfg.ClientID) == "" {
		return nil, fmt.Errorf("nuvemshop client id is required")
	}
	if strings.TrimSpace(cfg.ClientSecret) == "" {
		return nil, fmt.Errorf("nuvemshop client secret is required")
	}

	timeout := cfg.HTTPTimeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	client := &Client{
		httpClient:   &http.Client{Timeout: timeout},
		tokenURL:     defaultTokenURL,
		apiBaseURL:   defaultAPIBaseURL,
		clientID:     strings.TrimSpace(cfg.ClientID),
		clientSecret: strings.TrimSpace(cfg.ClientSecret),
		userAgent:    strings.TrimSpace(cfg.UserAgent),
	}
	if cfg.TokenURL != "" {
		client.tokenURL = strings.TrimSpace(cfg.TokenURL)
	}
	if cfg.APIBaseURL != "" {
		client.apiBaseURL = strings.TrimSpace(cfg.APIBaseURL)
	}

	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}

	return client, nil
}

// Authorization is the result of exchanging an OAuth code. Raw carries the
// decoded token payload exactly as the platform returned it.
type Authorization struct {
	StoreID      uint64
	AccessToken  string
	RefreshToken string
	TokenType    string
	Scope        string
	ExpiresIn    int
	Raw          types.JSONMap
}

// Product is the simplified catalog projection served to the admin UI.
type Product struct {
	ID    uint64 `json:"id"`
	Name  string `json:"name"`
	Image string `json:"image,omitempty"`
}

// Category is the simplified category projection served to the admin UI.
type Category struct {
	ID     uint64 `json:"id"`
	Name   string `json:"name"`
	Handle string `json:"handle"`
}

// Authorize exchanges an OAuth authorization code for an access token.
func (c *Client) Authorize(ctx context.Context, code string) (*Authorization, error) {
	if c == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "nuvemshop client not configured")
	}
	if strings.TrimSpace(code) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "authorization code is required")
	}

	form := url.Values{}
	form.Set("client_id", c.clientID)
	form.Set("client_secret", c.clientSecret)
	form.Set("grant_type", "authorization_code")
	form.Set("code", strings.TrimSpace(code))

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "build token request")
	}
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if c.userAgent != "" {
		httpReq.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "execute token request")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, requestBodyReadLimit))
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg))), "token exchange failed").
			WithDetails(map[string]any{"upstream_status": resp.StatusCode})
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, tokenBodyReadLimit))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read token response")
	}

	var apiResp struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
		TokenType    string `json:"token_type"`
		Scope        string `json:"scope"`
		ExpiresIn    int    `json:"expires_in"`
		UserID       uint64 `json:"user_id"`
		StoreID      uint64 `json:"store_id"`
		Error        string `json:"error"`
		Description  string `json:"error_description"`
	}
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode token response")
	}

	if apiResp.Error != "" || apiResp.AccessToken == "" {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, fmt.Errorf("%s: %s", apiResp.Error, apiResp.Description), "token exchange rejected")
	}

	storeID := apiResp.UserID
	if storeID == 0 {
		storeID = apiResp.StoreID
	}
	if storeID == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "token response carries no store id")
	}

	raw := types.JSONMap{}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode token response")
	}

	return &Authorization{
		StoreID:      storeID,
		AccessToken:  apiResp.AccessToken,
		RefreshToken: apiResp.RefreshToken,
		TokenType:    apiResp.TokenType,
		Scope:        apiResp.Scope,
		ExpiresIn:    apiResp.ExpiresIn,
		Raw:          raw,
	}, nil
}

// FetchStoreName returns the localized store name, preferring pt over es.
func (c *Client) FetchStoreName(ctx context.Context, storeID uint64, accessToken string) (string, error) {
	var apiResp struct {
		Name LocalizedString `json:"name"`
	}
	if err := c.getJSON(ctx, storeID, accessToken, "store", nil, &apiResp); err != nil {
		return "", err
	}
	return apiResp.Name.Resolve(), nil
}

// ProductListParams narrows the catalog listing. Zero values are omitted
// from the upstream query.
type ProductListParams struct {
	Query   string
	Page    int
	PerPage int
}

// ListProducts fetches the store catalog simplified to id, name and first image.
func (c *Client) ListProducts(ctx context.Context, storeID uint64, accessToken string, params ProductListParams) ([]Product, error) {
	var apiResp []struct {
		ID     uint64          `json:"id"`
		Name   LocalizedString `json:"name"`
		Images []struct {
			Src string `json:"src"`
		} `json:"images"`
	}
	query := url.Values{"fields": []string{productFields}}
	if q := strings.TrimSpace(params.Query); q != "" {
		query.Set("q", q)
	}
	if params.Page > 0 {
		query.Set("page", strconv.Itoa(params.Page))
	}
	if params.PerPage > 0 {
		query.Set("per_page", strconv.Itoa(params.PerPage))
	}
	if err := c.getJSON(ctx, storeID, accessToken, "products", query, &apiResp); err != nil {
		return nil, err
	}

	products := make([]Product, 0, len(apiResp))
	for _, p := range apiResp {
		product := Product{ID: p.ID, Name: p.Name.Resolve()}
		if len(p.Images) > 0 {
			product.Image = p.Images[0].Src
		}
		products = append(products, product)
	}
	return products, nil
}

// ListCategories fetches the store categories simplified to id, name and handle.
func (c *Client) ListCategories(ctx context.Context, storeID uint64, accessToken string) ([]Category, error) {
	var apiResp []struct {
		ID     uint64          `json:"id"`
		Name   LocalizedString `json:"name"`
		Handle LocalizedString `json:"handle"`
	}
	query := url.Values{"fields": []string{categoryFields}}
	if err := c.getJSON(ctx, storeID, accessToken, "categories", query, &apiResp); err != nil {
		return nil, err
	}

	categories := make([]Category, 0, len(apiResp))
	for _, cat := range apiResp {
		categories = append(categories, Category{
			ID:     cat.ID,
			Name:   cat.Name.Resolve(),
			Handle: cat.Handle.Resolve(),
		})
	}
	return categories, nil
}

func (c *Client) getJSON(ctx context.Context, storeID uint64, accessToken, path string, query url.Values, out any) error {
	if c == nil {
		return pkgerrors.New(pkgerrors.CodeDependency, "nuvemshop client not configured")
	}
	if storeID == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "store id is required")
	}
	if strings.TrimSpace(accessToken) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "access token is required")
	}

	endpoint := fmt.Sprintf("%s/%d/%s", strings.TrimRight(c.apiBaseURL, "/"), storeID, strings.TrimLeft(path, "/"))
	if len(query) > 0 {
		endpoint = endpoint + "?" + query.Encode()
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "build admin api request")
	}

	// the platform expects the token on an Authentication header, not Authorization
	httpReq.Header.Set("Authentication", "bearer "+strings.TrimSpace(accessToken))
	httpReq.Header.Set("Content-Type", "application/json")
	if c.userAgent != "" {
		httpReq.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "execute admin api request")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, requestBodyReadLimit))
		return pkgerrors.Wrap(pkgerrors.CodeDependency, fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg))), "admin api request failed").
			WithDetails(map[string]any{"upstream_status": resp.StatusCode, "path": path})
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode admin api response")
	}
	return nil
}
