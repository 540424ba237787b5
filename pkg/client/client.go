package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/naveenspark/estate/internal/logging"
	"github.com/naveenspark/estate/pkg/domain"
)

// TokenSource supplies the bearer token for each request. A returned error
// means "no token": the request is sent without Authorization.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// Client is the listing service API client.
type Client struct {
	baseURL    string
	tokens     TokenSource
	httpClient *http.Client
	log        logging.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogger sets the request logger.
func WithLogger(l logging.Logger) Option {
	return func(c *Client) { c.log = l }
}

// New creates a new API client. tokens may be nil for anonymous use.
func New(baseURL string, tokens TokenSource, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		tokens:  tokens,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		log: logging.NewNop(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// BaseURL returns the service root the client talks to.
func (c *Client) BaseURL() string { return c.baseURL }

// ListingURL returns the API address of a listing.
func (c *Client) ListingURL(id int64) string {
	return c.baseURL + "/api/v1/property/" + strconv.FormatInt(id, 10)
}

// --- Auth ---

// Authenticate logs in with email and password.
func (c *Client) Authenticate(ctx context.Context, creds domain.Credentials) (*domain.TokenPair, error) {
	var tp domain.TokenPair
	if err := c.post(ctx, "/api/v1/auth/authenticate", creds, &tp); err != nil {
		return nil, fmt.Errorf("client.Authenticate: %w", err)
	}
	return &tp, nil
}

// Register creates an account and returns its tokens.
func (c *Client) Register(ctx context.Context, reg domain.Registration) (*domain.TokenPair, error) {
	var tp domain.TokenPair
	if err := c.post(ctx, "/api/v1/auth/register", reg, &tp); err != nil {
		return nil, fmt.Errorf("client.Register: %w", err)
	}
	return &tp, nil
}

// GetProfile fetches the profile fields of a user.
func (c *Client) GetProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	var p domain.Profile
	if err := c.get(ctx, "/api/v1/auth/"+url.PathEscape(userID), &p); err != nil {
		return nil, fmt.Errorf("client.GetProfile: %w", err)
	}
	return &p, nil
}

// UpdateProfile saves profile fields. The service may answer with the
// updated profile or an empty body; in the latter case p is returned.
func (c *Client) UpdateProfile(ctx context.Context, userID string, p domain.Profile) (*domain.Profile, error) {
	updated := p
	if err := c.doRequest(ctx, http.MethodPut, "/api/v1/auth/"+url.PathEscape(userID), p, &updated); err != nil {
		return nil, fmt.Errorf("client.UpdateProfile: %w", err)
	}
	return &updated, nil
}

// ChangePassword changes the password of the logged-in user.
func (c *Client) ChangePassword(ctx context.Context, req domain.PasswordChange) error {
	if err := c.doRequest(ctx, http.MethodPut, "/api/v1/users", req, nil); err != nil {
		return fmt.Errorf("client.ChangePassword: %w", err)
	}
	return nil
}

// DeleteAccount deletes the logged-in user.
func (c *Client) DeleteAccount(ctx context.Context) error {
	if err := c.doRequest(ctx, http.MethodDelete, "/api/v1/users", nil, nil); err != nil {
		return fmt.Errorf("client.DeleteAccount: %w", err)
	}
	return nil
}

// --- Listings ---

// SearchListings fetches one page of listings. Every filter parameter is
// sent, empty when unset.
func (c *Client) SearchListings(ctx context.Context, q domain.SearchQuery) (*domain.ListingPage, error) {
	params := url.Values{}
	params.Set("page", strconv.Itoa(q.Page))
	params.Set("size", strconv.Itoa(q.Size))
	params.Set("status", string(q.Status))
	params.Set("city", q.City)
	params.Set("minPrice", q.MinPrice)
	params.Set("maxPrice", q.MaxPrice)
	params.Set("keyword", q.Keyword)

	var raw json.RawMessage
	if err := c.get(ctx, "/api/v1/property/search?"+params.Encode(), &raw); err != nil {
		return nil, fmt.Errorf("client.SearchListings: %w", err)
	}
	page, err := decodeListingPage(raw)
	if err != nil {
		return nil, fmt.Errorf("client.SearchListings: %w", err)
	}
	return page, nil
}

// decodeListingPage accepts the {content, totalPages} envelope or a bare
// array. Missing or zero totalPages counts as one page.
func decodeListingPage(raw json.RawMessage) (*domain.ListingPage, error) {
	raw = bytes.TrimSpace(raw)
	page := &domain.ListingPage{}

	if len(raw) > 0 && raw[0] == '{' {
		var env struct {
			Content    json.RawMessage `json:"content"`
			TotalPages int             `json:"totalPages"`
		}
		if err := json.Unmarshal(raw, &env); err != nil {
			return nil, fmt.Errorf("decode page: %w", err)
		}
		if len(env.Content) == 0 || string(env.Content) == "null" {
			return nil, errors.New("decode page: response has no content")
		}
		if err := json.Unmarshal(env.Content, &page.Listings); err != nil {
			return nil, fmt.Errorf("decode page content: %w", err)
		}
		page.TotalPages = env.TotalPages
	} else if err := json.Unmarshal(raw, &page.Listings); err != nil {
		return nil, fmt.Errorf("decode listings: %w", err)
	}

	if page.TotalPages <= 0 {
		page.TotalPages = 1
	}
	return page, nil
}

// GetListing fetches a single listing with its images.
func (c *Client) GetListing(ctx context.Context, id string) (*domain.Listing, error) {
	var l domain.Listing
	if err := c.get(ctx, "/api/v1/property/"+url.PathEscape(id), &l); err != nil {
		return nil, fmt.Errorf("client.GetListing: %w", err)
	}
	return &l, nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.doRequest(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body any, out any) error {
	return c.doRequest(ctx, http.MethodPost, path, body, out)
}

func (c *Client) doRequest(ctx context.Context, method, path string, body any, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.send(req, out)
}

// send adds auth and tracing headers, performs req and decodes the response.
func (c *Client) send(req *http.Request, out any) error {
	ctx := req.Context()
	if c.tokens != nil {
		if tok, err := c.tokens.Token(ctx); err == nil && tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}
	reqID := uuid.NewString()
	req.Header.Set("X-Request-Id", reqID)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Debug(ctx, "request failed", "request_id", reqID, "method", req.Method, "path", req.URL.Path, "err", err)
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck // best-effort close

	c.log.Debug(ctx, "request", "request_id", reqID, "method", req.Method, "path", req.URL.Path,
		"status", resp.StatusCode, "elapsed", time.Since(start))

	if resp.StatusCode >= 400 {
		return readHTTPError(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

func readHTTPError(resp *http.Response) error {
	respBody, readErr := io.ReadAll(io.LimitReader(resp.Body, 1<<20)) // 1 MB max error body
	if readErr != nil {
		return &HTTPError{StatusCode: resp.StatusCode, Message: fmt.Sprintf("failed to read body: %v", readErr)}
	}
	var apiErr struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if json.Unmarshal(respBody, &apiErr) == nil {
		if apiErr.Message != "" {
			return &HTTPError{StatusCode: resp.StatusCode, Message: apiErr.Message}
		}
		if apiErr.Error != "" {
			return &HTTPError{StatusCode: resp.StatusCode, Message: apiErr.Error}
		}
	}
	return &HTTPError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(respBody))}
}
