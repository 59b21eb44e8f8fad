package library

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// BookService defines the gateway operations the dashboard relies on.
// It is implemented by *Client and can be faked in tests.
type BookService interface {
	FetchBooks(ctx context.Context) ([]Book, error)
	FetchBook(ctx context.Context, id int64) (Book, error)
	CreateBook(ctx context.Context, draft Draft) (Book, error)
	UpdateBook(ctx context.Context, id int64, draft Draft) (Book, error)
	DeleteBook(ctx context.Context, id int64) error
}

// Ensure Client implements BookService at compile time.
var _ BookService = (*Client)(nil)

// RequestIDHeader carries a per-request identifier to the gateway.
const RequestIDHeader = "X-Request-ID"

const (
	defaultAPIURL    = "http://localhost:8080"
	defaultUserAgent = "shelf/0.1"
	defaultTimeout   = 5 * time.Second
)

// Client talks to the books HTTP API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
}

// NewClient builds a Client for apiURL. A zero timeout uses the default.
func NewClient(apiURL string, timeout time.Duration) (*Client, error) {
	base, err := parseBaseURL(apiURL)
	if err != nil {
		return nil, err
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: timeout,
		},
		userAgent: defaultUserAgent,
	}, nil
}

// BaseURL returns the normalized gateway address.
func (c *Client) BaseURL() string {
	if c == nil || c.baseURL == nil {
		return ""
	}
	return c.baseURL.String()
}

// FetchBooks retrieves the full collection. A payload whose data member is
// not a list decodes to an empty collection rather than an error.
func (c *Client) FetchBooks(ctx context.Context) ([]Book, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, nil, &raw, "books"); err != nil {
		return nil, err
	}
	return decodeBookList(raw), nil
}

// FetchBook retrieves a single book.
func (c *Client) FetchBook(ctx context.Context, id int64) (Book, error) {
	if c == nil {
		return Book{}, fmt.Errorf("client is nil")
	}
	if id <= 0 {
		return Book{}, fmt.Errorf("book id required")
	}
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, nil, &raw, "books", strconv.FormatInt(id, 10)); err != nil {
		return Book{}, err
	}
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return Book{}, fmt.Errorf("decode response: %w", err)
	}
	if data := bytes.TrimSpace(env.Data); len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return Book{}, fmt.Errorf("response for book %d has no data", id)
	}
	var book Book
	if err := json.Unmarshal(env.Data, &book); err != nil {
		return Book{}, fmt.Errorf("decode book: %w", err)
	}
	return book, nil
}

// CreateBook posts draft and returns the gateway's representation,
// including the id it assigned.
func (c *Client) CreateBook(ctx context.Context, draft Draft) (Book, error) {
	if c == nil {
		return Book{}, fmt.Errorf("client is nil")
	}
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodPost, draft, &raw, "books"); err != nil {
		return Book{}, err
	}
	book, err := decodeBook(raw)
	if err != nil {
		return Book{}, err
	}
	if book.ID <= 0 {
		return Book{}, fmt.Errorf("gateway returned book without id")
	}
	return book, nil
}

// UpdateBook sends a full replacement for id.
func (c *Client) UpdateBook(ctx context.Context, id int64, draft Draft) (Book, error) {
	if c == nil {
		return Book{}, fmt.Errorf("client is nil")
	}
	if id <= 0 {
		return Book{}, fmt.Errorf("book id required")
	}
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodPut, draft, &raw, "books", strconv.FormatInt(id, 10)); err != nil {
		return Book{}, err
	}
	book, err := decodeBook(raw)
	if err != nil {
		return Book{}, err
	}
	if book.ID == 0 {
		book.ID = id
	}
	return book, nil
}

// DeleteBook removes id. No response body is required.
func (c *Client) DeleteBook(ctx context.Context, id int64) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	if id <= 0 {
		return fmt.Errorf("book id required")
	}
	return c.do(ctx, http.MethodDelete, nil, nil, "books", strconv.FormatInt(id, 10))
}

func (c *Client) do(ctx context.Context, method string, body any, dest *json.RawMessage, segments ...string) error {
	reqURL := c.baseURL.JoinPath(segments...)

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set(RequestIDHeader, uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &StatusError{Method: method, Path: reqURL.Path, Code: resp.StatusCode}
	}
	if dest == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func parseBaseURL(apiURL string) (*url.URL, error) {
	trimmed := strings.TrimSpace(apiURL)
	if trimmed == "" {
		trimmed = defaultAPIURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api url %q: %w", apiURL, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse api url %q: missing host", apiURL)
	}
	u.Path = strings.TrimRight(u.Path, "/")
	if u.Path == "" {
		u.Path = "/"
	}
	u.RawPath = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
