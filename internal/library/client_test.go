package library

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestParseBaseURL_DefaultsAndNormalizes(t *testing.T) {
	u, err := parseBaseURL("")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Scheme != "http" {
		t.Fatalf("scheme = %q, want http", u.Scheme)
	}
	if u.Host != "localhost:8080" {
		t.Fatalf("host = %q, want localhost:8080", u.Host)
	}

	u, err = parseBaseURL("http://example.com:1234/api/?x=1#frag")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Path != "/api" || u.RawQuery != "" || u.Fragment != "" {
		t.Fatalf("url not normalized: %q", u.String())
	}

	u, err = parseBaseURL("10.0.0.5:9000")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if got := u.JoinPath("books", "7").String(); got != "http://10.0.0.5:9000/books/7" {
		t.Fatalf("JoinPath = %q, want http://10.0.0.5:9000/books/7", got)
	}
}

func TestParseBaseURL_MissingHost(t *testing.T) {
	if _, err := parseBaseURL("http://"); err == nil {
		t.Fatalf("parseBaseURL returned nil error, want missing host")
	}
}

func TestClient_CRUDRoundTrip(t *testing.T) {
	t.Parallel()

	var (
		gotUserAgent string
		gotRequestID string
		gotCreate    Draft
		gotUpdate    Draft
		gotDelete    string
	)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserAgent = r.Header.Get("User-Agent")
		gotRequestID = r.Header.Get(RequestIDHeader)
		w.Header().Set("Content-Type", "application/json")

		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/books":
			_, _ = io.WriteString(w, `{"message":"books fetched","data":[{"id":1,"title":"One Piece","author":"Oda","publish_year":1997}]}`)
		case r.Method == http.MethodGet && r.URL.Path == "/books/1":
			_, _ = io.WriteString(w, `{"data":{"id":1,"title":"One Piece","author":"Oda","publish_year":1997,"created_at":"2025-01-02T03:04:05Z"}}`)
		case r.Method == http.MethodPost && r.URL.Path == "/books":
			_ = json.NewDecoder(r.Body).Decode(&gotCreate)
			_, _ = io.WriteString(w, `{"message":"book data stored","data":{"id":2,"title":"Dune","author":"Herbert","publish_year":1965}}`)
		case r.Method == http.MethodPut && r.URL.Path == "/books/1":
			_ = json.NewDecoder(r.Body).Decode(&gotUpdate)
			_, _ = io.WriteString(w, `{"id":1,"title":"One Piece Remastered","author":"Oda","publish_year":1997}`)
		case r.Method == http.MethodDelete && r.URL.Path == "/books/1":
			gotDelete = r.URL.Path
			w.WriteHeader(http.StatusOK)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL, 0)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)

	books, err := c.FetchBooks(ctx)
	if err != nil {
		t.Fatalf("FetchBooks returned error: %v", err)
	}
	if len(books) != 1 || books[0].ID != 1 || books[0].Title != "One Piece" {
		t.Fatalf("FetchBooks = %#v, want one book id=1", books)
	}

	book, err := c.FetchBook(ctx, 1)
	if err != nil {
		t.Fatalf("FetchBook returned error: %v", err)
	}
	if book.PublishYear != 1997 || book.ParsedCreatedAt().IsZero() {
		t.Fatalf("FetchBook = %#v, want year 1997 and created_at", book)
	}

	created, err := c.CreateBook(ctx, Draft{Title: "Dune", Author: "Herbert", PublishYear: 1965})
	if err != nil {
		t.Fatalf("CreateBook returned error: %v", err)
	}
	if created.ID != 2 {
		t.Fatalf("CreateBook id = %d, want 2", created.ID)
	}
	if gotCreate.Title != "Dune" || gotCreate.PublishYear != 1965 {
		t.Fatalf("CreateBook body = %#v, want Dune/1965", gotCreate)
	}

	updated, err := c.UpdateBook(ctx, 1, Draft{Title: "One Piece Remastered", Author: "Oda", PublishYear: 1997})
	if err != nil {
		t.Fatalf("UpdateBook returned error: %v", err)
	}
	if updated.Title != "One Piece Remastered" || gotUpdate.Title != "One Piece Remastered" {
		t.Fatalf("UpdateBook = %#v body %#v, want remastered title", updated, gotUpdate)
	}

	if err := c.DeleteBook(ctx, 1); err != nil {
		t.Fatalf("DeleteBook returned error: %v", err)
	}
	if gotDelete != "/books/1" {
		t.Fatalf("DeleteBook path = %q, want /books/1", gotDelete)
	}

	if !strings.HasPrefix(gotUserAgent, "shelf/") {
		t.Fatalf("User-Agent = %q, want shelf/*", gotUserAgent)
	}
	if len(gotRequestID) != 36 {
		t.Fatalf("X-Request-ID = %q, want a UUID", gotRequestID)
	}
}

func TestClient_NotFoundMatchesSentinel(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"error":"data not found","message":"failed to get book data"}`)
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL, time.Second)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	_, err = c.FetchBook(context.Background(), 999)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("FetchBook error = %v, want ErrNotFound", err)
	}
	var statusErr *StatusError
	if !errors.As(err, &statusErr) || statusErr.Code != http.StatusNotFound {
		t.Fatalf("FetchBook error = %#v, want *StatusError 404", err)
	}
	if !strings.Contains(err.Error(), "returned status 404") {
		t.Fatalf("FetchBook error = %q, want status text", err.Error())
	}
}

func TestClient_HTTPErrorAndDecodeError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte("{not-json"))
		default:
			http.Error(w, "nope", http.StatusInternalServerError)
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL, time.Second)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	_, err = c.FetchBooks(context.Background())
	if err == nil || !strings.Contains(err.Error(), "decode response") {
		t.Fatalf("FetchBooks error = %v, want decode response error", err)
	}

	_, err = c.CreateBook(context.Background(), Draft{Title: "a", Author: "b", PublishYear: 1})
	if err == nil || !strings.Contains(err.Error(), "returned status 500") {
		t.Fatalf("CreateBook error = %v, want status 500 error", err)
	}
	if errors.Is(err, ErrNotFound) {
		t.Fatalf("CreateBook error = %v, should not match ErrNotFound", err)
	}
}

func TestClient_NonListPayloadIsEmpty(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"data":{"id":1}}`)
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL, time.Second)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	books, err := c.FetchBooks(context.Background())
	if err != nil {
		t.Fatalf("FetchBooks returned error: %v", err)
	}
	if books == nil || len(books) != 0 {
		t.Fatalf("FetchBooks = %#v, want empty non-nil slice", books)
	}
}

func TestClient_CreateRequiresAssignedID(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"title":"Dune","author":"Herbert","publish_year":1965}`)
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL, time.Second)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	if _, err := c.CreateBook(context.Background(), Draft{Title: "Dune", Author: "Herbert", PublishYear: 1965}); err == nil {
		t.Fatalf("CreateBook returned nil error, want missing id error")
	}
}

func TestClient_RequiresPositiveID(t *testing.T) {
	c, err := NewClient("127.0.0.1:1", time.Second)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	if _, err := c.FetchBook(context.Background(), 0); err == nil {
		t.Fatalf("FetchBook(0) returned nil error")
	}
	if _, err := c.UpdateBook(context.Background(), -1, Draft{}); err == nil {
		t.Fatalf("UpdateBook(-1) returned nil error")
	}
	if err := c.DeleteBook(context.Background(), 0); err == nil {
		t.Fatalf("DeleteBook(0) returned nil error")
	}
}
