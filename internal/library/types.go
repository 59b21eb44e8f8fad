package library

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

const gatewayTimestampLayout = "2006-01-02 15:04:05"

// Book mirrors a record returned by the books API.
type Book struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Author      string `json:"author"`
	PublishYear int    `json:"publish_year"`
	CreatedAt   string `json:"created_at,omitempty"`
	UpdatedAt   string `json:"updated_at,omitempty"`
}

// Draft is a book without an identifier. It is the request body for
// create and update calls.
type Draft struct {
	Title       string `json:"title" validate:"required"`
	Author      string `json:"author" validate:"required"`
	PublishYear int    `json:"publish_year"`
}

// Draft returns the editable fields of the book.
func (b Book) Draft() Draft {
	return Draft{Title: b.Title, Author: b.Author, PublishYear: b.PublishYear}
}

// ParsedCreatedAt returns the parsed CreatedAt timestamp.
func (b Book) ParsedCreatedAt() time.Time {
	return parseTime(b.CreatedAt)
}

// ParsedUpdatedAt returns the parsed UpdatedAt timestamp.
func (b Book) ParsedUpdatedAt() time.Time {
	return parseTime(b.UpdatedAt)
}

// envelope is the {"data": ...} wrapper the gateway puts around payloads.
type envelope struct {
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// decodeBookList reads the data member of a list response. Anything that
// is not a JSON array of books yields an empty list.
func decodeBookList(raw json.RawMessage) []Book {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return []Book{}
	}
	data := bytes.TrimSpace(env.Data)
	if len(data) == 0 || data[0] != '[' {
		return []Book{}
	}
	var books []Book
	if err := json.Unmarshal(data, &books); err != nil {
		return []Book{}
	}
	if books == nil {
		return []Book{}
	}
	return books
}

// decodeBook accepts either an enveloped {"data": Book} body or a bare Book.
func decodeBook(raw json.RawMessage) (Book, error) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return Book{}, fmt.Errorf("decode response: %w", err)
	}
	body := raw
	if data := bytes.TrimSpace(env.Data); len(data) > 0 && !bytes.Equal(data, []byte("null")) {
		body = data
	}
	var book Book
	if err := json.Unmarshal(body, &book); err != nil {
		return Book{}, fmt.Errorf("decode book: %w", err)
	}
	return book, nil
}

func parseTime(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339} {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	if t, err := time.ParseInLocation(gatewayTimestampLayout, value, time.Local); err == nil {
		return t
	}
	return time.Time{}
}
