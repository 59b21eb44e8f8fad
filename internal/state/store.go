package state

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/five82/shelf/internal/library"
)

// Snapshot represents the latest book list available to the UI.
type Snapshot struct {
	Books               []library.Book
	Loaded              bool // true after the first successful refresh
	LastUpdated         time.Time
	LastError           error
	ConsecutiveFailures int    // Number of consecutive refresh failures
	Version             uint64 // increases with every change to the snapshot
}

// NewerThan reports whether s reflects a later store state than other.
func (s Snapshot) NewerThan(other Snapshot) bool {
	return s.Version > other.Version
}

// IsOffline returns true when the gateway has been unreachable for multiple refreshes.
func (s Snapshot) IsOffline() bool {
	return s.ConsecutiveFailures >= 2
}

// Store owns the session's book list. Every operation makes at most one
// gateway call and reconciles the list with its response.
type Store struct {
	api    library.BookService
	logger *slog.Logger
	now    func() time.Time

	mu       sync.RWMutex
	snapshot Snapshot
	issued   uint64 // last sequence number handed out
	applied  uint64 // sequence number of the newest applied list change
}

// NewStore returns an empty store backed by api. A nil logger discards output.
func NewStore(api library.BookService, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Store{
		api:    api,
		logger: logger.With("component", "store"),
		now:    time.Now,
	}
}

// Refresh replaces the list with the gateway's collection. On failure the
// previous list is kept and the error is recorded. A response that started
// before a newer list change was applied is discarded.
func (s *Store) Refresh(ctx context.Context) error {
	seq := s.begin()
	books, err := s.api.FetchBooks(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if seq < s.applied {
		s.logger.Debug("discarding stale refresh", "seq", seq, "applied", s.applied)
		return err
	}
	if err != nil {
		s.logger.Error("refresh failed", "op", "refresh", "error", err)
		s.snapshot.LastError = err
		s.snapshot.LastUpdated = s.now()
		s.snapshot.ConsecutiveFailures++
		s.snapshot.Version++
		return err
	}

	s.applied = seq
	s.snapshot.Books = cloneBooks(books)
	s.snapshot.Loaded = true
	s.snapshot.LastError = nil
	s.snapshot.LastUpdated = s.now()
	s.snapshot.ConsecutiveFailures = 0
	s.snapshot.Version++
	return nil
}

// Create validates draft, posts it and appends the gateway's record.
// Validation failures return *library.ValidationError without a call.
func (s *Store) Create(ctx context.Context, draft library.Draft) (library.Book, error) {
	if err := library.Validate(draft, s.now()); err != nil {
		return library.Book{}, err
	}
	seq := s.begin()
	book, err := s.api.CreateBook(ctx, draft)
	if err != nil {
		s.logger.Error("create failed", "op", "create", "error", err)
		return library.Book{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if i := indexOf(s.snapshot.Books, book.ID); i >= 0 {
		s.snapshot.Books[i] = book
	} else {
		s.snapshot.Books = append(s.snapshot.Books, book)
	}
	s.markApplied(seq)
	return book, nil
}

// Update validates draft and replaces the entry for id in place. The store
// does not check that id is present before calling the gateway.
func (s *Store) Update(ctx context.Context, id int64, draft library.Draft) (library.Book, error) {
	if err := library.Validate(draft, s.now()); err != nil {
		return library.Book{}, err
	}
	seq := s.begin()
	book, err := s.api.UpdateBook(ctx, id, draft)
	if err != nil {
		s.logger.Error("update failed", "op", "update", "id", id, "error", err)
		return library.Book{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if i := indexOf(s.snapshot.Books, id); i >= 0 {
		s.snapshot.Books[i] = book
	}
	s.markApplied(seq)
	return book, nil
}

// Delete removes id on the gateway and then from the list.
func (s *Store) Delete(ctx context.Context, id int64) error {
	seq := s.begin()
	if err := s.api.DeleteBook(ctx, id); err != nil {
		s.logger.Error("delete failed", "op", "delete", "id", id, "error", err)
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if i := indexOf(s.snapshot.Books, id); i >= 0 {
		books := make([]library.Book, 0, len(s.snapshot.Books)-1)
		books = append(books, s.snapshot.Books[:i]...)
		books = append(books, s.snapshot.Books[i+1:]...)
		s.snapshot.Books = books
	}
	s.markApplied(seq)
	return nil
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Books = cloneBooks(s.snapshot.Books)
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}

func (s *Store) begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.issued++
	return s.issued
}

// markApplied must be called with mu held.
func (s *Store) markApplied(seq uint64) {
	if seq > s.applied {
		s.applied = seq
	}
	s.snapshot.LastUpdated = s.now()
	s.snapshot.Version++
}

func indexOf(books []library.Book, id int64) int {
	for i := range books {
		if books[i].ID == id {
			return i
		}
	}
	return -1
}

func cloneBooks(books []library.Book) []library.Book {
	if len(books) == 0 {
		return []library.Book{}
	}
	dup := make([]library.Book, len(books))
	copy(dup, books)
	return dup
}
