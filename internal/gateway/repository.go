package gateway

import (
	"errors"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/five82/shelf/internal/library"
)

// TimestampLayout is the format of created_at and updated_at.
const TimestampLayout = "2006-01-02 15:04:05"

// errNoBook is returned when an id does not exist.
var errNoBook = errors.New("data not found")

// Repository is an in-memory book table with auto-increment ids.
type Repository struct {
	mu     sync.RWMutex
	books  []library.Book
	nextID int64
	now    func() time.Time
}

// NewRepository returns an empty repository. A nil now uses time.Now.
func NewRepository(now func() time.Time) *Repository {
	if now == nil {
		now = time.Now
	}
	return &Repository{nextID: 1, now: now}
}

// Seed inserts a small starter catalog.
func (r *Repository) Seed() {
	for _, d := range []library.Draft{
		{Title: "One Piece", Author: "Eiichiro Oda", PublishYear: 1997},
		{Title: "Dune", Author: "Frank Herbert", PublishYear: 1965},
		{Title: "The Left Hand of Darkness", Author: "Ursula K. Le Guin", PublishYear: 1969},
		{Title: "Neuromancer", Author: "William Gibson", PublishYear: 1984},
	} {
		r.Create(d)
	}
}

// List returns the books in insertion order. A non-empty query keeps only
// books whose title or author contains it, ignoring case.
func (r *Repository) List(query string) []library.Book {
	r.mu.RLock()
	defer r.mu.RUnlock()

	query = strings.ToLower(strings.TrimSpace(query))
	out := make([]library.Book, 0, len(r.books))
	for _, b := range r.books {
		if query != "" &&
			!strings.Contains(strings.ToLower(b.Title), query) &&
			!strings.Contains(strings.ToLower(b.Author), query) {
			continue
		}
		out = append(out, b)
	}
	return out
}

// Get returns the book with id.
func (r *Repository) Get(id int64) (library.Book, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	i := r.indexOf(id)
	if i < 0 {
		return library.Book{}, errNoBook
	}
	return r.books[i], nil
}

// Create stores d under the next id.
func (r *Repository) Create(d library.Draft) library.Book {
	r.mu.Lock()
	defer r.mu.Unlock()

	stamp := r.now().UTC().Format(TimestampLayout)
	b := library.Book{
		ID:          r.nextID,
		Title:       d.Title,
		Author:      d.Author,
		PublishYear: d.PublishYear,
		CreatedAt:   stamp,
		UpdatedAt:   stamp,
	}
	r.nextID++
	r.books = append(r.books, b)
	return b
}

// Update replaces the fields of id with d.
func (r *Repository) Update(id int64, d library.Draft) (library.Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.indexOf(id)
	if i < 0 {
		return library.Book{}, errNoBook
	}
	b := &r.books[i]
	b.Title = d.Title
	b.Author = d.Author
	b.PublishYear = d.PublishYear
	b.UpdatedAt = r.now().UTC().Format(TimestampLayout)
	return *b, nil
}

// Delete removes id.
func (r *Repository) Delete(id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.indexOf(id)
	if i < 0 {
		return errNoBook
	}
	r.books = slices.Delete(r.books, i, i+1)
	return nil
}

func (r *Repository) indexOf(id int64) int {
	return slices.IndexFunc(r.books, func(b library.Book) bool { return b.ID == id })
}
