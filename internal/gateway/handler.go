package gateway

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/five82/shelf/internal/library"
)

// bookRequest is the body of POST and PUT.
type bookRequest struct {
	Title       string `json:"title" binding:"required"`
	Author      string `json:"author" binding:"required"`
	PublishYear int    `json:"publish_year" binding:"gt=0"`
}

func (req bookRequest) draft() library.Draft {
	return library.Draft{
		Title:       strings.TrimSpace(req.Title),
		Author:      strings.TrimSpace(req.Author),
		PublishYear: req.PublishYear,
	}
}

// BookHandler serves the /books resource.
type BookHandler struct {
	repo *Repository
}

// NewBookHandler returns a handler backed by repo.
func NewBookHandler(repo *Repository) *BookHandler {
	return &BookHandler{repo: repo}
}

// List handles GET /books.
func (h *BookHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "books fetched",
		"data":    h.repo.List(c.Query("search")),
	})
}

// Get handles GET /books/:id.
func (h *BookHandler) Get(c *gin.Context) {
	id, ok := bookID(c, "failed to get book data")
	if !ok {
		return
	}
	book, err := h.repo.Get(id)
	if err != nil {
		notFound(c, err, "failed to get book data")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "book data fetched", "data": book})
}

// Create handles POST /books.
func (h *BookHandler) Create(c *gin.Context) {
	draft, ok := bindDraft(c, "failed to store book data")
	if !ok {
		return
	}
	book := h.repo.Create(draft)
	c.JSON(http.StatusOK, gin.H{"message": "book data stored", "data": book})
}

// Update handles PUT /books/:id.
func (h *BookHandler) Update(c *gin.Context) {
	id, ok := bookID(c, "failed to update book data")
	if !ok {
		return
	}
	draft, ok := bindDraft(c, "failed to update book data")
	if !ok {
		return
	}
	book, err := h.repo.Update(id, draft)
	if err != nil {
		notFound(c, err, "failed to update book data")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "book data updated", "data": book})
}

// Delete handles DELETE /books/:id.
func (h *BookHandler) Delete(c *gin.Context) {
	id, ok := bookID(c, "failed to delete book data")
	if !ok {
		return
	}
	if err := h.repo.Delete(id); err != nil {
		notFound(c, err, "failed to delete book data")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "book data deleted"})
}

func bookID(c *gin.Context, message string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		_ = c.Error(err)
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid id", "message": message})
		return 0, false
	}
	return id, true
}

func bindDraft(c *gin.Context, message string) (library.Draft, bool) {
	var req bookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(err)
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error(), "message": message})
		return library.Draft{}, false
	}
	draft := req.draft()
	if draft.Title == "" || draft.Author == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "title and author are required", "message": message})
		return library.Draft{}, false
	}
	return draft, true
}

func notFound(c *gin.Context, err error, message string) {
	if errors.Is(err, errNoBook) {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": err.Error(), "message": message})
		return
	}
	_ = c.Error(err)
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": err.Error(), "message": message})
}
