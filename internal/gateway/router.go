package gateway

import (
	"io"
	"log/slog"

	"github.com/gin-gonic/gin"
)

// NewRouter wires the /books routes, request logging, and panic recovery.
// A nil logger discards request logs.
func NewRouter(repo *Repository, logger *slog.Logger) *gin.Engine {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	router := gin.New()
	router.Use(requestLogger(logger.With("component", "gateway")))
	router.Use(gin.Recovery())

	h := NewBookHandler(repo)
	books := router.Group("/books")
	{
		books.GET("", h.List)
		books.POST("", h.Create)
		books.GET("/:id", h.Get)
		books.PUT("/:id", h.Update)
		books.DELETE("/:id", h.Delete)
	}
	return router
}
