// Package server exposes the word-frequency HTTP API.
package server

import (
	"context"
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/mmegyeri/wikifreq/pkg/wiki"
)

// Crawler streams page extracts for a crawl rooted at an article title.
// Satisfied by *wiki.Client; tests substitute fakes.
type Crawler interface {
	CrawlExtracts(ctx context.Context, rootTitle string, opts wiki.CrawlOptions, emit func(extract string) error) error
}

// Handlers carries the shared crawler and settings behind the HTTP API.
type Handlers struct {
	crawler         Crawler
	maxLinksPerPage int
	logger          *slog.Logger
}

func NewHandlers(crawler Crawler, maxLinksPerPage int, logger *slog.Logger) *Handlers {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handlers{
		crawler:         crawler,
		maxLinksPerPage: maxLinksPerPage,
		logger:          logger,
	}
}

// NewRouter builds the gin engine with all routes registered.
func NewRouter(h *Handlers) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/health", h.HandleHealth)
	router.GET("/word-frequency", h.HandleWordFrequency)
	router.POST("/keywords", h.HandleKeywords)
	return router
}
