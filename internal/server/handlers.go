package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mmegyeri/wikifreq/models"
	"github.com/mmegyeri/wikifreq/pkg/textstats"
	"github.com/mmegyeri/wikifreq/pkg/wiki"
)

// ErrNotReady is returned when a request arrives before the shared crawler
// has been constructed. This is a wiring bug, not a per-request failure.
var ErrNotReady = errors.New("crawler is not initialized")

// ErrorResponse is the JSON body of every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HandleHealth handles GET /health.
func (h *Handlers) HandleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// HandleWordFrequency handles GET /word-frequency: crawl from the article up
// to the requested depth and return the full term table.
func (h *Handlers) HandleWordFrequency(c *gin.Context) {
	logger := h.logger.With("handler", "word-frequency")

	var query models.WordFrequencyQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		logger.Warn("invalid query parameters", "error", err)
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "article is required and depth must be >= 0",
			Code:  "INVALID_REQUEST",
		})
		return
	}

	logger.Info("crawling", "article", query.Article, "depth", query.Depth)
	counts, err := h.collectCounts(c.Request.Context(), query.Article, query.Depth)
	if err != nil {
		h.writeCrawlError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, textstats.Present(counts))
}

// HandleKeywords handles POST /keywords: same crawl, then ignore-list and
// percentile filtering. The percentile cutoff is computed over the counts
// that survive the ignore list, and percentages over the final set.
func (h *Handlers) HandleKeywords(c *gin.Context) {
	logger := h.logger.With("handler", "keywords")

	var req models.KeywordsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("invalid request body", "error", err)
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "article and percentile (0-100) are required and depth must be >= 0",
			Code:  "INVALID_REQUEST",
		})
		return
	}

	logger.Info("crawling", "article", req.Article, "depth", req.Depth,
		"ignored", len(req.IgnoreList), "percentile", *req.Percentile)
	counts, err := h.collectCounts(c.Request.Context(), req.Article, req.Depth)
	if err != nil {
		h.writeCrawlError(c, logger, err)
		return
	}

	counts = textstats.ApplyIgnoreList(counts, req.IgnoreList)
	counts = textstats.ApplyPercentile(counts, float64(*req.Percentile))
	c.JSON(http.StatusOK, textstats.Present(counts))
}

// collectCounts drains the crawl's extract stream and aggregates it into a
// term table.
func (h *Handlers) collectCounts(ctx context.Context, article string, depth int) (map[string]int, error) {
	if h.crawler == nil {
		return nil, ErrNotReady
	}

	var extracts []string
	opts := wiki.CrawlOptions{MaxDepth: depth, MaxLinksPerPage: h.maxLinksPerPage}
	err := h.crawler.CrawlExtracts(ctx, article, opts, func(extract string) error {
		extracts = append(extracts, extract)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return textstats.Aggregate(extracts), nil
}

func (h *Handlers) writeCrawlError(c *gin.Context, logger *slog.Logger, err error) {
	var apiErr *wiki.APIError
	switch {
	case errors.Is(err, ErrNotReady):
		logger.Error("crawler not initialized")
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{
			Error: err.Error(),
			Code:  "NOT_READY",
		})
	case errors.As(err, &apiErr):
		logger.Error("wiki api error", "wiki_code", apiErr.Code, "wiki_info", apiErr.Info)
		c.JSON(http.StatusBadGateway, ErrorResponse{
			Error: apiErr.Error(),
			Code:  "WIKI_API_ERROR",
		})
	default:
		logger.Error("crawl failed", "error", err)
		c.JSON(http.StatusBadGateway, ErrorResponse{
			Error: err.Error(),
			Code:  "WIKI_UNREACHABLE",
		})
	}
}
