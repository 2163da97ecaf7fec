// Package serve implements the "serve" CLI command.
package serve

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/urfave/cli/v2"

	"github.com/mmegyeri/wikifreq/internal/server"
	"github.com/mmegyeri/wikifreq/models"
	"github.com/mmegyeri/wikifreq/pkg/wiki"
)

// Action starts the word-frequency HTTP API. The MediaWiki client and its
// request gate are built once here and shared by every request.
func Action(c *cli.Context) error {
	logLevel := slog.LevelInfo
	if c.Bool("quiet") {
		logLevel = slog.LevelError
		gin.SetMode(gin.ReleaseMode)
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)

	config := models.DefaultConfig()
	if path := c.String("config"); path != "" {
		var err error
		config, err = models.LoadConfig(path)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
	}
	if c.IsSet("listen") {
		config.ListenAddr = c.String("listen")
	}

	client := wiki.NewClient(wiki.Options{
		BaseURL:      config.Wiki.BaseURL,
		UserAgent:    config.Wiki.UserAgent,
		Timeout:      config.Wiki.Timeout(),
		Concurrency:  config.Wiki.Concurrency,
		HTMLExtracts: config.Wiki.HTMLExtracts,
		Logger:       logger,
	})

	handlers := server.NewHandlers(client, config.Wiki.MaxLinksPerPage, logger)
	router := server.NewRouter(handlers)

	logger.Info("starting http server",
		"addr", config.ListenAddr,
		"wiki_base_url", config.Wiki.BaseURL,
		"concurrency", config.Wiki.Concurrency)
	if err := router.Run(config.ListenAddr); err != nil {
		return fmt.Errorf("http server failed: %w", err)
	}
	return nil
}
