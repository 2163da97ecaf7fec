// Package crawl implements the "crawl" CLI command: a one-shot crawl that
// prints the aggregated keyword statistics.
package crawl

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/mmegyeri/wikifreq/models"
	"github.com/mmegyeri/wikifreq/pkg/textstats"
	"github.com/mmegyeri/wikifreq/pkg/wiki"
)

func Action(c *cli.Context) error {
	article := c.String("article")
	if article == "" {
		return fmt.Errorf("no article provided via --article flag")
	}
	depth := c.Int("depth")
	if depth < 0 {
		return fmt.Errorf("depth must be >= 0")
	}
	percentile := c.Float64("percentile")
	if percentile < 0 || percentile > 100 {
		return fmt.Errorf("percentile must be between 0 and 100")
	}

	logLevel := slog.LevelInfo
	if c.Bool("quiet") {
		logLevel = slog.LevelError
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	config := models.DefaultConfig()
	if path := c.String("config"); path != "" {
		var err error
		config, err = models.LoadConfig(path)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
	}
	if c.IsSet("max-links") {
		config.Wiki.MaxLinksPerPage = c.Int("max-links")
	}

	client := wiki.NewClient(wiki.Options{
		BaseURL:      config.Wiki.BaseURL,
		UserAgent:    config.Wiki.UserAgent,
		Timeout:      config.Wiki.Timeout(),
		Concurrency:  config.Wiki.Concurrency,
		HTMLExtracts: config.Wiki.HTMLExtracts,
		Logger:       logger,
	})

	opts := wiki.CrawlOptions{
		MaxDepth:        depth,
		MaxLinksPerPage: config.Wiki.MaxLinksPerPage,
	}

	var extracts []string
	start := time.Now()
	err := client.CrawlExtracts(context.Background(), article, opts, func(extract string) error {
		extracts = append(extracts, extract)
		return nil
	})
	if err != nil {
		return fmt.Errorf("crawl failed: %w", err)
	}
	logger.Info("crawl finished", "article", article, "depth", depth,
		"pages", len(extracts), "elapsed", time.Since(start).String())

	counts := textstats.Aggregate(extracts)
	if ignore := c.String("ignore"); ignore != "" {
		counts = textstats.ApplyIgnoreList(counts, strings.Split(ignore, ","))
	}
	if c.IsSet("percentile") {
		counts = textstats.ApplyPercentile(counts, percentile)
	}

	if c.Bool("json") {
		data, err := json.MarshalIndent(textstats.Present(counts), "", "  ")
		if err != nil {
			return fmt.Errorf("marshal result: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	for i, keyword := range textstats.TopKeywords(counts, c.Int("top")) {
		fmt.Printf("%d. %s\n", i+1, keyword)
	}
	return nil
}
