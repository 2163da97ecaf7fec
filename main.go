package main

import (
	"log"
	"os"

	"github.com/urfave/cli/v2"

	crawlcmd "github.com/mmegyeri/wikifreq/internal/crawl"
	"github.com/mmegyeri/wikifreq/internal/serve"
)

func main() {
	app := &cli.App{
		Name:  "wikifreq",
		Usage: "crawl Wikipedia articles and compute word-frequency statistics",
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "run the word-frequency HTTP API",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "config",
						Usage: "path to a YAML config file (defaults apply when omitted)",
					},
					&cli.StringFlag{
						Name:  "listen",
						Usage: "listen address, overrides the config file",
					},
					&cli.BoolFlag{
						Name:  "quiet",
						Usage: "only log errors",
					},
				},
				Action: serve.Action,
			},
			{
				Name:  "crawl",
				Usage: "one-shot crawl printing the top keywords",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "article",
						Usage:    "Wikipedia article title to start from",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "depth",
						Usage: "link-following depth (0 = only the start article)",
					},
					&cli.IntFlag{
						Name:  "max-links",
						Usage: "max outgoing links scheduled per page",
					},
					&cli.IntFlag{
						Name:  "top",
						Value: 25,
						Usage: "number of keywords to print",
					},
					&cli.StringFlag{
						Name:  "ignore",
						Usage: "comma-separated words to exclude from the results",
					},
					&cli.Float64Flag{
						Name:  "percentile",
						Usage: "keep words with count at or above this percentile (0-100)",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "print the full table as JSON instead of a ranked list",
					},
					&cli.StringFlag{
						Name:  "config",
						Usage: "path to a YAML config file",
					},
					&cli.BoolFlag{
						Name:  "quiet",
						Usage: "only log errors",
					},
				},
				Action: crawlcmd.Action,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
