package wiki

import (
	"context"
	"net/url"
	"sort"
)

// CrawlOptions bounds a single crawl. MaxDepth 0 fetches only the root
// article; MaxLinksPerPage caps how many outgoing links are scheduled per
// page (default 100).
type CrawlOptions struct {
	MaxDepth        int
	MaxLinksPerPage int
}

// crawlTask is one unit of frontier work: fetch a title with some depth
// budget remaining.
type crawlTask struct {
	title string
	depth int
}

// CrawlExtracts walks article links breadth-first starting at rootTitle and
// calls emit with each page's extract as soon as the page has been fetched.
// The visited set is keyed on canonical titles, so a page reachable under
// several redirecting names is emitted at most once. Any fetch, API or emit
// error aborts the whole crawl; no partial-result recovery is attempted.
func (c *Client) CrawlExtracts(ctx context.Context, rootTitle string, opts CrawlOptions, emit func(extract string) error) error {
	maxLinks := opts.MaxLinksPerPage
	if maxLinks <= 0 {
		maxLinks = DefaultMaxLinksPerPage
	}

	// scheduled dedups raw titles at enqueue time; processed dedups canonical
	// titles once a page has actually been fetched. Two sets are needed
	// because a title is only known by its canonical name after the first
	// chunk arrives.
	scheduled := map[string]struct{}{rootTitle: {}}
	processed := make(map[string]struct{})
	queue := []crawlTask{{title: rootTitle, depth: opts.MaxDepth}}

	for len(queue) > 0 {
		task := queue[0]
		queue = queue[1:]

		children, err := c.visitPage(ctx, task, processed, maxLinks, emit)
		if err != nil {
			return err
		}

		for _, child := range children {
			if _, seen := scheduled[child]; seen {
				continue
			}
			if _, seen := processed[child]; seen {
				// The link target is the canonical name of a page that has
				// already been fetched under another title.
				continue
			}
			scheduled[child] = struct{}{}
			queue = append(queue, crawlTask{title: child, depth: task.depth - 1})
		}
	}
	return nil
}

// visitPage fetches one article through the paginated query and returns the
// outgoing links to schedule: the lexicographically smallest maxLinks
// article-namespace titles collected across all of the page's chunks.
func (c *Client) visitPage(ctx context.Context, task crawlTask, processed map[string]struct{}, maxLinks int, emit func(string) error) ([]string, error) {
	c.logger.Debug("visiting page", "title", task.title, "remaining_depth", task.depth)

	canonical := ""
	emitted := false
	var links []string

	err := c.forEachChunk(ctx, c.pageParams(task.title), func(chunk *QueryChunk) (bool, error) {
		if len(chunk.Pages) == 0 {
			return true, nil
		}
		page := chunk.Pages[0]

		if canonical == "" {
			canonical = page.Title
			if canonical == "" {
				canonical = task.title
			}
			if _, seen := processed[canonical]; seen {
				// Some other title already resolved to this page; stop
				// paginating and schedule nothing.
				return false, nil
			}
			processed[canonical] = struct{}{}
		}

		if !emitted {
			text := page.Extract
			if text != "" && c.htmlExtracts {
				stripped, err := htmlToText(text)
				if err != nil {
					return false, err
				}
				text = stripped
			}
			if text != "" {
				if err := emit(text); err != nil {
					return false, err
				}
				emitted = true
			}
		}

		if task.depth > 0 {
			for _, link := range page.Links {
				if link.Namespace == 0 && link.Title != "" {
					links = append(links, link.Title)
				}
			}
		}
		return true, nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(links)
	if len(links) > maxLinks {
		links = links[:maxLinks]
	}
	return links, nil
}

func (c *Client) pageParams(title string) url.Values {
	params := url.Values{
		"action":        {"query"},
		"format":        {"json"},
		"formatversion": {"2"},
		"redirects":     {"1"},
		"prop":          {"extracts|links"},
		"plnamespace":   {"0"},
		"pllimit":       {"max"},
		"titles":        {title},
	}
	if !c.htmlExtracts {
		params.Set("explaintext", "1")
	}
	return params
}
