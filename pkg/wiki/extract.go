package wiki

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// htmlToText flattens an HTML extract into plain text. Used when the client
// is configured to request HTML extracts instead of explaintext.
func htmlToText(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("parse html extract: %w", err)
	}
	return strings.TrimSpace(doc.Text()), nil
}
