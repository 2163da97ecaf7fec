package wiki

import (
	"encoding/json"
	"fmt"
)

// apiResponse is one MediaWiki API round trip. Exactly one of Error or Query
// is set on a well-formed response; Continue is present while more result
// chunks remain for the same logical query.
type apiResponse struct {
	Error    *APIError                  `json:"error"`
	Continue map[string]json.RawMessage `json:"continue"`
	Query    *QueryChunk                `json:"query"`
}

// QueryChunk is the "query" object of a single response. With
// formatversion=2 pages arrive as an array; for a single-title query it
// holds at most one page.
type QueryChunk struct {
	Pages []Page `json:"pages"`
}

// Page is one page description inside a query chunk. Title is the canonical
// title after redirect resolution, which may differ from the requested one.
type Page struct {
	Title   string `json:"title"`
	Extract string `json:"extract"`
	Links   []Link `json:"links"`
}

// Link is an outgoing link. Namespace 0 is regular article content.
type Link struct {
	Namespace int    `json:"ns"`
	Title     string `json:"title"`
}

// APIError is an explicit error payload returned by the MediaWiki API.
// Raw preserves the payload verbatim for logging and diagnostics.
type APIError struct {
	Code string          `json:"code"`
	Info string          `json:"info"`
	Raw  json.RawMessage `json:"-"`
}

func (e *APIError) UnmarshalJSON(data []byte) error {
	e.Raw = append(e.Raw[:0], data...)

	var body struct {
		Code string `json:"code"`
		Info string `json:"info"`
	}
	if err := json.Unmarshal(data, &body); err != nil {
		return err
	}
	e.Code = body.Code
	e.Info = body.Info
	return nil
}

func (e *APIError) Error() string {
	return fmt.Sprintf("wiki api error %s: %s", e.Code, e.Info)
}
