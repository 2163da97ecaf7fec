package models

// WordFrequencyQuery binds the query parameters of GET /word-frequency.
// Depth 0 means only the start article is fetched.
type WordFrequencyQuery struct {
	Article string `form:"article" binding:"required"`
	Depth   int    `form:"depth" binding:"gte=0"`
}

// KeywordsRequest is the body of POST /keywords. Percentile is a pointer so
// an explicit 0 survives the required check.
type KeywordsRequest struct {
	Article    string   `json:"article" binding:"required"`
	Depth      int      `json:"depth" binding:"gte=0"`
	IgnoreList []string `json:"ignore_list"`
	Percentile *int     `json:"percentile" binding:"required,gte=0,lte=100"`
}
