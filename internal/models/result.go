package models

// RankedResult is a single ranked hit: the section, its cosine similarity
// against the query (0-1), and its 1-based rank.
type RankedResult struct {
	SectionIndex int     `json:"section_index"`
	Title        string  `json:"title"`
	Score        float64 `json:"score"`
	Rank         int     `json:"rank"`
	Snippet      string  `json:"snippet"`
}

// SearchResponse is the response for a search request. Results are ordered by
// descending score, ties broken by ascending section index.
type SearchResponse struct {
	Query     string          `json:"query"`
	Results   []*RankedResult `json:"results"`
	Total     int             `json:"total"`
	QueryTime int64           `json:"query_time_ms"`
}
