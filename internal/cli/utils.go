// Package cli provides output formatting for the kouhou command line.
package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/minatolab/kouhou/internal/models"
)

// OutputFormat is the format for CLI output.
type OutputFormat string

const (
	// OutputText is human-readable text (default).
	OutputText OutputFormat = "text"
	// OutputJSON is structured JSON for machine consumption.
	OutputJSON OutputFormat = "json"
)

// WriteSearchResults writes search results to w in the given format.
func WriteSearchResults(w io.Writer, response *models.SearchResponse, format OutputFormat) error {
	if format == OutputJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(response)
	}
	fmt.Fprintf(w, "\nFound %d results in %dms for %q\n\n", response.Total, response.QueryTime, response.Query)
	for _, result := range response.Results {
		fmt.Fprintf(w, "─────────────────────────────────────────────────────────\n")
		fmt.Fprintf(w, "Rank: %d | Score: %.4f | Section %d: %s\n",
			result.Rank, result.Score, result.SectionIndex, result.Title)
		fmt.Fprintf(w, "\n%s\n\n", result.Snippet)
	}
	return nil
}

// WriteDocumentInfo writes an upload/info summary to w in the given format.
func WriteDocumentInfo(w io.Writer, info *models.DocumentInfo, format OutputFormat) error {
	if format == OutputJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(info)
	}
	fmt.Fprintf(w, "Document: %s (%s)\n", info.Name, info.ID)
	fmt.Fprintf(w, "Sections: %d | Characters: %d | Vocabulary: %d n-grams\n",
		info.SectionCount, info.CharCount, info.VocabSize)
	return nil
}
