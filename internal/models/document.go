// Package models defines core data structures for documents, sections, queries, and search results.
package models

import (
	"fmt"
	"time"
	"unicode/utf8"
)

// Document is the currently active upload: its raw text and ordered sections.
// A Document is owned by the index built from it and is replaced wholesale on
// a new upload, never merged.
type Document struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Text       string    `json:"-"`
	Sections   []Section `json:"sections"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// CharCount returns the total character (rune) count of the document text.
func (d *Document) CharCount() int {
	return utf8.RuneCountInString(d.Text)
}

// Section is a contiguous slice of the document. Start and End are byte
// offsets into the trimmed document text; sections are non-overlapping and
// jointly cover it in order.
type Section struct {
	Index int    `json:"index"`
	Start int    `json:"start"`
	End   int    `json:"end"`
	Title string `json:"title,omitempty"`
	Text  string `json:"text"`
}

// DisplayTitle returns the detected heading title, or a generated placeholder
// when no heading was detected for this section.
func (s *Section) DisplayTitle() string {
	if s.Title != "" {
		return s.Title
	}
	return PlaceholderTitle(s.Index)
}

// PlaceholderTitle is the title used for sections without a detected heading.
// Pure function of the section index.
func PlaceholderTitle(index int) string {
	return fmt.Sprintf("Section %d", index+1)
}

// DocumentInfo is the document-level summary exposed after an upload:
// identity plus derived counts.
type DocumentInfo struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	SectionCount int       `json:"section_count"`
	CharCount    int       `json:"char_count"`
	VocabSize    int       `json:"vocab_size"`
	UploadedAt   time.Time `json:"uploaded_at"`
}
