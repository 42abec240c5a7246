package models

import "errors"

// Sentinel errors for the data-shape failures the engine can report. All are
// deterministic on the same input and non-retryable; callers classify them
// with errors.Is.
var (
	// ErrEmptyDocument indicates the extracted text has no non-whitespace content.
	ErrEmptyDocument = errors.New("document is empty")
	// ErrEmptyVocabulary indicates no n-grams could be extracted from any section.
	ErrEmptyVocabulary = errors.New("no n-grams could be extracted")
	// ErrEmptyQuery indicates the query string has no non-whitespace content.
	ErrEmptyQuery = errors.New("query is empty")
	// ErrNoDocument indicates no document has been uploaded yet.
	ErrNoDocument = errors.New("no active document")
)
