// Package vectorize converts text into sparse character n-gram TF-IDF vectors.
package vectorize

import (
	"math"
	"strings"
	"unicode"

	"github.com/minatolab/kouhou/internal/models"
)

// DefaultNGramSize is the character window size used when none is configured.
// Character n-grams need no language-specific tokenizer and degrade gracefully
// across mixed scripts.
const DefaultNGramSize = 3

// Model holds the frozen vocabulary and IDF table built from one document's
// sections. Immutable after Build; queries reuse it as-is.
type Model struct {
	// Vocabulary maps an n-gram to its column id.
	Vocabulary map[string]int
	// IDF holds one inverse-document-frequency weight per column id.
	IDF []float64
	// NGramSize is the character window size the model was built with.
	NGramSize int
}

// VocabSize returns the number of distinct n-grams in the model.
func (m *Model) VocabSize() int {
	return len(m.Vocabulary)
}

// Vectorizer builds sparse TF-IDF vectors from character n-grams.
type Vectorizer struct {
	ngramSize int
}

// NewVectorizer creates a vectorizer with the given n-gram window size.
// Values <= 0 use DefaultNGramSize.
func NewVectorizer(ngramSize int) *Vectorizer {
	if ngramSize <= 0 {
		ngramSize = DefaultNGramSize
	}
	return &Vectorizer{ngramSize: ngramSize}
}

// NGramSize returns the configured character window size.
func (v *Vectorizer) NGramSize() int {
	return v.ngramSize
}

// Build constructs the vocabulary, IDF table, and one vector per input text.
// idf(t) = ln((N+1)/(df(t)+1)) + 1, which is strictly positive and never
// divides by zero. Column ids follow first-seen order; the same ids are used
// consistently across the model and all returned vectors.
// Returns models.ErrEmptyVocabulary when no n-grams can be extracted.
func (v *Vectorizer) Build(texts []string) (*Model, []SparseVector, error) {
	counts := make([]map[string]int, len(texts))
	vocab := make(map[string]int)
	df := make(map[string]int)
	for i, text := range texts {
		tf := make(map[string]int)
		for _, g := range ngrams(text, v.ngramSize) {
			tf[g]++
		}
		for g := range tf {
			if _, ok := vocab[g]; !ok {
				vocab[g] = len(vocab)
			}
			df[g]++
		}
		counts[i] = tf
	}
	if len(vocab) == 0 {
		return nil, nil, models.ErrEmptyVocabulary
	}

	idf := make([]float64, len(vocab))
	n := float64(len(texts))
	for g, col := range vocab {
		idf[col] = math.Log((n+1)/(float64(df[g])+1)) + 1
	}
	model := &Model{Vocabulary: vocab, IDF: idf, NGramSize: v.ngramSize}

	vectors := make([]SparseVector, len(texts))
	for i, tf := range counts {
		vec := make(SparseVector, len(tf))
		for g, count := range tf {
			col := vocab[g]
			vec[col] = float64(count) * idf[col]
		}
		vectors[i] = vec
	}
	return model, vectors, nil
}

// Vectorize computes the TF-IDF vector for text against a frozen model.
// N-grams absent from the vocabulary are dropped, never an error; a text with
// no known n-grams yields an empty (all-zero) vector.
func (v *Vectorizer) Vectorize(text string, m *Model) SparseVector {
	vec := make(SparseVector)
	for _, g := range ngrams(text, m.NGramSize) {
		if col, ok := m.Vocabulary[g]; ok {
			vec[col] += m.IDF[col]
		}
	}
	return vec
}

// ngrams extracts all overlapping character n-grams of length k from the
// lowercased, whitespace-collapsed text, sliding by one rune. A text shorter
// than k (but non-empty) yields itself as a single n-gram.
func ngrams(text string, k int) []string {
	runes := normalize(text)
	if len(runes) == 0 {
		return nil
	}
	if len(runes) < k {
		return []string{string(runes)}
	}
	out := make([]string, 0, len(runes)-k+1)
	for i := 0; i+k <= len(runes); i++ {
		out = append(out, string(runes[i:i+k]))
	}
	return out
}

// normalize lowercases text and collapses whitespace runs into single spaces.
func normalize(text string) []rune {
	runes := make([]rune, 0, len(text))
	wasSpace := true
	for _, r := range strings.TrimSpace(text) {
		if unicode.IsSpace(r) {
			if !wasSpace {
				runes = append(runes, ' ')
				wasSpace = true
			}
			continue
		}
		runes = append(runes, unicode.ToLower(r))
		wasSpace = false
	}
	if len(runes) > 0 && runes[len(runes)-1] == ' ' {
		runes = runes[:len(runes)-1]
	}
	return runes
}
