// Package index holds the vectorized sections of one document: built once per
// upload, queried many times, immutable after build.
package index

import (
	"fmt"

	"github.com/minatolab/kouhou/internal/models"
	"github.com/minatolab/kouhou/internal/segment"
	"github.com/minatolab/kouhou/internal/vectorize"
)

// Index owns a document's sections, the frozen vectorization model, and one
// sparse vector per section (parallel by position). Read-only after Build.
type Index struct {
	doc     *models.Document
	model   *vectorize.Model
	vectors []vectorize.SparseVector
	norms   []float64
}

// Build segments the document text and vectorizes the sections. It is
// atomic: any failure returns a nil index with nothing partially visible.
// The document's Sections field is populated as a side effect of the build.
func Build(doc *models.Document, seg *segment.Segmenter, vec *vectorize.Vectorizer) (*Index, error) {
	sections, err := seg.Segment(doc.Text)
	if err != nil {
		return nil, err
	}
	texts := make([]string, len(sections))
	for i, s := range sections {
		texts[i] = s.Text
	}
	model, vectors, err := vec.Build(texts)
	if err != nil {
		return nil, err
	}
	if len(vectors) != len(sections) {
		return nil, fmt.Errorf("index build: %d sections but %d vectors", len(sections), len(vectors))
	}
	norms := make([]float64, len(vectors))
	for i, v := range vectors {
		norms[i] = v.Norm()
	}
	doc.Sections = sections
	return &Index{doc: doc, model: model, vectors: vectors, norms: norms}, nil
}

// Size returns the number of indexed sections.
func (idx *Index) Size() int {
	return len(idx.vectors)
}

// Section returns the i-th section, or nil when i is out of range.
func (idx *Index) Section(i int) *models.Section {
	if i < 0 || i >= len(idx.doc.Sections) {
		return nil
	}
	return &idx.doc.Sections[i]
}

// Vector returns the i-th section vector, or nil when i is out of range.
func (idx *Index) Vector(i int) vectorize.SparseVector {
	if i < 0 || i >= len(idx.vectors) {
		return nil
	}
	return idx.vectors[i]
}

// Norm returns the precomputed L2 norm of the i-th section vector.
func (idx *Index) Norm(i int) float64 {
	if i < 0 || i >= len(idx.norms) {
		return 0
	}
	return idx.norms[i]
}

// Model returns the frozen vocabulary and IDF table.
func (idx *Index) Model() *vectorize.Model {
	return idx.model
}

// Document returns the indexed document.
func (idx *Index) Document() *models.Document {
	return idx.doc
}

// Info returns the document-level summary for the indexed document.
func (idx *Index) Info() *models.DocumentInfo {
	return &models.DocumentInfo{
		ID:           idx.doc.ID,
		Name:         idx.doc.Name,
		SectionCount: len(idx.doc.Sections),
		CharCount:    idx.doc.CharCount(),
		VocabSize:    idx.model.VocabSize(),
		UploadedAt:   idx.doc.UploadedAt,
	}
}
