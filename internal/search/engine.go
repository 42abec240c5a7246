// Package search provides the upload-and-query engine over a single active document.
package search

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minatolab/kouhou/internal/config"
	"github.com/minatolab/kouhou/internal/extract"
	"github.com/minatolab/kouhou/internal/index"
	"github.com/minatolab/kouhou/internal/models"
	"github.com/minatolab/kouhou/internal/rank"
	"github.com/minatolab/kouhou/internal/segment"
	"github.com/minatolab/kouhou/internal/vectorize"
	"go.uber.org/zap"
)

// Engine owns the active index and runs the upload and query paths. Queries
// against an already-built index are safe to run concurrently; a new upload
// builds a complete replacement index and swaps it in atomically.
type Engine struct {
	holder     *index.Holder
	segmenter  *segment.Segmenter
	vectorizer *vectorize.Vectorizer
	ranker     *rank.Ranker
	extractor  *extract.Extractor
	cfg        *config.SearchConfig
	logger     *zap.Logger
}

// NewEngine creates an engine with the given search configuration.
func NewEngine(cfg *config.SearchConfig, logger *zap.Logger) *Engine {
	vectorizer := vectorize.NewVectorizer(cfg.NGramSize)
	return &Engine{
		holder:     index.NewHolder(),
		segmenter:  segment.NewSegmenter(cfg.MaxSectionChars),
		vectorizer: vectorizer,
		ranker:     rank.NewRanker(vectorizer),
		extractor:  extract.NewExtractor(),
		cfg:        cfg,
		logger:     logger,
	}
}

// LoadDocument extracts text from uploaded bytes, builds a fresh index, and
// makes it the active document. ext selects the extractor (".pdf", ".docx",
// ".xlsx", anything else is plain text). The previous document, if any, is
// discarded wholesale.
func (e *Engine) LoadDocument(ctx context.Context, name string, data []byte, ext string) (*models.DocumentInfo, error) {
	text, err := e.extractor.ExtractBytes(data, ext)
	if err != nil {
		return nil, fmt.Errorf("extract %s: %w", name, err)
	}
	return e.LoadText(ctx, name, text)
}

// LoadFile loads and indexes the document at path.
func (e *Engine) LoadFile(ctx context.Context, path string) (*models.DocumentInfo, error) {
	text, err := e.extractor.ExtractFile(path)
	if err != nil {
		return nil, err
	}
	return e.LoadText(ctx, filepath.Base(path), text)
}

// LoadText indexes already-extracted text as the active document.
func (e *Engine) LoadText(_ context.Context, name, text string) (*models.DocumentInfo, error) {
	doc := &models.Document{
		ID:         uuid.New().String(),
		Name:       name,
		Text:       strings.TrimSpace(extract.NormalizeNewlines(text)),
		UploadedAt: time.Now().UTC(),
	}
	idx, err := index.Build(doc, e.segmenter, e.vectorizer)
	if err != nil {
		return nil, err
	}
	e.holder.Set(idx)
	info := idx.Info()
	e.logger.Info("document indexed",
		zap.String("id", info.ID),
		zap.String("name", info.Name),
		zap.Int("sections", info.SectionCount),
		zap.Int("vocab_size", info.VocabSize),
	)
	return info, nil
}

// Search ranks the active document's sections against the query.
// Returns models.ErrNoDocument when nothing has been uploaded yet and
// models.ErrEmptyQuery for a whitespace-only query.
func (e *Engine) Search(_ context.Context, query *models.SearchQuery) (*models.SearchResponse, error) {
	start := time.Now()
	if err := query.Validate(e.cfg.DefaultLimit, e.cfg.MaxLimit); err != nil {
		return nil, err
	}
	idx := e.holder.Get()
	if idx == nil {
		return nil, models.ErrNoDocument
	}
	scored, err := e.ranker.Rank(query.Query, idx, query.Limit)
	if err != nil {
		return nil, err
	}
	results := make([]*models.RankedResult, len(scored))
	for i, sc := range scored {
		sec := idx.Section(sc.SectionIndex)
		results[i] = &models.RankedResult{
			SectionIndex: sec.Index,
			Title:        sec.DisplayTitle(),
			Score:        sc.Score,
			Rank:         i + 1,
			Snippet:      Snippet(sec.Text, e.cfg.SnippetLength),
		}
	}
	return &models.SearchResponse{
		Query:     query.Query,
		Results:   results,
		Total:     len(results),
		QueryTime: time.Since(start).Milliseconds(),
	}, nil
}

// Info returns the active document summary, or ErrNoDocument.
func (e *Engine) Info() (*models.DocumentInfo, error) {
	idx := e.holder.Get()
	if idx == nil {
		return nil, models.ErrNoDocument
	}
	return idx.Info(), nil
}

// Sections returns the active document's sections in order, or ErrNoDocument.
func (e *Engine) Sections() ([]models.Section, error) {
	idx := e.holder.Get()
	if idx == nil {
		return nil, models.ErrNoDocument
	}
	return idx.Document().Sections, nil
}

// Section returns one section by index. Returns ErrNoDocument when nothing is
// loaded and a plain not-found error for an out-of-range index.
func (e *Engine) Section(i int) (*models.Section, error) {
	idx := e.holder.Get()
	if idx == nil {
		return nil, models.ErrNoDocument
	}
	sec := idx.Section(i)
	if sec == nil {
		return nil, fmt.Errorf("section %d not found (document has %d sections)", i, idx.Size())
	}
	return sec, nil
}

// VocabSize returns the active model's vocabulary size (0 when no document).
func (e *Engine) VocabSize() int {
	if idx := e.holder.Get(); idx != nil {
		return idx.Model().VocabSize()
	}
	return 0
}
