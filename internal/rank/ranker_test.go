package rank

import (
	"errors"
	"math"
	"testing"

	"github.com/minatolab/kouhou/internal/index"
	"github.com/minatolab/kouhou/internal/models"
	"github.com/minatolab/kouhou/internal/segment"
	"github.com/minatolab/kouhou/internal/vectorize"
)

func newTestIndex(t *testing.T, text string) (*index.Index, *Ranker) {
	t.Helper()
	vec := vectorize.NewVectorizer(3)
	doc := &models.Document{ID: "d", Text: text}
	idx, err := index.Build(doc, segment.NewSegmenter(0), vec)
	if err != nil {
		t.Fatal(err)
	}
	return idx, NewRanker(vec)
}

func TestRank_EmptyQuery(t *testing.T) {
	idx, r := newTestIndex(t, "some document")
	if _, err := r.Rank("   ", idx, 5); !errors.Is(err, models.ErrEmptyQuery) {
		t.Errorf("expected ErrEmptyQuery, got %v", err)
	}
}

func TestRank_WidgetExample(t *testing.T) {
	idx, r := newTestIndex(t, "Claim 1. A widget.\n\nClaim 2. A gadget with a widget.")
	if idx.Size() != 2 {
		t.Fatalf("expected 2 sections, got %d", idx.Size())
	}
	hits, err := r.Rank("widget", idx, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(hits) != 2 {
		t.Fatalf("expected 2 results, got %d", len(hits))
	}
	for _, h := range hits {
		if h.Score <= 0 {
			t.Errorf("section %d score = %v, want > 0 for overlapping query", h.SectionIndex, h.Score)
		}
	}

	zero, err := r.Rank("xyz123", idx, 10)
	if err != nil {
		t.Fatal(err)
	}
	for _, h := range zero {
		if h.Score != 0 {
			t.Errorf("zero-overlap query: section %d score = %v, want 0", h.SectionIndex, h.Score)
		}
	}
}

func TestRank_SelfSimilarity(t *testing.T) {
	idx, r := newTestIndex(t, "Claim 1. A widget.\n\nClaim 2. A gadget only.")
	sec := idx.Section(0)
	hits, err := r.Rank(sec.Text, idx, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(hits) != 1 || hits[0].SectionIndex != 0 {
		t.Fatalf("self query should rank section 0 first, got %+v", hits)
	}
	if math.Abs(hits[0].Score-1) > 1e-9 {
		t.Errorf("self similarity = %v, want 1.0", hits[0].Score)
	}
}

func TestRank_OrderAndTies(t *testing.T) {
	idx, r := newTestIndex(t, "alpha\n\n\nbeta\n\n\ngamma\n\n\ndelta")
	hits, err := r.Rank("zzzz no overlap at all", idx, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(hits) != idx.Size() {
		t.Fatalf("expected all %d sections, got %d", idx.Size(), len(hits))
	}
	for i := 1; i < len(hits); i++ {
		if hits[i].Score > hits[i-1].Score {
			t.Errorf("scores increase at %d: %v > %v", i, hits[i].Score, hits[i-1].Score)
		}
		if hits[i].Score == hits[i-1].Score && hits[i].SectionIndex < hits[i-1].SectionIndex {
			t.Errorf("tie at %d broken by descending section index", i)
		}
	}
}

func TestRank_ScoreBounds(t *testing.T) {
	idx, r := newTestIndex(t, "Claim 1. A widget.\n\nClaim 2. A gadget with a widget.")
	hits, err := r.Rank("a widget and a gadget", idx, 10)
	if err != nil {
		t.Fatal(err)
	}
	for _, h := range hits {
		if h.Score < 0 || h.Score > 1 {
			t.Errorf("section %d score %v out of [0,1]", h.SectionIndex, h.Score)
		}
	}
}

func TestRank_Limit(t *testing.T) {
	idx, r := newTestIndex(t, "alpha\n\n\nbeta\n\n\ngamma")
	hits, err := r.Rank("alpha", idx, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(hits) != 2 {
		t.Errorf("limit 2: got %d results", len(hits))
	}
	all, err := r.Rank("alpha", idx, 100)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != idx.Size() {
		t.Errorf("limit beyond size: got %d, want %d", len(all), idx.Size())
	}
}
