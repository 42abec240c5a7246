package search

import (
	"context"
	"errors"
	"testing"
	"unicode/utf8"

	"github.com/minatolab/kouhou/internal/config"
	"github.com/minatolab/kouhou/internal/models"
	"go.uber.org/zap"
)

func newTestEngine() *Engine {
	cfg := config.Default()
	return NewEngine(&cfg.Search, zap.NewNop())
}

func TestEngine_NoDocument(t *testing.T) {
	e := newTestEngine()
	_, err := e.Search(context.Background(), &models.SearchQuery{Query: "anything"})
	if !errors.Is(err, models.ErrNoDocument) {
		t.Errorf("search: expected ErrNoDocument, got %v", err)
	}
	if _, err := e.Info(); !errors.Is(err, models.ErrNoDocument) {
		t.Errorf("info: expected ErrNoDocument, got %v", err)
	}
	if _, err := e.Sections(); !errors.Is(err, models.ErrNoDocument) {
		t.Errorf("sections: expected ErrNoDocument, got %v", err)
	}
}

func TestEngine_LoadAndSearch(t *testing.T) {
	e := newTestEngine()
	ctx := context.Background()
	info, err := e.LoadText(ctx, "gazette.txt", "Claim 1. A widget.\n\nClaim 2. A gadget with a widget.")
	if err != nil {
		t.Fatal(err)
	}
	if info.SectionCount != 2 {
		t.Fatalf("section count: got %d, want 2", info.SectionCount)
	}
	if info.ID == "" || info.VocabSize == 0 {
		t.Errorf("incomplete info: %+v", info)
	}

	resp, err := e.Search(ctx, &models.SearchQuery{Query: "widget"})
	if err != nil {
		t.Fatal(err)
	}
	if resp.Total != 2 {
		t.Fatalf("total: got %d, want 2", resp.Total)
	}
	for i, r := range resp.Results {
		if r.Rank != i+1 {
			t.Errorf("result %d rank = %d", i, r.Rank)
		}
		if r.Score <= 0 {
			t.Errorf("result %d score = %v, want > 0", i, r.Score)
		}
		if r.Snippet == "" || r.Title == "" {
			t.Errorf("result %d missing snippet or title: %+v", i, r)
		}
	}
}

func TestEngine_EmptyQuery(t *testing.T) {
	e := newTestEngine()
	if _, err := e.LoadText(context.Background(), "d", "some document"); err != nil {
		t.Fatal(err)
	}
	_, err := e.Search(context.Background(), &models.SearchQuery{Query: "   "})
	if !errors.Is(err, models.ErrEmptyQuery) {
		t.Errorf("expected ErrEmptyQuery, got %v", err)
	}
}

func TestEngine_EmptyDocument(t *testing.T) {
	e := newTestEngine()
	_, err := e.LoadText(context.Background(), "d", "  \n ")
	if !errors.Is(err, models.ErrEmptyDocument) {
		t.Errorf("expected ErrEmptyDocument, got %v", err)
	}
	// The failed load must not install a partial index.
	if _, err := e.Info(); !errors.Is(err, models.ErrNoDocument) {
		t.Errorf("failed load leaked an index: %v", err)
	}
}

func TestEngine_UploadReplacesDocument(t *testing.T) {
	e := newTestEngine()
	ctx := context.Background()
	if _, err := e.LoadText(ctx, "first", "alpha\n\n\nbeta\n\n\ngamma"); err != nil {
		t.Fatal(err)
	}
	info, err := e.LoadText(ctx, "second", "just one section about gadgets")
	if err != nil {
		t.Fatal(err)
	}
	if info.SectionCount != 1 {
		t.Fatalf("second document: got %d sections", info.SectionCount)
	}
	resp, err := e.Search(ctx, &models.SearchQuery{Query: "alpha", Limit: 10})
	if err != nil {
		t.Fatal(err)
	}
	if resp.Total != 1 {
		t.Errorf("old sections leaked: got %d results", resp.Total)
	}
	if resp.Results[0].Score != 0 {
		t.Errorf("old vocabulary leaked: score %v for a first-document term", resp.Results[0].Score)
	}
}

func TestEngine_DefaultAndMaxLimit(t *testing.T) {
	cfg := config.Default()
	cfg.Search.DefaultLimit = 2
	cfg.Search.MaxLimit = 3
	e := NewEngine(&cfg.Search, zap.NewNop())
	ctx := context.Background()
	if _, err := e.LoadText(ctx, "d", "a\n\n\nb\n\n\nc\n\n\nd\n\n\ne"); err != nil {
		t.Fatal(err)
	}
	resp, err := e.Search(ctx, &models.SearchQuery{Query: "q"})
	if err != nil {
		t.Fatal(err)
	}
	if resp.Total != 2 {
		t.Errorf("default limit: got %d results, want 2", resp.Total)
	}
	resp, err = e.Search(ctx, &models.SearchQuery{Query: "q", Limit: 50})
	if err != nil {
		t.Fatal(err)
	}
	if resp.Total != 3 {
		t.Errorf("max limit: got %d results, want 3", resp.Total)
	}
}

func TestSnippet(t *testing.T) {
	if got := Snippet("  a \n\n b   c  ", 100); got != "a b c" {
		t.Errorf("Snippet collapse: got %q", got)
	}
	long := Snippet("ウィジェットの説明が続きます。とても長い説明です。", 5)
	if utf8.RuneCountInString(long) > 5+3 {
		t.Errorf("Snippet too long: %q", long)
	}
	if !utf8.ValidString(long) {
		t.Errorf("Snippet split a rune: %q", long)
	}
}
