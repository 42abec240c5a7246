package segment

import (
	"errors"
	"reflect"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/minatolab/kouhou/internal/models"
)

func TestSegment_Empty(t *testing.T) {
	s := NewSegmenter(0)
	if _, err := s.Segment("   \n\t  "); !errors.Is(err, models.ErrEmptyDocument) {
		t.Errorf("expected ErrEmptyDocument, got %v", err)
	}
}

func TestSegment_ShortDocumentSingleSection(t *testing.T) {
	s := NewSegmenter(0)
	sections, err := s.Segment("a single short document")
	if err != nil {
		t.Fatal(err)
	}
	if len(sections) != 1 {
		t.Fatalf("expected 1 section, got %d", len(sections))
	}
	if sections[0].Text != "a single short document" {
		t.Errorf("section text: got %q", sections[0].Text)
	}
}

func TestSegment_Coverage(t *testing.T) {
	inputs := []string{
		"Claim 1. A widget.\n\nClaim 2. A gadget with a widget.",
		"【発明の名称】ウィジェット\n本発明はウィジェットに関する。\n【請求項１】\nウィジェットを備える装置。",
		"intro paragraph\n\n\nsecond block after a long blank run\nwith more lines\n\n\nfinal block",
		"  \n leading and trailing whitespace \n\n body text here \n\n",
	}
	s := NewSegmenter(0)
	for _, input := range inputs {
		sections, err := s.Segment(input)
		if err != nil {
			t.Fatalf("input %q: %v", input, err)
		}
		var b strings.Builder
		for i, sec := range sections {
			if sec.Index != i {
				t.Errorf("section %d has index %d", i, sec.Index)
			}
			if strings.TrimSpace(sec.Text) == "" {
				t.Errorf("section %d is empty after trimming", i)
			}
			b.WriteString(sec.Text)
		}
		if got, want := b.String(), strings.TrimSpace(input); got != want {
			t.Errorf("concatenation mismatch:\ngot  %q\nwant %q", got, want)
		}
	}
}

func TestSegment_Deterministic(t *testing.T) {
	input := "【請求項１】\nfirst claim body\n\n【請求項２】\nsecond claim body"
	s := NewSegmenter(0)
	first, err := s.Segment(input)
	if err != nil {
		t.Fatal(err)
	}
	second, err := s.Segment(input)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("repeated segmentation differs")
	}
}

func TestSegment_HeadingCandidates(t *testing.T) {
	input := "Claim 1. A widget.\n\nClaim 2. A gadget with a widget."
	s := NewSegmenter(0)
	sections, err := s.Segment(input)
	if err != nil {
		t.Fatal(err)
	}
	if len(sections) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(sections))
	}
	if !strings.HasPrefix(sections[0].Text, "Claim 1") {
		t.Errorf("section 0: %q", sections[0].Text)
	}
	if !strings.HasPrefix(sections[1].Text, "Claim 2") {
		t.Errorf("section 1: %q", sections[1].Text)
	}
	if sections[0].Title == "" || sections[1].Title == "" {
		t.Errorf("claim headings should set titles, got %q / %q", sections[0].Title, sections[1].Title)
	}
}

func TestSegment_BracketHeadings(t *testing.T) {
	input := "【発明の名称】ウィジェット\n説明文。\n【請求項１】\n装置の請求項。"
	s := NewSegmenter(0)
	sections, err := s.Segment(input)
	if err != nil {
		t.Fatal(err)
	}
	if len(sections) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(sections))
	}
	if !strings.HasPrefix(sections[1].Title, "【請求項１】") {
		t.Errorf("section 1 title: %q", sections[1].Title)
	}
}

func TestSegment_MaxSpanFallback(t *testing.T) {
	// One long unheaded paragraph; every section's content must stay bounded.
	input := strings.Repeat("word ", 1000)
	maxChars := 100
	s := NewSegmenter(maxChars)
	sections, err := s.Segment(input)
	if err != nil {
		t.Fatal(err)
	}
	if len(sections) < 2 {
		t.Fatalf("expected forced splits, got %d sections", len(sections))
	}
	var b strings.Builder
	for i, sec := range sections {
		if n := utf8.RuneCountInString(strings.TrimSpace(sec.Text)); n > maxChars {
			t.Errorf("section %d has %d content runes, max %d", i, n, maxChars)
		}
		b.WriteString(sec.Text)
	}
	if b.String() != strings.TrimSpace(input) {
		t.Error("forced splits broke coverage")
	}
}

func TestSegment_UnbrokenRunHardCut(t *testing.T) {
	input := strings.Repeat("x", 500)
	s := NewSegmenter(100)
	sections, err := s.Segment(input)
	if err != nil {
		t.Fatal(err)
	}
	if len(sections) != 5 {
		t.Errorf("expected 5 hard-cut sections, got %d", len(sections))
	}
}

func TestSegment_BlankRunBoundary(t *testing.T) {
	// Two blank lines force a boundary even without a recognizable heading;
	// the opening line here is deliberately longer than a heading.
	long := strings.Repeat("this is a long opening line of plain prose ", 3)
	input := long + "\n\n\n" + long
	s := NewSegmenter(0)
	sections, err := s.Segment(input)
	if err != nil {
		t.Fatal(err)
	}
	if len(sections) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(sections))
	}
	if sections[1].Title != "" {
		t.Errorf("blank-run boundary should not invent a title, got %q", sections[1].Title)
	}
	if sections[1].DisplayTitle() != "Section 2" {
		t.Errorf("placeholder title: got %q", sections[1].DisplayTitle())
	}
}
