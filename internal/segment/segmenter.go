// Package segment splits extracted document text into ordered, addressable sections.
package segment

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/minatolab/kouhou/internal/models"
)

const (
	// DefaultMaxSectionChars bounds section length when no structural cue appears.
	DefaultMaxSectionChars = 2000

	// maxHeadingRunes is the longest line still considered a heading when it
	// follows a blank line.
	maxHeadingRunes = 48

	// titleMaxRunes bounds stored section titles.
	titleMaxRunes = 80
)

// headingPatterns are structural cues that start a new section. Patent
// gazettes use bracketed markers (【請求項１】, 【０００１】, 【発明の名称】);
// translated gazettes use "Claim N" and numbered lines. The exact policy is a
// heuristic; segmentation correctness only depends on the coverage invariant.
var headingPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^【[^】]{1,50}】`),
	regexp.MustCompile(`(?i)^claim[ 　]+[0-9０-９]+`),
	regexp.MustCompile(`^[\[(（]?[0-9０-９]{1,4}[\])）.．:：]`),
	regexp.MustCompile(`^第[0-9０-９一二三四五六七八九十百]{1,4}[章条項節部編]`),
}

// Segmenter splits normalized text into non-overlapping sections using
// structural cues, with a maximum-length fallback so no section is
// unboundedly large.
type Segmenter struct {
	maxSectionChars int
}

// NewSegmenter creates a segmenter. maxSectionChars bounds section length in
// runes; values <= 0 use DefaultMaxSectionChars.
func NewSegmenter(maxSectionChars int) *Segmenter {
	if maxSectionChars <= 0 {
		maxSectionChars = DefaultMaxSectionChars
	}
	return &Segmenter{maxSectionChars: maxSectionChars}
}

type boundary struct {
	off   int // byte offset into the trimmed text
	title string
}

// Segment splits text into ordered sections. The concatenation of section
// texts reconstructs the whitespace-trimmed input exactly; every section is
// non-empty after trimming. Deterministic for a given input.
// Returns models.ErrEmptyDocument when the trimmed input is empty.
func (s *Segmenter) Segment(text string) ([]models.Section, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, models.ErrEmptyDocument
	}

	bounds := s.scanBoundaries(trimmed)

	sections := make([]models.Section, 0, len(bounds))
	for i, b := range bounds {
		end := len(trimmed)
		if i+1 < len(bounds) {
			end = bounds[i+1].off
		}
		start := b.off
		title := b.title
		for _, cut := range s.forcedCuts(trimmed, start, end) {
			sections = appendSection(sections, trimmed, start, cut, title)
			start, title = cut, ""
		}
		sections = appendSection(sections, trimmed, start, end, title)
	}
	return sections, nil
}

// scanBoundaries walks lines of the trimmed text and records section starts.
// A boundary opens at every heading candidate and after a run of two or more
// blank lines. Blank lines before a boundary belong to the preceding section.
func (s *Segmenter) scanBoundaries(trimmed string) []boundary {
	bounds := []boundary{{off: 0}}
	blankRun := 0
	first := true
	off := 0
	for off <= len(trimmed) {
		end := len(trimmed)
		if nl := strings.IndexByte(trimmed[off:], '\n'); nl >= 0 {
			end = off + nl
		}
		line := strings.TrimSpace(trimmed[off:end])
		if line == "" {
			blankRun++
		} else {
			title, isHeading := headingTitle(line, blankRun)
			switch {
			case first:
				bounds[0].title = title
			case isHeading || blankRun >= 2:
				bounds = append(bounds, boundary{off: off, title: title})
			}
			first = false
			blankRun = 0
		}
		if end == len(trimmed) {
			break
		}
		off = end + 1
	}
	return bounds
}

// headingTitle reports whether line is a heading candidate and, if so, the
// section title derived from it. blankRun is the number of blank lines
// immediately preceding the line.
func headingTitle(line string, blankRun int) (string, bool) {
	for _, re := range headingPatterns {
		if re.MatchString(line) {
			return truncateTitle(line), true
		}
	}
	if blankRun >= 1 && utf8.RuneCountInString(line) <= maxHeadingRunes {
		return truncateTitle(line), true
	}
	return "", false
}

func truncateTitle(line string) string {
	n := 0
	for i := range line {
		if n == titleMaxRunes {
			return line[:i]
		}
		n++
	}
	return line
}

// forcedCuts returns byte offsets where the span [start,end) must be split so
// that no section's content exceeds maxSectionChars runes. Cuts land on the
// whitespace nearest below the limit; a single unbroken run is cut at the
// limit itself.
func (s *Segmenter) forcedCuts(text string, start, end int) []int {
	var cuts []int
	base := start
	for {
		seg := text[base:end]
		fnw := strings.IndexFunc(seg, func(r rune) bool { return !unicode.IsSpace(r) })
		if fnw < 0 {
			return cuts
		}
		eff := strings.TrimRightFunc(seg, unicode.IsSpace)
		if utf8.RuneCountInString(eff[fnw:]) <= s.maxSectionChars {
			return cuts
		}
		limit := runeIndex(seg, utf8.RuneCountInString(seg[:fnw])+s.maxSectionChars)
		cut := strings.LastIndexFunc(seg[:limit], unicode.IsSpace)
		if cut <= fnw {
			cut = limit
		}
		cuts = append(cuts, base+cut)
		base += cut
	}
}

// runeIndex returns the byte index of the n-th rune of s, or len(s) when s is
// shorter than n runes.
func runeIndex(s string, n int) int {
	i := 0
	for ; n > 0 && i < len(s); n-- {
		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
	}
	return i
}

// appendSection emits text[start:end) as the next section, skipping spans that
// are whitespace only (the trailing remainder after the last boundary).
func appendSection(sections []models.Section, text string, start, end int, title string) []models.Section {
	if strings.TrimSpace(text[start:end]) == "" {
		return sections
	}
	return append(sections, models.Section{
		Index: len(sections),
		Start: start,
		End:   end,
		Title: title,
		Text:  text[start:end],
	})
}
