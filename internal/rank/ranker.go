// Package rank scores a query against every indexed section by cosine similarity.
package rank

import (
	"sort"
	"strings"

	"github.com/minatolab/kouhou/internal/index"
	"github.com/minatolab/kouhou/internal/models"
	"github.com/minatolab/kouhou/internal/vectorize"
)

// Ranker ranks sections of an index against free-text queries.
type Ranker struct {
	vectorizer *vectorize.Vectorizer
}

// NewRanker creates a ranker that vectorizes queries with the given vectorizer.
func NewRanker(v *vectorize.Vectorizer) *Ranker {
	return &Ranker{vectorizer: v}
}

// Scored is one section scored against a query.
type Scored struct {
	SectionIndex int
	Score        float64
}

// Rank vectorizes query against the index's frozen model and returns up to
// limit sections ordered by descending cosine similarity, ties broken by
// ascending section index. Zero-score sections are included; callers wanting
// only relevant hits apply their own threshold. A query whose n-grams are all
// out of vocabulary is valid and yields an all-zero result list.
// Returns models.ErrEmptyQuery when the trimmed query is empty.
func (r *Ranker) Rank(query string, idx *index.Index, limit int) ([]Scored, error) {
	if strings.TrimSpace(query) == "" {
		return nil, models.ErrEmptyQuery
	}
	qv := r.vectorizer.Vectorize(query, idx.Model())
	qNorm := qv.Norm()

	scored := make([]Scored, idx.Size())
	for i := range scored {
		scored[i] = Scored{
			SectionIndex: i,
			Score:        vectorize.Cosine(qv, idx.Vector(i), qNorm, idx.Norm(i)),
		}
	}
	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		return scored[i].SectionIndex < scored[j].SectionIndex
	})
	if limit > 0 && limit < len(scored) {
		scored = scored[:limit]
	}
	return scored, nil
}
