package recommend

import (
	"time"
)

// Recommendation engine types

type Article struct {
	ID          string
	Title       string
	Content     string
	URL         string
	Source      string
	Keywords    []string
	PublishedAt time.Time
}

type RankedItem struct {
	Article Article
	Score   float64
	Rank    int
}

type ReactionKind string

const (
	ReactionLike    ReactionKind = "like"
	ReactionDislike ReactionKind = "dislike"
)

func (k ReactionKind) Valid() bool {
	return k == ReactionLike || k == ReactionDislike
}

// ProfileSnapshot is a consistent read-only copy of one profile's weights,
// taken under the same lock a concurrent writer would hold.
type ProfileSnapshot struct {
	Keywords map[string]float64
	Sources  map[string]float64
}

// Score returns the preference score for an article: the sum of the
// matching keyword and source weights, normalized by the number of
// contributing terms so articles with many keywords gain no advantage.
func (s ProfileSnapshot) Score(article Article) float64 {
	total := 0.0
	for _, keyword := range article.Keywords {
		total += s.Keywords[keyword]
	}
	total += s.Sources[article.Source]

	return total / float64(max(1, len(article.Keywords)+1))
}

type WeightEntry struct {
	Kind   string  `json:"kind"`
	Term   string  `json:"term"`
	Weight float64 `json:"weight"`
}

type ProfileSummary struct {
	TotalPreferences int           `json:"total_preferences"`
	PositiveCount    int           `json:"positive_count"`
	NegativeCount    int           `json:"negative_count"`
	TopPositive      []WeightEntry `json:"top_positive"`
	TopNegative      []WeightEntry `json:"top_negative"`
}
