package recommend

import (
	"time"
)

// engagementWeight converts net reactions (likes minus dislikes across all
// users) into score units.
const engagementWeight = 0.1

type Trending struct{}

func NewTrending() *Trending {
	return &Trending{}
}

// Run computes a trending score per article id from recency and aggregate
// engagement. The result is independent of any single user's profile, so
// it is computed once per ingestion cycle and cached in the pool snapshot.
func (t *Trending) Run(articles []Article, netReactions map[string]int, now time.Time) map[string]float64 {
	scores := make(map[string]float64, len(articles))
	for _, article := range articles {
		scores[article.ID] = RecencyBonus(article.PublishedAt, now) +
			engagementWeight*float64(netReactions[article.ID])
	}
	return scores
}
