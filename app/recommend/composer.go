package recommend

import (
	"sort"
	"time"
)

// personalizedShare is the fixed blend ratio: ceil(0.7 x page size) slots
// go to personalized content, the rest to trending.
const personalizedShare = 0.7

type Composer struct {
	scorer *Scorer
}

func NewComposer() *Composer {
	return &Composer{
		scorer: NewScorer(),
	}
}

type scoredArticle struct {
	article Article
	score   float64
}

// Run composes one feed page: the personalized block first (top articles
// by relevance against the profile), then the trending block filling the
// remainder. The composed page never contains duplicate article ids; when
// the pool holds fewer distinct articles than pageSize, all of them are
// returned.
func (c *Composer) Run(snapshot ProfileSnapshot, pool *PoolSnapshot, pageSize int) []RankedItem {
	return c.RunAt(snapshot, pool, pageSize, time.Now().UTC())
}

// RunAt is Run with an explicit clock, keeping the output reproducible for
// a fixed profile, pool and timestamp.
func (c *Composer) RunAt(snapshot ProfileSnapshot, pool *PoolSnapshot, pageSize int, now time.Time) []RankedItem {
	if pageSize <= 0 || len(pool.Articles) == 0 {
		return []RankedItem{}
	}

	personalized := make([]scoredArticle, 0, len(pool.Articles))
	for _, article := range pool.Articles {
		personalized = append(personalized, scoredArticle{
			article: article,
			score:   c.scorer.Run(snapshot, article, now),
		})
	}
	sortScored(personalized)

	personalizedCount := min(ceilShare(pageSize), len(personalized))

	items := make([]RankedItem, 0, pageSize)
	selected := make(map[string]bool, pageSize)

	for _, candidate := range personalized {
		if len(items) >= personalizedCount {
			break
		}
		if selected[candidate.article.ID] {
			continue
		}
		selected[candidate.article.ID] = true
		items = append(items, RankedItem{Article: candidate.article, Score: candidate.score})
	}

	trending := make([]scoredArticle, 0, len(pool.Articles))
	for _, article := range pool.Articles {
		if selected[article.ID] {
			continue
		}
		trending = append(trending, scoredArticle{
			article: article,
			score:   pool.Trending[article.ID],
		})
	}
	sortScored(trending)

	for _, candidate := range trending {
		if len(items) >= pageSize {
			break
		}
		if selected[candidate.article.ID] {
			continue
		}
		selected[candidate.article.ID] = true
		items = append(items, RankedItem{Article: candidate.article, Score: candidate.score})
	}

	for i := range items {
		items[i].Rank = i + 1
	}

	return items
}

// ceilShare returns ceil(personalizedShare x pageSize) using integer math
// (personalizedShare is 7/10).
func ceilShare(pageSize int) int {
	return (pageSize*7 + 9) / 10
}

// sortScored orders by score descending; ties prefer the more recent
// published_at, then the lexicographically smaller id, giving a total,
// deterministic order.
func sortScored(scored []scoredArticle) {
	sort.Slice(scored, func(i, j int) bool {
		if scored[i].score != scored[j].score {
			return scored[i].score > scored[j].score
		}
		if !scored[i].article.PublishedAt.Equal(scored[j].article.PublishedAt) {
			return scored[i].article.PublishedAt.After(scored[j].article.PublishedAt)
		}
		return scored[i].article.ID < scored[j].article.ID
	})
}
