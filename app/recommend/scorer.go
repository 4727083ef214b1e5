package recommend

import (
	"time"
)

const (
	// recencyWeight is the bonus a just-published article receives.
	recencyWeight = 0.5
	// recencyHorizon is the age at which the recency bonus reaches zero.
	recencyHorizon = 48 * time.Hour
)

// RecencyBonus decays linearly from recencyWeight at age zero to zero at
// recencyHorizon. The same shape is used for personalized relevance and
// trending, so very old articles never outrank fresh ones on stale
// preference weight alone.
func RecencyBonus(publishedAt, now time.Time) float64 {
	age := now.Sub(publishedAt)
	if age <= 0 {
		return recencyWeight
	}
	if age >= recencyHorizon {
		return 0
	}
	return recencyWeight * (1 - float64(age)/float64(recencyHorizon))
}

type Scorer struct{}

func NewScorer() *Scorer {
	return &Scorer{}
}

// Run computes the personalized relevance of an article: the profile's
// preference score plus the recency bonus. Pure and deterministic for a
// fixed snapshot, article and clock.
func (s *Scorer) Run(snapshot ProfileSnapshot, article Article, now time.Time) float64 {
	return snapshot.Score(article) + RecencyBonus(article.PublishedAt, now)
}
