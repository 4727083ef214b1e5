package recommend

import (
	"sync"
)

const (
	// WeightAdjustment is the fixed learning rate applied per reaction.
	WeightAdjustment = 0.1
	// MaxWeight and MinWeight bound every affinity weight. Clipping keeps
	// repeated identical reactions from reinforcing without limit.
	MaxWeight = 1.0
	MinWeight = -1.0
)

const (
	WeightKindKeyword = "keyword"
	WeightKindSource  = "source"
)

type WeightChange struct {
	Kind   string
	Term   string
	Weight float64
}

// Profile holds one user's learned affinity weights. Unseen keywords and
// sources have an implicit weight of zero, so the maps stay sparse. All
// mutation goes through Apply, which serializes writers per profile.
type Profile struct {
	UserID string

	mu       sync.Mutex
	keywords map[string]float64
	sources  map[string]float64
}

func NewProfile(userID string) *Profile {
	return &Profile{
		UserID:   userID,
		keywords: make(map[string]float64),
		sources:  make(map[string]float64),
	}
}

// Apply adjusts the weights for every keyword of the article and for its
// source: +WeightAdjustment for a like, -WeightAdjustment for a dislike,
// clipped to [MinWeight, MaxWeight]. It returns the changed entries so the
// caller can persist them.
func (p *Profile) Apply(article Article, kind ReactionKind) []WeightChange {
	changes, _ := p.Update(article, kind, nil)
	return changes
}

// Update computes the adjusted weights for a reaction and, when persist is
// given, writes them through before committing to the in-memory maps. The
// profile lock is held for the whole call, so concurrent reactions for the
// same profile stay serialized and a failed write leaves the cached
// weights untouched.
func (p *Profile) Update(article Article, kind ReactionKind, persist func([]WeightChange) error) ([]WeightChange, error) {
	adjustment := WeightAdjustment
	if kind == ReactionDislike {
		adjustment = -WeightAdjustment
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	changes := make([]WeightChange, 0, len(article.Keywords)+1)

	for _, keyword := range article.Keywords {
		changes = append(changes, WeightChange{
			Kind:   WeightKindKeyword,
			Term:   keyword,
			Weight: clipWeight(p.keywords[keyword] + adjustment),
		})
	}

	if article.Source != "" {
		changes = append(changes, WeightChange{
			Kind:   WeightKindSource,
			Term:   article.Source,
			Weight: clipWeight(p.sources[article.Source] + adjustment),
		})
	}

	if persist != nil {
		if err := persist(changes); err != nil {
			return nil, err
		}
	}

	for _, change := range changes {
		switch change.Kind {
		case WeightKindKeyword:
			p.keywords[change.Term] = change.Weight
		case WeightKindSource:
			p.sources[change.Term] = change.Weight
		}
	}

	return changes, nil
}

// Snapshot copies both weight maps under the profile lock, so a feed
// computation never observes a partially applied update. Weights found
// outside the clipped bound are re-clipped on the way out.
func (p *Profile) Snapshot() ProfileSnapshot {
	p.mu.Lock()
	defer p.mu.Unlock()

	snapshot := ProfileSnapshot{
		Keywords: make(map[string]float64, len(p.keywords)),
		Sources:  make(map[string]float64, len(p.sources)),
	}
	for term, weight := range p.keywords {
		snapshot.Keywords[term] = clipWeight(weight)
	}
	for term, weight := range p.sources {
		snapshot.Sources[term] = clipWeight(weight)
	}

	return snapshot
}

// SetWeight seeds a single weight, used when loading a stored profile.
func (p *Profile) SetWeight(kind, term string, weight float64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch kind {
	case WeightKindKeyword:
		p.keywords[term] = clipWeight(weight)
	case WeightKindSource:
		p.sources[term] = clipWeight(weight)
	}
}

func clipWeight(weight float64) float64 {
	if weight > MaxWeight {
		return MaxWeight
	}
	if weight < MinWeight {
		return MinWeight
	}
	return weight
}
