package recommend

import (
	"fmt"
	"sort"
	"sync"

	"github.com/pdulapalli/simple-news-curator/app/database"
)

// ProfileStore owns every user's preference profile. Profiles are created
// lazily on first access, loaded from the preference table, and cached for
// the lifetime of the process. The store itself is never the writer of
// weights; mutation happens per profile under the profile's own lock.
type ProfileStore struct {
	prefRepo     database.PreferenceRepository
	reactionRepo database.ReactionRepository

	mu       sync.RWMutex
	profiles map[string]*Profile
}

func NewProfileStore(prefRepo database.PreferenceRepository, reactionRepo database.ReactionRepository) *ProfileStore {
	return &ProfileStore{
		prefRepo:     prefRepo,
		reactionRepo: reactionRepo,
		profiles:     make(map[string]*Profile),
	}
}

// Get returns the profile for a user, creating it from stored weights on
// first access.
func (s *ProfileStore) Get(userID string) (*Profile, error) {
	s.mu.RLock()
	profile, ok := s.profiles[userID]
	s.mu.RUnlock()
	if ok {
		return profile, nil
	}

	weights, err := s.prefRepo.GetWeights(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Another request may have loaded it while we read the database.
	if profile, ok := s.profiles[userID]; ok {
		return profile, nil
	}

	profile = NewProfile(userID)
	for _, weight := range weights {
		profile.SetWeight(weight.Kind, weight.Term, weight.Weight)
	}
	s.profiles[userID] = profile

	return profile, nil
}

// Reset clears a user's stored weights and reaction history and drops the
// cached profile. Removing the reactions keeps the user's old feedback
// from lingering in the aggregate trending signal after the next pool
// refresh.
func (s *ProfileStore) Reset(userID string) error {
	if err := s.prefRepo.DeleteWeights(userID); err != nil {
		return fmt.Errorf("failed to reset profile: %w", err)
	}

	if err := s.reactionRepo.DeleteReactions(userID); err != nil {
		return fmt.Errorf("failed to reset reaction history: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.profiles, userID)

	return nil
}

// Summary reports the state of a user's profile for display and debugging.
func (s *ProfileStore) Summary(userID string) (ProfileSummary, error) {
	profile, err := s.Get(userID)
	if err != nil {
		return ProfileSummary{}, err
	}

	snapshot := profile.Snapshot()

	entries := make([]WeightEntry, 0, len(snapshot.Keywords)+len(snapshot.Sources))
	for term, weight := range snapshot.Keywords {
		entries = append(entries, WeightEntry{Kind: WeightKindKeyword, Term: term, Weight: weight})
	}
	for term, weight := range snapshot.Sources {
		entries = append(entries, WeightEntry{Kind: WeightKindSource, Term: term, Weight: weight})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Weight != entries[j].Weight {
			return entries[i].Weight > entries[j].Weight
		}
		return entries[i].Term < entries[j].Term
	})

	summary := ProfileSummary{
		TotalPreferences: len(entries),
		TopPositive:      []WeightEntry{},
		TopNegative:      []WeightEntry{},
	}

	for _, entry := range entries {
		if entry.Weight > 0 {
			summary.PositiveCount++
			if len(summary.TopPositive) < 5 {
				summary.TopPositive = append(summary.TopPositive, entry)
			}
		} else if entry.Weight < 0 {
			summary.NegativeCount++
		}
	}

	for i := len(entries) - 1; i >= 0; i-- {
		if entries[i].Weight < 0 && len(summary.TopNegative) < 5 {
			summary.TopNegative = append(summary.TopNegative, entries[i])
		}
	}

	return summary, nil
}
