package recommend

import (
	"fmt"
	"log/slog"

	"github.com/pdulapalli/simple-news-curator/app/database"
)

// ReactionProcessor validates and applies a single reaction event to the
// submitting user's profile. All validation happens before any mutation,
// so a rejected reaction leaves no state change behind.
type ReactionProcessor struct {
	articleRepo  database.ArticleRepository
	reactionRepo database.ReactionRepository
	prefRepo     database.PreferenceRepository
	profiles     *ProfileStore
}

func NewReactionProcessor(articleRepo database.ArticleRepository,
	reactionRepo database.ReactionRepository, prefRepo database.PreferenceRepository,
	profiles *ProfileStore) *ReactionProcessor {
	return &ReactionProcessor{
		articleRepo:  articleRepo,
		reactionRepo: reactionRepo,
		prefRepo:     prefRepo,
		profiles:     profiles,
	}
}

// Run processes one reaction: rejects unknown kinds and unknown article
// ids, then adjusts the user's profile and records the reaction event.
// Repeated identical reactions keep reinforcing; they are training signal,
// not a toggle.
func (p *ReactionProcessor) Run(userID, articleID string, kind ReactionKind) error {
	if !kind.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidReaction, kind)
	}

	if articleID == "" {
		return fmt.Errorf("%w: empty article id", ErrArticleNotFound)
	}

	article, err := p.articleRepo.GetArticle(articleID)
	if err != nil {
		return fmt.Errorf("failed to look up article: %w", err)
	}
	if article == nil {
		return fmt.Errorf("%w: %s", ErrArticleNotFound, articleID)
	}

	profile, err := p.profiles.Get(userID)
	if err != nil {
		return err
	}

	if err := p.reactionRepo.InsertReaction(userID, articleID, string(kind)); err != nil {
		return fmt.Errorf("failed to record reaction: %w", err)
	}

	// Weights are written through before the cached profile is updated, so
	// a persistence failure never leaves the cache ahead of the database.
	changes, err := profile.Update(Article{
		ID:       article.ID,
		Source:   article.Source,
		Keywords: article.Keywords,
	}, kind, func(changes []WeightChange) error {
		for _, change := range changes {
			if err := p.prefRepo.UpsertWeight(userID, change.Kind, change.Term, change.Weight); err != nil {
				return fmt.Errorf("failed to persist weight: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	slog.Debug("Reaction applied",
		"user", userID,
		"article", articleID,
		"reaction", string(kind),
		"weights_changed", len(changes))

	return nil
}
