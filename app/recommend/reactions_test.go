package recommend

import (
	"errors"
	"fmt"
	"testing"

	"github.com/pdulapalli/simple-news-curator/app/database"
)

type fakeArticleRepo struct {
	articles map[string]database.Article
}

func newFakeArticleRepo(articles ...database.Article) *fakeArticleRepo {
	repo := &fakeArticleRepo{articles: make(map[string]database.Article)}
	for _, article := range articles {
		repo.articles[article.ID] = article
	}
	return repo
}

func (r *fakeArticleRepo) UpsertArticle(article database.Article) error {
	r.articles[article.ID] = article
	return nil
}

func (r *fakeArticleRepo) GetArticle(id string) (*database.Article, error) {
	article, ok := r.articles[id]
	if !ok {
		return nil, nil
	}
	return &article, nil
}

func (r *fakeArticleRepo) GetAllArticles() ([]database.Article, error) {
	articles := make([]database.Article, 0, len(r.articles))
	for _, article := range r.articles {
		articles = append(articles, article)
	}
	return articles, nil
}

func (r *fakeArticleRepo) GetArticleCount() (int, error) {
	return len(r.articles), nil
}

func (r *fakeArticleRepo) GetArticlesForExtraction(source string, limit int) ([]database.Article, error) {
	return nil, nil
}

func (r *fakeArticleRepo) UpdateArticleContent(id, content string) error {
	article, ok := r.articles[id]
	if !ok {
		return fmt.Errorf("article not found: %s", id)
	}
	article.Content = content
	r.articles[id] = article
	return nil
}

type fakeReactionRepo struct {
	reactions []database.Reaction
}

func (r *fakeReactionRepo) InsertReaction(userID, articleID, reaction string) error {
	r.reactions = append(r.reactions, database.Reaction{
		UserID:    userID,
		ArticleID: articleID,
		Reaction:  reaction,
	})
	return nil
}

func (r *fakeReactionRepo) GetNetReactions() (map[string]int, error) {
	net := make(map[string]int)
	for _, reaction := range r.reactions {
		if reaction.Reaction == "like" {
			net[reaction.ArticleID]++
		} else {
			net[reaction.ArticleID]--
		}
	}
	return net, nil
}

func (r *fakeReactionRepo) GetReactionCount() (int, error) {
	return len(r.reactions), nil
}

func (r *fakeReactionRepo) DeleteReactions(userID string) error {
	kept := r.reactions[:0]
	for _, reaction := range r.reactions {
		if reaction.UserID != userID {
			kept = append(kept, reaction)
		}
	}
	r.reactions = kept
	return nil
}

type fakePreferenceRepo struct {
	weights map[string]database.PreferenceWeight
}

func newFakePreferenceRepo() *fakePreferenceRepo {
	return &fakePreferenceRepo{weights: make(map[string]database.PreferenceWeight)}
}

func (r *fakePreferenceRepo) key(userID, kind, term string) string {
	return userID + "|" + kind + "|" + term
}

func (r *fakePreferenceRepo) GetWeights(userID string) ([]database.PreferenceWeight, error) {
	var weights []database.PreferenceWeight
	for _, weight := range r.weights {
		if weight.UserID == userID {
			weights = append(weights, weight)
		}
	}
	return weights, nil
}

func (r *fakePreferenceRepo) UpsertWeight(userID, kind, term string, weight float64) error {
	r.weights[r.key(userID, kind, term)] = database.PreferenceWeight{
		UserID: userID,
		Kind:   kind,
		Term:   term,
		Weight: weight,
	}
	return nil
}

func (r *fakePreferenceRepo) DeleteWeights(userID string) error {
	for key, weight := range r.weights {
		if weight.UserID == userID {
			delete(r.weights, key)
		}
	}
	return nil
}

func newTestProcessor(articles ...database.Article) (*ReactionProcessor, *fakeReactionRepo, *fakePreferenceRepo, *ProfileStore) {
	articleRepo := newFakeArticleRepo(articles...)
	reactionRepo := &fakeReactionRepo{}
	prefRepo := newFakePreferenceRepo()
	profiles := NewProfileStore(prefRepo, reactionRepo)
	processor := NewReactionProcessor(articleRepo, reactionRepo, prefRepo, profiles)
	return processor, reactionRepo, prefRepo, profiles
}

func TestReactionProcessorRejectsInvalidKind(t *testing.T) {
	processor, reactionRepo, prefRepo, profiles := newTestProcessor(database.Article{
		ID:       "a1",
		Source:   "TechNews",
		Keywords: []string{"tech"},
	})

	err := processor.Run("user1", "a1", ReactionKind("love"))
	if !errors.Is(err, ErrInvalidReaction) {
		t.Fatalf("Expected ErrInvalidReaction, got %v", err)
	}

	if len(reactionRepo.reactions) != 0 {
		t.Errorf("Expected no reactions recorded, got %d", len(reactionRepo.reactions))
	}
	if len(prefRepo.weights) != 0 {
		t.Errorf("Expected no weights persisted, got %d", len(prefRepo.weights))
	}

	profile, err := profiles.Get("user1")
	if err != nil {
		t.Fatal(err)
	}
	snapshot := profile.Snapshot()
	if len(snapshot.Keywords) != 0 || len(snapshot.Sources) != 0 {
		t.Error("Expected profile unchanged after rejected reaction")
	}
}

func TestReactionProcessorRejectsUnknownArticle(t *testing.T) {
	processor, reactionRepo, prefRepo, _ := newTestProcessor()

	err := processor.Run("user1", "missing", ReactionLike)
	if !errors.Is(err, ErrArticleNotFound) {
		t.Fatalf("Expected ErrArticleNotFound, got %v", err)
	}

	if len(reactionRepo.reactions) != 0 {
		t.Errorf("Expected no reactions recorded, got %d", len(reactionRepo.reactions))
	}
	if len(prefRepo.weights) != 0 {
		t.Errorf("Expected no weights persisted, got %d", len(prefRepo.weights))
	}
}

func TestReactionProcessorRejectsEmptyArticleID(t *testing.T) {
	processor, _, _, _ := newTestProcessor()

	err := processor.Run("user1", "", ReactionLike)
	if !errors.Is(err, ErrArticleNotFound) {
		t.Fatalf("Expected ErrArticleNotFound for empty id, got %v", err)
	}
}

func TestReactionProcessorAppliesLike(t *testing.T) {
	processor, reactionRepo, prefRepo, profiles := newTestProcessor(database.Article{
		ID:       "a1",
		Source:   "TechNews",
		Keywords: []string{"tech", "ai"},
	})

	if err := processor.Run("user1", "a1", ReactionLike); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if len(reactionRepo.reactions) != 1 {
		t.Fatalf("Expected 1 recorded reaction, got %d", len(reactionRepo.reactions))
	}
	if reactionRepo.reactions[0].Reaction != "like" {
		t.Errorf("Expected reaction 'like', got %q", reactionRepo.reactions[0].Reaction)
	}

	// Two keyword weights plus one source weight persisted.
	if len(prefRepo.weights) != 3 {
		t.Errorf("Expected 3 persisted weights, got %d", len(prefRepo.weights))
	}

	profile, err := profiles.Get("user1")
	if err != nil {
		t.Fatal(err)
	}
	snapshot := profile.Snapshot()
	if snapshot.Keywords["tech"] != WeightAdjustment {
		t.Errorf("Expected keyword weight %v, got %v", WeightAdjustment, snapshot.Keywords["tech"])
	}
	if snapshot.Sources["TechNews"] != WeightAdjustment {
		t.Errorf("Expected source weight %v, got %v", WeightAdjustment, snapshot.Sources["TechNews"])
	}
}

type failingPreferenceRepo struct {
	*fakePreferenceRepo
	err error
}

func (r *failingPreferenceRepo) UpsertWeight(userID, kind, term string, weight float64) error {
	return r.err
}

func TestReactionProcessorPersistenceFailureLeavesCacheUnchanged(t *testing.T) {
	articleRepo := newFakeArticleRepo(database.Article{
		ID:       "a1",
		Source:   "TechNews",
		Keywords: []string{"tech"},
	})
	reactionRepo := &fakeReactionRepo{}
	prefRepo := &failingPreferenceRepo{
		fakePreferenceRepo: newFakePreferenceRepo(),
		err:                errors.New("disk full"),
	}
	profiles := NewProfileStore(prefRepo, reactionRepo)
	processor := NewReactionProcessor(articleRepo, reactionRepo, prefRepo, profiles)

	if err := processor.Run("user1", "a1", ReactionLike); err == nil {
		t.Fatal("Expected error when weight persistence fails")
	}

	profile, err := profiles.Get("user1")
	if err != nil {
		t.Fatal(err)
	}
	snapshot := profile.Snapshot()
	if len(snapshot.Keywords) != 0 || len(snapshot.Sources) != 0 {
		t.Error("Expected cached profile unchanged after failed persistence")
	}
}

func TestReactionProcessorDislikeLowersWeights(t *testing.T) {
	processor, _, prefRepo, _ := newTestProcessor(database.Article{
		ID:       "a1",
		Source:   "Tabloid",
		Keywords: []string{"gossip"},
	})

	if err := processor.Run("user1", "a1", ReactionDislike); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	weight := prefRepo.weights["user1|keyword|gossip"]
	if weight.Weight != -WeightAdjustment {
		t.Errorf("Expected persisted weight %v, got %v", -WeightAdjustment, weight.Weight)
	}
}
