package database

type ArticleRepository interface {
	UpsertArticle(article Article) error
	GetArticle(id string) (*Article, error)
	GetAllArticles() ([]Article, error)
	GetArticleCount() (int, error)

	GetArticlesForExtraction(source string, limit int) ([]Article, error)
	UpdateArticleContent(id, content string) error
}

type PreferenceRepository interface {
	GetWeights(userID string) ([]PreferenceWeight, error)
	UpsertWeight(userID, kind, term string, weight float64) error
	DeleteWeights(userID string) error
}

type ReactionRepository interface {
	InsertReaction(userID, articleID, reaction string) error
	GetNetReactions() (map[string]int, error)
	GetReactionCount() (int, error)
	DeleteReactions(userID string) error
}
