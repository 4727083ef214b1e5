package api

import (
	"net/http"

	"github.com/pdulapalli/simple-news-curator/app/database"
	"github.com/pdulapalli/simple-news-curator/app/ingest"
	"github.com/pdulapalli/simple-news-curator/app/recommend"
	"github.com/pdulapalli/simple-news-curator/app/tasks"
)

type Handler struct {
	articleRepo  database.ArticleRepository
	reactionRepo database.ReactionRepository
	configCache  *ingest.ConfigCache
	profiles     *recommend.ProfileStore
	composer     *recommend.Composer
	pool         *recommend.Pool
	trending     *recommend.Trending
	processor    *recommend.ReactionProcessor
	scheduler    tasks.TaskSchedulerInterface
	httpClient   *http.Client
	parser       *ingest.Parser
	userAgent    string
	pageSize     int
}

type reactionRequest struct {
	Reaction string `json:"reaction" binding:"required"`
}

type rankedArticle struct {
	Rank        int      `json:"rank"`
	Score       float64  `json:"score"`
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Content     string   `json:"content"`
	URL         string   `json:"url"`
	Source      string   `json:"source"`
	Keywords    []string `json:"keywords"`
	PublishedAt string   `json:"published_at"`
}
