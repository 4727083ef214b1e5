package tasks

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/pdulapalli/simple-news-curator/app/database"
	"github.com/pdulapalli/simple-news-curator/app/recommend"
)

type RefreshPoolTask struct {
	Task
	articleRepo  database.ArticleRepository
	reactionRepo database.ReactionRepository
	trending     *recommend.Trending
	pool         *recommend.Pool
}

func NewRefreshPoolTask(articleRepo database.ArticleRepository, reactionRepo database.ReactionRepository,
	trending *recommend.Trending, pool *recommend.Pool) *RefreshPoolTask {
	return &RefreshPoolTask{
		Task:         NewTask(TaskTypeRefreshPool, ""),
		articleRepo:  articleRepo,
		reactionRepo: reactionRepo,
		trending:     trending,
		pool:         pool,
	}
}

func (t *RefreshPoolTask) Execute(ctx context.Context) error {

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	stored, err := t.articleRepo.GetAllArticles()
	if err != nil {
		return fmt.Errorf("failed to load articles: %w", err)
	}

	netReactions, err := t.reactionRepo.GetNetReactions()
	if err != nil {
		return fmt.Errorf("failed to load reaction counts: %w", err)
	}

	now := time.Now().UTC()

	articles := make([]recommend.Article, 0, len(stored))
	for _, article := range stored {
		articles = append(articles, recommend.Article{
			ID:          article.ID,
			Title:       article.Title,
			Content:     article.Content,
			URL:         article.URL,
			Source:      article.Source,
			Keywords:    article.Keywords,
			PublishedAt: article.PublishedAt,
		})
	}

	t.pool.Publish(&recommend.PoolSnapshot{
		Articles:    articles,
		Trending:    t.trending.Run(articles, netReactions, now),
		RefreshedAt: now,
	})

	slog.Info("Task completed",
		"type", t.GetType(),
		"duration", t.GetDuration(),
		"articles", len(articles),
		"reacted", len(netReactions))

	return nil
}
