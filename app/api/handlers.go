package api

import (
	"cmp"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pdulapalli/simple-news-curator/app/cfg"
	"github.com/pdulapalli/simple-news-curator/app/database"
	"github.com/pdulapalli/simple-news-curator/app/ingest"
	"github.com/pdulapalli/simple-news-curator/app/recommend"
	"github.com/pdulapalli/simple-news-curator/app/tasks"
)

// defaultSessionID serves clients that send no session header. They all
// share one profile, which is the single-user mode of operation.
const defaultSessionID = "default"

const maxPageSize = 100

func NewHandler(configCache *ingest.ConfigCache, articleRepo database.ArticleRepository,
	reactionRepo database.ReactionRepository, profiles *recommend.ProfileStore,
	composer *recommend.Composer, pool *recommend.Pool, trending *recommend.Trending,
	processor *recommend.ReactionProcessor, scheduler tasks.TaskSchedulerInterface,
	httpClient *http.Client, parser *ingest.Parser) *Handler {
	c := cfg.Get()

	return &Handler{
		articleRepo:  articleRepo,
		reactionRepo: reactionRepo,
		configCache:  configCache,
		profiles:     profiles,
		composer:     composer,
		pool:         pool,
		trending:     trending,
		processor:    processor,
		scheduler:    scheduler,
		httpClient:   httpClient,
		parser:       parser,
		userAgent:    c.UserAgent,
		pageSize:     c.PageSize,
	}
}

func (h *Handler) sessionID(c *gin.Context) string {
	return cmp.Or(c.GetHeader("X-Session-ID"), defaultSessionID)
}

func (h *Handler) GetRecommended(c *gin.Context) {
	pageSize := h.pageSize
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit parameter"})
			return
		}
		pageSize = min(parsed, maxPageSize)
	}

	userID := h.sessionID(c)

	profile, err := h.profiles.Get(userID)
	if err != nil {
		slog.Error("Failed to load profile", "user", userID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load profile"})
		return
	}

	snapshot := h.pool.Get()
	items := h.composer.Run(profile.Snapshot(), snapshot, pageSize)

	articles := make([]rankedArticle, 0, len(items))
	for _, item := range items {
		articles = append(articles, rankedArticle{
			Rank:        item.Rank,
			Score:       item.Score,
			ID:          item.Article.ID,
			Title:       item.Article.Title,
			Content:     item.Article.Content,
			URL:         item.Article.URL,
			Source:      item.Article.Source,
			Keywords:    item.Article.Keywords,
			PublishedAt: item.Article.PublishedAt.Format(time.RFC3339),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"articles":     articles,
		"total":        len(articles),
		"refreshed_at": snapshot.RefreshedAt.Format(time.RFC3339),
	})
}

func (h *Handler) PostReaction(c *gin.Context) {
	articleID := c.Param("id")

	var req reactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	userID := h.sessionID(c)

	err := h.processor.Run(userID, articleID, recommend.ReactionKind(req.Reaction))
	switch {
	case errors.Is(err, recommend.ErrInvalidReaction):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid reaction", "details": err.Error()})
		return
	case errors.Is(err, recommend.ErrArticleNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Article not found", "details": err.Error()})
		return
	case err != nil:
		slog.Error("Failed to process reaction", "user", userID, "article", articleID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process reaction"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"article":  articleID,
		"reaction": req.Reaction,
	})
}

func (h *Handler) GetPreferences(c *gin.Context) {
	userID := h.sessionID(c)

	summary, err := h.profiles.Summary(userID)
	if err != nil {
		slog.Error("Failed to load preferences", "user", userID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load preferences"})
		return
	}

	c.JSON(http.StatusOK, summary)
}

func (h *Handler) ResetPreferences(c *gin.Context) {
	userID := h.sessionID(c)

	if err := h.profiles.Reset(userID); err != nil {
		slog.Error("Failed to reset preferences", "user", userID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reset preferences"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Preferences reset"})
}

func (h *Handler) GetHealth(c *gin.Context) {
	health := map[string]interface{}{
		"timestamp": time.Now().In(time.Local).Format(time.RFC3339),
	}

	if articleCount, err := h.articleRepo.GetArticleCount(); err == nil {
		health["articles"] = articleCount
	}

	health["loaded_configurations"] = h.configCache.GetConfigCount()

	c.JSON(http.StatusOK, health)
}

func (h *Handler) GetStats(c *gin.Context) {
	stats := map[string]interface{}{
		"timestamp": time.Now().In(time.Local).Format(time.RFC3339),
		"sources":   h.configCache.GetConfigCount(),
	}

	if articleCount, err := h.articleRepo.GetArticleCount(); err == nil {
		stats["articles"] = articleCount
	}

	if reactionCount, err := h.reactionRepo.GetReactionCount(); err == nil {
		stats["reactions"] = reactionCount
	}

	snapshot := h.pool.Get()
	stats["pool"] = map[string]interface{}{
		"articles":     len(snapshot.Articles),
		"refreshed_at": snapshot.RefreshedAt.Format(time.RFC3339),
	}

	c.JSON(http.StatusOK, stats)
}

func (h *Handler) APIListSources(c *gin.Context) {
	configs := h.configCache.GetConfigs()

	sources := make([]map[string]interface{}, 0, len(configs))

	for _, sourceConfig := range configs {
		sources = append(sources, map[string]interface{}{
			"name":             sourceConfig.Name,
			"url":              sourceConfig.URL,
			"enabled":          sourceConfig.Settings.Enabled,
			"max_items":        sourceConfig.Settings.MaxItems,
			"refresh_interval": (time.Duration(sourceConfig.Settings.RefreshInterval) * time.Second).String(),
			"extract_content":  sourceConfig.Settings.ExtractContent,
		})
	}

	c.JSON(http.StatusOK, map[string]interface{}{
		"sources": sources,
		"total":   len(sources),
	})
}

func (h *Handler) APIRefreshSource(c *gin.Context) {
	name := c.Param("name")
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing source name parameter"})
		return
	}

	sourceConfig, err := h.configCache.LoadConfig(name)
	if err != nil {
		slog.Error("Error reloading source configuration", "source", name, "error", err)
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Source configuration not found",
			"details": err.Error(),
		})
		return
	}

	fetchTask := tasks.NewFetchSourceTask(name, sourceConfig, h.httpClient, h.parser, h.articleRepo, h.userAgent)
	if err := h.scheduler.EnqueueTask(fetchTask); err != nil {
		slog.Error("Error enqueueing fetch task", "source", name, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to enqueue fetch task",
			"details": err.Error(),
		})
		return
	}

	refreshTask := tasks.NewRefreshPoolTask(h.articleRepo, h.reactionRepo, h.trending, h.pool)
	if err := h.scheduler.EnqueueTask(refreshTask); err != nil {
		slog.Error("Error enqueueing pool refresh task", "source", name, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to enqueue pool refresh task",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Source refresh tasks enqueued successfully",
		"source": gin.H{
			"name": name,
			"url":  sourceConfig.URL,
		},
		"tasks": []gin.H{
			{"id": fetchTask.ID, "type": fetchTask.Type},
			{"id": refreshTask.ID, "type": refreshTask.Type},
		},
	})
}
