package tasks

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/pdulapalli/simple-news-curator/app/database"
	"github.com/pdulapalli/simple-news-curator/app/ingest"
)

type ExtractContentTask struct {
	Task
	SourceConfig     *ingest.Config
	httpClient       *http.Client
	contentExtractor *ingest.ContentExtractor
	articleRepo      database.ArticleRepository
	userAgent        string
}

func NewExtractContentTask(sourceName string, sourceConfig *ingest.Config, httpClient *http.Client,
	contentExtractor *ingest.ContentExtractor, articleRepo database.ArticleRepository,
	userAgent string) *ExtractContentTask {
	return &ExtractContentTask{
		Task:             NewTask(TaskTypeExtractContent, sourceName),
		SourceConfig:     sourceConfig,
		httpClient:       httpClient,
		contentExtractor: contentExtractor,
		articleRepo:      articleRepo,
		userAgent:        userAgent,
	}
}

func (t *ExtractContentTask) Execute(ctx context.Context) error {

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	if !t.SourceConfig.Settings.ExtractContent {
		slog.Debug("Content extraction disabled for source", "source", t.SourceName)
		return nil
	}

	articles, err := t.articleRepo.GetArticlesForExtraction(t.SourceName, t.SourceConfig.Settings.MaxItems)
	if err != nil {
		return fmt.Errorf("failed to get articles for content extraction: %w", err)
	}

	if len(articles) == 0 {
		slog.Debug("No articles need content extraction", "source", t.SourceName)
		return nil
	}

	successCount := 0
	errorCount := 0

	for _, article := range articles {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err := t.extractContentForArticle(ctx, article); err != nil {
			slog.Error("Failed to extract content for article", "article_id", article.ID, "url", article.URL, "error", err)
			errorCount++
		} else {
			successCount++
		}
	}

	slog.Info("Task completed",
		"type", t.GetType(),
		"source", t.SourceName,
		"duration", t.GetDuration(),
		"success", successCount,
		"errors", errorCount)

	return nil
}

func (t *ExtractContentTask) extractContentForArticle(ctx context.Context, article database.Article) error {
	if article.URL == "" {
		return fmt.Errorf("article has no URL")
	}

	data, err := t.fetchArticleContent(ctx, article.URL)
	if err != nil {
		return fmt.Errorf("failed to fetch article content: %w", err)
	}

	extractedContent, err := t.contentExtractor.Run(data)
	if err != nil {
		return fmt.Errorf("failed to extract content: %w", err)
	}

	if err := t.articleRepo.UpdateArticleContent(article.ID, extractedContent); err != nil {
		return fmt.Errorf("failed to update article content: %w", err)
	}

	slog.Debug("Content extracted successfully", "article_id", article.ID, "url", article.URL, "content_length", len(extractedContent))
	return nil
}

func (t *ExtractContentTask) fetchArticleContent(ctx context.Context, url string) ([]byte, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, time.Duration(t.SourceConfig.Settings.Timeout)*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(timeoutCtx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", t.userAgent)

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch URL: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	contentType := resp.Header.Get("Content-Type")
	if !strings.Contains(strings.ToLower(contentType), "text/html") {
		return nil, fmt.Errorf("content type is not HTML: %s", contentType)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return data, nil
}
