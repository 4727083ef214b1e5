package tasks

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/pdulapalli/simple-news-curator/app/database"
	"github.com/pdulapalli/simple-news-curator/app/ingest"
)

type FetchSourceTask struct {
	Task
	SourceConfig *ingest.Config
	httpClient   *http.Client
	parser       *ingest.Parser
	articleRepo  database.ArticleRepository
	userAgent    string
}

func NewFetchSourceTask(sourceName string, sourceConfig *ingest.Config, httpClient *http.Client,
	parser *ingest.Parser, articleRepo database.ArticleRepository, userAgent string) *FetchSourceTask {
	return &FetchSourceTask{
		Task:         NewTask(TaskTypeFetchSource, sourceName),
		SourceConfig: sourceConfig,
		httpClient:   httpClient,
		parser:       parser,
		articleRepo:  articleRepo,
		userAgent:    userAgent,
	}
}

func (t *FetchSourceTask) Execute(ctx context.Context) error {

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	if !t.SourceConfig.Settings.Enabled {
		slog.Debug("Source disabled, skipping", "source", t.SourceName)
		return nil
	}

	data, err := t.fetchSource(ctx, t.SourceConfig.URL)
	if err != nil {
		return fmt.Errorf("failed to fetch source: %w", err)
	}

	articles, err := t.parser.Run(data, t.SourceConfig)
	if err != nil {
		return fmt.Errorf("failed to parse source: %w", err)
	}

	storedCount := 0
	for _, article := range articles {
		if err := t.articleRepo.UpsertArticle(article); err != nil {
			return fmt.Errorf("failed to store article: %w", err)
		}
		storedCount++
	}

	slog.Info("Task completed",
		"type", t.GetType(),
		"source", t.SourceName,
		"duration", t.GetDuration(),
		"total", len(articles),
		"stored", storedCount)

	return nil
}

func (t *FetchSourceTask) fetchSource(ctx context.Context, url string) ([]byte, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, time.Duration(t.SourceConfig.Settings.Timeout)*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(timeoutCtx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", t.userAgent)

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch source: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return data, nil
}
