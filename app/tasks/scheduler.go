package tasks

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/pdulapalli/simple-news-curator/app/cfg"
	"github.com/pdulapalli/simple-news-curator/app/database"
	"github.com/pdulapalli/simple-news-curator/app/ingest"
	"github.com/pdulapalli/simple-news-curator/app/recommend"
)

var _ TaskSchedulerInterface = (*Scheduler)(nil)

type Scheduler struct {
	articleRepo      database.ArticleRepository
	reactionRepo     database.ReactionRepository
	configCache      *ingest.ConfigCache
	httpClient       *http.Client
	parser           *ingest.Parser
	contentExtractor *ingest.ContentExtractor
	trending         *recommend.Trending
	pool             *recommend.Pool
	userAgent        string
	interval         time.Duration
	workerCount      int
	ctx              context.Context
	cancel           context.CancelFunc
	wg               sync.WaitGroup
	taskQueue        chan TaskInterface

	// nextFetch tracks per-source due times. Only the ticker goroutine
	// touches it.
	nextFetch map[string]time.Time
}

func NewScheduler(configCache *ingest.ConfigCache, articleRepo database.ArticleRepository,
	reactionRepo database.ReactionRepository, httpClient *http.Client, parser *ingest.Parser,
	contentExtractor *ingest.ContentExtractor, trending *recommend.Trending,
	pool *recommend.Pool) TaskSchedulerInterface {
	ctx, cancel := context.WithCancel(context.Background())
	cfg := cfg.Get()

	return &Scheduler{
		articleRepo:      articleRepo,
		reactionRepo:     reactionRepo,
		configCache:      configCache,
		httpClient:       httpClient,
		parser:           parser,
		contentExtractor: contentExtractor,
		trending:         trending,
		pool:             pool,
		userAgent:        cfg.UserAgent,
		interval:         time.Duration(cfg.SchedulerInterval) * time.Second,
		workerCount:      cfg.WorkerCount,
		ctx:              ctx,
		cancel:           cancel,
		taskQueue:        make(chan TaskInterface, 300),
		nextFetch:        make(map[string]time.Time),
	}
}

func (s *Scheduler) Start() {
	for i := 0; i < s.workerCount; i++ {
		s.wg.Add(1)
		go s.worker(i)
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		s.enqueueStartupTasks()

		for {
			select {
			case <-s.ctx.Done():
				return
			case <-ticker.C:
				s.enqueueTasks()
			}
		}
	}()

}

func (s *Scheduler) Stop() {
	s.cancel()
	s.wg.Wait()
	close(s.taskQueue)
}

func (s *Scheduler) EnqueueTask(task TaskInterface) error {
	select {
	case s.taskQueue <- task:
		return nil
	case <-s.ctx.Done():
		return s.ctx.Err()
	default:
		return fmt.Errorf("task queue is full")
	}
}

func (s *Scheduler) enqueueStartupTasks() {
	sourceConfigs := s.configCache.GetConfigs()
	if len(sourceConfigs) == 0 {
		slog.Debug("No source configurations found")
	}

	slog.Debug("Processing source configurations", "count", len(sourceConfigs))

	now := time.Now().UTC()
	for _, sourceConfig := range sourceConfigs {
		if !sourceConfig.Settings.Enabled {
			slog.Debug("Source disabled, skipping FetchSourceTask", "source", sourceConfig.Name)
			continue
		}

		s.enqueueFetch(sourceConfig, now)
	}

	// Publish an initial snapshot so the feed endpoint serves whatever is
	// already in the database before the first fetch cycle completes.
	refreshTask := NewRefreshPoolTask(s.articleRepo, s.reactionRepo, s.trending, s.pool)
	if err := s.EnqueueTask(refreshTask); err != nil {
		slog.Warn("Failed to enqueue RefreshPoolTask", "error", err)
	}
}

func (s *Scheduler) enqueueTasks() {
	sourceConfigs := s.configCache.GetEnabledConfigs()
	if len(sourceConfigs) == 0 {
		slog.Debug("No enabled source configurations found")
		return
	}

	slog.Debug("Processing enabled source configurations for task scheduling", "count", len(sourceConfigs))

	now := time.Now().UTC()
	fetched := 0

	for _, sourceConfig := range sourceConfigs {
		if due, ok := s.nextFetch[sourceConfig.Name]; ok && due.After(now) {
			slog.Debug("Source not due for refresh yet", "source", sourceConfig.Name, "next_fetch_at", due)
		} else {
			s.enqueueFetch(sourceConfig, now)
			fetched++
		}

		if sourceConfig.Settings.ExtractContent {
			extractTask := NewExtractContentTask(sourceConfig.Name, sourceConfig, s.httpClient, s.contentExtractor, s.articleRepo, s.userAgent)
			if err := s.EnqueueTask(extractTask); err != nil {
				slog.Warn("Failed to enqueue ExtractContentTask", "source", sourceConfig.Name, "error", err)
			}
		}
	}

	if fetched > 0 {
		refreshTask := NewRefreshPoolTask(s.articleRepo, s.reactionRepo, s.trending, s.pool)
		if err := s.EnqueueTask(refreshTask); err != nil {
			slog.Warn("Failed to enqueue RefreshPoolTask", "error", err)
		}
	}
}

func (s *Scheduler) enqueueFetch(sourceConfig *ingest.Config, now time.Time) {
	fetchTask := NewFetchSourceTask(sourceConfig.Name, sourceConfig, s.httpClient, s.parser, s.articleRepo, s.userAgent)
	if err := s.EnqueueTask(fetchTask); err != nil {
		slog.Warn("Failed to enqueue FetchSourceTask", "source", sourceConfig.Name, "error", err)
		return
	}

	s.nextFetch[sourceConfig.Name] = now.Add(time.Duration(sourceConfig.Settings.RefreshInterval) * time.Second)
}

func (s *Scheduler) worker(id int) {
	defer s.wg.Done()

	for {
		select {
		case task, ok := <-s.taskQueue:
			if !ok {
				return
			}
			s.executeTask(id, task)

		case <-s.ctx.Done():
			return
		}
	}
}

func (s *Scheduler) executeTask(workerID int, task TaskInterface) {
	task.Start()

	taskCtx, cancel := context.WithTimeout(s.ctx, 5*time.Minute)
	defer cancel()

	err := task.Execute(taskCtx)

	if err != nil {
		slog.Error("Worker task execution failed", "worker_id", workerID, "type", string(task.GetType()), "id", task.GetID(), "retry_count", task.GetRetryCount(), "error", err)

		if task.CanRetry() {
			task.IncrementRetryCount()
			retryDelay := time.Duration(1<<uint(task.GetRetryCount()-1)) * time.Second
			if retryDelay > 30*time.Second {
				retryDelay = 30 * time.Second
			}

			slog.Warn("Task retry scheduled", "type", string(task.GetType()), "source", task.GetSourceName(), "retry_count", task.GetRetryCount(), "max_retries", task.GetMaxRetries(), "delay", retryDelay.String())

			go func() {
				time.Sleep(retryDelay)
				select {
				case <-s.ctx.Done():
					slog.Debug("Scheduler stopped, skipping task retry", "type", string(task.GetType()), "id", task.GetID())
					return
				default:
					if retryErr := s.EnqueueTask(task); retryErr != nil {
						slog.Error("Failed to re-enqueue task for retry", "type", string(task.GetType()), "id", task.GetID(), "retry_count", task.GetRetryCount(), "error", retryErr)
					}
				}
			}()
		} else {
			slog.Error("Task failed after maximum retries", "type", string(task.GetType()), "id", task.GetID(), "retry_count", task.GetRetryCount(), "max_retries", task.GetMaxRetries(), "last_error", err)
		}
	}
}
