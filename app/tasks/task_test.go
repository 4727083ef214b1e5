package tasks

import (
	"testing"
	"time"
)

func TestNewTask(t *testing.T) {
	task := NewTask(TaskTypeFetchSource, "technews")

	if task.ID == "" {
		t.Error("Expected task id to be generated")
	}
	if task.Type != TaskTypeFetchSource {
		t.Errorf("Expected type %q, got %q", TaskTypeFetchSource, task.Type)
	}
	if task.GetSourceName() != "technews" {
		t.Errorf("Expected source name 'technews', got %q", task.GetSourceName())
	}
	if task.MaxRetries != DefaultMaxRetries {
		t.Errorf("Expected max retries %d, got %d", DefaultMaxRetries, task.MaxRetries)
	}
}

func TestNewTaskGeneratesUniqueIDs(t *testing.T) {
	first := NewTask(TaskTypeRefreshPool, "")
	second := NewTask(TaskTypeRefreshPool, "")

	if first.ID == second.ID {
		t.Errorf("Expected unique task ids, got %q twice", first.ID)
	}
}

func TestTaskRetryBookkeeping(t *testing.T) {
	task := NewTask(TaskTypeExtractContent, "technews")

	if !task.CanRetry() {
		t.Error("Expected fresh task to be retryable")
	}

	for i := 0; i < DefaultMaxRetries; i++ {
		task.IncrementRetryCount()
	}

	if task.GetRetryCount() != DefaultMaxRetries {
		t.Errorf("Expected retry count %d, got %d", DefaultMaxRetries, task.GetRetryCount())
	}
	if task.CanRetry() {
		t.Error("Expected task at max retries to not be retryable")
	}
}

func TestTaskDuration(t *testing.T) {
	task := NewTask(TaskTypeFetchSource, "technews")

	if task.GetDuration() != 0 {
		t.Errorf("Expected zero duration before start, got %v", task.GetDuration())
	}

	task.Start()
	time.Sleep(time.Millisecond)

	if task.GetDuration() <= 0 {
		t.Errorf("Expected positive duration after start, got %v", task.GetDuration())
	}
}
