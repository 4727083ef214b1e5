package database

import (
	"time"
)

// Article represents an ingested article record. Immutable once stored
// except for content, which the extraction task may fill in later.
type Article struct {
	ID          string
	Title       string
	Content     string
	URL         string
	Source      string   // publisher name shown to users and scored against
	SourceName  string   // ingestion source config that produced the article
	Keywords    []string // stored as a comma-delimited string at the boundary
	PublishedAt time.Time
	CreatedAt   time.Time
}

// PreferenceWeight is one persisted affinity weight of a user's profile.
type PreferenceWeight struct {
	UserID      string
	Kind        string // "keyword" or "source"
	Term        string
	Weight      float64
	LastUpdated time.Time
}

// Reaction is a recorded like/dislike event.
type Reaction struct {
	ID        int64
	ArticleID string
	UserID    string
	Reaction  string
	CreatedAt time.Time
}
