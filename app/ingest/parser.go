package ingest

import (
	"bytes"
	"cmp"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/pdulapalli/simple-news-curator/app/database"
)

type Parser struct {
	gofeedParser *gofeed.Parser
}

func NewParser() *Parser {
	return &Parser{
		gofeedParser: gofeed.NewParser(),
	}
}

// Run parses RSS/Atom data from one source into article records. The
// article id is a content hash of title and link, so re-fetching a source
// yields stable ids and upserts instead of duplicates.
func (p *Parser) Run(data []byte, sourceConfig *Config) ([]database.Article, error) {
	feed, err := p.gofeedParser.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	publisher := cmp.Or(feed.Title, sourceConfig.Name)

	articles := make([]database.Article, 0, len(feed.Items))
	for _, item := range feed.Items {
		if item.Link == "" && item.Title == "" {
			continue
		}
		if p.excluded(item.Title, sourceConfig.Excludes) {
			continue
		}

		articles = append(articles, p.normalizeItem(item, publisher, sourceConfig.Name))

		if sourceConfig.Settings.MaxItems > 0 && len(articles) >= sourceConfig.Settings.MaxItems {
			break
		}
	}

	return articles, nil
}

func (p *Parser) normalizeItem(item *gofeed.Item, publisher, sourceName string) database.Article {
	article := database.Article{
		ID:         generateArticleID(item.Title, item.Link),
		Title:      item.Title,
		Content:    cmp.Or(item.Description, item.Content),
		URL:        item.Link,
		Source:     publisher,
		SourceName: sourceName,
		Keywords:   ExtractKeywords(item.Title),
	}

	if item.PublishedParsed != nil {
		article.PublishedAt = item.PublishedParsed.UTC()
	} else if item.UpdatedParsed != nil {
		article.PublishedAt = item.UpdatedParsed.UTC()
	} else {
		article.PublishedAt = time.Now().UTC()
	}

	return article
}

func (p *Parser) excluded(title string, excludes []string) bool {
	lowered := strings.ToLower(title)
	for _, exclude := range excludes {
		if exclude != "" && strings.Contains(lowered, strings.ToLower(exclude)) {
			return true
		}
	}
	return false
}

func generateArticleID(title, link string) string {
	content := fmt.Sprintf("%s|%s", title, link)
	hash := sha256.Sum256([]byte(content))
	return hex.EncodeToString(hash[:])
}
