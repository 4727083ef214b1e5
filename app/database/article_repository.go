package database

import (
	"database/sql"
	"fmt"
	"strings"
)

const keywordDelimiter = ", "

// articleRepository handles database operations for articles
type articleRepository struct {
	db *DB
}

func NewArticleRepository(db *DB) ArticleRepository {
	return &articleRepository{db: db}
}

func (r *articleRepository) UpsertArticle(article Article) error {
	_, err := r.db.Exec(`
		INSERT INTO articles (id, title, content, url, source, source_name, keywords, published_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			title = excluded.title,
			content = CASE WHEN excluded.content != '' THEN excluded.content ELSE articles.content END,
			url = excluded.url,
			source = excluded.source,
			source_name = excluded.source_name,
			keywords = excluded.keywords
	`, article.ID, article.Title, article.Content, article.URL, article.Source,
		article.SourceName, strings.Join(article.Keywords, keywordDelimiter),
		article.PublishedAt.UTC())

	if err != nil {
		return fmt.Errorf("failed to upsert article: %w", err)
	}

	return nil
}

func (r *articleRepository) GetArticle(id string) (*Article, error) {
	var article Article
	var keywords string
	err := r.db.QueryRow(`
		SELECT id, title, content, url, source, source_name, keywords, published_at, created_at
		FROM articles
		WHERE id = ?
	`, id).Scan(
		&article.ID, &article.Title, &article.Content, &article.URL,
		&article.Source, &article.SourceName, &keywords,
		&article.PublishedAt, &article.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get article: %w", err)
	}

	article.Keywords = splitKeywords(keywords)
	return &article, nil
}

func (r *articleRepository) GetAllArticles() ([]Article, error) {
	rows, err := r.db.Query(`
		SELECT id, title, content, url, source, source_name, keywords, published_at, created_at
		FROM articles
		ORDER BY published_at DESC, id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to get articles: %w", err)
	}
	defer rows.Close()

	articles, err := scanArticles(rows)
	if err != nil {
		return nil, err
	}

	return articles, nil
}

func (r *articleRepository) GetArticleCount() (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM articles").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get article count: %w", err)
	}
	return count, nil
}

// GetArticlesForExtraction returns articles from an ingestion source that
// still have empty content, oldest first so a backlog drains in publish
// order.
func (r *articleRepository) GetArticlesForExtraction(sourceName string, limit int) ([]Article, error) {
	rows, err := r.db.Query(`
		SELECT id, title, content, url, source, source_name, keywords, published_at, created_at
		FROM articles
		WHERE source_name = ? AND content = '' AND url != ''
		ORDER BY published_at
		LIMIT ?
	`, sourceName, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get articles for extraction: %w", err)
	}
	defer rows.Close()

	articles, err := scanArticles(rows)
	if err != nil {
		return nil, err
	}

	return articles, nil
}

func (r *articleRepository) UpdateArticleContent(id, content string) error {
	_, err := r.db.Exec("UPDATE articles SET content = ? WHERE id = ?", content, id)
	if err != nil {
		return fmt.Errorf("failed to update article content: %w", err)
	}
	return nil
}

func scanArticles(rows *sql.Rows) ([]Article, error) {
	var articles []Article
	for rows.Next() {
		var article Article
		var keywords string
		err := rows.Scan(
			&article.ID, &article.Title, &article.Content, &article.URL,
			&article.Source, &article.SourceName, &keywords,
			&article.PublishedAt, &article.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan article row: %w", err)
		}
		article.Keywords = splitKeywords(keywords)
		articles = append(articles, article)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating article rows: %w", err)
	}

	return articles, nil
}

func splitKeywords(keywords string) []string {
	if keywords == "" {
		return nil
	}

	parts := strings.Split(keywords, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
