package database

import (
	"fmt"
)

// reactionRepository handles database operations for reaction events
type reactionRepository struct {
	db *DB
}

func NewReactionRepository(db *DB) ReactionRepository {
	return &reactionRepository{db: db}
}

func (r *reactionRepository) InsertReaction(userID, articleID, reaction string) error {
	_, err := r.db.Exec(`
		INSERT INTO reactions (article_id, user_id, reaction)
		VALUES (?, ?, ?)
	`, articleID, userID, reaction)

	if err != nil {
		return fmt.Errorf("failed to insert reaction: %w", err)
	}

	return nil
}

// GetNetReactions returns likes minus dislikes per article id, aggregated
// across all users. Articles with no reactions are absent from the map.
func (r *reactionRepository) GetNetReactions() (map[string]int, error) {
	rows, err := r.db.Query(`
		SELECT article_id,
		       SUM(CASE WHEN reaction = 'like' THEN 1 ELSE -1 END) AS net
		FROM reactions
		GROUP BY article_id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to get net reactions: %w", err)
	}
	defer rows.Close()

	net := make(map[string]int)
	for rows.Next() {
		var articleID string
		var count int
		if err := rows.Scan(&articleID, &count); err != nil {
			return nil, fmt.Errorf("failed to scan reaction row: %w", err)
		}
		net[articleID] = count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating reaction rows: %w", err)
	}

	return net, nil
}

func (r *reactionRepository) GetReactionCount() (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM reactions").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get reaction count: %w", err)
	}
	return count, nil
}

func (r *reactionRepository) DeleteReactions(userID string) error {
	_, err := r.db.Exec("DELETE FROM reactions WHERE user_id = ?", userID)
	if err != nil {
		return fmt.Errorf("failed to delete reactions: %w", err)
	}
	return nil
}
