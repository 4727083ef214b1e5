package database

import (
	"fmt"
)

// preferenceRepository handles database operations for preference weights
type preferenceRepository struct {
	db *DB
}

func NewPreferenceRepository(db *DB) PreferenceRepository {
	return &preferenceRepository{db: db}
}

func (r *preferenceRepository) GetWeights(userID string) ([]PreferenceWeight, error) {
	rows, err := r.db.Query(`
		SELECT user_id, kind, term, weight, last_updated
		FROM preferences
		WHERE user_id = ?
		ORDER BY weight DESC, term
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get preference weights: %w", err)
	}
	defer rows.Close()

	var weights []PreferenceWeight
	for rows.Next() {
		var weight PreferenceWeight
		err := rows.Scan(&weight.UserID, &weight.Kind, &weight.Term, &weight.Weight, &weight.LastUpdated)
		if err != nil {
			return nil, fmt.Errorf("failed to scan preference row: %w", err)
		}
		weights = append(weights, weight)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating preference rows: %w", err)
	}

	return weights, nil
}

func (r *preferenceRepository) UpsertWeight(userID, kind, term string, weight float64) error {
	_, err := r.db.Exec(`
		INSERT INTO preferences (user_id, kind, term, weight, last_updated)
		VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT (user_id, kind, term) DO UPDATE SET
			weight = excluded.weight,
			last_updated = CURRENT_TIMESTAMP
	`, userID, kind, term, weight)

	if err != nil {
		return fmt.Errorf("failed to upsert preference weight: %w", err)
	}

	return nil
}

func (r *preferenceRepository) DeleteWeights(userID string) error {
	_, err := r.db.Exec("DELETE FROM preferences WHERE user_id = ?", userID)
	if err != nil {
		return fmt.Errorf("failed to delete preference weights: %w", err)
	}
	return nil
}
