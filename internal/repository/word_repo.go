package repository

import (
	"fmt"

	"wordbuilder/internal/database"
	"wordbuilder/internal/models"
)

// WordRepository handles word catalog database operations
type WordRepository struct {
	db database.DBTX
}

// NewWordRepository creates a new word repository
func NewWordRepository(db database.DBTX) *WordRepository {
	return &WordRepository{db: db}
}

// Count returns the number of catalog entries
func (r *WordRepository) Count() (int, error) {
	var count int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM words").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count words: %w", err)
	}
	return count, nil
}

// Insert adds one catalog entry
func (r *WordRepository) Insert(w *models.Word) error {
	query := "INSERT INTO words (word, level, category, hint) VALUES (?, ?, ?, ?)"

	id, err := r.db.ExecReturningID(query, w.Word, w.Level, w.Category, w.Hint)
	if err != nil {
		return fmt.Errorf("failed to insert word %q: %w", w.Word, err)
	}

	w.ID = id
	return nil
}

// GetByLevel retrieves the catalog slice for one level in seed order
func (r *WordRepository) GetByLevel(level int) ([]models.Word, error) {
	query := `
		SELECT id, word, level, category, hint
		FROM words
		WHERE level = ?
		ORDER BY id ASC
	`

	rows, err := r.db.Query(query, level)
	if err != nil {
		return nil, fmt.Errorf("failed to query words: %w", err)
	}
	defer rows.Close()

	var words []models.Word
	for rows.Next() {
		var w models.Word
		if err := rows.Scan(&w.ID, &w.Word, &w.Level, &w.Category, &w.Hint); err != nil {
			return nil, fmt.Errorf("failed to scan word: %w", err)
		}
		words = append(words, w)
	}

	return words, rows.Err()
}
