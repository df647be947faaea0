package storage

import (
	"context"
	"fmt"

	"github.com/ruvan/cardledger/internal/category"
)

// LoadCorpus returns every learned correction in insertion order. A fresh
// database is an empty corpus, not an error.
func (s *SQLiteStorage) LoadCorpus(ctx context.Context) ([]category.Example, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT description, category FROM training_corpus ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query training corpus: %w", err)
	}
	defer rows.Close()

	var corpus []category.Example
	for rows.Next() {
		var ex category.Example
		if err := rows.Scan(&ex.Description, &ex.Category); err != nil {
			return nil, fmt.Errorf("failed to scan training example: %w", err)
		}
		corpus = append(corpus, ex)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating training corpus: %w", err)
	}
	return corpus, nil
}

// AppendExample durably records one learned correction. The corpus is
// append-only; duplicates are kept deliberately since repeated corrections
// reinforce a label.
func (s *SQLiteStorage) AppendExample(ctx context.Context, ex category.Example) error {
	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO training_corpus (description, category) VALUES (?, ?)`,
		ex.Description, ex.Category,
	); err != nil {
		return fmt.Errorf("failed to append training example: %w", err)
	}
	return nil
}
