// Package ingest wires the document pipeline together: extract page text,
// parse transactions, categorize each description, and store the statement.
package ingest

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/ruvan/cardledger/internal/extract"
	"github.com/ruvan/cardledger/internal/model"
	"github.com/ruvan/cardledger/internal/parser"
)

// Categorizer assigns a category to a transaction description.
type Categorizer interface {
	Categorize(description string) string
}

// StatementStore persists fully-ingested statements.
type StatementStore interface {
	SaveStatement(ctx context.Context, st *model.Statement) error
}

// Importer runs the full ingestion pipeline for uploaded documents.
type Importer struct {
	parser    *parser.Parser
	engine    Categorizer
	store     StatementStore
	now       func() time.Time
	extractFn func(path string) ([]string, error)
}

// NewImporter creates an importer with its collaborators injected.
func NewImporter(p *parser.Parser, engine Categorizer, store StatementStore) *Importer {
	return &Importer{
		parser:    p,
		engine:    engine,
		store:     store,
		now:       time.Now,
		extractFn: extract.ReadPages,
	}
}

// ImportFile ingests one document and returns the stored statement. The
// operation is all-or-nothing: a document that yields no transactions, or a
// statement that fails to store, leaves nothing behind.
func (im *Importer) ImportFile(ctx context.Context, path string) (*model.Statement, error) {
	pages, err := im.extractFn(path)
	if err != nil {
		return nil, fmt.Errorf("extract %s: %w", filepath.Base(path), err)
	}

	transactions, err := im.parser.Parse(pages)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}

	for i := range transactions {
		transactions[i].Category = im.engine.Categorize(transactions[i].Description)
	}

	now := im.now()
	filename := filepath.Base(path)
	month, year := extract.DeriveMonthYear(filename, now)

	st := &model.Statement{
		ID:           uuid.NewString(),
		Filename:     filename,
		Month:        int(month),
		Year:         year,
		UploadedAt:   now,
		Transactions: transactions,
	}

	if err := im.store.SaveStatement(ctx, st); err != nil {
		return nil, fmt.Errorf("store %s: %w", filename, err)
	}
	return st, nil
}
