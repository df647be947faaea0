package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/ruvan/cardledger/internal/common"
	"github.com/ruvan/cardledger/internal/model"
)

// SaveStatement stores a statement and its transactions atomically. A batch
// is never partially published: either every row commits or none do.
func (s *SQLiteStorage) SaveStatement(ctx context.Context, st *model.Statement) error {
	if st == nil {
		return fmt.Errorf("statement cannot be nil")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO statements (id, filename, month, year, uploaded_at) VALUES (?, ?, ?, ?, ?)`,
		st.ID, st.Filename, st.Month, st.Year, st.UploadedAt,
	); err != nil {
		return fmt.Errorf("failed to insert statement: %w", err)
	}

	for i, txn := range st.Transactions {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO transactions
				(id, statement_id, position, post_date, inv_date, description, amount, is_credit, category)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			txn.ID, st.ID, i, txn.PostDate, txn.InvDate, txn.Description,
			txn.Amount.String(), txn.IsCredit, txn.Category,
		); err != nil {
			return fmt.Errorf("failed to insert transaction %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit statement: %w", err)
	}
	return nil
}

// GetStatement returns a statement with its transactions in source order.
func (s *SQLiteStorage) GetStatement(ctx context.Context, id string) (*model.Statement, error) {
	var st model.Statement
	err := s.db.QueryRowContext(ctx,
		`SELECT id, filename, month, year, uploaded_at FROM statements WHERE id = ?`, id,
	).Scan(&st.ID, &st.Filename, &st.Month, &st.Year, &st.UploadedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("statement %s: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query statement: %w", err)
	}

	st.Transactions, err = s.statementTransactions(ctx, id)
	if err != nil {
		return nil, err
	}
	return &st, nil
}

// ListStatements returns all statements, newest upload first, each with its
// transactions.
func (s *SQLiteStorage) ListStatements(ctx context.Context) ([]model.Statement, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, filename, month, year, uploaded_at FROM statements ORDER BY uploaded_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query statements: %w", err)
	}
	defer rows.Close()

	var statements []model.Statement
	for rows.Next() {
		var st model.Statement
		if err := rows.Scan(&st.ID, &st.Filename, &st.Month, &st.Year, &st.UploadedAt); err != nil {
			return nil, fmt.Errorf("failed to scan statement: %w", err)
		}
		statements = append(statements, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating statements: %w", err)
	}

	for i := range statements {
		statements[i].Transactions, err = s.statementTransactions(ctx, statements[i].ID)
		if err != nil {
			return nil, err
		}
	}
	return statements, nil
}

// GetTransaction returns a single transaction by ID.
func (s *SQLiteStorage) GetTransaction(ctx context.Context, id string) (*model.Transaction, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, post_date, inv_date, description, amount, is_credit, category
		 FROM transactions WHERE id = ?`, id)

	txn, err := scanTransaction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("transaction %s: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return txn, nil
}

// UpdateTransactionCategory rewrites a transaction's category. This is the
// only mutation transactions support after creation.
func (s *SQLiteStorage) UpdateTransactionCategory(ctx context.Context, id, category string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE transactions SET category = ? WHERE id = ?`, category, id)
	if err != nil {
		return fmt.Errorf("failed to update transaction category: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("transaction %s: %w", id, common.ErrNotFound)
	}
	return nil
}

func (s *SQLiteStorage) statementTransactions(ctx context.Context, statementID string) ([]model.Transaction, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, post_date, inv_date, description, amount, is_credit, category
		 FROM transactions WHERE statement_id = ? ORDER BY position`, statementID)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	var transactions []model.Transaction
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, *txn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transactions: %w", err)
	}
	return transactions, nil
}

// scanner covers both sql.Row and sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row scanner) (*model.Transaction, error) {
	var txn model.Transaction
	var amount string
	if err := row.Scan(&txn.ID, &txn.PostDate, &txn.InvDate, &txn.Description,
		&amount, &txn.IsCredit, &txn.Category); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan transaction: %w", err)
	}

	parsed, err := decimal.NewFromString(amount)
	if err != nil {
		return nil, fmt.Errorf("stored amount %q is not a decimal: %w", amount, err)
	}
	txn.Amount = parsed
	return &txn, nil
}
