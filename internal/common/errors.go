// Package common provides shared utilities and types used across the application.
package common

import "errors"

// Common application errors.
var (
	// Storage errors.
	ErrNotFound = errors.New("not found")

	// Parser errors. ErrNoTransactions doubles as the "unrecognized layout"
	// signal: a document that parses to zero rows is far more likely to be
	// the wrong layout than a genuinely empty statement.
	ErrNoTransactions = errors.New("no transactions found in document")

	// Extraction errors.
	ErrEncryptedDocument = errors.New("document is encrypted")
)
