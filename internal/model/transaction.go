// Package model defines the core domain models used throughout the application.
package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// CategoryOther is the category assigned to transactions that nothing else
// claims. Statements are stored with this default until categorization runs.
const CategoryOther = "Other"

// Transaction represents a single row extracted from a credit card statement.
// Once created only Category may change, and only through a user correction.
type Transaction struct {
	PostDate    time.Time
	InvDate     time.Time
	ID          string
	Description string
	Category    string
	Amount      decimal.Decimal
	IsCredit    bool
}
