// Package report computes per-category spending summaries over statements.
package report

import (
	"github.com/shopspring/decimal"

	"github.com/ruvan/cardledger/internal/category"
	"github.com/ruvan/cardledger/internal/model"
)

// Summary is the per-category spending breakdown for one statement. Credit
// card bill payments ("Payment") are money moving onto the card, not
// spending, so they never appear in the totals.
type Summary struct {
	Totals map[string]decimal.Decimal
	ID     string
	Month  int
	Year   int
	Total  decimal.Decimal
}

// Summarize computes the spending breakdown for one statement.
func Summarize(st model.Statement) Summary {
	s := Summary{
		ID:     st.ID,
		Month:  st.Month,
		Year:   st.Year,
		Totals: make(map[string]decimal.Decimal),
	}

	for _, name := range category.SpendingCategories() {
		s.Totals[name] = decimal.Zero
	}

	for _, txn := range st.Transactions {
		if txn.Category == category.Payment {
			continue
		}
		bucket, ok := s.Totals[txn.Category]
		if !ok {
			// Learned categories can fall outside the static table.
			bucket = decimal.Zero
		}
		s.Totals[txn.Category] = bucket.Add(txn.Amount)
		s.Total = s.Total.Add(txn.Amount)
	}

	return s
}

// Compare summarizes several statements side by side.
func Compare(statements []model.Statement) []Summary {
	summaries := make([]Summary, 0, len(statements))
	for _, st := range statements {
		summaries = append(summaries, Summarize(st))
	}
	return summaries
}

// FilterByPeriod keeps statements matching the given month and/or year. A
// zero month or year means "any".
func FilterByPeriod(statements []model.Statement, month, year int) []model.Statement {
	if month == 0 && year == 0 {
		return statements
	}

	var filtered []model.Statement
	for _, st := range statements {
		if month != 0 && st.Month != month {
			continue
		}
		if year != 0 && st.Year != year {
			continue
		}
		filtered = append(filtered, st)
	}
	return filtered
}
