package report

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/ruvan/cardledger/internal/model"
)

func statement(txns ...model.Transaction) model.Statement {
	return model.Statement{ID: "st-1", Month: 2, Year: 2025, Transactions: txns}
}

func txn(category, amount string) model.Transaction {
	return model.Transaction{Category: category, Amount: decimal.RequireFromString(amount)}
}

func TestSummarizeExcludesPayments(t *testing.T) {
	s := Summarize(statement(
		txn("Grocery", "1250.75"),
		txn("Grocery", "449.25"),
		txn("Healthcare", "2934.25"),
		txn("Payment", "113000.00"),
	))

	assert.True(t, s.Totals["Grocery"].Equal(decimal.RequireFromString("1700.00")))
	assert.True(t, s.Totals["Healthcare"].Equal(decimal.RequireFromString("2934.25")))
	assert.True(t, s.Total.Equal(decimal.RequireFromString("4634.25")))
	_, hasPayment := s.Totals["Payment"]
	assert.False(t, hasPayment)
}

func TestSummarizeKeepsLearnedCategories(t *testing.T) {
	s := Summarize(statement(txn("Hobbies", "300.00")))

	assert.True(t, s.Totals["Hobbies"].Equal(decimal.RequireFromString("300.00")))
	assert.True(t, s.Total.Equal(decimal.RequireFromString("300.00")))
}

func TestSummarizeEmptyStatement(t *testing.T) {
	s := Summarize(statement())

	assert.True(t, s.Total.IsZero())
	assert.True(t, s.Totals["Other"].IsZero())
}

func TestCompare(t *testing.T) {
	first := statement(txn("Grocery", "100.00"))
	second := statement(txn("Fuel", "50.00"))
	second.ID = "st-2"

	summaries := Compare([]model.Statement{first, second})

	assert.Len(t, summaries, 2)
	assert.Equal(t, "st-1", summaries[0].ID)
	assert.Equal(t, "st-2", summaries[1].ID)
}

func TestFilterByPeriod(t *testing.T) {
	feb := model.Statement{ID: "feb", Month: 2, Year: 2025}
	mar := model.Statement{ID: "mar", Month: 3, Year: 2025}
	old := model.Statement{ID: "old", Month: 2, Year: 2024}
	all := []model.Statement{feb, mar, old}

	tests := []struct {
		name    string
		month   int
		year    int
		wantIDs []string
	}{
		{"no filter", 0, 0, []string{"feb", "mar", "old"}},
		{"month only", 2, 0, []string{"feb", "old"}},
		{"year only", 0, 2025, []string{"feb", "mar"}},
		{"month and year", 2, 2025, []string{"feb"}},
		{"no match", 7, 2025, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ids []string
			for _, st := range FilterByPeriod(all, tt.month, tt.year) {
				ids = append(ids, st.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}
