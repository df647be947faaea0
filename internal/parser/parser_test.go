package parser

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ruvan/cardledger/internal/common"
)

const pageHeader = "POST DATE   INV. DATE   DESCRIPTION/REFERENCE NUMBER   AMOUNT"

// page assembles a statement page with the full header block above the
// transaction section.
func page(lines ...string) string {
	all := append([]string{
		"Credit Card Statement",
		"Card Number: XXXX XXXX XXXX 1234",
		pageHeader,
	}, lines...)
	return strings.Join(all, "\n")
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestParseSingleTransaction(t *testing.T) {
	p := New()

	txns, err := p.Parse([]string{page(
		"10/02/2025 08/02/2025 NEW NAWALOKA HOSPITALS PV, COLOMBO 02 2,934.25",
	)})
	require.NoError(t, err)
	require.Len(t, txns, 1)

	txn := txns[0]
	assert.Equal(t, date(2025, time.February, 10), txn.PostDate)
	assert.Equal(t, date(2025, time.February, 8), txn.InvDate)
	assert.Equal(t, "NEW NAWALOKA HOSPITALS PV, COLOMBO 02", txn.Description)
	assert.True(t, txn.Amount.Equal(decimal.RequireFromString("2934.25")))
	assert.False(t, txn.IsCredit)
	assert.Equal(t, "Other", txn.Category)
	assert.NotEmpty(t, txn.ID)
}

func TestParseCreditMarker(t *testing.T) {
	p := New()

	txns, err := p.Parse([]string{page(
		"15/03/2025 14/03/2025 INTERNET PAYMENT 113,000.00 CR",
	)})
	require.NoError(t, err)
	require.Len(t, txns, 1)

	assert.True(t, txns[0].IsCredit)
	assert.Equal(t, "INTERNET PAYMENT", txns[0].Description)
	assert.True(t, txns[0].Amount.Equal(decimal.RequireFromString("113000.00")))
}

func TestParseAmountWithoutSeparators(t *testing.T) {
	p := New()

	txns, err := p.Parse([]string{page(
		"01/01/2025 01/01/2025 KEELLS SUPER 450.00",
	)})
	require.NoError(t, err)
	require.Len(t, txns, 1)
	assert.True(t, txns[0].Amount.Equal(decimal.RequireFromString("450.00")))
}

func TestParseConcatenatedCreditMarkerIsNotAMatch(t *testing.T) {
	p := New()

	// The credit marker must be whitespace-separated from the amount; a
	// concatenated "CR" breaks the amount anchor and the line is skipped.
	_, err := p.Parse([]string{page(
		"15/03/2025 14/03/2025 INTERNET PAYMENT 113,000.00CR",
	)})
	assert.ErrorIs(t, err, common.ErrNoTransactions)
}

func TestParseSkipsLinesFailingAnchors(t *testing.T) {
	p := New()

	txns, err := p.Parse([]string{page(
		"Opening balance brought forward",
		"10/02/2025 08/02/2025 TOTAL DUE SEE OVERLEAF", // no amount anchor
		"10/02/2025 08/02/2025 CARGILLS FOOD CITY NO. 42 COLOMBO 1,250.75",
		"",
		"Thank you for banking with us",
	)})
	require.NoError(t, err)
	require.Len(t, txns, 1)
	assert.Equal(t, "CARGILLS FOOD CITY NO. 42 COLOMBO", txns[0].Description)
}

func TestParseSkipsBoilerplate(t *testing.T) {
	p := New()

	txns, err := p.Parse([]string{page(
		"10/02/2025 08/02/2025 ODEL COLOMBO 3,500.00",
		"Page 1 of 2",
		"Credit Card Statement",
	)})
	require.NoError(t, err)
	assert.Len(t, txns, 1)
}

func TestParsePageWithoutHeadersContributesNothing(t *testing.T) {
	p := New()

	// First page lacks the header block entirely; second page carries the
	// actual section. Only the ineligible page contributes zero rows.
	txns, err := p.Parse([]string{
		"Marketing blurb\n10/02/2025 08/02/2025 SHOULD NOT PARSE 100.00",
		page("10/02/2025 08/02/2025 KEELLS SUPER 450.00"),
	})
	require.NoError(t, err)
	require.Len(t, txns, 1)
	assert.Equal(t, "KEELLS SUPER", txns[0].Description)
}

func TestParseEmptyDocumentFails(t *testing.T) {
	p := New()

	tests := []struct {
		name  string
		pages []string
	}{
		{"no pages", nil},
		{"no eligible pages", []string{"just some text"}},
		{"eligible page with no rows", []string{page("nothing to see")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := p.Parse(tt.pages)
			assert.ErrorIs(t, err, common.ErrNoTransactions)
		})
	}
}

func TestParseDayMonthYearWinsWhenAmbiguous(t *testing.T) {
	p := New()

	// 03/04/2025 is valid under both conventions; day-month-year must win.
	txns, err := p.Parse([]string{page(
		"03/04/2025 02/04/2025 KEELLS SUPER 450.00",
	)})
	require.NoError(t, err)
	assert.Equal(t, date(2025, time.April, 3), txns[0].PostDate)
}

func TestParseMonthDayYearFallback(t *testing.T) {
	p := New()

	// 12/25/2025 cannot be day-month-year; the fallback reads it as Dec 25.
	txns, err := p.Parse([]string{page(
		"12/25/2025 12/24/2025 AMAZON MARKETPLACE 5,000.00",
	)})
	require.NoError(t, err)
	assert.Equal(t, date(2025, time.December, 25), txns[0].PostDate)
	assert.Equal(t, date(2025, time.December, 24), txns[0].InvDate)
}

func TestParseInvalidDateIsAHardError(t *testing.T) {
	p := New()

	// Matches the date anchor shape but is no valid date under either
	// convention.
	_, err := p.Parse([]string{page(
		"45/45/2025 45/45/2025 KEELLS SUPER 450.00",
	)})
	assert.Error(t, err)
	assert.NotErrorIs(t, err, common.ErrNoTransactions)
}

func TestParseEmptyDescriptionAccepted(t *testing.T) {
	p := New()

	txns, err := p.Parse([]string{page(
		"10/02/2025 08/02/2025 450.00",
	)})
	require.NoError(t, err)
	require.Len(t, txns, 1)
	assert.Empty(t, txns[0].Description)
}

func TestParsePreservesSourceOrder(t *testing.T) {
	p := New()

	txns, err := p.Parse([]string{
		page(
			"01/02/2025 01/02/2025 FIRST ROW 1.00",
			"02/02/2025 02/02/2025 SECOND ROW 2.00",
		),
		page("03/02/2025 03/02/2025 THIRD ROW 3.00"),
	})
	require.NoError(t, err)
	require.Len(t, txns, 3)
	assert.Equal(t, "FIRST ROW", txns[0].Description)
	assert.Equal(t, "SECOND ROW", txns[1].Description)
	assert.Equal(t, "THIRD ROW", txns[2].Description)
}

func TestParseIdempotent(t *testing.T) {
	p := New()
	pages := []string{page(
		"10/02/2025 08/02/2025 CARGILLS FOOD CITY NO. 42 COLOMBO 1,250.75",
		"15/02/2025 14/02/2025 INTERNET PAYMENT 113,000.00 CR",
	)}

	first, err := p.Parse(pages)
	require.NoError(t, err)
	second, err := p.Parse(pages)
	require.NoError(t, err)

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.NotEqual(t, first[i].ID, second[i].ID)
		assert.Equal(t, first[i].PostDate, second[i].PostDate)
		assert.Equal(t, first[i].InvDate, second[i].InvDate)
		assert.Equal(t, first[i].Description, second[i].Description)
		assert.True(t, first[i].Amount.Equal(second[i].Amount))
		assert.Equal(t, first[i].IsCredit, second[i].IsCredit)
	}
}
