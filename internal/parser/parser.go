// Package parser extracts transaction records from the raw text of credit
// card statement pages. It is tuned to one layout family (post date, invoice
// date, description, amount, optional credit marker) and fails loudly when a
// document yields nothing rather than guessing at unknown layouts.
package parser

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ruvan/cardledger/internal/common"
	"github.com/ruvan/cardledger/internal/model"
)

// Column headers that must all appear on a page before any of its lines are
// treated as transaction candidates.
const (
	headerPostDate = "POST DATE"
	headerInvDate  = "INV. DATE"
	headerRef      = "DESCRIPTION/REFERENCE NUMBER"
	headerAmount   = "AMOUNT"
)

// creditMarker trails credit rows, whitespace-separated from the amount.
const creditMarker = "CR"

// Two-stage anchors. A single pattern cannot reliably split a free-text
// description from the amount when the description itself contains digits or
// commas, so the row is bounded from both ends instead: a date pair anchors
// the start, an amount token anchors the end, and the description is whatever
// sits between them.
var (
	datePairPattern = regexp.MustCompile(`^(\d{2}/\d{2}/\d{4})\s+(\d{2}/\d{2}/\d{4})`)
	amountPattern   = regexp.MustCompile(`(\d{1,3}(?:,\d{3})*\.\d{2}|\d+\.\d{2})(?:\s+CR)?$`)
)

// Parser extracts transactions from decrypted statement page text. It holds
// no state; one instance safely serves concurrent parses.
type Parser struct{}

// New creates a statement parser.
func New() *Parser {
	return &Parser{}
}

// Parse scans the given pages and returns the extracted transactions in
// source order. The whole document either parses or fails: a result of zero
// rows is reported as an error because downstream consumers cannot tell an
// empty statement from an unrecognized layout.
func (p *Parser) Parse(pages []string) ([]model.Transaction, error) {
	var transactions []model.Transaction

	for i, page := range pages {
		rows, err := p.parsePage(page)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", i+1, err)
		}
		transactions = append(transactions, rows...)
	}

	if len(transactions) == 0 {
		return nil, fmt.Errorf("%w; the statement layout may not be supported", common.ErrNoTransactions)
	}
	return transactions, nil
}

// parsePage extracts transaction rows from one page. A page missing any of
// the expected column headers contributes nothing; that alone is not an
// error.
func (p *Parser) parsePage(page string) ([]model.Transaction, error) {
	if !pageEligible(page) {
		return nil, nil
	}

	var rows []model.Transaction
	inSection := false
	for _, line := range strings.Split(page, "\n") {
		// The header line opens the transaction section; it is not itself a
		// transaction. The section runs to the end of the page.
		if strings.Contains(line, headerPostDate) && strings.Contains(line, headerInvDate) {
			inSection = true
			continue
		}
		if !inSection {
			continue
		}
		if isBoilerplate(line) {
			continue
		}

		txn, ok, err := p.parseLine(line)
		if err != nil {
			return nil, err
		}
		if ok {
			rows = append(rows, txn)
		}
	}
	return rows, nil
}

// parseLine attempts to read one candidate line as a transaction. Lines that
// fail either anchor are skipped without error: intermixed non-transaction
// text is expected inside the section. Anchored tokens that then fail strict
// parsing are hard errors.
func (p *Parser) parseLine(line string) (model.Transaction, bool, error) {
	dateMatch := datePairPattern.FindStringSubmatchIndex(line)
	if dateMatch == nil {
		return model.Transaction{}, false, nil
	}

	amountMatch := amountPattern.FindStringSubmatchIndex(line)
	if amountMatch == nil {
		return model.Transaction{}, false, nil
	}
	if amountMatch[0] < dateMatch[1] {
		// Amount anchor overlaps the date pair; no room for a row.
		return model.Transaction{}, false, nil
	}

	postDate, err := parseDate(line[dateMatch[2]:dateMatch[3]])
	if err != nil {
		return model.Transaction{}, false, err
	}
	invDate, err := parseDate(line[dateMatch[4]:dateMatch[5]])
	if err != nil {
		return model.Transaction{}, false, err
	}

	amountToken := line[amountMatch[2]:amountMatch[3]]
	amount, err := decimal.NewFromString(strings.ReplaceAll(amountToken, ",", ""))
	if err != nil {
		return model.Transaction{}, false, fmt.Errorf("invalid amount %q: %w", amountToken, err)
	}

	description := strings.TrimSpace(line[dateMatch[1]:amountMatch[0]])

	return model.Transaction{
		ID:          uuid.NewString(),
		PostDate:    postDate,
		InvDate:     invDate,
		Description: description,
		Amount:      amount,
		IsCredit:    strings.HasSuffix(strings.TrimSpace(line), creditMarker),
		Category:    model.CategoryOther,
	}, true, nil
}

// parseDate reads a date token, preferring day-month-year. The month-day-year
// fallback is only attempted if the primary parse fails; for ambiguous dates
// where both readings are valid, day-month-year silently wins. That ordering
// is the supported locale's convention and must not be reversed.
func parseDate(token string) (time.Time, error) {
	t, err := time.Parse("02/01/2006", token)
	if err == nil {
		return t, nil
	}
	t, err = time.Parse("01/02/2006", token)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", token, err)
	}
	return t, nil
}

// pageEligible reports whether the page carries all four expected column
// headers.
func pageEligible(page string) bool {
	return strings.Contains(page, headerPostDate) &&
		strings.Contains(page, headerInvDate) &&
		strings.Contains(page, headerRef) &&
		strings.Contains(page, headerAmount)
}

// isBoilerplate reports statement furniture that appears inside the
// transaction section.
func isBoilerplate(line string) bool {
	return strings.TrimSpace(line) == "" ||
		strings.Contains(line, "Page") ||
		strings.Contains(line, "Credit Card Statement")
}
