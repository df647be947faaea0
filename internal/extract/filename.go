package extract

import (
	"regexp"
	"strconv"
	"time"
)

// Statements are conventionally named "Month YYYY.pdf".
var filenamePattern = regexp.MustCompile(`^(\w+)\s+(\d{4})\.\w+$`)

var monthNames = map[string]time.Month{
	"January": time.January, "February": time.February, "March": time.March,
	"April": time.April, "May": time.May, "June": time.June,
	"July": time.July, "August": time.August, "September": time.September,
	"October": time.October, "November": time.November, "December": time.December,
}

// DeriveMonthYear reads the advisory month/year label from a statement
// filename. The label is not authoritative: a filename that doesn't follow
// the convention falls back to the current date, and an unrecognized month
// word defaults to January, matching the year that was present.
func DeriveMonthYear(filename string, now time.Time) (time.Month, int) {
	m := filenamePattern.FindStringSubmatch(filename)
	if m == nil {
		return now.Month(), now.Year()
	}

	month, ok := monthNames[m[1]]
	if !ok {
		month = time.January
	}

	year, _ := strconv.Atoi(m[2])
	return month, year
}
