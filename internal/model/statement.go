package model

import "time"

// Statement is one uploaded document and the transactions extracted from it.
// Transactions keep their source order; Month and Year are advisory labels
// derived from the filename, not from the statement contents.
type Statement struct {
	UploadedAt   time.Time
	ID           string
	Filename     string
	Month        int
	Year         int
	Transactions []Transaction
}
