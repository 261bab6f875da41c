package parser

import (
	"fjacquet/fintrack/internal/models"
)

// SkipReason explains why a row produced no transaction.
type SkipReason string

// Skip reasons
const (
	SkipMissingDate        SkipReason = "missing_date"
	SkipMissingAmount      SkipReason = "missing_amount"
	SkipMissingDescription SkipReason = "missing_description"
	SkipInvalidAmount      SkipReason = "invalid_amount"
	SkipZeroAmount         SkipReason = "zero_amount"
	SkipMalformedRecord    SkipReason = "malformed_record"
)

// RowResult is the outcome of one input row: either a transaction or a skip
// reason. Line is the 1-based line (CSV) or record index (markup) of the row.
type RowResult struct {
	Line        int
	Transaction models.Transaction
	Skipped     bool
	Reason      SkipReason
	Raw         string
}

// Ok builds a successful row outcome.
func Ok(line int, tx models.Transaction) RowResult {
	return RowResult{Line: line, Transaction: tx}
}

// Skip builds a dropped row outcome.
func Skip(line int, reason SkipReason, raw string) RowResult {
	return RowResult{Line: line, Skipped: true, Reason: reason, Raw: raw}
}

// Transactions returns the transactions of the successful rows in order.
func Transactions(results []RowResult) []models.Transaction {
	out := make([]models.Transaction, 0, len(results))
	for _, r := range results {
		if !r.Skipped {
			out = append(out, r.Transaction)
		}
	}
	return out
}

// SkipCounts tallies the skipped rows by reason.
func SkipCounts(results []RowResult) map[SkipReason]int {
	counts := make(map[SkipReason]int)
	for _, r := range results {
		if r.Skipped {
			counts[r.Reason]++
		}
	}
	return counts
}
