// Package models defines the transaction and rule types shared by the parsers,
// the rule engine, the importer and the store.
package models

import (
	"time"

	"fjacquet/fintrack/internal/parsererror"

	"github.com/shopspring/decimal"
)

// Transaction is a single income or expense. Before it is persisted ID is
// empty and the value is a candidate produced by a parser or by manual entry.
type Transaction struct {
	ID          string          `json:"id,omitempty"`
	Date        string          `json:"date"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Type        TransactionType `json:"type"`
	Category    string          `json:"category"`
	Source      Source          `json:"source"`
	Institution string          `json:"institution,omitempty"`
	IsPending   bool            `json:"is_pending"`
	Notes       string          `json:"notes,omitempty"`
	CreatedAt   time.Time       `json:"created_at,omitempty"`
}

// SignedAmount returns the amount with expenses negated.
func (t Transaction) SignedAmount() decimal.Decimal {
	if t.Type == TransactionTypeExpense {
		return t.Amount.Neg()
	}
	return t.Amount
}

// IsCategorized reports whether a category has been assigned.
func (t Transaction) IsCategorized() bool {
	return t.Category != ""
}

// Validate checks the invariants every stored transaction satisfies.
func (t Transaction) Validate() error {
	if _, err := time.Parse(ISODateLayout, t.Date); err != nil {
		return &parsererror.ValidationError{Entity: "transaction", Reason: "date must be YYYY-MM-DD, got '" + t.Date + "'"}
	}
	if t.Description == "" {
		return &parsererror.ValidationError{Entity: "transaction", Reason: "description is required"}
	}
	if !t.Amount.IsPositive() {
		return &parsererror.ValidationError{Entity: "transaction", Reason: "amount must be greater than zero, got " + t.Amount.String()}
	}
	if !t.Type.Valid() {
		return &parsererror.ValidationError{Entity: "transaction", Reason: "unknown type '" + string(t.Type) + "'"}
	}
	return nil
}

// Summary counts pending and confirmed transactions.
type Summary struct {
	Total     int `json:"total"`
	Pending   int `json:"pending"`
	Confirmed int `json:"confirmed"`
}

// Summarize counts the pending and confirmed transactions of txs.
func Summarize(txs []Transaction) Summary {
	s := Summary{Total: len(txs)}
	for _, tx := range txs {
		if tx.IsPending {
			s.Pending++
		} else {
			s.Confirmed++
		}
	}
	return s
}

// TransactionPatch is a partial edit of a stored transaction. Nil fields are
// left unchanged.
type TransactionPatch struct {
	Date        *string
	Description *string
	Amount      *decimal.Decimal
	Type        *TransactionType
	Category    *string
	Institution *string
	Notes       *string
	IsPending   *bool
}

// IsEmpty reports whether the patch changes nothing.
func (p TransactionPatch) IsEmpty() bool {
	return p.Date == nil && p.Description == nil && p.Amount == nil && p.Type == nil &&
		p.Category == nil && p.Institution == nil && p.Notes == nil && p.IsPending == nil
}

// Apply returns tx with the patched fields replaced. Identity, source and
// creation time never change.
func (p TransactionPatch) Apply(tx Transaction) Transaction {
	if p.Date != nil {
		tx.Date = *p.Date
	}
	if p.Description != nil {
		tx.Description = *p.Description
	}
	if p.Amount != nil {
		tx.Amount = *p.Amount
	}
	if p.Type != nil {
		tx.Type = *p.Type
	}
	if p.Category != nil {
		tx.Category = *p.Category
	}
	if p.Institution != nil {
		tx.Institution = *p.Institution
	}
	if p.Notes != nil {
		tx.Notes = *p.Notes
	}
	if p.IsPending != nil {
		tx.IsPending = *p.IsPending
	}
	return tx
}
