package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionBuilder provides a fluent API for constructing transactions
type TransactionBuilder struct {
	tx  Transaction
	err error
}

// NewTransactionBuilder creates a new TransactionBuilder with default values
func NewTransactionBuilder() *TransactionBuilder {
	return &TransactionBuilder{
		tx: Transaction{
			Type:   TransactionTypeExpense,
			Source: SourceManual,
			Amount: decimal.Zero,
		},
	}
}

// WithDate sets the transaction date from an ISO YYYY-MM-DD string
func (b *TransactionBuilder) WithDate(date string) *TransactionBuilder {
	if b.err != nil {
		return b
	}
	if _, err := time.Parse(ISODateLayout, date); err != nil {
		b.err = fmt.Errorf("date must be YYYY-MM-DD: %w", err)
		return b
	}
	b.tx.Date = date
	return b
}

// WithDateFromTime sets the transaction date from a time.Time
func (b *TransactionBuilder) WithDateFromTime(date time.Time) *TransactionBuilder {
	if b.err != nil {
		return b
	}
	if date.IsZero() {
		b.err = errors.New("date cannot be zero")
		return b
	}
	b.tx.Date = date.Format(ISODateLayout)
	return b
}

// WithDescription sets the description
func (b *TransactionBuilder) WithDescription(description string) *TransactionBuilder {
	if b.err != nil {
		return b
	}
	b.tx.Description = strings.TrimSpace(description)
	return b
}

// WithSignedAmount stores the absolute value of amount and derives the type
// from its sign: negative is an expense, anything else is income.
func (b *TransactionBuilder) WithSignedAmount(amount decimal.Decimal) *TransactionBuilder {
	if b.err != nil {
		return b
	}
	if amount.IsNegative() {
		b.tx.Type = TransactionTypeExpense
	} else {
		b.tx.Type = TransactionTypeIncome
	}
	b.tx.Amount = amount.Abs()
	return b
}

// WithAmount stores the absolute value of amount without touching the type
func (b *TransactionBuilder) WithAmount(amount decimal.Decimal) *TransactionBuilder {
	if b.err != nil {
		return b
	}
	b.tx.Amount = amount.Abs()
	return b
}

// WithAmountFromString parses amount as a decimal and stores its absolute value
func (b *TransactionBuilder) WithAmountFromString(amount string) *TransactionBuilder {
	if b.err != nil {
		return b
	}
	d, err := decimal.NewFromString(strings.TrimSpace(amount))
	if err != nil {
		b.err = fmt.Errorf("invalid amount %q: %w", amount, err)
		return b
	}
	b.tx.Amount = d.Abs()
	return b
}

// WithType sets the direction
func (b *TransactionBuilder) WithType(t TransactionType) *TransactionBuilder {
	if b.err != nil {
		return b
	}
	b.tx.Type = t
	return b
}

// AsIncome marks the transaction as income
func (b *TransactionBuilder) AsIncome() *TransactionBuilder {
	return b.WithType(TransactionTypeIncome)
}

// AsExpense marks the transaction as an expense
func (b *TransactionBuilder) AsExpense() *TransactionBuilder {
	return b.WithType(TransactionTypeExpense)
}

// WithCategory sets the category
func (b *TransactionBuilder) WithCategory(category string) *TransactionBuilder {
	if b.err != nil {
		return b
	}
	b.tx.Category = strings.TrimSpace(category)
	return b
}

// WithSource sets the source
func (b *TransactionBuilder) WithSource(source Source) *TransactionBuilder {
	if b.err != nil {
		return b
	}
	b.tx.Source = source
	return b
}

// WithInstitution sets the institution label
func (b *TransactionBuilder) WithInstitution(institution string) *TransactionBuilder {
	if b.err != nil {
		return b
	}
	b.tx.Institution = institution
	return b
}

// WithStatementInstitution sets the label derived from the institution and
// the account type of the statement
func (b *TransactionBuilder) WithStatementInstitution(institution Institution, accountType AccountType) *TransactionBuilder {
	return b.WithInstitution(InstitutionLabel(institution, accountType))
}

// WithOriginalAmount records the unparsed amount in the notes
func (b *TransactionBuilder) WithOriginalAmount(raw string) *TransactionBuilder {
	if b.err != nil {
		return b
	}
	b.tx.Notes = NotesOriginalAmountPrefix + raw
	return b
}

// WithNotes sets free text notes
func (b *TransactionBuilder) WithNotes(notes string) *TransactionBuilder {
	if b.err != nil {
		return b
	}
	b.tx.Notes = notes
	return b
}

// WithPending sets the pending flag
func (b *TransactionBuilder) WithPending(pending bool) *TransactionBuilder {
	if b.err != nil {
		return b
	}
	b.tx.IsPending = pending
	return b
}

// Build validates and returns the transaction
func (b *TransactionBuilder) Build() (Transaction, error) {
	if b.err != nil {
		return Transaction{}, fmt.Errorf("builder error: %w", b.err)
	}
	if err := b.tx.Validate(); err != nil {
		return Transaction{}, err
	}
	return b.tx, nil
}
