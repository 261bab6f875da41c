// Package parser defines the contract shared by the statement parsers and the
// per-row outcome type used to make row dropping explicit.
package parser

import (
	"io"

	"fjacquet/fintrack/internal/models"
)

// Options carries the context the user picks when importing a statement.
type Options struct {
	Institution models.Institution
	AccountType models.AccountType
}

// Parser turns raw statement content into candidate transactions.
//
// Implementations read r to the end before parsing. The returned slice keeps
// the order of the records in the file and contains no transaction with an
// empty description or a zero amount. A file without usable rows is not an
// error at this level: the importer decides how to report it.
type Parser interface {
	Parse(r io.Reader, opts Options) ([]models.Transaction, error)
}

// RowParser is implemented by parsers able to report every row outcome,
// including the skipped ones.
type RowParser interface {
	Parser
	ParseRows(r io.Reader, opts Options) ([]RowResult, error)
}

// Named is implemented by parsers that report a short identifier for logs.
type Named interface {
	Name() string
}
