// Package api exposes the import pipeline and the stored data over HTTP.
package api

import (
	"context"
	"io"

	"fjacquet/fintrack/internal/importer"
	"fjacquet/fintrack/internal/logging"
	"fjacquet/fintrack/internal/models"
	"fjacquet/fintrack/internal/store"
)

// ImportService runs statement imports and the transaction workflows that
// go through the rule engine.
type ImportService interface {
	Import(ctx context.Context, req importer.ImportRequest) (importer.ImportResult, error)
	AddTransaction(ctx context.Context, tx models.Transaction) (models.Transaction, error)
	ConfirmTransaction(ctx context.Context, id, category string, createRule bool) (models.Transaction, error)
}

// TransactionLister reads stored transactions.
type TransactionLister interface {
	List(ctx context.Context, filter store.ListFilter) ([]models.Transaction, error)
	Summary(ctx context.Context) (models.Summary, error)
}

// TransactionService edits and removes stored transactions.
type TransactionService interface {
	TransactionLister
	Update(ctx context.Context, id string, patch models.TransactionPatch) (models.Transaction, error)
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) (int, error)
}

// RuleService manages the ordered category rules.
type RuleService interface {
	GetAll(ctx context.Context) ([]models.CategoryRule, error)
	Create(ctx context.Context, rule models.CategoryRule) (models.CategoryRule, error)
	Delete(ctx context.Context, id string) error
	ExportRules(ctx context.Context, w io.Writer) error
	ImportRules(ctx context.Context, in io.Reader) ([]models.CategoryRule, error)
}

// CategoryService manages the category vocabulary.
type CategoryService interface {
	GetAll(ctx context.Context) ([]string, error)
	Create(ctx context.Context, name string) error
}

// Deps carries everything the handlers need.
type Deps struct {
	Logger          logging.Logger
	ResponseHandler ResponseHandler
	Importer        ImportService
	Transactions    TransactionService
	Rules           RuleService
	Categories      CategoryService

	// Applied when an upload names no institution or account type.
	DefaultInstitution models.Institution
	DefaultAccountType models.AccountType
}
