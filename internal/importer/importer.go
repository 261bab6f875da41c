// Package importer runs the statement import pipeline: pick a parser from the
// file name, parse, categorize with the current rules and persist the batch.
package importer

import (
	"context"
	"fmt"
	"io"
	"strings"

	"fjacquet/fintrack/internal/batch"
	"fjacquet/fintrack/internal/logging"
	"fjacquet/fintrack/internal/models"
	"fjacquet/fintrack/internal/parser"
	"fjacquet/fintrack/internal/parsererror"
	"fjacquet/fintrack/internal/rules"
)

// TransactionStore persists transactions. BulkCreate stores every
// transaction or none of them.
type TransactionStore interface {
	Create(ctx context.Context, tx models.Transaction) (models.Transaction, error)
	BulkCreate(ctx context.Context, txs []models.Transaction) ([]models.Transaction, error)
}

// TransactionConfirmer is implemented by stores supporting pending review.
type TransactionConfirmer interface {
	Get(ctx context.Context, id string) (models.Transaction, error)
	Confirm(ctx context.Context, id, category string) (models.Transaction, error)
}

// RuleSource returns the category rules in evaluation order.
type RuleSource interface {
	GetAll(ctx context.Context) ([]models.CategoryRule, error)
	Create(ctx context.Context, rule models.CategoryRule) (models.CategoryRule, error)
	Delete(ctx context.Context, id string) error
}

// CategoryVocabulary is the list of category names offered to users.
type CategoryVocabulary interface {
	GetAll(ctx context.Context) ([]string, error)
	Create(ctx context.Context, name string) error
}

// ParserSelector picks a parser from a file name.
type ParserSelector interface {
	ForFile(fileName string) (parser.Parser, error)
}

// ImportRequest describes one uploaded statement.
type ImportRequest struct {
	FileName    string
	Content     io.Reader
	Institution models.Institution
	AccountType models.AccountType
	// DryRun parses and categorizes without storing anything.
	DryRun bool
}

// ImportResult summarizes an import.
type ImportResult struct {
	FileName      string               `json:"file_name"`
	Parser        string               `json:"parser"`
	Transactions  []models.Transaction `json:"transactions"`
	Total         int                  `json:"total"`
	Pending       int                  `json:"pending"`
	AutoConfirmed int                  `json:"auto_confirmed"`
	Skipped       int                  `json:"skipped"`
	Duplicates    int                  `json:"possible_duplicates"`
	DryRun        bool                 `json:"dry_run"`
}

// Importer wires parsers, rules and storage together.
type Importer struct {
	parsers      ParserSelector
	transactions TransactionStore
	rules        RuleSource
	categories   CategoryVocabulary
	logger       logging.Logger
}

// New creates an Importer. categories may be nil when confirmations never
// create rules.
func New(parsers ParserSelector, transactions TransactionStore, ruleSource RuleSource, categories CategoryVocabulary, logger logging.Logger) *Importer {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Importer{
		parsers:      parsers,
		transactions: transactions,
		rules:        ruleSource,
		categories:   categories,
		logger:       logger,
	}
}

// Import parses req, categorizes every candidate with one snapshot of the
// rules and stores the batch in a single call. Nothing is stored when any
// step fails.
func (im *Importer) Import(ctx context.Context, req ImportRequest) (ImportResult, error) {
	log := im.logger.WithFields(
		logging.F(logging.FieldFile, req.FileName),
		logging.F(logging.FieldInstitution, string(req.Institution)),
		logging.F(logging.FieldAccountType, string(req.AccountType)),
	)

	p, err := im.parsers.ForFile(req.FileName)
	if err != nil {
		log.WithError(err).Warn("Unsupported statement format")
		return ImportResult{}, err
	}

	result := ImportResult{FileName: req.FileName, Parser: parserName(p), DryRun: req.DryRun}
	opts := parser.Options{Institution: req.Institution, AccountType: req.AccountType}

	candidates, skipped, err := parse(p, req.Content, opts)
	if err != nil {
		log.WithError(err).Error("Failed to parse statement")
		return ImportResult{}, fmt.Errorf("failed to parse %s: %w", req.FileName, err)
	}
	result.Skipped = skipped

	if len(candidates) == 0 {
		err := &parsererror.EmptyResultError{FileName: req.FileName, Parser: result.Parser, Skipped: skipped}
		log.Warn("No transactions found in statement", logging.F(logging.FieldSkipped, skipped))
		return ImportResult{}, err
	}

	categorized, err := im.Categorize(ctx, candidates)
	if err != nil {
		return ImportResult{}, err
	}
	result.Duplicates = batch.LogDuplicates(log, categorized, req.FileName)

	if !req.DryRun {
		categorized, err = im.transactions.BulkCreate(ctx, categorized)
		if err != nil {
			log.WithError(err).Error("Failed to store imported transactions")
			return ImportResult{}, fmt.Errorf("failed to store transactions: %w", err)
		}
	}

	result.Transactions = categorized
	result.Total = len(categorized)
	for _, tx := range categorized {
		if tx.IsPending {
			result.Pending++
		} else {
			result.AutoConfirmed++
		}
	}

	log.Info("Statement imported",
		logging.F(logging.FieldCount, result.Total),
		logging.F(logging.FieldPending, result.Pending),
		logging.F(logging.FieldAutoConfirmed, result.AutoConfirmed),
		logging.F(logging.FieldSkipped, result.Skipped))
	return result, nil
}

// Categorize applies one snapshot of the current rules to txs, keeping order.
// Nothing is stored.
func (im *Importer) Categorize(ctx context.Context, txs []models.Transaction) ([]models.Transaction, error) {
	snapshot, err := im.rules.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load rules: %w", err)
	}
	return rules.NewEngine(snapshot, im.logger).CategorizeAll(txs), nil
}

// AddTransaction stores a manually entered transaction after running it
// through the rules.
func (im *Importer) AddTransaction(ctx context.Context, tx models.Transaction) (models.Transaction, error) {
	tx.Source = models.SourceManual
	if err := tx.Validate(); err != nil {
		return models.Transaction{}, err
	}

	categorized, err := im.Categorize(ctx, []models.Transaction{tx})
	if err != nil {
		return models.Transaction{}, err
	}

	created, err := im.transactions.Create(ctx, categorized[0])
	if err != nil {
		return models.Transaction{}, fmt.Errorf("failed to store transaction: %w", err)
	}

	im.logger.Info("Transaction added",
		logging.F(logging.FieldTransactionID, created.ID),
		logging.F(logging.FieldCategory, created.Category),
		logging.F(logging.FieldPending, created.IsPending))
	return created, nil
}

// ConfirmTransaction sets the category of a pending transaction. With
// createRule, a rule matching the exact description is appended and the
// category joins the vocabulary, so later imports confirm it automatically.
// The rule is created before the confirmation is stored and deleted again when
// a later step fails, so an error leaves the transaction pending and no rule
// behind.
func (im *Importer) ConfirmTransaction(ctx context.Context, id, category string, createRule bool) (models.Transaction, error) {
	confirmer, ok := im.transactions.(TransactionConfirmer)
	if !ok {
		return models.Transaction{}, fmt.Errorf("transaction store does not support confirmation")
	}

	category = strings.TrimSpace(category)
	if category == "" {
		return models.Transaction{}, &parsererror.ValidationError{Entity: "transaction", Reason: "category is required"}
	}

	if !createRule {
		return confirmer.Confirm(ctx, id, category)
	}

	tx, err := confirmer.Get(ctx, id)
	if err != nil {
		return models.Transaction{}, err
	}

	rule, err := im.rules.Create(ctx, rules.RuleFromConfirmation(tx, category))
	if err != nil {
		return models.Transaction{}, fmt.Errorf("failed to create rule: %w", err)
	}
	if im.categories != nil {
		if err := im.categories.Create(ctx, category); err != nil {
			im.discardRule(ctx, rule)
			return models.Transaction{}, fmt.Errorf("failed to add category: %w", err)
		}
	}

	confirmed, err := confirmer.Confirm(ctx, id, category)
	if err != nil {
		im.discardRule(ctx, rule)
		return models.Transaction{}, err
	}

	im.logger.Info("Rule created from confirmation",
		logging.F(logging.FieldTransactionID, confirmed.ID),
		logging.F(logging.FieldRuleID, rule.ID),
		logging.F(logging.FieldCategory, rule.Category))
	return confirmed, nil
}

// discardRule deletes a rule created by a confirmation that did not complete.
// The category stays in the vocabulary.
func (im *Importer) discardRule(ctx context.Context, rule models.CategoryRule) {
	if err := im.rules.Delete(ctx, rule.ID); err != nil {
		im.logger.WithError(err).Warn("Failed to delete rule of an incomplete confirmation",
			logging.F(logging.FieldRuleID, rule.ID))
	}
}

func parse(p parser.Parser, content io.Reader, opts parser.Options) ([]models.Transaction, int, error) {
	if rp, ok := p.(parser.RowParser); ok {
		results, err := rp.ParseRows(content, opts)
		if err != nil {
			return nil, 0, err
		}
		skipped := 0
		for _, n := range parser.SkipCounts(results) {
			skipped += n
		}
		return parser.Transactions(results), skipped, nil
	}

	txs, err := p.Parse(content, opts)
	return txs, 0, err
}

func parserName(p parser.Parser) string {
	if named, ok := p.(parser.Named); ok {
		return named.Name()
	}
	return fmt.Sprintf("%T", p)
}
