// Package rules assigns categories to transactions using user-defined rules.
// Rules are tried in the order the caller supplies them and the first match
// wins. Every comparison is accent and case insensitive.
package rules

import (
	"fjacquet/fintrack/internal/logging"
	"fjacquet/fintrack/internal/models"
	"fjacquet/fintrack/internal/textutils"
)

// Matches reports whether rule applies to tx.
func Matches(rule models.CategoryRule, tx models.Transaction) bool {
	if rule.Institution != "" && tx.Institution != "" &&
		!textutils.ContainsInsensitive(tx.Institution, rule.Institution) {
		return false
	}
	if rule.Type != "" && rule.Type != tx.Type {
		return false
	}

	switch rule.MatchType {
	case models.MatchTypeExact:
		return textutils.EqualsInsensitive(tx.Description, rule.Term)
	case models.MatchTypeContains:
		return textutils.ContainsInsensitive(tx.Description, rule.Term)
	default:
		return false
	}
}

// SelectRule returns the first rule in rules that matches tx.
func SelectRule(rules []models.CategoryRule, tx models.Transaction) (models.CategoryRule, bool) {
	for _, rule := range rules {
		if Matches(rule, tx) {
			return rule, true
		}
	}
	return models.CategoryRule{}, false
}

// Apply categorizes tx. Without a match the category is left untouched and the
// transaction is pending review. With a match it takes the rule category and
// is pending unless the rule auto-confirms.
func Apply(rules []models.CategoryRule, tx models.Transaction) models.Transaction {
	rule, ok := SelectRule(rules, tx)
	if !ok {
		tx.IsPending = true
		return tx
	}
	tx.Category = rule.Category
	tx.IsPending = !rule.AutoConfirm
	return tx
}

// RuleFromConfirmation builds the rule created when a user confirms a
// category and asks for it to be remembered.
func RuleFromConfirmation(tx models.Transaction, category string) models.CategoryRule {
	return models.CategoryRule{
		Term:        tx.Description,
		MatchType:   models.MatchTypeExact,
		Category:    category,
		AutoConfirm: true,
		Type:        tx.Type,
	}
}

// Engine applies a fixed rule snapshot and logs each decision.
type Engine struct {
	rules  []models.CategoryRule
	logger logging.Logger
}

// NewEngine creates an engine over a copy of rules.
func NewEngine(rules []models.CategoryRule, logger logging.Logger) *Engine {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	snapshot := make([]models.CategoryRule, len(rules))
	copy(snapshot, rules)
	return &Engine{rules: snapshot, logger: logger}
}

// Rules returns the snapshot in evaluation order.
func (e *Engine) Rules() []models.CategoryRule {
	out := make([]models.CategoryRule, len(e.rules))
	copy(out, e.rules)
	return out
}

// Categorize applies the snapshot to one transaction.
func (e *Engine) Categorize(tx models.Transaction) models.Transaction {
	rule, ok := SelectRule(e.rules, tx)
	if !ok {
		e.logger.Debug("No rule matched, transaction left pending",
			logging.F(logging.FieldDescription, tx.Description))
		return Apply(nil, tx)
	}

	e.logger.Debug("Transaction categorized by rule",
		logging.F(logging.FieldRuleID, rule.ID),
		logging.F(logging.FieldDescription, tx.Description),
		logging.F(logging.FieldCategory, rule.Category),
		logging.F(logging.FieldPending, !rule.AutoConfirm))
	return Apply([]models.CategoryRule{rule}, tx)
}

// CategorizeAll applies the snapshot to every transaction, keeping order.
func (e *Engine) CategorizeAll(txs []models.Transaction) []models.Transaction {
	out := make([]models.Transaction, len(txs))
	for i, tx := range txs {
		out[i] = e.Categorize(tx)
	}
	return out
}
