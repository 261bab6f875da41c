package store

import (
	"context"
	"fmt"
	"strings"

	"fjacquet/fintrack/internal/logging"
	"fjacquet/fintrack/internal/models"

	"github.com/google/uuid"
)

const ruleColumns = `id, term, match_type, category, auto_confirm, institution, type, created_at`

// RuleRepository stores category rules. Rules are returned in creation
// order, which is the order the matching engine evaluates them in.
type RuleRepository struct {
	store *Store
}

// GetAll returns every rule in creation order.
func (r *RuleRepository) GetAll(ctx context.Context) ([]models.CategoryRule, error) {
	rows, err := r.store.db.QueryContext(ctx, `SELECT `+ruleColumns+` FROM category_rules ORDER BY position ASC`)
	if err != nil {
		return nil, fmt.Errorf("query rules: %w", err)
	}
	defer rows.Close()

	var out []models.CategoryRule
	for rows.Next() {
		var (
			rule        models.CategoryRule
			matchType   string
			autoConfirm int
			ruleType    string
			createdAt   string
		)
		if err := rows.Scan(&rule.ID, &rule.Term, &matchType, &rule.Category, &autoConfirm,
			&rule.Institution, &ruleType, &createdAt); err != nil {
			return nil, fmt.Errorf("scan rule: %w", err)
		}
		rule.MatchType = models.MatchType(matchType)
		rule.AutoConfirm = autoConfirm == 1
		rule.Type = models.TransactionType(ruleType)
		rule.CreatedAt = parseTime(createdAt)
		out = append(out, rule)
	}
	return out, rows.Err()
}

// Create validates rule and appends it after the existing rules.
func (r *RuleRepository) Create(ctx context.Context, rule models.CategoryRule) (models.CategoryRule, error) {
	created, err := r.CreateMany(ctx, []models.CategoryRule{rule})
	if err != nil {
		return models.CategoryRule{}, err
	}
	return created[0], nil
}

// CreateMany appends rules in order within one SQL transaction.
func (r *RuleRepository) CreateMany(ctx context.Context, input []models.CategoryRule) ([]models.CategoryRule, error) {
	rules := make([]models.CategoryRule, len(input))
	copy(rules, input)
	for i := range rules {
		rules[i].Term = strings.TrimSpace(rules[i].Term)
		rules[i].Category = strings.TrimSpace(rules[i].Category)
		if err := rules[i].Validate(); err != nil {
			return nil, err
		}
	}

	sqlTx, err := r.store.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}

	created := make([]models.CategoryRule, 0, len(rules))
	for _, rule := range rules {
		rule.ID = uuid.NewString()
		rule.CreatedAt = r.store.timestamp()
		_, err := sqlTx.ExecContext(ctx,
			`INSERT INTO category_rules (`+ruleColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			rule.ID, rule.Term, string(rule.MatchType), rule.Category, boolToInt(rule.AutoConfirm),
			rule.Institution, string(rule.Type), formatTime(rule.CreatedAt))
		if err != nil {
			_ = sqlTx.Rollback()
			return nil, fmt.Errorf("insert rule: %w", err)
		}
		created = append(created, rule)
	}

	if err := sqlTx.Commit(); err != nil {
		return nil, fmt.Errorf("commit rules: %w", err)
	}

	for _, rule := range created {
		r.store.logger.Debug("Rule created",
			logging.F(logging.FieldRuleID, rule.ID),
			logging.F(logging.FieldCategory, rule.Category))
	}
	return created, nil
}

// Delete removes the rule with the given ID.
func (r *RuleRepository) Delete(ctx context.Context, id string) error {
	res, err := r.store.db.ExecContext(ctx, `DELETE FROM category_rules WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete rule: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("rule %s: %w", id, ErrNotFound)
	}
	r.store.logger.Debug("Rule deleted", logging.F(logging.FieldRuleID, id))
	return nil
}
