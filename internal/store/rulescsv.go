package store

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"fjacquet/fintrack/internal/logging"
	"fjacquet/fintrack/internal/models"
	"fjacquet/fintrack/internal/parsererror"

	"github.com/gocarina/gocsv"
)

// ExportRules writes every rule, in evaluation order, as CSV with a header row.
func (r *RuleRepository) ExportRules(ctx context.Context, w io.Writer) error {
	rules, err := r.GetAll(ctx)
	if err != nil {
		return err
	}

	csvWriter := csv.NewWriter(w)
	if err := gocsv.MarshalCSV(rules, gocsv.NewSafeCSVWriter(csvWriter)); err != nil {
		return fmt.Errorf("error writing rules CSV: %w", err)
	}

	r.store.logger.Info("Exported rules", logging.F(logging.FieldCount, len(rules)))
	return nil
}

// ImportRules reads rules from CSV and appends them after the existing ones.
// IDs in the file are ignored. The import is all or nothing, and every rule
// category is added to the vocabulary.
func (r *RuleRepository) ImportRules(ctx context.Context, in io.Reader) ([]models.CategoryRule, error) {
	var rows []models.CategoryRule
	if err := gocsv.Unmarshal(in, &rows); err != nil {
		return nil, &parsererror.ValidationError{Entity: "rules CSV", Reason: err.Error()}
	}

	for i := range rows {
		rows[i].ID = ""
		rows[i].MatchType = models.MatchType(strings.ToLower(strings.TrimSpace(string(rows[i].MatchType))))
		if rows[i].MatchType == "" {
			rows[i].MatchType = models.MatchTypeContains
		}
		if t := strings.TrimSpace(string(rows[i].Type)); t != "" {
			parsed, err := models.ParseTransactionType(t)
			if err != nil {
				return nil, &parsererror.ValidationError{Entity: "rules CSV", Reason: fmt.Sprintf("rule %d: %v", i+1, err)}
			}
			rows[i].Type = parsed
		}
	}

	created, err := r.CreateMany(ctx, rows)
	if err != nil {
		return nil, err
	}

	for _, rule := range created {
		if err := r.store.categories.Create(ctx, rule.Category); err != nil {
			return nil, err
		}
	}

	r.store.logger.Info("Imported rules", logging.F(logging.FieldCount, len(created)))
	return created, nil
}
