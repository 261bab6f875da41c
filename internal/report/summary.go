// Package report aggregates stored transactions into spending summaries.
package report

import (
	"sort"
	"strings"

	"fjacquet/fintrack/internal/models"
	"fjacquet/fintrack/internal/textutils"

	"github.com/shopspring/decimal"
)

// Keys used for transactions without a category or institution.
const (
	UncategorizedKey = "Sem categoria"
	NoInstitutionKey = "Sem instituição"
)

// Filter restricts the transactions of a summary.
type Filter struct {
	// Month keeps transactions whose date starts with YYYY-MM. Empty keeps all.
	Month string
	// ConfirmedOnly drops pending transactions.
	ConfirmedOnly bool
}

// Line totals one category or institution.
type Line struct {
	Key     string          `json:"key"`
	Count   int             `json:"count"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Net     decimal.Decimal `json:"net"`
}

// Summary totals a set of transactions, overall and per group.
type Summary struct {
	Month         string          `json:"month,omitempty"`
	Count         int             `json:"count"`
	Pending       int             `json:"pending"`
	Income        decimal.Decimal `json:"income"`
	Expense       decimal.Decimal `json:"expense"`
	Net           decimal.Decimal `json:"net"`
	ByCategory    []Line          `json:"by_category"`
	ByInstitution []Line          `json:"by_institution"`
}

// Build aggregates txs. Group lines are sorted by expense, largest first,
// then by key.
func Build(txs []models.Transaction, filter Filter) Summary {
	s := Summary{Month: filter.Month, ByCategory: []Line{}, ByInstitution: []Line{}}
	byCategory := map[string]*Line{}
	byInstitution := map[string]*Line{}

	for _, tx := range txs {
		if filter.Month != "" && !strings.HasPrefix(tx.Date, filter.Month) {
			continue
		}
		if filter.ConfirmedOnly && tx.IsPending {
			continue
		}

		s.Count++
		if tx.IsPending {
			s.Pending++
		}
		if tx.Type == models.TransactionTypeIncome {
			s.Income = s.Income.Add(tx.Amount)
		} else {
			s.Expense = s.Expense.Add(tx.Amount)
		}

		category := tx.Category
		if category == "" {
			category = UncategorizedKey
		}
		institution := tx.Institution
		if institution == "" {
			institution = NoInstitutionKey
		}
		accumulate(byCategory, category, tx)
		accumulate(byInstitution, institution, tx)
	}

	s.Net = s.Income.Sub(s.Expense)
	s.ByCategory = sortedLines(byCategory)
	s.ByInstitution = sortedLines(byInstitution)
	return s
}

func accumulate(groups map[string]*Line, key string, tx models.Transaction) {
	// Keys differing only in case or accents share a line under the first spelling.
	norm := textutils.Normalize(key)
	line, ok := groups[norm]
	if !ok {
		line = &Line{Key: key}
		groups[norm] = line
	}
	line.Count++
	if tx.Type == models.TransactionTypeIncome {
		line.Income = line.Income.Add(tx.Amount)
	} else {
		line.Expense = line.Expense.Add(tx.Amount)
	}
	line.Net = line.Income.Sub(line.Expense)
}

func sortedLines(groups map[string]*Line) []Line {
	lines := make([]Line, 0, len(groups))
	for _, line := range groups {
		lines = append(lines, *line)
	}
	sort.Slice(lines, func(i, j int) bool {
		if c := lines[i].Expense.Cmp(lines[j].Expense); c != 0 {
			return c > 0
		}
		return textutils.Normalize(lines[i].Key) < textutils.Normalize(lines[j].Key)
	})
	return lines
}
