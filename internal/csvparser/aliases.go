package csvparser

import "strings"

// Logical columns resolved from a statement header. Each one lists the raw
// column names that may carry it, highest priority first. Names are compared
// after lower-casing and trimming.
var (
	dateColumns        = []string{"data lançamento", "release_date", "date", "data", "dt", "posted"}
	descriptionColumns = []string{"descrição", "descricao", "description", "memo", "title", "transaction_type"}
	amountColumns      = []string{"valor", "amount", "transaction_net_amount"}
	historyColumns     = []string{"histórico", "historico"}
	referenceColumns   = []string{"reference_id", "identificador", "id"}
)

// headerTokens mark the header row when found anywhere in a lower-cased line.
var headerTokens = []string{
	"date",
	"data",
	"dt",
	"release_date",
	"posted",
	"title",
	"description",
	"data lançamento",
}

// columnIndex maps normalized column names to their position. The first
// occurrence of a duplicated name wins.
type columnIndex map[string]int

func newColumnIndex(header []string) columnIndex {
	idx := make(columnIndex, len(header))
	for i, name := range header {
		key := normalizeColumn(name)
		if key == "" {
			continue
		}
		if _, seen := idx[key]; !seen {
			idx[key] = i
		}
	}
	return idx
}

func normalizeColumn(name string) string {
	return strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
}

// lookup returns the first non-blank value among the aliases, trimmed.
func (c columnIndex) lookup(record []string, aliases []string) string {
	for _, alias := range aliases {
		i, ok := c[alias]
		if !ok || i >= len(record) {
			continue
		}
		if v := strings.TrimSpace(record[i]); v != "" {
			return v
		}
	}
	return ""
}
