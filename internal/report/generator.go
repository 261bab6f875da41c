package report

import (
	"encoding/json"
	"fmt"

	"fjacquet/fintrack/internal/logging"

	"github.com/gocarina/gocsv"
)

// Supported output formats
const (
	FormatJSON = "json"
	FormatCSV  = "csv"
)

// csvRow is one group line of the CSV rendering.
type csvRow struct {
	Group   string `csv:"group"`
	Key     string `csv:"key"`
	Count   int    `csv:"count"`
	Income  string `csv:"income"`
	Expense string `csv:"expense"`
	Net     string `csv:"net"`
}

// Generator renders summaries.
type Generator struct {
	logger logging.Logger
}

// NewGenerator creates a Generator. A nil logger falls back to the default.
func NewGenerator(logger logging.Logger) *Generator {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Generator{logger: logger}
}

// Generate renders s as json or csv.
func (g *Generator) Generate(s Summary, format string) ([]byte, error) {
	switch format {
	case FormatJSON:
		return g.generateJSON(s)
	case FormatCSV:
		return g.generateCSV(s)
	default:
		return nil, fmt.Errorf("unsupported report format: %s", format)
	}
}

func (g *Generator) generateJSON(s Summary) ([]byte, error) {
	out, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		g.logger.WithError(err).Error("Failed to marshal JSON report")
		return nil, fmt.Errorf("failed to marshal JSON report: %w", err)
	}
	return out, nil
}

// generateCSV writes one row per category then one per institution, plus a
// total row.
func (g *Generator) generateCSV(s Summary) ([]byte, error) {
	rows := make([]csvRow, 0, len(s.ByCategory)+len(s.ByInstitution)+1)
	rows = append(rows, csvRow{
		Group:   "total",
		Key:     s.Month,
		Count:   s.Count,
		Income:  s.Income.StringFixed(2),
		Expense: s.Expense.StringFixed(2),
		Net:     s.Net.StringFixed(2),
	})
	rows = appendLines(rows, "category", s.ByCategory)
	rows = appendLines(rows, "institution", s.ByInstitution)

	out, err := gocsv.MarshalBytes(&rows)
	if err != nil {
		g.logger.WithError(err).Error("Failed to marshal CSV report")
		return nil, fmt.Errorf("failed to marshal CSV report: %w", err)
	}
	return out, nil
}

func appendLines(rows []csvRow, group string, lines []Line) []csvRow {
	for _, line := range lines {
		rows = append(rows, csvRow{
			Group:   group,
			Key:     line.Key,
			Count:   line.Count,
			Income:  line.Income.StringFixed(2),
			Expense: line.Expense.StringFixed(2),
			Net:     line.Net.StringFixed(2),
		})
	}
	return rows
}
