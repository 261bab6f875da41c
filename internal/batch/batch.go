// Package batch finds statement files in a directory and flags likely
// duplicate transactions inside a batch.
package batch

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"fjacquet/fintrack/internal/logging"
	"fjacquet/fintrack/internal/models"
	"fjacquet/fintrack/internal/textutils"
)

// CollectFiles returns the regular files of dir whose extension is one of
// extensions, sorted by name. Subdirectories are not visited.
func CollectFiles(dir string, extensions []string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	allowed := make(map[string]bool, len(extensions))
	for _, ext := range extensions {
		allowed[strings.ToLower(ext)] = true
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if allowed[strings.ToLower(filepath.Ext(entry.Name()))] {
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}

// Duplicate pairs the indexes of two transactions that look the same.
type Duplicate struct {
	First  int
	Second int
}

// FindDuplicates reports transactions sharing date, amount, type and
// description. Each transaction is reported at most once, paired with the
// first earlier transaction it repeats.
func FindDuplicates(txs []models.Transaction) []Duplicate {
	var dups []Duplicate
	for j := 1; j < len(txs); j++ {
		for i := 0; i < j; i++ {
			if potentialDuplicates(txs[i], txs[j]) {
				dups = append(dups, Duplicate{First: i, Second: j})
				break
			}
		}
	}
	return dups
}

// LogDuplicates warns about every duplicate in txs and returns how many
// were found. Duplicates are kept: two identical purchases on the same day
// are legitimate.
func LogDuplicates(logger logging.Logger, txs []models.Transaction, source string) int {
	dups := FindDuplicates(txs)
	for _, d := range dups {
		tx := txs[d.Second]
		logger.Warn("Potential duplicate transaction",
			logging.F(logging.FieldFile, source),
			logging.F("date", tx.Date),
			logging.F("amount", tx.Amount.String()),
			logging.F(logging.FieldDescription, tx.Description))
	}
	if len(dups) > 0 {
		logger.Warn("Found potential duplicate transactions",
			logging.F(logging.FieldCount, len(dups)),
			logging.F(logging.FieldFile, source))
	}
	return len(dups)
}

func potentialDuplicates(a, b models.Transaction) bool {
	return a.Date == b.Date &&
		a.Type == b.Type &&
		a.Amount.Equal(b.Amount) &&
		textutils.EqualsInsensitive(textutils.CollapseSpaces(a.Description), textutils.CollapseSpaces(b.Description))
}
