package store

import (
	"context"
	_ "embed"
	"fmt"
	"sort"
	"strings"

	"fjacquet/fintrack/internal/logging"
	"fjacquet/fintrack/internal/textutils"

	"gopkg.in/yaml.v3"
)

//go:embed default_categories.yaml
var defaultCategoriesYAML []byte

// categoriesFile is the layout of default_categories.yaml.
type categoriesFile struct {
	Categories []string `yaml:"categories"`
}

// DefaultCategories returns the categories seeded into a new database.
func DefaultCategories() ([]string, error) {
	var file categoriesFile
	if err := yaml.Unmarshal(defaultCategoriesYAML, &file); err != nil {
		return nil, fmt.Errorf("error parsing default categories: %w", err)
	}
	return file.Categories, nil
}

// CategoryRepository stores the category vocabulary. Names are unique
// regardless of case.
type CategoryRepository struct {
	store *Store
}

// GetAll returns every category sorted alphabetically, ignoring case and
// accents.
func (r *CategoryRepository) GetAll(ctx context.Context) ([]string, error) {
	rows, err := r.store.db.QueryContext(ctx, `SELECT name FROM categories`)
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	sort.SliceStable(names, func(i, j int) bool {
		return textutils.Normalize(names[i]) < textutils.Normalize(names[j])
	})
	return names, nil
}

// Create adds name to the vocabulary. Adding an existing name is a no-op.
func (r *CategoryRepository) Create(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}
	if _, err := r.store.db.ExecContext(ctx, `INSERT OR IGNORE INTO categories (name) VALUES (?)`, name); err != nil {
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

// seed fills an empty vocabulary with the default categories.
func (r *CategoryRepository) seed(ctx context.Context) error {
	var count int
	if err := r.store.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM categories`).Scan(&count); err != nil {
		return fmt.Errorf("count categories: %w", err)
	}
	if count > 0 {
		return nil
	}

	defaults, err := DefaultCategories()
	if err != nil {
		return err
	}
	for _, name := range defaults {
		if err := r.Create(ctx, name); err != nil {
			return err
		}
	}

	r.store.logger.Info("Seeded default categories", logging.F(logging.FieldCount, len(defaults)))
	return nil
}
