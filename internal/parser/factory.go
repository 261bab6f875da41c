package parser

import (
	"path/filepath"
	"sort"
	"strings"

	"fjacquet/fintrack/internal/parsererror"
)

// Registry selects a parser from the extension of the uploaded file name.
type Registry struct {
	byExtension map[string]Parser
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{byExtension: make(map[string]Parser)}
}

// Register associates p with one or more extensions such as ".csv".
// Extensions are matched case-insensitively.
func (r *Registry) Register(p Parser, extensions ...string) {
	for _, ext := range extensions {
		ext = strings.ToLower(ext)
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		r.byExtension[ext] = p
	}
}

// ForFile returns the parser registered for the extension of fileName, or an
// UnsupportedFormatError.
func (r *Registry) ForFile(fileName string) (Parser, error) {
	ext := strings.ToLower(filepath.Ext(fileName))
	if p, ok := r.byExtension[ext]; ok && ext != "" {
		return p, nil
	}
	return nil, &parsererror.UnsupportedFormatError{FileName: fileName, Extension: ext}
}

// Extensions lists the registered extensions, sorted.
func (r *Registry) Extensions() []string {
	exts := make([]string, 0, len(r.byExtension))
	for ext := range r.byExtension {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}
