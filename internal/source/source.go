// Package source reads the named tables the knowledge base is built from.
// A table that cannot be found or read is reported as absent, never as an error;
// only failing to open the source as a whole is an error.
package source

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"

	"medrag/internal/normalize"
)

// Tables gives access to named source tables. ok is false when the table is absent.
type Tables interface {
	Table(name string) (rows []normalize.Row, ok bool)
}

// Set is an in-memory collection of tables.
type Set struct {
	tables map[string][]normalize.Row
	logger *slog.Logger
}

// NewSet wraps tables keyed by name.
func NewSet(tables map[string][]normalize.Row) *Set {
	if tables == nil {
		tables = map[string][]normalize.Row{}
	}
	return &Set{tables: tables, logger: slog.Default().With("component", "source")}
}

// WithLogger returns s reporting missing tables to logger.
func (s *Set) WithLogger(logger *slog.Logger) *Set {
	s.logger = logger
	return s
}

// Table looks name up exactly, then by case-insensitive trimmed match.
func (s *Set) Table(name string) ([]normalize.Row, bool) {
	if rows, ok := s.tables[name]; ok {
		return rows, true
	}
	target := strings.ToLower(strings.TrimSpace(name))
	for _, candidate := range s.Names() {
		if strings.ToLower(strings.TrimSpace(candidate)) == target {
			s.logger.Info("table matched case-insensitively", "want", name, "found", candidate)
			return s.tables[candidate], true
		}
	}
	s.logger.Warn("table not found, skipping", "table", name, "available", s.Names())
	return nil, false
}

// Names returns the table names in sorted order.
func (s *Set) Names() []string {
	names := make([]string, 0, len(s.tables))
	for n := range s.tables {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Open loads a source file, choosing the reader by extension:
// .xlsx/.xlsm for workbooks, .yaml/.yml for table fixtures.
func Open(path string) (*Set, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return OpenWorkbook(path)
	case ".yaml", ".yml":
		return OpenYAML(path)
	default:
		return nil, fmt.Errorf("unsupported source format %q", filepath.Ext(path))
	}
}
