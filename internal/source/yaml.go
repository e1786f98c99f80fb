package source

import (
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"medrag/internal/normalize"
)

// OpenYAML reads tables from a YAML document mapping table names to lists of rows:
//
//	dim_benh:
//	  - [1, "Cảm cúm"]
//	trieu_chung:
//	  - [1, "sốt đau họng ho", "https://example.org"]
func OpenYAML(path string) (*Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read tables %s: %w", path, err)
	}
	set, err := ParseYAML(data)
	if err != nil {
		return nil, fmt.Errorf("parse tables %s: %w", path, err)
	}
	return set.WithLogger(slog.Default().With("component", "source", "path", path)), nil
}

// ParseYAML decodes tables from YAML bytes.
func ParseYAML(data []byte) (*Set, error) {
	var raw map[string][][]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	tables := make(map[string][]normalize.Row, len(raw))
	for name, rows := range raw {
		out := make([]normalize.Row, len(rows))
		for i, r := range rows {
			out[i] = normalize.Row(r)
		}
		tables[name] = out
	}
	return NewSet(tables), nil
}
