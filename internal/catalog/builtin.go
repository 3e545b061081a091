package catalog

import (
	_ "embed"
	"fmt"
)

//go:embed builtin.yaml
var builtinYAML []byte

// Builtin returns the embedded default syllabus.
func Builtin() (*Catalog, error) {
	cat, err := Parse(builtinYAML, "yaml")
	if err != nil {
		return nil, fmt.Errorf("built-in catalog: %w", err)
	}
	return cat, nil
}
