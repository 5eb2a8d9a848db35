package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed default_catalog.json
var defaultCatalog []byte

// Load reads a catalog document from path. Files ending in .yaml or .yml are
// parsed as YAML, everything else as JSON. An empty path loads the embedded
// default catalog. A catalog that fails to load or validate is fatal to the
// caller; no fallback is attempted for an explicit path.
func Load(path string) (*Catalog, error) {
	if path == "" {
		cat, err := parse(defaultCatalog, false)
		if err != nil {
			return nil, fmt.Errorf("embedded default catalog: %w", err)
		}
		return cat, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	asYAML := strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml")
	cat, err := parse(data, asYAML)
	if err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", path, err)
	}
	return cat, nil
}

func parse(data []byte, asYAML bool) (*Catalog, error) {
	var tests []TestDefinition
	if asYAML {
		if err := yaml.Unmarshal(data, &tests); err != nil {
			return nil, fmt.Errorf("unmarshal yaml: %w", err)
		}
	} else {
		if err := json.Unmarshal(data, &tests); err != nil {
			return nil, fmt.Errorf("unmarshal json: %w", err)
		}
	}
	if len(tests) == 0 {
		return nil, fmt.Errorf("catalog contains no test definitions")
	}
	cat := newCatalog(tests)
	if err := cat.validate(); err != nil {
		return nil, err
	}
	return cat, nil
}

func (c *Catalog) validate() error {
	seen := make(map[string]bool, len(c.Tests))
	for _, t := range c.Tests {
		if t.Code == "" {
			return fmt.Errorf("test %q: missing code", t.Name)
		}
		if seen[t.Code] {
			return fmt.Errorf("test %s: duplicate code", t.Code)
		}
		seen[t.Code] = true
		if t.Price <= 0 {
			return fmt.Errorf("test %s: price must be positive", t.Code)
		}
		if t.TurnaroundHours <= 0 {
			return fmt.Errorf("test %s: turnaroundHours must be positive", t.Code)
		}
		if t.SampleType == "" {
			return fmt.Errorf("test %s: missing sampleType", t.Code)
		}
		if len(t.Containers) == 0 {
			return fmt.Errorf("test %s: at least one container is required", t.Code)
		}
		if t.MinVolumeML <= 0 {
			return fmt.Errorf("test %s: minVolumeMl must be positive", t.Code)
		}
		if len(t.ResultItems) == 0 {
			return fmt.Errorf("test %s: at least one result item is required", t.Code)
		}
		for _, ri := range t.ResultItems {
			switch ri.ValueType {
			case ValueNumeric:
				if ri.Range == nil && ri.MaleRange == nil && ri.FemaleRange == nil {
					return fmt.Errorf("test %s item %s: numeric item needs a reference range", t.Code, ri.Code)
				}
			case ValueSelect:
				if len(ri.AllowedValues) == 0 {
					return fmt.Errorf("test %s item %s: select item needs allowedValues", t.Code, ri.Code)
				}
			case ValueText:
				// no schema beyond code/name
			default:
				return fmt.Errorf("test %s item %s: unknown valueType %q", t.Code, ri.Code, ri.ValueType)
			}
		}
	}
	return nil
}
