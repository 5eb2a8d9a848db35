// Package catalog holds the orderable-test reference data: pricing, turnaround
// time, sample requirements, and the result-item schema with reference and
// critical ranges.
package catalog

// ValueType classifies how a result item is reported.
type ValueType string

const (
	ValueNumeric ValueType = "NUMERIC"
	ValueSelect  ValueType = "SELECT"
	ValueText    ValueType = "TEXT"
)

// ReferenceRange bounds a normal (or critical) numeric result.
type ReferenceRange struct {
	Low  float64 `json:"low" yaml:"low"`
	High float64 `json:"high" yaml:"high"`
}

// Span returns the width of the range.
func (r ReferenceRange) Span() float64 {
	return r.High - r.Low
}

// ResultItem describes one reportable parameter of a test.
type ResultItem struct {
	Code          string          `json:"code" yaml:"code"`
	Name          string          `json:"name" yaml:"name"`
	ValueType     ValueType       `json:"valueType" yaml:"valueType"`
	Unit          string          `json:"unit,omitempty" yaml:"unit,omitempty"`
	Decimals      int             `json:"decimals,omitempty" yaml:"decimals,omitempty"`
	Range         *ReferenceRange `json:"range,omitempty" yaml:"range,omitempty"`
	MaleRange     *ReferenceRange `json:"maleRange,omitempty" yaml:"maleRange,omitempty"`
	FemaleRange   *ReferenceRange `json:"femaleRange,omitempty" yaml:"femaleRange,omitempty"`
	CriticalRange *ReferenceRange `json:"criticalRange,omitempty" yaml:"criticalRange,omitempty"`
	AllowedValues []string        `json:"allowedValues,omitempty" yaml:"allowedValues,omitempty"`
}

// RangeFor resolves the reference range for a patient gender, preferring the
// gender-specific range and falling back to the shared one. Returns nil for
// non-numeric items or items without ranges.
func (ri *ResultItem) RangeFor(gender string) *ReferenceRange {
	switch gender {
	case "male":
		if ri.MaleRange != nil {
			return ri.MaleRange
		}
	case "female":
		if ri.FemaleRange != nil {
			return ri.FemaleRange
		}
	}
	return ri.Range
}

// Container describes an allowed collection container.
type Container struct {
	Type  string `json:"type" yaml:"type"`
	Color string `json:"color" yaml:"color"`
}

// TestDefinition describes one orderable laboratory test.
type TestDefinition struct {
	Code            string       `json:"code" yaml:"code"`
	Name            string       `json:"name" yaml:"name"`
	Price           float64      `json:"price" yaml:"price"`
	TurnaroundHours int          `json:"turnaroundHours" yaml:"turnaroundHours"`
	SampleType      string       `json:"sampleType" yaml:"sampleType"`
	Containers      []Container  `json:"containers" yaml:"containers"`
	MinVolumeML     float64      `json:"minVolumeMl" yaml:"minVolumeMl"`
	ResultItems     []ResultItem `json:"resultItems" yaml:"resultItems"`
}

// Catalog indexes test definitions by code.
type Catalog struct {
	Tests  []TestDefinition
	byCode map[string]*TestDefinition
}

func newCatalog(tests []TestDefinition) *Catalog {
	c := &Catalog{Tests: tests, byCode: make(map[string]*TestDefinition, len(tests))}
	for i := range c.Tests {
		c.byCode[c.Tests[i].Code] = &c.Tests[i]
	}
	return c
}

// Lookup returns the definition for a test code.
func (c *Catalog) Lookup(code string) (*TestDefinition, bool) {
	def, ok := c.byCode[code]
	return def, ok
}

// Codes returns every test code in catalog order.
func (c *Catalog) Codes() []string {
	codes := make([]string, len(c.Tests))
	for i := range c.Tests {
		codes[i] = c.Tests[i].Code
	}
	return codes
}

// Len returns the number of test definitions.
func (c *Catalog) Len() int {
	return len(c.Tests)
}
