// Package catalog loads the weather-status and activity lookup tables.
package catalog

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/micabrunel/marcelle-mobi/internal/dashboard"
)

//go:embed default.yaml
var defaultYAML []byte

var validate = validator.New()

// Catalog is an immutable set of lookup tables. It implements dashboard.Catalog.
type Catalog struct {
	fallback   dashboard.WeatherStatus
	statuses   map[string]dashboard.WeatherStatus
	activities []dashboard.Activity
}

type document struct {
	Fallback struct {
		Code  string `yaml:"code" validate:"required"`
		Label string `yaml:"label"`
		Icon  string `yaml:"icon"`
		Clear bool   `yaml:"clear"`
	} `yaml:"fallback"`
	WeatherStatuses map[string]dashboard.WeatherStatus `yaml:"weatherStatuses"`
	Activities      []dashboard.Activity               `yaml:"activities" validate:"dive"`
}

// Default returns the catalog compiled into the binary.
func Default() (*Catalog, error) {
	return Parse(defaultYAML)
}

// Load reads a catalog file, or the embedded default when path is empty.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a YAML catalog document.
func Parse(data []byte) (*Catalog, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if err := validate.Struct(doc); err != nil {
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}

	statuses := make(map[string]dashboard.WeatherStatus, len(doc.WeatherStatuses))
	for code, st := range doc.WeatherStatuses {
		st.Code = code
		statuses[code] = st
	}

	return &Catalog{
		fallback: dashboard.WeatherStatus{
			Code:  doc.Fallback.Code,
			Label: doc.Fallback.Label,
			Icon:  doc.Fallback.Icon,
			Clear: doc.Fallback.Clear,
		},
		statuses:   statuses,
		activities: doc.Activities,
	}, nil
}

// Status resolves an upstream weather code.
func (c *Catalog) Status(code string) (dashboard.WeatherStatus, bool) {
	st, ok := c.statuses[code]
	return st, ok
}

// Fallback is used when Status misses.
func (c *Catalog) Fallback() dashboard.WeatherStatus {
	return c.fallback
}

// Activities returns a copy of the activity table in file order.
func (c *Catalog) Activities() []dashboard.Activity {
	return append([]dashboard.Activity{}, c.activities...)
}

var _ dashboard.Catalog = (*Catalog)(nil)
