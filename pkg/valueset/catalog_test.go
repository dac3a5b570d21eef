package valueset

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"
)

const jsonCatalog = `{
  "sets": {
    "r": [
      {"name": "E6", "type": "eseries", "series": 6, "min": "10", "max": "1k"},
      {"name": "stock", "type": "explicit", "items": ["1k", 5, "1", "0.01M"]},
      {"name": "all", "type": "union", "groups": ["E6", "stock"]}
    ]
  },
  "values": {
    "pll": ["12M", "25M"]
  }
}`

const yamlCatalog = `
sets:
  r:
    - name: E6
      type: eseries
      series: 6
      min: 10
      max: 1k
    - name: stock
      type: explicit
      items: [1k, 5, "1", 0.01M]
    - name: all
      type: union
      groups: [E6, stock]
values:
  pll: [12M, 25M]
`

const tomlCatalog = `
[values]
pll = ["12M", "25M"]

[[sets.r]]
name = "E6"
type = "eseries"
series = 6
min = 10
max = "1k"

[[sets.r]]
name = "stock"
type = "explicit"
items = ["1k", 5, "1", "0.01M"]

[[sets.r]]
name = "all"
type = "union"
groups = ["E6", "stock"]
`

func TestParseCatalog(t *testing.T) {
	tests := []struct {
		format Format
		data   string
	}{
		{FormatJSON, jsonCatalog},
		{FormatYAML, yamlCatalog},
		{FormatTOML, tomlCatalog},
	}

	for _, tt := range tests {
		t.Run(tt.format.String(), func(t *testing.T) {
			c, err := ParseCatalog([]byte(tt.data), tt.format)
			if err != nil {
				t.Fatalf("ParseCatalog() error = %v", err)
			}
			if got := c.Groups(); !slices.Equal(got, []string{"r"}) {
				t.Errorf("Groups() = %v", got)
			}

			e6, err := c.ValueSet("r", "E6")
			if err != nil {
				t.Fatal(err)
			}
			if e6.Len() != 13 {
				t.Errorf("E6 has %d values, want 13", e6.Len())
			}

			stock, err := c.ValueSet("r", "stock")
			if err != nil {
				t.Fatal(err)
			}
			if got := floats(stock.All()); !slices.Equal(got, []float64{1, 5, 1e3, 1e4}) {
				t.Errorf("stock = %v", got)
			}

			all, err := c.ValueSet("r", "all")
			if err != nil {
				t.Fatal(err)
			}
			// 1k is shared by both sets.
			if all.Len() != 13+3 {
				t.Errorf("all has %d values, want 16", all.Len())
			}

			pll, err := c.Values("pll")
			if err != nil {
				t.Fatal(err)
			}
			if len(pll) != 2 || pll[0].Float() != 12e6 || pll[1].Float() != 25e6 {
				t.Errorf("pll = %v", pll)
			}
		})
	}
}

func TestParseCatalog_Errors(t *testing.T) {
	if _, err := ParseCatalog([]byte(`{"sets": {}, "bogus": 1}`), FormatJSON); err == nil {
		t.Error("unknown JSON field accepted")
	}
	if _, err := ParseCatalog([]byte(`{"sets": {"r": [{"name": "x", "type": "explicit", "items": ["1q"]}]}}`), FormatJSON); err == nil {
		t.Error("bad quantity accepted")
	}

	data := `{"sets": {"c": [{"name": "u", "type": "union", "groups": ["missing"]}]}}`
	_, err := ParseCatalog([]byte(data), FormatJSON)
	if !errors.Is(err, ErrUnresolvedReference) {
		t.Errorf("error = %v, want ErrUnresolvedReference", err)
	}

	c, err := ParseCatalog([]byte(`{"sets": {}}`), FormatJSON)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := c.ValueSet("r", "E12"); !errors.Is(err, ErrUnknownSet) {
		t.Errorf("ValueSet() error = %v", err)
	}
	if _, err := c.Values("pll"); !errors.Is(err, ErrUnknownSet) {
		t.Errorf("Values() error = %v", err)
	}
}

func TestLoadCatalog(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.yml")
	if err := os.WriteFile(path, []byte(yamlCatalog), 0o644); err != nil {
		t.Fatal(err)
	}
	c, err := LoadCatalog(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := c.ValueSet("r", "all"); err != nil {
		t.Error(err)
	}

	if _, err := LoadCatalog(filepath.Join(dir, "catalog.ini")); !errors.Is(err, ErrInvalidData) {
		t.Errorf("LoadCatalog(.ini) error = %v", err)
	}
	if _, err := LoadCatalog(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("missing file accepted")
	}
}
