package valueset

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/edp1096/toy-engineer/pkg/quantity"
	"gopkg.in/yaml.v3"
)

type Format int

const (
	FormatJSON Format = iota
	FormatYAML
	FormatTOML
)

func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yaml"
	case FormatTOML:
		return "toml"
	default:
		return "unknown"
	}
}

// FormatFromPath picks the decoder from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	}
	return 0, fmt.Errorf("%w: unsupported catalog file %q", ErrInvalidData, path)
}

// Provider gives calculators access to catalog value sets.
type Provider interface {
	ValueSet(group, name string) (*Set, error)
}

// CatalogFile mirrors the on-disk catalog layout: value-set definitions per
// group and plain named value lists.
type CatalogFile struct {
	Sets   map[string][]Definition `json:"sets" yaml:"sets" toml:"sets"`
	Values map[string][]Item       `json:"values,omitempty" yaml:"values,omitempty" toml:"values,omitempty"`
}

type Catalog struct {
	groups map[string]*Sets
	values map[string][]quantity.Value
}

func NewCatalog(file CatalogFile) (*Catalog, error) {
	c := &Catalog{
		groups: make(map[string]*Sets, len(file.Sets)),
		values: make(map[string][]quantity.Value, len(file.Values)),
	}
	for group, defs := range file.Sets {
		sets, err := NewSets(defs)
		if err != nil {
			return nil, fmt.Errorf("group %q: %w", group, err)
		}
		c.groups[group] = sets
	}
	for name, items := range file.Values {
		values := make([]quantity.Value, len(items))
		for i, it := range items {
			values[i] = it.Value
		}
		c.values[name] = values
	}
	return c, nil
}

func ParseCatalog(data []byte, format Format) (*Catalog, error) {
	var file CatalogFile
	var err error
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err = dec.Decode(&file)
	case FormatYAML:
		err = yaml.Unmarshal(data, &file)
	case FormatTOML:
		_, err = toml.Decode(string(data), &file)
	default:
		return nil, fmt.Errorf("%w: unknown catalog format %d", ErrInvalidData, format)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing %s catalog: %w", format, err)
	}
	return NewCatalog(file)
}

func LoadCatalog(path string) (*Catalog, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}
	return ParseCatalog(data, format)
}

func (c *Catalog) Group(name string) (*Sets, error) {
	sets, ok := c.groups[name]
	if !ok {
		return nil, fmt.Errorf("%w: group %q", ErrUnknownSet, name)
	}
	return sets, nil
}

func (c *Catalog) Groups() []string {
	names := make([]string, 0, len(c.groups))
	for name := range c.groups {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ValueSet implements Provider.
func (c *Catalog) ValueSet(group, name string) (*Set, error) {
	sets, err := c.Group(group)
	if err != nil {
		return nil, err
	}
	return sets.Get(name)
}

func (c *Catalog) Values(name string) ([]quantity.Value, error) {
	values, ok := c.values[name]
	if !ok {
		return nil, fmt.Errorf("%w: values %q", ErrUnknownSet, name)
	}
	return append([]quantity.Value(nil), values...), nil
}
