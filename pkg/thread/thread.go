// Package thread identifies screw threads by diameter and pitch.
package thread

import (
	_ "embed"
	"errors"
	"fmt"
	"math"

	"github.com/BurntSushi/toml"
	"github.com/edp1096/toy-engineer/pkg/search"
)

const (
	Inch         = 25.4e-3 // m
	DefaultCount = 5
)

var ErrInvalidEntry = errors.New("thread: invalid entry")

//go:embed threads.toml
var builtin []byte

// Thread is a diameter in metres and a pitch in metres per turn.
type Thread struct {
	Diameter float64
	Pitch    float64
}

// PitchTPI converts threads per inch to a pitch.
func PitchTPI(tpi float64) float64 {
	return Inch / tpi
}

func (t Thread) TPI() float64 {
	return Inch / t.Pitch
}

// percentDiff is the percentage by which x exceeds y, negative when x is
// the smaller one. Both directions use the larger of the two ratios.
func percentDiff(x, y float64) float64 {
	ratio := math.Abs(x / y)
	if ratio < 1 {
		return -(1/ratio*100 - 100)
	}
	return ratio*100 - 100
}

// Diff scores how far ref is from t. An undersized diameter and any pitch
// mismatch count double.
func (t Thread) Diff(ref Thread) float64 {
	ddiff := percentDiff(t.Diameter, ref.Diameter)
	if ddiff < 0 {
		ddiff = 2 * math.Abs(ddiff)
	}
	pdiff := 2 * math.Abs(percentDiff(t.Pitch, ref.Pitch))
	return ddiff + pdiff
}

type Entry struct {
	Group string
	Name  string
	Usage []string
	Thread
}

// Candidate is a catalog entry scored against a reference thread.
type Candidate struct {
	Entry
	Diff          float64
	DiameterError float64 // relative, (entry - ref) / ref
	PitchError    float64
}

type DB struct {
	entries []Entry
}

type fileThread struct {
	Name       string   `toml:"name"`
	DiameterMM float64  `toml:"diameter_mm"`
	DiameterIn float64  `toml:"diameter_in"`
	PitchMM    float64  `toml:"pitch_mm"`
	TPI        float64  `toml:"tpi"`
	Usage      []string `toml:"usage"`
}

type fileGroup struct {
	Name    string       `toml:"name"`
	Threads []fileThread `toml:"thread"`
}

// Parse reads a TOML thread table.
func Parse(data string) (*DB, error) {
	var file struct {
		Groups []fileGroup `toml:"group"`
	}
	if _, err := toml.Decode(data, &file); err != nil {
		return nil, fmt.Errorf("parsing thread table: %w", err)
	}

	db := &DB{}
	for _, g := range file.Groups {
		for _, ft := range g.Threads {
			e, err := ft.entry(g.Name)
			if err != nil {
				return nil, err
			}
			db.entries = append(db.entries, e)
		}
	}
	return db, nil
}

func (ft fileThread) entry(group string) (Entry, error) {
	e := Entry{Group: group, Name: ft.Name, Usage: ft.Usage}
	switch {
	case ft.DiameterMM > 0 && ft.DiameterIn == 0:
		e.Diameter = ft.DiameterMM * 1e-3
	case ft.DiameterIn > 0 && ft.DiameterMM == 0:
		e.Diameter = ft.DiameterIn * Inch
	default:
		return e, fmt.Errorf("%w: %s %q needs exactly one diameter", ErrInvalidEntry, group, ft.Name)
	}
	switch {
	case ft.PitchMM > 0 && ft.TPI == 0:
		e.Pitch = ft.PitchMM * 1e-3
	case ft.TPI > 0 && ft.PitchMM == 0:
		e.Pitch = PitchTPI(ft.TPI)
	default:
		return e, fmt.Errorf("%w: %s %q needs exactly one pitch", ErrInvalidEntry, group, ft.Name)
	}
	return e, nil
}

// Builtin returns the embedded thread table.
func Builtin() *DB {
	db, err := Parse(string(builtin))
	if err != nil {
		panic(err)
	}
	return db
}

func (db *DB) Len() int { return len(db.entries) }

func (db *DB) Get(group, name string) (Entry, bool) {
	for _, e := range db.entries {
		if e.Group == group && e.Name == name {
			return e, true
		}
	}
	return Entry{}, false
}

// Closest returns the n entries with the smallest Diff to ref, in table
// order on ties. n <= 0 returns all of them.
func (db *DB) Closest(ref Thread, n int) []Candidate {
	cands := make([]Candidate, len(db.entries))
	for i, e := range db.entries {
		cands[i] = Candidate{
			Entry:         e,
			Diff:          e.Diff(ref),
			DiameterError: search.RelativeError(e.Diameter, ref.Diameter),
			PitchError:    search.RelativeError(e.Pitch, ref.Pitch),
		}
	}
	return search.Rank(cands, func(c Candidate) search.Key {
		return search.Key{Error: c.Diff}
	}, n)
}
