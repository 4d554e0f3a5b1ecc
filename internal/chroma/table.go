package chroma

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"
)

// ErrEmptyTable is returned when a reference table has no entries.
var ErrEmptyTable = errors.New("reference color table is empty")

// Entry is a single named color in a reference table.
type Entry struct {
	Name string `json:"name"`
	RGB  RGB    `json:"rgb"`
}

// Table is an ordered, read-only set of named reference colors.
// Order is significant: it decides which name wins on exact duplicates
// and on equal-distance ties during nearest-color search.
type Table struct {
	entries []Entry
	exact   map[RGB]int
}

// NewTable builds a table from entries, keeping their order.
// When two entries share an RGB value, the first one is used for exact lookups.
func NewTable(entries []Entry) (*Table, error) {
	if len(entries) == 0 {
		return nil, ErrEmptyTable
	}

	t := &Table{
		entries: make([]Entry, len(entries)),
		exact:   make(map[RGB]int, len(entries)),
	}
	copy(t.entries, entries)

	for i, e := range t.entries {
		if e.Name == "" {
			return nil, fmt.Errorf("entry %d has no name", i)
		}
		if _, ok := t.exact[e.RGB]; !ok {
			t.exact[e.RGB] = i
		}
	}

	return t, nil
}

var defaultTable = sync.OnceValue(func() *Table {
	entries := make([]Entry, 0, len(colornames.Names))
	for _, name := range colornames.Names {
		c := colornames.Map[name]
		entries = append(entries, Entry{Name: name, RGB: RGB{R: c.R, G: c.G, B: c.B}})
	}
	t, err := NewTable(entries)
	if err != nil {
		panic(err)
	}
	return t
})

// DefaultTable returns the CSS/SVG named colors in alphabetical order.
// The table is built on first use and shared afterwards.
func DefaultTable() *Table {
	return defaultTable()
}

// tableEntryYAML is the on-disk form of an entry: a name and a hex code.
type tableEntryYAML struct {
	Name string `yaml:"name"`
	Hex  string `yaml:"hex"`
}

// LoadTable reads a YAML sequence of {name, hex} entries.
//
//	- name: red
//	  hex: "#ff0000"
func LoadTable(r io.Reader) (*Table, error) {
	var raw []tableEntryYAML
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyTable
		}
		return nil, fmt.Errorf("parse color table: %w", err)
	}

	entries := make([]Entry, 0, len(raw))
	for _, e := range raw {
		c, err := ParseHex(e.Hex)
		if err != nil {
			return nil, fmt.Errorf("color %q: %w", e.Name, err)
		}
		entries = append(entries, Entry{Name: e.Name, RGB: c})
	}

	return NewTable(entries)
}

// LoadTableFile reads a YAML color table from path.
func LoadTableFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open color table: %w", err)
	}
	defer f.Close()

	return LoadTable(f)
}

// Len returns the number of entries.
func (t *Table) Len() int {
	return len(t.entries)
}

// Entries returns a copy of the entries in table order.
func (t *Table) Entries() []Entry {
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Lookup returns the name of the entry exactly matching c.
func (t *Table) Lookup(c RGB) (string, bool) {
	i, ok := t.exact[c]
	if !ok {
		return "", false
	}
	return t.entries[i].Name, true
}

// Nearest returns the entry with the smallest squared RGB distance to c.
// The first minimum in table order wins ties.
func (t *Table) Nearest(c RGB) Entry {
	best := 0
	bestDist := squaredDistance(c, t.entries[0].RGB)

	for i := 1; i < len(t.entries); i++ {
		if d := squaredDistance(c, t.entries[i].RGB); d < bestDist {
			best, bestDist = i, d
		}
	}

	return t.entries[best]
}

// Name resolves c to a name: exact match first, nearest entry otherwise.
func (t *Table) Name(c RGB) string {
	if name, ok := t.Lookup(c); ok {
		return name
	}
	return t.Nearest(c).Name
}
