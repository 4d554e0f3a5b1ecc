package chroma

import (
	"errors"
	"strings"
	"testing"

	"golang.org/x/image/colornames"
)

func TestDefaultTable_ExactMatch(t *testing.T) {
	table := DefaultTable()

	if table.Len() != len(colornames.Names) {
		t.Fatalf("Len() = %d, want %d", table.Len(), len(colornames.Names))
	}

	for _, e := range table.Entries() {
		name := table.Name(e.RGB)
		got := colornames.Map[name]
		if got.R != e.RGB.R || got.G != e.RGB.G || got.B != e.RGB.B {
			t.Errorf("Name(%v) = %q with color %v, want a name for %v", e.RGB, name, got, e.RGB)
		}
	}
}

func TestDefaultTable_FirstDuplicateWins(t *testing.T) {
	table := DefaultTable()

	// aqua/cyan and gray/grey share values; alphabetical order decides.
	tests := []struct {
		rgb  RGB
		want string
	}{
		{RGB{0, 255, 255}, "aqua"},
		{RGB{255, 0, 255}, "fuchsia"},
		{RGB{128, 128, 128}, "gray"},
		{RGB{255, 0, 0}, "red"},
	}

	for _, tt := range tests {
		if got, ok := table.Lookup(tt.rgb); !ok || got != tt.want {
			t.Errorf("Lookup(%v) = %q, %v; want %q", tt.rgb, got, ok, tt.want)
		}
	}
}

// bruteNearest is an independent first-minimum search used as an oracle.
func bruteNearest(entries []Entry, c RGB) string {
	bestName := ""
	bestDist := -1
	for _, e := range entries {
		dr := int(e.RGB.R) - int(c.R)
		dg := int(e.RGB.G) - int(c.G)
		db := int(e.RGB.B) - int(c.B)
		d := dr*dr + dg*dg + db*db
		if bestDist < 0 || d < bestDist {
			bestName, bestDist = e.Name, d
		}
	}
	return bestName
}

func TestTable_NearestMatchesOracle(t *testing.T) {
	table := DefaultTable()
	entries := table.Entries()

	for r := 0; r < 256; r += 37 {
		for g := 0; g < 256; g += 41 {
			for b := 0; b < 256; b += 43 {
				c := RGB{uint8(r), uint8(g), uint8(b)}
				if _, ok := table.Lookup(c); ok {
					continue
				}
				want := bruteNearest(entries, c)
				if got := table.Name(c); got != want {
					t.Errorf("Name(%v) = %q, want %q", c, got, want)
				}
			}
		}
	}
}

func TestTable_NearestTieBreak(t *testing.T) {
	a := Entry{Name: "first", RGB: RGB{0, 0, 0}}
	b := Entry{Name: "second", RGB: RGB{2, 0, 0}}
	query := RGB{1, 0, 0}

	forward, err := NewTable([]Entry{a, b})
	if err != nil {
		t.Fatalf("NewTable() error = %v", err)
	}
	if got := forward.Name(query); got != "first" {
		t.Errorf("forward Name() = %q, want first", got)
	}

	reverse, err := NewTable([]Entry{b, a})
	if err != nil {
		t.Fatalf("NewTable() error = %v", err)
	}
	if got := reverse.Name(query); got != "second" {
		t.Errorf("reverse Name() = %q, want second", got)
	}

	for i := 0; i < 10; i++ {
		if got := forward.Name(query); got != "first" {
			t.Fatalf("Name() not deterministic: got %q on run %d", got, i)
		}
	}
}

func TestNewTable_Errors(t *testing.T) {
	if _, err := NewTable(nil); !errors.Is(err, ErrEmptyTable) {
		t.Errorf("NewTable(nil) error = %v, want ErrEmptyTable", err)
	}
	if _, err := NewTable([]Entry{{Name: "", RGB: Black}}); err == nil {
		t.Error("NewTable() with unnamed entry should fail")
	}
}

func TestNewTable_CopiesEntries(t *testing.T) {
	entries := []Entry{{Name: "black", RGB: Black}}
	table, err := NewTable(entries)
	if err != nil {
		t.Fatalf("NewTable() error = %v", err)
	}

	entries[0].Name = "mutated"
	if got := table.Name(Black); got != "black" {
		t.Errorf("table changed after caller mutation: Name() = %q", got)
	}
}

func TestLoadTable(t *testing.T) {
	doc := `
- name: ink
  hex: "#101010"
- name: paper
  hex: "#f0f0f0"
- name: brick
  hex: "#b03020"
`
	table, err := LoadTable(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("LoadTable() error = %v", err)
	}

	if table.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", table.Len())
	}

	tests := []struct {
		rgb  RGB
		want string
	}{
		{RGB{0x10, 0x10, 0x10}, "ink"},
		{RGB{0, 0, 0}, "ink"},
		{RGB{255, 255, 255}, "paper"},
		{RGB{200, 40, 30}, "brick"},
	}
	for _, tt := range tests {
		if got := table.Name(tt.rgb); got != tt.want {
			t.Errorf("Name(%v) = %q, want %q", tt.rgb, got, tt.want)
		}
	}
}

func TestLoadTable_Invalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"empty document", ""},
		{"bad hex", "- name: x\n  hex: \"#zz\"\n"},
		{"not a list", "name: x\n"},
		{"missing name", "- hex: \"#000000\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadTable(strings.NewReader(tt.doc)); err == nil {
				t.Error("LoadTable() should fail")
			}
		})
	}
}

func TestClassifier_Classify(t *testing.T) {
	c := NewClassifier(nil)

	got := c.Classify(RGB{255, 0, 0})
	want := Classification{
		RGB:  RGB{255, 0, 0},
		Hex:  "#ff0000",
		HSV:  HSV{0, 100, 100},
		HSL:  HSL{0, 100, 50},
		Name: "red",
	}
	if got != want {
		t.Errorf("Classify() = %+v, want %+v", got, want)
	}

	if got.IsLight() {
		t.Error("pure red should be dark")
	}
	if got.Contrast() != White {
		t.Errorf("Contrast() = %v, want white", got.Contrast())
	}
}

func TestClassifier_NearestName(t *testing.T) {
	c := NewClassifier(DefaultTable())

	tests := []struct {
		rgb  RGB
		want string
	}{
		{RGB{250, 5, 5}, "red"},
		{RGB{2, 2, 2}, "black"},
		{RGB{253, 253, 253}, "white"},
		{RGB{0, 0, 250}, "blue"},
	}

	for _, tt := range tests {
		if got := c.Classify(tt.rgb).Name; got != tt.want {
			t.Errorf("Classify(%v).Name = %q, want %q", tt.rgb, got, tt.want)
		}
	}
}
