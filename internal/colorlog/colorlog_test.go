package colorlog

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ayusman/chromatip/internal/chroma"
	"github.com/ayusman/chromatip/internal/detector"
)

var classifier = chroma.NewClassifier(nil)

func TestWriteRecord(t *testing.T) {
	var buf bytes.Buffer
	r := Record{
		Classification: classifier.Classify(chroma.RGB{R: 255}),
		Mode:           detector.ModeClick,
	}

	if err := WriteRecord(&buf, r); err != nil {
		t.Fatalf("WriteRecord() error = %v", err)
	}

	want := "Color: red\n" +
		"RGB: (255, 0, 0)\n" +
		"HEX: #ff0000\n" +
		"HSV: (0, 100, 100)\n" +
		"Detection Mode: click\n" +
		strings.Repeat("-", 30) + "\n"

	if buf.String() != want {
		t.Errorf("WriteRecord() wrote\n%q\nwant\n%q", buf.String(), want)
	}
}

func TestLog_AppendOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "colors.txt")

	l, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if l.Path() != path {
		t.Errorf("Path() = %q, want %q", l.Path(), path)
	}

	if err := os.WriteFile(path, []byte("existing\n"), 0644); err != nil {
		t.Fatalf("seed log: %v", err)
	}

	records := []Record{
		{Classification: classifier.Classify(chroma.RGB{R: 255}), Mode: detector.ModeClick},
		{Classification: classifier.Classify(chroma.RGB{B: 255}), Mode: detector.ModeSkin},
	}
	for _, r := range records {
		if err := l.Append(r); err != nil {
			t.Fatalf("Append() error = %v", err)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	content := string(data)

	if !strings.HasPrefix(content, "existing\n") {
		t.Error("Append() must not rewrite existing content")
	}
	if strings.Count(content, strings.Repeat("-", 30)) != 2 {
		t.Errorf("expected 2 entries, got log:\n%s", content)
	}
	red := strings.Index(content, "Color: red")
	blue := strings.Index(content, "Color: blue")
	if red < 0 || blue < 0 || red > blue {
		t.Errorf("entries missing or out of order:\n%s", content)
	}
	if !strings.Contains(content, "Detection Mode: skin") {
		t.Errorf("mode line missing:\n%s", content)
	}
}

func TestWritePalette(t *testing.T) {
	var buf bytes.Buffer
	colors := []chroma.Classification{
		classifier.Classify(chroma.RGB{R: 255}),
		classifier.Classify(chroma.RGB{G: 255, B: 255}),
	}

	if err := WritePalette(&buf, colors); err != nil {
		t.Fatalf("WritePalette() error = %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"Color Palette\n" + strings.Repeat("=", 40) + "\n",
		"\nColor 1: red\nRGB: (255, 0, 0)\nHEX: #ff0000\nHSV: (0, 100, 100)\nHSL: (0, 100, 50)\n",
		"\nColor 2: aqua\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("palette missing %q:\n%s", want, out)
		}
	}
}

func TestWritePalette_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := WritePalette(&buf, nil); err != nil {
		t.Fatalf("WritePalette() error = %v", err)
	}
	if buf.String() != "Color Palette\n"+strings.Repeat("=", 40)+"\n" {
		t.Errorf("empty palette = %q", buf.String())
	}
}
