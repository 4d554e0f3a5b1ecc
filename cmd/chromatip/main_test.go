package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ayusman/chromatip/internal/chroma"
)

func TestPreviewURL(t *testing.T) {
	tests := []struct {
		addr string
		want string
	}{
		{":8080", "http://localhost:8080/"},
		{"127.0.0.1:9000", "http://127.0.0.1:9000/"},
	}

	for _, tt := range tests {
		if got := previewURL(tt.addr); got != tt.want {
			t.Errorf("previewURL(%q) = %q, want %q", tt.addr, got, tt.want)
		}
	}
}

func TestNewClassifier(t *testing.T) {
	c, err := newClassifier("")
	if err != nil {
		t.Fatalf("newClassifier(\"\") error = %v", err)
	}
	if got := c.Classify(chroma.RGB{R: 255}).Name; got != "red" {
		t.Errorf("default table named red as %q", got)
	}

	path := filepath.Join(t.TempDir(), "colors.yaml")
	table := "- name: tomato\n  hex: \"#ff6347\"\n- name: ink\n  hex: \"#000000\"\n"
	if err := os.WriteFile(path, []byte(table), 0644); err != nil {
		t.Fatal(err)
	}

	c, err = newClassifier(path)
	if err != nil {
		t.Fatalf("newClassifier(%q) error = %v", path, err)
	}
	if got := c.Classify(chroma.RGB{R: 250, G: 90, B: 60}).Name; got != "tomato" {
		t.Errorf("custom table name = %q, want tomato", got)
	}

	if _, err := newClassifier(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing table")
	}
}
