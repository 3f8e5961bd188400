package extract

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/docuchat/api/internal/domain/docmodel"
)

func TestTypeOf(t *testing.T) {
	tests := []struct {
		path     string
		expected DocType
	}{
		{"test.pdf", PDF},
		{"REPORT.PDF", PDF},
		{"DOC.DOCX", DocLike},
		{"notes.txt", DocLike},
		{"essay.odt", DocLike},
		{"image.png", Unknown},
		{"noextension", Unknown},
	}

	for _, tt := range tests {
		if got := TypeOf(tt.path); got != tt.expected {
			t.Errorf("TypeOf(%s) = %v; want %v", tt.path, got, tt.expected)
		}
	}
}

func TestText_PlainFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(path, []byte("some plain text content"), 0644); err != nil {
		t.Fatal(err)
	}

	text, err := Text(path, "notes.txt")
	if err != nil {
		t.Fatalf("Text failed: %v", err)
	}
	if text != "some plain text content" {
		t.Errorf("got %q", text)
	}
}

func TestText_EmptyFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.txt")
	if err := os.WriteFile(path, []byte("   \n  "), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := Text(path, "empty.txt")
	var exErr *docmodel.ExtractionError
	if !errors.As(err, &exErr) {
		t.Fatalf("want ExtractionError, got %v", err)
	}
	if exErr.Document != "empty.txt" {
		t.Errorf("error should carry the document name, got %q", exErr.Document)
	}
}

func TestText_UnsupportedType(t *testing.T) {
	_, err := Text("whatever.png", "whatever.png")
	var exErr *docmodel.ExtractionError
	if !errors.As(err, &exErr) {
		t.Fatalf("want ExtractionError, got %v", err)
	}
}

func TestText_MissingPDF(t *testing.T) {
	_, err := Text(filepath.Join(t.TempDir(), "ghost.pdf"), "ghost.pdf")
	var exErr *docmodel.ExtractionError
	if !errors.As(err, &exErr) {
		t.Fatalf("want ExtractionError, got %v", err)
	}
	if exErr.Unwrap() == nil {
		t.Error("open failure should carry the underlying cause")
	}
}
