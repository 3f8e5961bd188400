package chunker

import (
	"reflect"
	"strings"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{"hello  world", "hello world"},
		{"  hello\tworld \n", "hello world"},
		{"a\n\nb\r\nc", "a b c"},
		{"", ""},
		{"   \n\t ", ""},
	}

	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.expected {
			t.Errorf("Normalize(%q) = %q; want %q", tt.in, got, tt.expected)
		}
	}
}

func TestSplit_FixedWindow(t *testing.T) {
	// "AAAA BBBB CCCC" with size 8, overlap 4 -> windows at 0, 4, 8
	chunks := Split("AAAA BBBB CCCC", "doc.pdf", 8, 4)

	expected := []string{"AAAA BBB", "BBBB CC", "B CCCC"}
	if len(chunks) != len(expected) {
		t.Fatalf("got %d chunks, want %d: %+v", len(chunks), len(expected), chunks)
	}
	for i, want := range expected {
		if chunks[i].Text != want {
			t.Errorf("chunk %d text = %q; want %q", i, chunks[i].Text, want)
		}
		if chunks[i].Index != i {
			t.Errorf("chunk %d index = %d; want %d", i, chunks[i].Index, i)
		}
		if chunks[i].Source != "doc.pdf" {
			t.Errorf("chunk %d source = %q", i, chunks[i].Source)
		}
		if chunks[i].Embedded() {
			t.Errorf("chunk %d should not carry an embedding yet", i)
		}
	}
}

func TestSplit_OverlapAndCoverage(t *testing.T) {
	text := "abcdefghijklmnopqrstuvwxyz"
	size, overlap := 10, 3
	step := size - overlap

	chunks := Split(text, "alpha", size, overlap)

	// ceil((L-O)/(S-O)) for L=26, S=10, O=3 -> ceil(23/7) = 4
	if len(chunks) != 4 {
		t.Fatalf("got %d chunks, want 4", len(chunks))
	}
	// no gaps: each chunk starts step chars after the previous one
	for i, c := range chunks {
		start := i * step
		if !strings.HasPrefix(text[start:], c.Text) {
			t.Errorf("chunk %d = %q does not sit at offset %d", i, c.Text, start)
		}
	}
	// consecutive chunks share exactly overlap chars
	for i := 1; i < len(chunks); i++ {
		prev := chunks[i-1].Text
		tail := prev[len(prev)-overlap:]
		if !strings.HasPrefix(chunks[i].Text, tail) {
			t.Errorf("chunk %d does not overlap its predecessor by %d chars", i, overlap)
		}
	}
	// full coverage including the short tail
	last := chunks[len(chunks)-1]
	if !strings.HasSuffix(text, last.Text) {
		t.Errorf("final chunk %q does not cover the end of the text", last.Text)
	}
}

func TestSplit_Deterministic(t *testing.T) {
	text := "The quick brown fox jumps over the lazy dog. " + strings.Repeat("pack my box with five dozen liquor jugs. ", 20)

	first := Split(text, "doc", 100, 20)
	second := Split(text, "doc", 100, 20)

	if len(first) != len(second) {
		t.Fatalf("runs differ in length: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if !reflect.DeepEqual(first[i], second[i]) {
			t.Errorf("chunk %d differs between runs", i)
		}
	}
}

func TestSplit_EdgeCases(t *testing.T) {
	if got := Split("", "doc", 8, 4); got != nil {
		t.Errorf("empty input should yield no chunks, got %+v", got)
	}
	if got := Split("  \n \t ", "doc", 8, 4); got != nil {
		t.Errorf("whitespace-only input should yield no chunks, got %+v", got)
	}

	// text shorter than the window is a single chunk
	short := Split("tiny", "doc", 100, 10)
	if len(short) != 1 || short[0].Text != "tiny" || short[0].Index != 0 {
		t.Errorf("short input: got %+v", short)
	}

	// overlap >= size would never advance - must refuse, not hang
	if got := Split("some text here", "doc", 4, 4); got != nil {
		t.Errorf("zero step should yield no chunks, got %+v", got)
	}
	if got := Split("some text here", "doc", 4, 9); got != nil {
		t.Errorf("negative step should yield no chunks, got %+v", got)
	}
}

func TestSplit_NoDuplicateTail(t *testing.T) {
	// window end lands exactly on the text length
	text := "abcdefgh"
	chunks := Split(text, "doc", 4, 2)
	// windows: [0:4) [2:6) [4:8) -> stop
	expected := []string{"abcd", "cdef", "efgh"}
	if len(chunks) != len(expected) {
		t.Fatalf("got %d chunks %+v, want %d", len(chunks), chunks, len(expected))
	}
	for i, want := range expected {
		if chunks[i].Text != want {
			t.Errorf("chunk %d = %q; want %q", i, chunks[i].Text, want)
		}
	}
}
