package utils

import (
	"strings"
	"testing"
)

func TestSplitText(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		chunkSize int
		overlap   int
		want      int
	}{
		{name: "short text single chunk", text: "hello", chunkSize: 100, overlap: 10, want: 1},
		{name: "exact fit", text: strings.Repeat("a", 10), chunkSize: 10, overlap: 0, want: 1},
		{name: "two chunks no overlap", text: strings.Repeat("a", 20), chunkSize: 10, overlap: 0, want: 2},
		{name: "overlap adds chunks", text: strings.Repeat("a", 20), chunkSize: 10, overlap: 5, want: 3},
		{name: "overlap >= chunk size falls back", text: strings.Repeat("a", 20), chunkSize: 10, overlap: 10, want: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitText(tt.text, tt.chunkSize, tt.overlap)
			if len(got) != tt.want {
				t.Errorf("SplitText() produced %d chunks, want %d", len(got), tt.want)
			}
		})
	}
}

func TestClampChars(t *testing.T) {
	if got := ClampChars("short", 100); got != "short" {
		t.Errorf("ClampChars() = %q, want unchanged input", got)
	}

	long := strings.Repeat("x", 50)
	if got := ClampChars(long, 10); len(got) != 10 {
		t.Errorf("ClampChars() kept %d chars, want 10", len(got))
	}

	// Multibyte content must not be cut mid-character.
	viet := strings.Repeat("đặc", 10) // 3 runes, 7 bytes each
	got := ClampChars(viet, 10)
	if len([]rune(got)) != 10 {
		t.Errorf("ClampChars() kept %d runes, want 10", len([]rune(got)))
	}
	if !strings.HasPrefix(viet, got) {
		t.Errorf("ClampChars() returned %q, not a prefix of the input", got)
	}
}

func TestWordCount(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{"", 0},
		{"   ", 0},
		{"one", 1},
		{"một đoạn văn tiếng Việt", 5},
		{"  spaced   out  ", 2},
	}

	for _, tt := range tests {
		if got := WordCount(tt.text); got != tt.want {
			t.Errorf("WordCount(%q) = %d, want %d", tt.text, got, tt.want)
		}
	}
}
