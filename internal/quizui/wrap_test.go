package quizui

import (
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"
)

func TestWrapTextRespectsWidth(t *testing.T) {
	lines := wrapText("A client sends a long email thread and asks for a summary", 16)
	for _, l := range lines {
		if runewidth.StringWidth(l) > 16 {
			t.Fatalf("line %q exceeds width", l)
		}
	}
	if strings.Join(lines, " ") != "A client sends a long email thread and asks for a summary" {
		t.Fatalf("wrap changed text: %q", lines)
	}
}

func TestWrapTextSplitsLongWords(t *testing.T) {
	lines := wrapText("abcdefghij", 4)
	if strings.Join(lines, "|") != "abcd|efgh|ij" {
		t.Fatalf("unexpected split: %q", lines)
	}
}

func TestWrapTextWideRunes(t *testing.T) {
	lines := wrapText("日本語テキスト", 4)
	for _, l := range lines {
		if runewidth.StringWidth(l) > 4 {
			t.Fatalf("line %q exceeds width", l)
		}
	}
}

func TestWrapTextEmpty(t *testing.T) {
	lines := wrapText("", 10)
	if len(lines) != 1 || lines[0] != "" {
		t.Fatalf("expected a single empty line, got %q", lines)
	}
}
