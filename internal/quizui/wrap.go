package quizui

import (
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

// wrapText breaks s into lines no wider than width cells, splitting at
// spaces. Words wider than the line are hard-split.
func wrapText(s string, width int) []string {
	if width <= 0 {
		return []string{s}
	}
	var lines []string
	var line strings.Builder
	lineWidth := 0
	flush := func() {
		lines = append(lines, line.String())
		line.Reset()
		lineWidth = 0
	}
	for _, word := range strings.Fields(s) {
		wordWidth := runewidth.StringWidth(word)
		if lineWidth > 0 && lineWidth+1+wordWidth > width {
			flush()
		}
		for wordWidth > width {
			head := runewidth.Truncate(word, width, "")
			if head == "" {
				_, size := utf8.DecodeRuneInString(word)
				head = word[:size]
			}
			if lineWidth > 0 {
				flush()
			}
			lines = append(lines, head)
			word = word[len(head):]
			wordWidth = runewidth.StringWidth(word)
		}
		if word == "" {
			continue
		}
		if lineWidth > 0 {
			line.WriteByte(' ')
			lineWidth++
		}
		line.WriteString(word)
		lineWidth += wordWidth
	}
	if lineWidth > 0 || len(lines) == 0 {
		flush()
	}
	return lines
}

// contentWidth is the width used for question text.
func contentWidth(termWidth int) int {
	if termWidth <= 0 {
		return 72
	}
	w := int(float64(termWidth) * 0.70)
	if w < 20 {
		w = termWidth
	}
	return w
}
