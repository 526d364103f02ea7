package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/verte-zerg/agentshift/internal/content"
)

type sectionRenderer func(s content.Section) []string

var sectionRenderers = map[content.SectionKind]sectionRenderer{
	content.SectionParagraph: renderParagraph,
	content.SectionBullets:   renderBullets,
	content.SectionSteps:     renderSteps,
	content.SectionCallout:   renderCallout,
}

// SectionLines lays out one section. Unknown kinds fall back to their body
// and items so nothing in the content is silently dropped.
func SectionLines(s content.Section) []string {
	render, ok := sectionRenderers[s.Kind]
	if !ok {
		render = renderFallback
	}
	return render(s)
}

// RenderSections prints profile sections separated by blank lines.
func RenderSections(w io.Writer, sections []content.Section) error {
	for _, s := range sections {
		for _, line := range SectionLines(s) {
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w, ""); err != nil {
			return err
		}
	}
	return nil
}

func heading(s content.Section) []string {
	if s.Title == "" {
		return nil
	}
	return []string{content.Glyph(s.Icon) + " " + s.Title}
}

func renderParagraph(s content.Section) []string {
	return append(heading(s), s.Body)
}

func renderBullets(s content.Section) []string {
	lines := heading(s)
	for _, item := range s.Items {
		lines = append(lines, "  - "+item)
	}
	return lines
}

func renderSteps(s content.Section) []string {
	lines := heading(s)
	for i, item := range s.Items {
		lines = append(lines, fmt.Sprintf("  %d. %s", i+1, item))
	}
	return lines
}

func renderCallout(s content.Section) []string {
	text := s.Body
	if s.Title != "" {
		text = s.Title + ": " + text
	}
	return []string{content.Glyph(s.Icon) + " " + text}
}

func renderFallback(s content.Section) []string {
	lines := heading(s)
	if s.Body != "" {
		lines = append(lines, s.Body)
	}
	if len(s.Items) > 0 {
		lines = append(lines, "  "+strings.Join(s.Items, ", "))
	}
	return lines
}
