package style

import (
	"regexp"

	"github.com/charmbracelet/lipgloss"
)

// MarkupParser handles parsing and rendering of markup tags such as
// "[path]/lib/firmware[/path]".
type MarkupParser struct {
	styles   map[string]lipgloss.Style
	patterns map[string]*regexp.Regexp
	plain    bool
}

// NewMarkupParser creates a parser over s. When plain is true tags are
// stripped and no styling is applied.
func NewMarkupParser(s *Styles, plain bool) *MarkupParser {
	p := &MarkupParser{
		styles:   make(map[string]lipgloss.Style),
		patterns: make(map[string]*regexp.Regexp),
		plain:    plain,
	}
	p.AddStyle("title", s.Title)
	p.AddStyle("success", s.Success)
	p.AddStyle("error", s.Error)
	p.AddStyle("warning", s.Warning)
	p.AddStyle("muted", s.Muted)
	p.AddStyle("path", s.Path)
	p.AddStyle("code", s.Code)
	p.AddStyle("bold", s.Bold)
	return p
}

// AddStyle allows adding custom styles
func (p *MarkupParser) AddStyle(tag string, style lipgloss.Style) {
	p.styles[tag] = style
	p.patterns[tag] = regexp.MustCompile(`\[` + regexp.QuoteMeta(tag) + `\](.*?)\[/` + regexp.QuoteMeta(tag) + `\]`)
}

// Render processes markup text and returns styled output
func (p *MarkupParser) Render(text string) string {
	result := text

	// Keep processing until no more changes are made, so nested tags work
	for {
		oldResult := result

		for tag, pattern := range p.patterns {
			style := p.styles[tag]
			result = pattern.ReplaceAllStringFunc(result, func(match string) string {
				submatch := pattern.FindStringSubmatch(match)
				if len(submatch) != 2 {
					return match
				}
				if p.plain {
					return submatch[1]
				}
				return style.Render(submatch[1])
			})
		}

		if result == oldResult {
			return result
		}
	}
}
