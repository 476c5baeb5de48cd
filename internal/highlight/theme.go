package highlight

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme maps token categories to terminal styles.
type Theme struct {
	// Name is the display name of the theme.
	Name string

	Comment    lipgloss.Style
	Keyword    lipgloss.Style
	Command    lipgloss.Style
	Function   lipgloss.Style
	Literal    lipgloss.Style
	Identifier lipgloss.Style
	Operator   lipgloss.Style
	Datatype   lipgloss.Style
	Invalid    lipgloss.Style
	Plain      lipgloss.Style
}

// StyleFor returns the style for c. Every category has a style.
func (t *Theme) StyleFor(c Category) lipgloss.Style {
	switch c {
	case CategoryNull:
		return t.Plain
	case CategoryCommentBlock, CategoryCommentLine:
		return t.Comment
	case CategoryKeywordStandard:
		return t.Keyword
	case CategoryKeywordCommand:
		return t.Command
	case CategoryKeywordFunction:
		return t.Function
	case CategoryLiteralString:
		return t.Literal
	case CategoryLiteralQuotedIdent:
		return t.Identifier
	case CategoryOperator:
		return t.Operator
	case CategoryDatatype:
		return t.Datatype
	case CategoryInvalid:
		return t.Invalid
	}
	return t.Plain
}

// RenderLine renders line with its token chain. tokens must partition line.
func (t *Theme) RenderLine(line []rune, tokens []Token) string {
	var sb strings.Builder
	pos := 0
	for _, tok := range tokens {
		end := min(pos+tok.Length, len(line))
		sb.WriteString(t.StyleFor(tok.Category).Render(string(line[pos:end])))
		pos = end
	}
	return sb.String()
}

// DefaultTheme returns a dark theme.
func DefaultTheme() *Theme {
	return &Theme{
		Name:       "Default Dark",
		Comment:    lipgloss.NewStyle().Foreground(lipgloss.Color("#6A9955")).Italic(true),
		Keyword:    lipgloss.NewStyle().Foreground(lipgloss.Color("#569CD6")).Bold(true),
		Command:    lipgloss.NewStyle().Foreground(lipgloss.Color("#C586C0")).Bold(true),
		Function:   lipgloss.NewStyle().Foreground(lipgloss.Color("#DCDCAA")),
		Literal:    lipgloss.NewStyle().Foreground(lipgloss.Color("#CE9178")),
		Identifier: lipgloss.NewStyle().Foreground(lipgloss.Color("#9CDCFE")),
		Operator:   lipgloss.NewStyle().Foreground(lipgloss.Color("#D4D4D4")),
		Datatype:   lipgloss.NewStyle().Foreground(lipgloss.Color("#4EC9B0")),
		Invalid:    lipgloss.NewStyle().Foreground(lipgloss.Color("#F44747")).Underline(true),
		Plain:      lipgloss.NewStyle(),
	}
}

// PlainTheme renders text unstyled.
func PlainTheme() *Theme {
	s := lipgloss.NewStyle()
	return &Theme{
		Name: "Plain", Comment: s, Keyword: s, Command: s, Function: s, Literal: s,
		Identifier: s, Operator: s, Datatype: s, Invalid: s, Plain: s,
	}
}
