package tui

import (
	"bytes"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/lipgloss"
)

// Output box style with subtle border
var outputBoxStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("8")).
	Padding(0, 1)

// chromaStyle is the color scheme for syntax highlighting.
// Using "dracula" for good contrast on dark terminals.
var chromaStyle = styles.Get("dracula")

// chromaFormatter outputs 256-color ANSI codes for terminal display.
var chromaFormatter = formatters.Get("terminal256")

func init() {
	// Fallback if styles/formatters not found
	if chromaStyle == nil {
		chromaStyle = styles.Fallback
	}
	if chromaFormatter == nil {
		chromaFormatter = formatters.Fallback
	}
}

// highlightOutput applies JSON syntax highlighting to call results that
// look like JSON; anything else renders plain.
func highlightOutput(input string) string {
	if input == "" {
		return input
	}

	trimmed := strings.TrimSpace(input)
	if !strings.HasPrefix(trimmed, "{") && !strings.HasPrefix(trimmed, "[") {
		return plainStyle.Render(input)
	}

	lexer := lexers.Get("json")
	if lexer == nil {
		return plainStyle.Render(input)
	}
	lexer = chroma.Coalesce(lexer)

	iterator, err := lexer.Tokenise(nil, input)
	if err != nil {
		return plainStyle.Render(input)
	}

	var buf bytes.Buffer
	if err := chromaFormatter.Format(&buf, chromaStyle, iterator); err != nil {
		return plainStyle.Render(input)
	}

	return strings.TrimRight(buf.String(), "\n")
}

var plainStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
