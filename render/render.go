package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/revelaction/childes/extract"
)

var (
	Yellow    = "\033[0;33m"
	Teal      = "\033[1;36m"
	Gray      = "\033[0;37m"
	Off       = "\033[0m"
	Yellow256 = "\033[1;38;5;130m"
	Grey256   = "\033[1;38;5;145m"
)

// Renderer renders extraction results.
type Renderer interface {
	Render(res extract.Result)
}

// TextRenderer writes tokens as text lines, one line per utterance
// group or one line for a flat sequence.
type TextRenderer struct {
	W io.Writer

	HasColor bool

	// HasPrefix prepends the utterance index to each group line.
	HasPrefix bool
}

// NewTextRenderer creates a TextRenderer writing to w.
func NewTextRenderer(w io.Writer) *TextRenderer {
	return &TextRenderer{W: w, HasPrefix: true}
}

func (r *TextRenderer) Render(res extract.Result) {
	if !res.Grouped {
		fmt.Fprintln(r.W, r.line(res.Tokens))
		return
	}

	for i, g := range res.Groups {
		prefix := ""
		if r.HasPrefix {
			prefix = fmt.Sprintf("✍  %d ", i)
		}

		r.Sentence(g, prefix)
	}
}

// Sentence writes one utterance token group as a single line.
func (r *TextRenderer) Sentence(tokens []extract.Token, prefix string) {
	if r.HasColor {
		prefix = Yellow256 + prefix + Off
	}

	fmt.Fprintf(r.W, "%s%s\n", prefix, r.line(tokens))
}

func (r *TextRenderer) line(tokens []extract.Token) string {
	parts := make([]string, 0, len(tokens))
	for _, t := range tokens {
		parts = append(parts, r.token(t))
	}

	return strings.Join(parts, " ")
}

func (r *TextRenderer) token(t extract.Token) string {
	if t.Rel == "" {
		return t.Text
	}

	if r.HasColor {
		return t.Text + Grey256 + "(" + t.Rel + ")" + Off
	}

	return t.Text + "(" + t.Rel + ")"
}

// compile-time interface check
var _ Renderer = (*TextRenderer)(nil)
