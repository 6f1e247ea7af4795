package markdown

import (
	"github.com/charmbracelet/glamour"
)

// noMarginStyle removes document margins.
const noMarginStyle = `{
	"document": {
		"margin": 0,
		"block_prefix": "",
		"block_suffix": ""
	}
}`

// Previewer renders Markdown as styled terminal text.
type Previewer struct {
	renderer *glamour.TermRenderer
	width    int
}

// NewPreviewer creates a previewer wrapping at width. style is a glamour
// style name such as "dark", "light" or "notty"; empty means "dark".
func NewPreviewer(width int, style string) (*Previewer, error) {
	if style == "" {
		style = "dark"
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStylePath(style),
		glamour.WithStylesFromJSONBytes([]byte(noMarginStyle)),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}
	return &Previewer{renderer: r, width: width}, nil
}

func (p *Previewer) Width() int {
	return p.width
}

func (p *Previewer) Render(md string) (string, error) {
	return p.renderer.Render(md)
}

// Preview renders md once with a new previewer.
func Preview(md string, width int, style string) (string, error) {
	p, err := NewPreviewer(width, style)
	if err != nil {
		return "", err
	}
	return p.Render(md)
}
