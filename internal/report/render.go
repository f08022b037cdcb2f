package report

import (
	"bytes"
	"context"
	"fmt"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// Renderer converts report Markdown to an HTML fragment.
type Renderer struct {
	md    goldmark.Markdown
	style string
}

// NewRenderer creates a Renderer with GFM tables and chroma highlighting in
// the given style. Empty style uses DefaultStyle.
func NewRenderer(style string) (*Renderer, error) {
	if style == "" {
		style = DefaultStyle
	}
	if err := ValidateStyle(style); err != nil {
		return nil, err
	}

	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithStyle(style),
				highlighting.WithFormatOptions(
					chromahtml.TabWidth(4),
				),
			),
		),
		goldmark.WithRendererOptions(
			html.WithXHTML(),
			// Raw HTML in titles or rule names is omitted, never rendered.
		),
	)

	return &Renderer{md: md, style: style}, nil
}

// Style returns the chroma style name in use.
func (r *Renderer) Style() string {
	return r.style
}

// ToHTML converts Markdown to an HTML fragment. Goldmark does not take a
// context, so conversion runs in a goroutine and cancellation abandons it.
func (r *Renderer) ToHTML(ctx context.Context, markdown string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	type result struct {
		html string
		err  error
	}

	done := make(chan result, 1)

	go func() {
		var buf bytes.Buffer
		if err := r.md.Convert([]byte(markdown), &buf); err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrHTMLConversion, err)}
			return
		}
		done <- result{html: buf.String()}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-done:
		return res.html, res.err
	}
}
