package report

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"os"
	"time"

	"github.com/alnah/go-wordeq/internal/assets"
	"github.com/alnah/go-wordeq/internal/dateutil"
	"github.com/alnah/go-wordeq/internal/fileutil"
)

// NoCSS disables the page stylesheet.
const NoCSS = "none"

// Generator turns conversion results into HTML pages. Create with
// NewGenerator. A Generator is safe for concurrent use.
type Generator struct {
	renderer *Renderer
	page     *template.Template
	css      string
	now      func() time.Time
}

// Option configures a Generator.
type Option func(*generatorConfig)

type generatorConfig struct {
	style     string
	css       string
	assetsDir string
	now       func() time.Time
}

// WithStyle sets the chroma highlight style.
func WithStyle(name string) Option {
	return func(c *generatorConfig) { c.style = name }
}

// WithCSS sets the page stylesheet: a style name served by the assets
// resolver, a path to a .css file, or NoCSS.
func WithCSS(nameOrPath string) Option {
	return func(c *generatorConfig) { c.css = nameOrPath }
}

// WithAssetsDir adds a directory of custom styles and templates that take
// precedence over the built-in ones.
func WithAssetsDir(dir string) Option {
	return func(c *generatorConfig) { c.assetsDir = dir }
}

// WithNow sets the clock used to resolve "auto" dates.
func WithNow(now func() time.Time) Option {
	return func(c *generatorConfig) { c.now = now }
}

// NewGenerator loads the stylesheet and page template once and returns a
// Generator. Unknown highlight styles return ErrUnknownStyle, unknown page
// styles assets.ErrStyleNotFound.
func NewGenerator(opts ...Option) (*Generator, error) {
	cfg := generatorConfig{
		style: DefaultStyle,
		css:   assets.DefaultStyleName,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	renderer, err := NewRenderer(cfg.style)
	if err != nil {
		return nil, err
	}

	resolver, err := assets.NewResolver(cfg.assetsDir)
	if err != nil {
		return nil, err
	}

	css, err := loadCSS(resolver, cfg.css)
	if err != nil {
		return nil, err
	}

	pageSrc, err := resolver.LoadTemplate(assets.ReportTemplateName)
	if err != nil {
		return nil, err
	}
	page, err := template.New(assets.ReportTemplateName).Parse(pageSrc)
	if err != nil {
		return nil, fmt.Errorf("parsing report template: %w", err)
	}

	return &Generator{renderer: renderer, page: page, css: css, now: cfg.now}, nil
}

// loadCSS resolves a stylesheet name or path.
func loadCSS(resolver *assets.Resolver, nameOrPath string) (string, error) {
	switch {
	case nameOrPath == "" || nameOrPath == NoCSS:
		return "", nil
	case fileutil.IsFilePath(nameOrPath):
		data, err := os.ReadFile(nameOrPath) // #nosec G304 -- user-provided stylesheet
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrCSSRead, err)
		}
		return string(data), nil
	default:
		return resolver.LoadStyle(nameOrPath)
	}
}

// Generate renders d as a standalone HTML5 document.
func (g *Generator) Generate(ctx context.Context, d Data) (string, error) {
	date, err := dateutil.Resolve(d.Date, g.now())
	if err != nil {
		return "", err
	}
	d.Date = date

	body, err := g.renderer.ToHTML(ctx, BuildMarkdown(d))
	if err != nil {
		return "", err
	}

	title := d.Title
	if title == "" {
		title = DefaultTitle
	}

	var buf bytes.Buffer
	err = g.page.Execute(&buf, struct {
		Title string
		Body  template.HTML
	}{
		Title: title,
		Body:  template.HTML(body), // #nosec G203 -- goldmark output, raw HTML disabled
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTemplateRender, err)
	}

	return InjectCSS(buf.String(), g.css), nil
}
