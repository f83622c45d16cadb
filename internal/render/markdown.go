// Package render renders assistant replies as terminal Markdown and holds the
// lipgloss colour themes used by the screens.
package render

import (
	"os"
	"sync"

	"github.com/charmbracelet/glamour"

	"github.com/hosbabel/hosbabel/internal/config"
)

// DefaultWidth is the wrap width used when none is given
const DefaultWidth = 80

// Options selects the reply style and wrap width
type Options struct {
	// Style is "babel", a glamour standard style name, or a path to a JSON style
	Style string
	Width int
}

// DefaultOptions returns the babel style at the default width
func DefaultOptions() Options {
	return Options{Style: ThemeBabel, Width: DefaultWidth}
}

// WithWidth returns a copy of o wrapping at width
func (o Options) WithWidth(width int) Options {
	o.Width = width
	return o
}

// OptionsFromConfig builds render options from the markdown settings.
// GLAMOUR_STYLE, when set, overrides the configured style.
func OptionsFromConfig(cfg config.Config, width int) Options {
	opts := DefaultOptions()
	if cfg.Markdown.Style != "" {
		opts.Style = cfg.Markdown.Style
	}
	if style := os.Getenv("GLAMOUR_STYLE"); style != "" {
		opts.Style = style
	}
	if width > 0 {
		opts.Width = width
	}
	return opts
}

// Markdown renders content with the renderer for opts.Style
func Markdown(content string, opts Options) (string, error) {
	return rendererFor(opts.Style).Render(content, opts.Width)
}

// Renderer renders replies in one Markdown style. glamour.TermRenderer is not
// safe for concurrent Render calls, so renderers are pooled per wrap width.
type Renderer struct {
	style string

	mu    sync.Mutex
	pools map[int]*sync.Pool
}

// NewRenderer creates a Renderer for style; empty means babel
func NewRenderer(style string) *Renderer {
	if style == "" {
		style = ThemeBabel
	}
	return &Renderer{style: style, pools: make(map[int]*sync.Pool)}
}

// Style returns the style name the renderer was built for
func (r *Renderer) Style() string {
	return r.style
}

// Render wraps content at width (DefaultWidth when width <= 0)
func (r *Renderer) Render(content string, width int) (string, error) {
	if width <= 0 {
		width = DefaultWidth
	}
	pool := r.pool(width)

	tr, ok := pool.Get().(*glamour.TermRenderer)
	if !ok || tr == nil {
		var err error
		if tr, err = r.newTermRenderer(width); err != nil {
			return "", err
		}
	}
	defer pool.Put(tr)

	return tr.Render(content)
}

// Widths returns how many wrap widths have a pool
func (r *Renderer) Widths() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.pools)
}

func (r *Renderer) pool(width int) *sync.Pool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.pools[width]; ok {
		return p
	}
	p := &sync.Pool{}
	r.pools[width] = p
	return p
}

func (r *Renderer) newTermRenderer(width int) (*glamour.TermRenderer, error) {
	return glamour.NewTermRenderer(
		styleOption(r.style),
		glamour.WithWordWrap(width),
		glamour.WithTableWrap(true),
		glamour.WithEmoji(),
		glamour.WithPreservedNewLines(),
	)
}

var renderers sync.Map // style -> *Renderer

func rendererFor(style string) *Renderer {
	if style == "" {
		style = ThemeBabel
	}
	if r, ok := renderers.Load(style); ok {
		return r.(*Renderer)
	}
	r, _ := renderers.LoadOrStore(style, NewRenderer(style))
	return r.(*Renderer)
}
