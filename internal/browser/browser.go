// Package browser opens the project links in the platform's URL handler.
package browser

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	webbrowser "github.com/pkg/browser"

	"github.com/hosbabel/hosbabel/internal/models"
)

// Link names one of the project's external pages
type Link string

const (
	LinkWeb  Link = "web"
	LinkRepo Link = "repo"
)

// AllLinks returns the openable links
func AllLinks() []Link {
	return []Link{LinkWeb, LinkRepo}
}

// String returns the link name
func (l Link) String() string {
	return string(l)
}

// URL returns the address behind the link
func (l Link) URL() string {
	switch l {
	case LinkWeb:
		return models.RepoPageURL
	case LinkRepo:
		return models.RepoURL
	default:
		return ""
	}
}

// ParseLink parses a link name
func ParseLink(s string) (Link, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "web", "site", "page":
		return LinkWeb, nil
	case "repo", "github", "source":
		return LinkRepo, nil
	default:
		return "", fmt.Errorf("unknown link: %s (valid: web, repo)", s)
	}
}

// Runner hands a URL to the platform's default handler
type Runner func(rawURL string) error

// Opener opens http(s) URLs in the user's browser
type Opener struct {
	run Runner
}

// OpenerOption configures an Opener
type OpenerOption func(*Opener)

// WithRunner replaces the handler launcher (tests record instead of launching)
func WithRunner(r Runner) OpenerOption {
	return func(o *Opener) {
		o.run = r
	}
}

// NewOpener creates an Opener backed by the system browser
func NewOpener(opts ...OpenerOption) *Opener {
	o := &Opener{run: webbrowser.OpenURL}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Open validates rawURL and hands it to the platform handler. The handler is
// not bound to ctx, so quitting the screen does not kill it mid hand-off.
func (o *Opener) Open(_ context.Context, rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("refusing to open %q: not an http(s) URL", rawURL)
	}

	if err := o.run(rawURL); err != nil {
		return fmt.Errorf("failed to open %s: %w", rawURL, err)
	}
	return nil
}

// OpenLink opens one of the project links
func (o *Opener) OpenLink(ctx context.Context, l Link) error {
	u := l.URL()
	if u == "" {
		return fmt.Errorf("unknown link: %s", l)
	}
	return o.Open(ctx, u)
}

func init() {
	// xdg-open and friends print to the terminal the TUI is drawing on.
	webbrowser.Stdout = io.Discard
	webbrowser.Stderr = io.Discard
}
