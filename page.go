package shwimple

import (
	"github.com/shwimple/shwimple/pkg/builder"
	"github.com/shwimple/shwimple/pkg/dom"
)

// Page is a defined page backed by a Builder.
type Page struct {
	builder *builder.Builder
}

// DefinePage creates a standard-layout page from sections.
func DefinePage(title string, sections ...builder.Step) *Page {
	return DefinePageWithBoilerplate(dom.LayoutStandard, title, sections...)
}

// DefinePageWithBoilerplate creates a page on the given layout.
func DefinePageWithBoilerplate(layout dom.Layout, title string, sections ...builder.Step) *Page {
	return NewPage(builder.New(builder.WithTitle(title), builder.WithLayout(layout)), sections...)
}

// NewPage wraps an existing builder and appends sections to it.
func NewPage(b *builder.Builder, sections ...builder.Step) *Page {
	for _, s := range sections {
		if s != nil {
			b.AddRenderFunction(s)
		}
	}
	return &Page{builder: b}
}

// Render builds the page. It returns nil when the page has no sections.
func (p *Page) Render() *dom.Document {
	return p.builder.Build()
}

// RenderToString builds and serializes the page. ok is false when the page
// has no sections.
func (p *Page) RenderToString() (string, bool) {
	return p.builder.BuildAsString()
}

// Builder exposes the underlying builder so callers can add or reorder
// steps after definition.
func (p *Page) Builder() *builder.Builder {
	return p.builder
}
