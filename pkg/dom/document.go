package dom

import "strings"

// Section anchor ids. Boilerplate sections carry the id as both id and class.
const (
	SectionHeader  = "header-section"
	SectionNav     = "nav-section"
	SectionContent = "content-section"
	SectionAside   = "aside-section"
	SectionFooter  = "footer-section"
)

// rootTag is the synthesized page wrapper.
const rootTag = "html"

// Layout selects which structural sections a boilerplate Document starts with.
type Layout uint8

const (
	LayoutStandard Layout = iota // header(+nav), main, footer
	LayoutDocs                   // header(+nav), main, aside, footer
	LayoutLanding                // header without nav, main, footer
)

// String returns the layout name.
func (l Layout) String() string {
	switch l {
	case LayoutDocs:
		return "docs"
	case LayoutLanding:
		return "landing"
	default:
		return "standard"
	}
}

// ParseLayout resolves a layout name. Empty and unknown names resolve to
// LayoutStandard; ok is false only for unknown non-empty names.
func ParseLayout(name string) (Layout, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "standard":
		return LayoutStandard, true
	case "docs":
		return LayoutDocs, true
	case "landing":
		return LayoutLanding, true
	default:
		return LayoutStandard, false
	}
}

// Document is the aggregate root of a page. It owns the head and body roots;
// the html wrapper is not a node and only appears during serialization.
//
// A Document is mutated in place by build steps and must be owned by a single
// goroutine for its whole lifetime.
type Document struct {
	Head *Node
	Body *Node

	root       string
	childNodes []*Node
}

// NewEmpty returns a Document with bare head and body roots.
func NewEmpty() *Document {
	d := &Document{
		Head: newHead(),
		Body: newBody(),
		root: rootTag,
	}
	d.childNodes = []*Node{d.Head, d.Body}
	return d
}

// NewBoilerplate returns a Document pre-populated for layout. An empty title
// still produces an (empty) title node.
func NewBoilerplate(title string, layout Layout) *Document {
	d := NewEmpty()

	d.Head.AppendChild(metaNode(map[string]string{"charset": "utf-8"}))
	d.Head.AppendChild(metaNode(map[string]string{
		"name":    "viewport",
		"content": "width=device-width, initial-scale=1.0",
	}))
	d.Head.AppendChild(NewNode("title", title))

	header := NewElement("header", SectionHeader, SectionHeader)
	if layout != LayoutLanding {
		header.AppendChild(NewElement("nav", SectionNav, SectionNav))
	}
	d.Body.AppendChild(header)
	d.Body.AppendChild(NewElement("main", SectionContent, SectionContent))
	if layout == LayoutDocs {
		d.Body.AppendChild(NewElement("aside", SectionAside, SectionAside))
	}
	d.Body.AppendChild(NewElement("footer", SectionFooter, SectionFooter))

	return d
}

func metaNode(attrs map[string]string) *Node {
	n := NewNode("meta", "")
	n.Attributes = attrs
	return n
}

// Root returns the tag of the synthesized page wrapper.
func (d *Document) Root() string {
	return d.root
}

// Children returns the top-level nodes walked by the serializer (head, body).
func (d *Document) Children() []*Node {
	return d.childNodes
}

// CreateElement returns a detached element node.
func (d *Document) CreateElement(tag, id, className string) *Node {
	return NewElement(tag, id, className)
}

// QuerySelectorByID searches the top-level nodes only; nested ids are not
// found. Returns nil when no element matches.
func (d *Document) QuerySelectorByID(id string) *Node {
	for _, n := range d.childNodes {
		if n.IsElement() && n.ID == id {
			return n
		}
	}
	return nil
}

// QuerySelectorByIndex returns the i-th top-level node, or nil.
func (d *Document) QuerySelectorByIndex(i int) *Node {
	// The guard only rejects i > len; i == len falls through to the lookup,
	// which finds nothing.
	if i > len(d.childNodes) {
		return nil
	}
	if i < 0 || i >= len(d.childNodes) {
		return nil
	}
	return d.childNodes[i]
}

// SetTitle sets the text of the head title node, creating it if needed.
// Blank titles are ignored.
func (d *Document) SetTitle(title string) {
	if isBlank(title) {
		return
	}
	for _, n := range d.Head.Children {
		if n.Tag == "title" {
			n.TextContent = title
			return
		}
	}
	d.Head.AppendChild(NewNode("title", title))
}

// AddStyle appends an inline style element to head. Blank CSS is ignored.
func (d *Document) AddStyle(css string) {
	if isBlank(css) {
		return
	}
	d.Head.AppendChild(NewNode("style", css))
}

// AddStylesheet appends a stylesheet link to head. Blank hrefs are ignored.
func (d *Document) AddStylesheet(href string) {
	if isBlank(href) {
		return
	}
	link := NewNode("link", "")
	link.Attributes = map[string]string{
		"rel":  "stylesheet",
		"type": "text/css",
		"href": href,
	}
	d.Head.AppendChild(link)
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
