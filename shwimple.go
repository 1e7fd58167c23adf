// Package shwimple composes server-rendered HTML pages from components.
//
// This is the recommended import for most applications:
//
//	import "github.com/shwimple/shwimple"
//
// Usage:
//
//	page := shwimple.DefinePageWithBoilerplate(dom.LayoutLanding, "Welcome",
//	    shwimple.Head(shwimple.Static(el.Stylesheet("/app.css"))),
//	    shwimple.Body(
//	        shwimple.Main(shwimple.Static(el.H1("Hello"), el.P("Built on the server."))),
//	    ),
//	)
//	html, ok := page.RenderToString()
package shwimple

import (
	"github.com/shwimple/shwimple/el"
	"github.com/shwimple/shwimple/pkg/builder"
	"github.com/shwimple/shwimple/pkg/dom"
)

// =============================================================================
// Components
// =============================================================================

// Component produces nodes for a section. A component may also mutate the
// document directly through the Context and return nothing.
type Component interface {
	Render(ctx *Context) []*dom.Node
}

// ComponentFunc adapts a function to Component.
type ComponentFunc func(ctx *Context) []*dom.Node

// Render calls f(ctx).
func (f ComponentFunc) Render(ctx *Context) []*dom.Node {
	return f(ctx)
}

// Single adapts a function returning one node. A nil node contributes
// nothing.
func Single(fn func(ctx *Context) *dom.Node) Component {
	return ComponentFunc(func(ctx *Context) []*dom.Node {
		if n := fn(ctx); n != nil {
			return []*dom.Node{n}
		}
		return nil
	})
}

// Static returns a component that always yields nodes.
//
// The same node values are mounted on every render. Pages rendered more than
// once should build nodes inside a ComponentFunc instead so each Document
// owns its own tree.
func Static(nodes ...*dom.Node) Component {
	return ComponentFunc(func(*Context) []*dom.Node {
		return nodes
	})
}

type namedComponent struct {
	Component
	name string
}

func (n namedComponent) DisplayName() string {
	return n.name
}

// Define attaches a display name to a component. The name is metadata for
// tooling and logs; it does not affect rendering.
func Define(name string, c Component) Component {
	return namedComponent{Component: c, name: name}
}

// DisplayName returns the name given to c by Define, or "".
func DisplayName(c Component) string {
	if n, ok := c.(interface{ DisplayName() string }); ok {
		return n.DisplayName()
	}
	return ""
}

// =============================================================================
// Mounting
// =============================================================================

// Target names where a section mounts its nodes.
type Target uint8

const (
	TargetHead Target = iota
	TargetBody
	TargetMain
)

// String returns the target name.
func (t Target) String() string {
	switch t {
	case TargetHead:
		return "head"
	case TargetBody:
		return "body"
	case TargetMain:
		return "main"
	default:
		return "unknown"
	}
}

// Context is handed to components while a section runs.
type Context struct {
	Document *dom.Document
	Head     *dom.Node
	Body     *dom.Node

	// El and Text are the element DSL constructors.
	El   func(tag string, args ...any) *dom.Node
	Text func(value any) *dom.Node
}

func newContext(doc *dom.Document) *Context {
	return &Context{
		Document: doc,
		Head:     doc.Head,
		Body:     doc.Body,
		El:       el.El,
		Text:     el.Text,
	}
}

// Mount appends nodes to target. nil nodes are skipped.
func (c *Context) Mount(target Target, nodes ...*dom.Node) {
	mount(c.Document, target, nodes)
}

func mount(doc *dom.Document, target Target, nodes []*dom.Node) {
	if len(nodes) == 0 {
		return
	}

	var parent *dom.Node
	switch target {
	case TargetHead:
		parent = doc.Head
	case TargetBody:
		parent = doc.Body
	default:
		parent = findMain(doc.Body)
	}

	for _, n := range nodes {
		if n != nil {
			parent.AppendChild(n)
		}
	}
}

// findMain searches body breadth-first for a main element or the content
// section. When neither exists a main#content-section is appended to body.
func findMain(body *dom.Node) *dom.Node {
	queue := append([]*dom.Node(nil), body.Children...)
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		if n == nil {
			continue
		}
		if n.Tag == "main" || (n.IsElement() && n.ID == dom.SectionContent) {
			return n
		}
		queue = append(queue, n.Children...)
	}

	main := dom.NewElement("main", dom.SectionContent, dom.SectionContent)
	body.AppendChild(main)
	return main
}

// =============================================================================
// Sections
// =============================================================================

// Section is a build step that renders components and mounts their nodes at
// a target. A Section is also a Component: nested inside another section it
// applies itself to the same document and contributes no nodes of its own.
type Section struct {
	target     Target
	components []Component
}

// Head mounts the components' nodes into the document head.
func Head(components ...Component) *Section {
	return &Section{target: TargetHead, components: components}
}

// Body mounts the components' nodes at the end of the body.
func Body(components ...Component) *Section {
	return &Section{target: TargetBody, components: components}
}

// Main mounts the components' nodes into the main content area.
func Main(components ...Component) *Section {
	return &Section{target: TargetMain, components: components}
}

// Target returns where the section mounts.
func (s *Section) Target() Target {
	return s.target
}

// Apply implements builder.Step. A nil section leaves doc unchanged.
func (s *Section) Apply(doc *dom.Document) *dom.Document {
	if s == nil || doc == nil {
		return doc
	}
	ctx := newContext(doc)
	for _, c := range s.components {
		if c == nil {
			continue
		}
		mount(doc, s.target, c.Render(ctx))
	}
	return doc
}

// Render implements Component.
func (s *Section) Render(ctx *Context) []*dom.Node {
	s.Apply(ctx.Document)
	return nil
}

var (
	_ builder.Step = (*Section)(nil)
	_ Component    = (*Section)(nil)
)
