package render

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"

	"github.com/shwimple/shwimple/pkg/dom"
)

// ErrNoDocument is returned when rendering a nil or unrooted Document.
var ErrNoDocument = errors.New("render: document has no root")

// RendererConfig configures the HTML renderer. The zero value produces the
// same bytes as dom.Document.HTML.
type RendererConfig struct {
	// Doctype prefixes documents with <!DOCTYPE html>.
	Doctype bool

	// VoidElements renders void elements (br, img, meta, ...) without a
	// closing tag.
	VoidElements bool

	// Pretty enables indented output. Text is never re-wrapped.
	Pretty bool

	// Indent is the string used for each indentation level in pretty mode.
	// Defaults to two spaces if not specified.
	Indent string
}

// Renderer writes node trees as HTML. A Renderer holds no per-render state
// and may be shared between goroutines.
type Renderer struct {
	config RendererConfig
	md     *converter.Converter
}

// NewRenderer creates a new Renderer with the given configuration.
func NewRenderer(config RendererConfig) *Renderer {
	if config.Indent == "" {
		config.Indent = "  "
	}
	return &Renderer{
		config: config,
		md: converter.NewConverter(
			converter.WithPlugins(
				base.NewBasePlugin(),
				commonmark.NewCommonmarkPlugin(),
				table.NewTablePlugin(),
			),
		),
	}
}

// RenderToString renders a document to a string.
func (r *Renderer) RenderToString(doc *dom.Document) (string, error) {
	var buf bytes.Buffer
	if err := r.RenderToWriter(&buf, doc); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// RenderToWriter streams a document to w.
func (r *Renderer) RenderToWriter(w io.Writer, doc *dom.Document) error {
	if doc == nil || doc.Root() == "" {
		return ErrNoDocument
	}

	if r.config.Doctype {
		if _, err := io.WriteString(w, "<!DOCTYPE html>"); err != nil {
			return err
		}
		if r.config.Pretty {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
	}

	root := &dom.Node{Kind: dom.KindNode, Tag: doc.Root(), Children: doc.Children()}
	return r.renderNode(w, root, 0, r.config.Pretty)
}

// RenderNode streams a single subtree to w.
func (r *Renderer) RenderNode(w io.Writer, node *dom.Node) error {
	return r.renderNode(w, node, 0, false)
}

// Markdown renders doc and converts its body to Markdown.
func (r *Renderer) Markdown(doc *dom.Document) (string, error) {
	if doc == nil || doc.Root() == "" {
		return "", ErrNoDocument
	}

	var buf bytes.Buffer
	if err := r.renderNode(&buf, doc.Body, 0, false); err != nil {
		return "", err
	}
	md, err := r.md.ConvertString(buf.String())
	if err != nil {
		return "", fmt.Errorf("convert to markdown: %w", err)
	}
	return md, nil
}

// renderNode dispatches rendering based on node kind. ownLine is set in
// pretty mode when the node starts on a fresh, indented line.
func (r *Renderer) renderNode(w io.Writer, node *dom.Node, depth int, ownLine bool) error {
	if node == nil {
		return nil
	}
	if ownLine {
		r.writeIndent(w, depth)
	}
	if node.IsText() {
		if _, err := io.WriteString(w, node.TextContent); err != nil {
			return err
		}
	} else if err := r.renderElement(w, node, depth); err != nil {
		return err
	}
	if ownLine {
		_, err := io.WriteString(w, "\n")
		return err
	}
	return nil
}

// renderElement renders a tag with its attributes and children.
func (r *Renderer) renderElement(w io.Writer, node *dom.Node, depth int) error {
	tag := node.Tag

	var open strings.Builder
	open.WriteByte('<')
	open.WriteString(tag)
	for _, a := range dom.ResolveAttributes(node) {
		open.WriteByte(' ')
		open.WriteString(a.Key)
		open.WriteString(`="`)
		open.WriteString(a.Value)
		open.WriteByte('"')
	}
	open.WriteByte('>')
	if _, err := io.WriteString(w, open.String()); err != nil {
		return err
	}

	if r.config.VoidElements && isVoidElement(tag) {
		return nil
	}

	if _, err := io.WriteString(w, node.TextContent); err != nil {
		return err
	}

	block := r.config.Pretty && hasBlockChildren(node)
	if block {
		if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}
	}
	for _, child := range node.Children {
		if err := r.renderNode(w, child, depth+1, block); err != nil {
			return err
		}
	}
	if block {
		r.writeIndent(w, depth)
	}

	_, err := fmt.Fprintf(w, "</%s>", tag)
	return err
}

// hasBlockChildren reports whether node's children go on their own lines.
// Inline elements and elements holding only text stay on one line.
func hasBlockChildren(node *dom.Node) bool {
	if isInlineElement(node.Tag) {
		return false
	}
	for _, child := range node.Children {
		if child != nil && !child.IsText() {
			return true
		}
	}
	return false
}

func (r *Renderer) writeIndent(w io.Writer, depth int) {
	io.WriteString(w, strings.Repeat(r.config.Indent, depth))
}
