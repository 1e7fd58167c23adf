// Package render writes dom Documents as HTML or Markdown.
//
// With a zero RendererConfig the output is byte-identical to
// dom.Document.HTML. Options layer output conventions on top:
//
//   - Doctype: prefix <!DOCTYPE html>
//   - VoidElements: omit closing tags for br, img, meta and friends
//   - Pretty: indent block-level children
//
// # Basic Usage
//
//	renderer := render.NewRenderer(render.RendererConfig{Doctype: true})
//	html, err := renderer.RenderToString(page.Render())
//
// To stream HTML to a writer:
//
//	err := renderer.RenderToWriter(w, doc)
//
// # Markdown
//
// Markdown converts the document body with html-to-markdown (CommonMark plus
// tables). The head is skipped.
//
// # Security
//
// Nothing is escaped here. Text content is emitted exactly as stored; use
// el.EscapedText or el.Sanitized when building nodes from untrusted input.
package render
