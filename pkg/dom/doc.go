// Package dom provides the document tree model used to build HTML pages on
// the server.
//
// The tree is a small, browser-free stand-in for the DOM: a Document owns a
// head and a body root, each root owns an ordered list of Nodes, and the whole
// tree serializes to a single HTML string.
//
// # Core Types
//
// Node is the atomic tree unit. Its Kind discriminates generic elements,
// attributed elements (which carry an id and a class list), text nodes and
// the head/body roots. Document is the aggregate root.
//
// # Layouts
//
// NewBoilerplate pre-populates a Document with the structural sections of a
// Layout. The sections carry stable ids (see SectionHeader and friends) that
// other code uses as mount anchors:
//
//	doc := dom.NewBoilerplate("Docs", dom.LayoutDocs)
//	html, _ := doc.HTML()
//
// # Escaping
//
// The serializer performs no escaping. Text content and attribute values are
// written as given, so callers must only inject trusted or pre-escaped
// strings.
package dom
