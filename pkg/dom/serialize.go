package dom

import (
	"sort"
	"strings"
)

// Attribute is a resolved key/value pair ready to be written.
type Attribute struct {
	Key   string
	Value string
}

// ResolveAttributes merges the free-form attributes of n with the derived id
// and class of element nodes.
//
// The order is pinned: id, class, then the remaining keys sorted. A
// "className" key in the free-form map is written as "class" unless the map
// also holds "class", which then wins. Derived id and class win over
// free-form keys of the same name, and an empty id or class is never emitted. Other free-form keys with an empty value are kept and
// written as key="" (the boolean attribute convention).
func ResolveAttributes(n *Node) []Attribute {
	if n == nil || n.Kind == KindText {
		return nil
	}

	merged := make(map[string]string, len(n.Attributes)+2)
	for key, value := range n.Attributes {
		if key != "className" {
			merged[key] = value
		}
	}
	if value, ok := n.Attributes["className"]; ok {
		if _, hasClass := merged["class"]; !hasClass {
			merged["class"] = value
		}
	}
	if n.Kind == KindElement {
		if n.ID != "" {
			merged["id"] = n.ID
		}
		if n.ClassName != "" {
			merged["class"] = n.ClassName
		}
	}
	for _, key := range []string{"id", "class"} {
		if v, ok := merged[key]; ok && v == "" {
			delete(merged, key)
		}
	}
	if len(merged) == 0 {
		return nil
	}

	attrs := make([]Attribute, 0, len(merged))
	for _, key := range []string{"id", "class"} {
		if v, ok := merged[key]; ok {
			attrs = append(attrs, Attribute{Key: key, Value: v})
			delete(merged, key)
		}
	}

	keys := make([]string, 0, len(merged))
	for key := range merged {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		attrs = append(attrs, Attribute{Key: key, Value: merged[key]})
	}
	return attrs
}

// HTML serializes the whole document wrapped in the html root tag. It reports
// false when the root tag is unset, which only happens for a zero Document.
func (d *Document) HTML() (string, bool) {
	if d == nil || d.root == "" {
		return "", false
	}

	var b strings.Builder
	b.WriteString("<")
	b.WriteString(d.root)
	b.WriteString(">")
	for _, n := range d.childNodes {
		writeNode(&b, n)
	}
	b.WriteString("</")
	b.WriteString(d.root)
	b.WriteString(">")
	return b.String(), true
}

// HTML serializes n and its descendants.
func (n *Node) HTML() string {
	var b strings.Builder
	writeNode(&b, n)
	return b.String()
}

func writeNode(b *strings.Builder, n *Node) {
	if n == nil {
		return
	}
	if n.Kind == KindText {
		b.WriteString(n.TextContent)
		return
	}

	b.WriteByte('<')
	b.WriteString(n.Tag)
	for _, a := range ResolveAttributes(n) {
		b.WriteByte(' ')
		b.WriteString(a.Key)
		b.WriteString(`="`)
		b.WriteString(a.Value)
		b.WriteByte('"')
	}
	b.WriteByte('>')

	if n.TextContent != "" {
		b.WriteString(n.TextContent)
	}
	for _, child := range n.Children {
		writeNode(b, child)
	}

	b.WriteString("</")
	b.WriteString(n.Tag)
	b.WriteByte('>')
}
