package dom

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestResolveAttributes(t *testing.T) {
	tests := []struct {
		name string
		node *Node
		want []Attribute
	}{
		{
			name: "nil node",
			node: nil,
			want: nil,
		},
		{
			name: "text node has none",
			node: &Node{Kind: KindText, Tag: TextTag, Attributes: map[string]string{"x": "y"}},
			want: nil,
		},
		{
			name: "empty element id is dropped",
			node: NewElement("div", "", ""),
			want: nil,
		},
		{
			name: "id then class then sorted rest",
			node: &Node{Kind: KindElement, Tag: "a", ID: "home", ClassName: "nav link",
				Attributes: map[string]string{"href": "/", "aria-label": "Home", "data-x": "1"}},
			want: []Attribute{
				{"id", "home"},
				{"class", "nav link"},
				{"aria-label", "Home"},
				{"data-x", "1"},
				{"href", "/"},
			},
		},
		{
			name: "className key is renamed",
			node: &Node{Kind: KindNode, Tag: "div", Attributes: map[string]string{"className": "box"}},
			want: []Attribute{{"class", "box"}},
		},
		{
			name: "free-form class wins over className",
			node: &Node{Kind: KindNode, Tag: "div", Attributes: map[string]string{"className": "a", "class": "b"}},
			want: []Attribute{{"class", "b"}},
		},
		{
			name: "derived class wins over free-form",
			node: &Node{Kind: KindElement, Tag: "div", ClassName: "derived",
				Attributes: map[string]string{"class": "free"}},
			want: []Attribute{{"class", "derived"}},
		},
		{
			name: "generic node ignores id field",
			node: &Node{Kind: KindNode, Tag: "div", ID: "ignored"},
			want: nil,
		},
		{
			name: "empty free-form value is kept",
			node: &Node{Kind: KindNode, Tag: "script", Attributes: map[string]string{"defer": "", "src": "/a.js"}},
			want: []Attribute{{"defer", ""}, {"src", "/a.js"}},
		},
		{
			name: "empty free-form id is dropped",
			node: &Node{Kind: KindNode, Tag: "div", Attributes: map[string]string{"id": ""}},
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveAttributes(tt.node)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ResolveAttributes mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestNodeHTML(t *testing.T) {
	tests := []struct {
		name string
		node func() *Node
		want string
	}{
		{
			name: "text is raw",
			node: func() *Node { return NewText("<em>trusted</em> & raw") },
			want: "<em>trusted</em> & raw",
		},
		{
			name: "text content before children",
			node: func() *Node {
				n := NewNode("p", "Hello ")
				n.AppendChild(NewNode("strong", "world"))
				return n
			},
			want: "<p>Hello <strong>world</strong></p>",
		},
		{
			name: "void tags still close",
			node: func() *Node { return NewNode("br", "") },
			want: "<br></br>",
		},
		{
			name: "element with attributes",
			node: func() *Node {
				n := NewElement("section", "hero", "hero")
				n.SetAttr("x-data", "{ open: false }")
				return n
			},
			want: `<section id="hero" class="hero" x-data="{ open: false }"></section>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.node().HTML(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSerializationDoesNotMutate(t *testing.T) {
	n := &Node{Kind: KindElement, Tag: "div", ClassName: "c",
		Attributes: map[string]string{"className": "free", "title": "t"}}
	_ = n.HTML()

	want := map[string]string{"className": "free", "title": "t"}
	if diff := cmp.Diff(want, n.Attributes); diff != "" {
		t.Errorf("attributes mutated (-want +got):\n%s", diff)
	}
}

func TestClassCollisionIsStable(t *testing.T) {
	n := &Node{Kind: KindNode, Tag: "div", Attributes: map[string]string{"className": "a", "class": "b"}}
	for i := 0; i < 100; i++ {
		if got := n.HTML(); got != `<div class="b"></div>` {
			t.Fatalf("render %d: got %q", i, got)
		}
	}
}
