package dom

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestKindString(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindNode, "Node"},
		{KindElement, "Element"},
		{KindText, "Text"},
		{KindHead, "Head"},
		{KindBody, "Body"},
		{Kind(200), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.kind.String(); got != tt.want {
				t.Errorf("Kind.String() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewText(t *testing.T) {
	n := NewText("hello")
	if n.Tag != TextTag {
		t.Errorf("Tag = %q, want %q", n.Tag, TextTag)
	}
	if n.Kind != KindText {
		t.Errorf("Kind = %v, want KindText", n.Kind)
	}
	if n.TextContent != "hello" {
		t.Errorf("TextContent = %q, want hello", n.TextContent)
	}
}

func TestAppendChild(t *testing.T) {
	parent := NewNode("ul", "")
	if parent.Children != nil {
		t.Fatal("children should start nil")
	}

	a, b, c := NewNode("li", "a"), NewNode("li", "b"), NewNode("li", "c")
	parent.AppendChild(a)
	parent.AppendChild(b)
	parent.AppendChild(c)

	got := []string{}
	for _, child := range parent.Children {
		got = append(got, child.TextContent)
	}
	if diff := cmp.Diff([]string{"a", "b", "c"}, got); diff != "" {
		t.Errorf("children order mismatch (-want +got):\n%s", diff)
	}
}

func TestInsertBeforeAfter(t *testing.T) {
	newList := func() (*Node, *Node, *Node) {
		parent := NewNode("ul", "")
		first, last := NewNode("li", "first"), NewNode("li", "last")
		parent.AppendChild(first)
		parent.AppendChild(last)
		return parent, first, last
	}
	texts := func(n *Node) []string {
		out := make([]string, 0, len(n.Children))
		for _, c := range n.Children {
			out = append(out, c.TextContent)
		}
		return out
	}

	t.Run("before first", func(t *testing.T) {
		parent, first, _ := newList()
		if !parent.InsertBefore(NewNode("li", "x"), first) {
			t.Fatal("InsertBefore returned false")
		}
		if diff := cmp.Diff([]string{"x", "first", "last"}, texts(parent)); diff != "" {
			t.Errorf("(-want +got):\n%s", diff)
		}
	})

	t.Run("after first", func(t *testing.T) {
		parent, first, _ := newList()
		parent.InsertAfter(NewNode("li", "x"), first)
		if diff := cmp.Diff([]string{"first", "x", "last"}, texts(parent)); diff != "" {
			t.Errorf("(-want +got):\n%s", diff)
		}
	})

	t.Run("after last", func(t *testing.T) {
		parent, _, last := newList()
		parent.InsertAfter(NewNode("li", "x"), last)
		if diff := cmp.Diff([]string{"first", "last", "x"}, texts(parent)); diff != "" {
			t.Errorf("(-want +got):\n%s", diff)
		}
	})

	t.Run("unknown locator", func(t *testing.T) {
		parent, _, _ := newList()
		if parent.InsertBefore(NewNode("li", "x"), NewNode("li", "stranger")) {
			t.Error("InsertBefore should report false for a foreign locator")
		}
		if parent.InsertAfter(NewNode("li", "x"), nil) {
			t.Error("InsertAfter should report false for nil locator")
		}
		if len(parent.Children) != 2 {
			t.Errorf("children len = %d, want 2", len(parent.Children))
		}
	})
}

func TestWalk(t *testing.T) {
	root := NewNode("div", "")
	section := NewElement("section", "s", "")
	section.AppendChild(NewText("inner"))
	root.AppendChild(section)
	root.AppendChild(NewNode("p", ""))

	var tags []string
	root.Walk(func(n *Node) bool {
		tags = append(tags, n.Tag)
		return true
	})
	if diff := cmp.Diff([]string{"div", "section", TextTag, "p"}, tags); diff != "" {
		t.Errorf("walk order (-want +got):\n%s", diff)
	}

	tags = nil
	root.Walk(func(n *Node) bool {
		tags = append(tags, n.Tag)
		return n.Tag != "section"
	})
	if diff := cmp.Diff([]string{"div", "section", "p"}, tags); diff != "" {
		t.Errorf("pruned walk (-want +got):\n%s", diff)
	}
}

func TestSetAttr(t *testing.T) {
	n := NewNode("a", "")
	n.SetAttr("href", "/docs")
	if n.Attributes["href"] != "/docs" {
		t.Errorf("href = %q, want /docs", n.Attributes["href"])
	}
}

func TestClone(t *testing.T) {
	orig := NewElement("div", "a", "b")
	orig.SetAttr("title", "t")
	orig.AppendChild(NewNode("p", "x"))

	c := orig.Clone()
	if c == orig || c.Children[0] == orig.Children[0] {
		t.Fatal("Clone shares nodes with the original")
	}
	if c.HTML() != orig.HTML() {
		t.Errorf("clone %q != original %q", c.HTML(), orig.HTML())
	}

	c.SetAttr("title", "changed")
	c.Children[0].TextContent = "y"
	if orig.Attributes["title"] != "t" || orig.Children[0].TextContent != "x" {
		t.Error("mutating the clone changed the original")
	}

	var missing *Node
	if missing.Clone() != nil {
		t.Error("Clone of nil should be nil")
	}
}
