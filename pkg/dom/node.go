package dom

// TextTag is the tag every text node carries.
const TextTag = "#text"

// Kind is the node type discriminator.
type Kind uint8

const (
	KindNode    Kind = iota // Generic element without id/class
	KindElement             // Element with id and class name
	KindText                // Raw text, never wrapped in tags
	KindHead                // <head> root
	KindBody                // <body> root
)

// String returns the string representation of the Kind.
func (k Kind) String() string {
	switch k {
	case KindNode:
		return "Node"
	case KindElement:
		return "Element"
	case KindText:
		return "Text"
	case KindHead:
		return "Head"
	case KindBody:
		return "Body"
	default:
		return "Unknown"
	}
}

// Node is a single entry in the document tree.
//
// A node is owned by exactly one parent. AppendChild does not check for
// cycles; appending an ancestor under one of its descendants is a caller bug.
type Node struct {
	Kind        Kind              // Node type
	Tag         string            // Element tag name (e.g. "div"), TextTag for text
	TextContent string            // Emitted right after the opening tag
	Attributes  map[string]string // Free-form attributes (href, data-*, x-data, ...)
	Children    []*Node           // Child nodes in document order

	// ID and ClassName are only rendered for KindElement nodes.
	ID        string
	ClassName string
}

// NewNode creates a generic element node.
func NewNode(tag string, textContent string) *Node {
	return &Node{Kind: KindNode, Tag: tag, TextContent: textContent}
}

// NewElement creates an element node carrying an id and a class name.
// An empty id is never rendered.
func NewElement(tag, id, className string) *Node {
	return &Node{Kind: KindElement, Tag: tag, ID: id, ClassName: className}
}

// NewText creates a text node.
func NewText(content string) *Node {
	return &Node{Kind: KindText, Tag: TextTag, TextContent: content}
}

func newHead() *Node { return &Node{Kind: KindHead, Tag: "head"} }
func newBody() *Node { return &Node{Kind: KindBody, Tag: "body"} }

// IsElement reports whether n carries an id and class name.
func (n *Node) IsElement() bool {
	return n != nil && n.Kind == KindElement
}

// IsText reports whether n is a text node.
func (n *Node) IsText() bool {
	return n != nil && n.Kind == KindText
}

// AppendChild adds child at the end of the children list.
func (n *Node) AppendChild(child *Node) {
	if n.Children == nil {
		n.Children = make([]*Node, 0, 1)
	}
	n.Children = append(n.Children, child)
}

// SetAttr sets a free-form attribute.
func (n *Node) SetAttr(key, value string) {
	if n.Attributes == nil {
		n.Attributes = make(map[string]string)
	}
	n.Attributes[key] = value
}

// InsertBefore inserts node directly before locator, which must be a direct
// child of n. It reports false and leaves n untouched otherwise.
func (n *Node) InsertBefore(node, locator *Node) bool {
	i := n.indexOf(locator)
	if i < 0 {
		return false
	}
	n.insertAt(i, node)
	return true
}

// InsertAfter inserts node directly after locator, which must be a direct
// child of n. It reports false and leaves n untouched otherwise.
func (n *Node) InsertAfter(node, locator *Node) bool {
	i := n.indexOf(locator)
	if i < 0 {
		return false
	}
	n.insertAt(i+1, node)
	return true
}

func (n *Node) indexOf(child *Node) int {
	if child == nil {
		return -1
	}
	for i, c := range n.Children {
		if c == child {
			return i
		}
	}
	return -1
}

func (n *Node) insertAt(i int, node *Node) {
	n.Children = append(n.Children, nil)
	copy(n.Children[i+1:], n.Children[i:])
	n.Children[i] = node
}

// Walk visits n and its descendants in pre-order. Returning false from fn
// skips the children of the visited node.
func (n *Node) Walk(fn func(*Node) bool) {
	if n == nil {
		return
	}
	if !fn(n) {
		return
	}
	for _, child := range n.Children {
		child.Walk(fn)
	}
}

// Clone returns a deep copy of the subtree rooted at n.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	c := *n
	if n.Attributes != nil {
		c.Attributes = make(map[string]string, len(n.Attributes))
		for k, v := range n.Attributes {
			c.Attributes[k] = v
		}
	}
	if n.Children != nil {
		c.Children = make([]*Node, len(n.Children))
		for i, child := range n.Children {
			c.Children[i] = child.Clone()
		}
	}
	return &c
}
