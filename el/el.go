package el

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shwimple/shwimple/pkg/dom"
)

// Attrs holds free-form attributes copied verbatim onto a node.
type Attrs map[string]string

// Props describes an element's identity and attributes. Passing Props as the
// first argument of El produces an element node carrying id and class name.
type Props struct {
	ID        string
	ClassName string
	ClassList []string
	Attrs     Attrs
}

// className joins ClassName and the non-blank ClassList entries.
func (p Props) className() string {
	parts := make([]string, 0, len(p.ClassList)+1)
	if p.ClassName != "" {
		parts = append(parts, p.ClassName)
	}
	for _, c := range p.ClassList {
		if strings.TrimSpace(c) != "" {
			parts = append(parts, c)
		}
	}
	return strings.Join(parts, " ")
}

// El creates a node with the given tag.
//
// If args[0] is a Props, *Props or Attrs value it is used as the attribute
// object and the result is an element node; otherwise all arguments are
// children and the result is a generic node.
func El(tag string, args ...any) *dom.Node {
	props, ok := asProps(args)
	if ok {
		args = args[1:]
	}

	var node *dom.Node
	if ok {
		node = dom.NewElement(tag, props.ID, props.className())
		if len(props.Attrs) > 0 {
			node.Attributes = make(map[string]string, len(props.Attrs))
			for k, v := range props.Attrs {
				node.Attributes[k] = v
			}
		}
	} else {
		node = dom.NewNode(tag, "")
	}

	for _, child := range normalizeChildren(args) {
		node.AppendChild(child)
	}
	return node
}

func asProps(args []any) (Props, bool) {
	if len(args) == 0 {
		return Props{}, false
	}
	switch v := args[0].(type) {
	case Props:
		return v, true
	case *Props:
		if v == nil {
			return Props{}, false
		}
		return *v, true
	case Attrs:
		return Props{Attrs: v}, true
	default:
		return Props{}, false
	}
}

// normalizeChildren converts call arguments into nodes.
// nil, false, nil nodes and misplaced Props are dropped.
func normalizeChildren(args []any) []*dom.Node {
	nodes := make([]*dom.Node, 0, len(args))
	for _, arg := range args {
		switch v := arg.(type) {
		case nil:
			continue
		case *dom.Node:
			if v != nil {
				nodes = append(nodes, v)
			}
		case []*dom.Node:
			for _, child := range v {
				if child != nil {
					nodes = append(nodes, child)
				}
			}
		case bool:
			if v {
				nodes = append(nodes, dom.NewText("true"))
			}
		case Props, *Props, Attrs:
			continue
		default:
			nodes = append(nodes, dom.NewText(stringify(v)))
		}
	}
	return nodes
}

// stringify coerces a scalar to its text form.
func stringify(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case int:
		return strconv.Itoa(s)
	case int64:
		return strconv.FormatInt(s, 10)
	case float64:
		return strconv.FormatFloat(s, 'g', -1, 64)
	case bool:
		return strconv.FormatBool(s)
	case fmt.Stringer:
		return s.String()
	default:
		return fmt.Sprint(v)
	}
}

// Text creates a text node from a scalar value.
func Text(value any) *dom.Node {
	return dom.NewText(stringify(value))
}

// Textf creates a formatted text node.
func Textf(format string, args ...any) *dom.Node {
	return dom.NewText(fmt.Sprintf(format, args...))
}

// Raw creates a text node holding trusted HTML. It is identical to Text and
// exists to mark intent at call sites.
func Raw(html string) *dom.Node {
	return dom.NewText(html)
}
