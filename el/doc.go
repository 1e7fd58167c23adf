// Package el provides the element builder DSL for shwimple.
//
// El builds a node from a tag and a list of arguments. When the first
// argument is a Props value it describes the element's id, classes and
// free-form attributes; every other argument is a child:
//
//	import . "github.com/shwimple/shwimple/el"
//
//	Section(Props{ID: "hero", ClassList: []string{"hero", Cx("dark", isDark)}},
//	    H1("Build from the backend"),
//	    P("No frontend logic required."),
//	    Button(Props{Attrs: Attrs{"x-on:click": "count++"}}, "Increment"),
//	)
//
// Children may be nodes, node slices or scalars. nil and false are dropped so
// that conditional children read naturally; any other scalar becomes a text
// node.
//
// Nothing here escapes text. Text and Raw inject strings as-is; use
// EscapedText or Sanitized for untrusted input.
package el
