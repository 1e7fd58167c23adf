package render

import "golang.org/x/net/html/atom"

// isVoidElement reports whether tag has no closing tag in HTML5.
func isVoidElement(tag string) bool {
	switch atom.Lookup([]byte(tag)) {
	case atom.Area, atom.Base, atom.Br, atom.Col, atom.Embed, atom.Hr,
		atom.Img, atom.Input, atom.Link, atom.Meta, atom.Param,
		atom.Source, atom.Track, atom.Wbr:
		return true
	}
	return false
}

// isInlineElement reports whether tag is phrasing content. Pretty output
// keeps inline elements and their children on one line.
func isInlineElement(tag string) bool {
	switch atom.Lookup([]byte(tag)) {
	case atom.A, atom.Abbr, atom.B, atom.Bdi, atom.Bdo, atom.Br, atom.Cite,
		atom.Code, atom.Data, atom.Dfn, atom.Em, atom.I, atom.Kbd,
		atom.Mark, atom.Q, atom.Rb, atom.Rp, atom.Rt, atom.Rtc, atom.Ruby,
		atom.S, atom.Samp, atom.Small, atom.Span, atom.Strong, atom.Sub,
		atom.Sup, atom.Time, atom.U, atom.Var, atom.Wbr:
		return true
	}
	return false
}
