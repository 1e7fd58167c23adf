package el

import "github.com/shwimple/shwimple/pkg/dom"

// Document metadata

func Title(args ...any) *dom.Node  { return El("title", args...) }
func Meta(args ...any) *dom.Node   { return El("meta", args...) }
func Link(args ...any) *dom.Node   { return El("link", args...) }
func Script(args ...any) *dom.Node { return El("script", args...) }
func Style(args ...any) *dom.Node  { return El("style", args...) }

// Content sectioning

func Header(args ...any) *dom.Node  { return El("header", args...) }
func Footer(args ...any) *dom.Node  { return El("footer", args...) }
func Main(args ...any) *dom.Node    { return El("main", args...) }
func Nav(args ...any) *dom.Node     { return El("nav", args...) }
func Section(args ...any) *dom.Node { return El("section", args...) }
func Article(args ...any) *dom.Node { return El("article", args...) }
func Aside(args ...any) *dom.Node   { return El("aside", args...) }
func H1(args ...any) *dom.Node      { return El("h1", args...) }
func H2(args ...any) *dom.Node      { return El("h2", args...) }
func H3(args ...any) *dom.Node      { return El("h3", args...) }
func H4(args ...any) *dom.Node      { return El("h4", args...) }
func H5(args ...any) *dom.Node      { return El("h5", args...) }
func H6(args ...any) *dom.Node      { return El("h6", args...) }

// Text content

func Div(args ...any) *dom.Node        { return El("div", args...) }
func P(args ...any) *dom.Node          { return El("p", args...) }
func Span(args ...any) *dom.Node       { return El("span", args...) }
func Pre(args ...any) *dom.Node        { return El("pre", args...) }
func Blockquote(args ...any) *dom.Node { return El("blockquote", args...) }
func Ul(args ...any) *dom.Node         { return El("ul", args...) }
func Ol(args ...any) *dom.Node         { return El("ol", args...) }
func Li(args ...any) *dom.Node         { return El("li", args...) }
func Hr(args ...any) *dom.Node         { return El("hr", args...) }

// Inline text semantics

func A(args ...any) *dom.Node      { return El("a", args...) }
func Strong(args ...any) *dom.Node { return El("strong", args...) }
func Em(args ...any) *dom.Node     { return El("em", args...) }
func Small(args ...any) *dom.Node  { return El("small", args...) }
func Code(args ...any) *dom.Node   { return El("code", args...) }
func Br(args ...any) *dom.Node     { return El("br", args...) }

// Forms

func Form(args ...any) *dom.Node     { return El("form", args...) }
func Input(args ...any) *dom.Node    { return El("input", args...) }
func Label(args ...any) *dom.Node    { return El("label", args...) }
func Button(args ...any) *dom.Node   { return El("button", args...) }
func Textarea(args ...any) *dom.Node { return El("textarea", args...) }
func Select(args ...any) *dom.Node   { return El("select", args...) }
func Option(args ...any) *dom.Node   { return El("option", args...) }

// Tables

func Table(args ...any) *dom.Node { return El("table", args...) }
func Thead(args ...any) *dom.Node { return El("thead", args...) }
func Tbody(args ...any) *dom.Node { return El("tbody", args...) }
func Tr(args ...any) *dom.Node    { return El("tr", args...) }
func Th(args ...any) *dom.Node    { return El("th", args...) }
func Td(args ...any) *dom.Node    { return El("td", args...) }

// Media

func Img(args ...any) *dom.Node    { return El("img", args...) }
func Canvas(args ...any) *dom.Node { return El("canvas", args...) }
func Iframe(args ...any) *dom.Node { return El("iframe", args...) }
