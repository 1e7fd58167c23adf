package shwimple

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/shwimple/shwimple/el"
	"github.com/shwimple/shwimple/pkg/builder"
	"github.com/shwimple/shwimple/pkg/dom"
)

const boilerplateHead = `<head><meta charset="utf-8"></meta>` +
	`<meta content="width=device-width, initial-scale=1.0" name="viewport"></meta>`

func TestLandingPage(t *testing.T) {
	page := DefinePageWithBoilerplate(dom.LayoutLanding, "Landing Layout",
		Head(Single(func(*Context) *dom.Node { return el.Title("Landing Layout") })),
		Body(
			Main(ComponentFunc(func(*Context) []*dom.Node {
				return []*dom.Node{el.H1("Landing Layout"), el.P("No nav by default, focused layout.")}
			})),
		),
	)

	got, ok := page.RenderToString()
	if !ok {
		t.Fatal("RenderToString() not ok")
	}

	want := "<html>" + boilerplateHead +
		"<title>Landing Layout</title><title>Landing Layout</title></head>" +
		"<body>" +
		`<header id="header-section" class="header-section"></header>` +
		`<main id="content-section" class="content-section"><h1>Landing Layout</h1><p>No nav by default, focused layout.</p></main>` +
		`<footer id="footer-section" class="footer-section"></footer>` +
		"</body></html>"
	if got != want {
		t.Errorf("got\n%s\nwant\n%s", got, want)
	}
}

func TestStandardPageHasNav(t *testing.T) {
	page := DefinePage("Home", Main(Static(el.H1("Hello"))))
	got, _ := page.RenderToString()

	for _, want := range []string{
		"<title>Home</title>",
		`<header id="header-section" class="header-section"><nav id="nav-section" class="nav-section"></nav></header>`,
		`<main id="content-section" class="content-section"><h1>Hello</h1></main>`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %q in\n%s", want, got)
		}
	}
}

func TestEmptyPage(t *testing.T) {
	page := DefinePage("Nothing")
	if doc := page.Render(); doc != nil {
		t.Errorf("Render() = %v, want nil", doc)
	}
	if _, ok := page.RenderToString(); ok {
		t.Error("RenderToString() ok for page without sections")
	}
}

func TestMountTargets(t *testing.T) {
	b := builder.New(builder.WithSeed(dom.NewEmpty))
	page := NewPage(b,
		Head(Static(el.MetaCharset())),
		Body(Static(el.Div("footer-ish"))),
	)

	got, _ := page.RenderToString()
	want := `<html><head><meta charset="utf-8"></meta></head><body><div>footer-ish</div></body></html>`
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestMainIsSynthesized(t *testing.T) {
	page := NewPage(builder.New(builder.WithSeed(dom.NewEmpty)),
		Main(Static(el.P("one"))),
		Main(Static(el.P("two"))),
	)

	got, _ := page.RenderToString()
	want := `<html><head></head><body>` +
		`<main id="content-section" class="content-section"><p>one</p><p>two</p></main>` +
		`</body></html>`
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestFindMainBreadthFirst(t *testing.T) {
	deepMain := el.Main()
	shallow := el.Section(el.Props{ID: dom.SectionContent})

	body := dom.NewNode("body", "")
	body.AppendChild(el.Div(deepMain))
	body.AppendChild(shallow)

	if got := findMain(body); got != shallow {
		t.Errorf("findMain picked %+v, want the shallower content section", got)
	}
}

func TestFindMainMatchesTag(t *testing.T) {
	target := el.Main()
	body := dom.NewNode("body", "")
	body.AppendChild(el.Div(el.Div(target)))

	if got := findMain(body); got != target {
		t.Errorf("findMain picked %+v, want nested main", got)
	}
	if len(body.Children) != 1 {
		t.Errorf("body grew to %d children", len(body.Children))
	}
}

func TestContext(t *testing.T) {
	var seen *Context
	page := DefinePage("Ctx", Body(ComponentFunc(func(ctx *Context) []*dom.Node {
		seen = ctx
		ctx.Mount(TargetHead, ctx.El("style", ctx.Text("body{}")))
		ctx.Mount(TargetMain, nil, ctx.El("p", "direct"))
		return nil
	})))

	doc := page.Render()
	if seen == nil {
		t.Fatal("component not called")
	}
	if seen.Document != doc || seen.Head != doc.Head || seen.Body != doc.Body {
		t.Error("context does not point at the built document")
	}

	got, _ := doc.HTML()
	if !strings.Contains(got, "<style>body{}</style></head>") {
		t.Errorf("style not mounted in head: %s", got)
	}
	if !strings.Contains(got, `class="content-section"><p>direct</p></main>`) {
		t.Errorf("paragraph not mounted in main: %s", got)
	}
}

func TestSectionOrder(t *testing.T) {
	var order []string
	record := func(name string) Component {
		return ComponentFunc(func(*Context) []*dom.Node {
			order = append(order, name)
			return nil
		})
	}

	page := DefinePage("Order",
		Head(record("h1"), nil, record("h2")),
		Body(record("b1"), Main(record("m1")), record("b2")),
	)
	page.Render()

	if diff := cmp.Diff([]string{"h1", "h2", "b1", "m1", "b2"}, order); diff != "" {
		t.Errorf("order (-want +got):\n%s", diff)
	}
}

func TestDefine(t *testing.T) {
	hero := Define("Hero", Static(el.H1("Hi")))
	if got := DisplayName(hero); got != "Hero" {
		t.Errorf("DisplayName = %q, want Hero", got)
	}
	if got := DisplayName(Static()); got != "" {
		t.Errorf("DisplayName of anonymous component = %q", got)
	}

	named, _ := DefinePage("T", Main(hero)).RenderToString()
	plain, _ := DefinePage("T", Main(Static(el.H1("Hi")))).RenderToString()
	if named != plain {
		t.Errorf("naming changed output:\n%s\n%s", named, plain)
	}
}

func TestPageBuilderAccess(t *testing.T) {
	page := DefinePage("Edit", Main(Static(el.P("a"))))
	page.Builder().AddRenderFunctionAt(Main(Static(el.P("first"))), 0)

	got, _ := page.RenderToString()
	if !strings.Contains(got, "<p>first</p><p>a</p>") {
		t.Errorf("inserted step did not run first: %s", got)
	}
}

func TestRenderIsRepeatable(t *testing.T) {
	page := DefinePage("Again", Main(ComponentFunc(func(ctx *Context) []*dom.Node {
		return []*dom.Node{ctx.El("p", "fresh")}
	})))

	first, _ := page.RenderToString()
	second, _ := page.RenderToString()
	if first != second {
		t.Errorf("renders differ:\n%s\n%s", first, second)
	}
}

func TestTargetString(t *testing.T) {
	tests := map[Target]string{TargetHead: "head", TargetBody: "body", TargetMain: "main", Target(9): "unknown"}
	for target, want := range tests {
		if got := target.String(); got != want {
			t.Errorf("Target(%d).String() = %q, want %q", target, got, want)
		}
	}
}

func TestNilSectionIsSkipped(t *testing.T) {
	var missing *Section
	page := DefinePage("Nil", missing, Main(Static(el.P("kept"))))

	got, ok := page.RenderToString()
	if !ok {
		t.Fatal("RenderToString() not ok")
	}
	if !strings.Contains(got, "<p>kept</p>") {
		t.Errorf("page lost its content: %s", got)
	}

	ctx := newContext(dom.NewEmpty())
	if nodes := missing.Render(ctx); nodes != nil {
		t.Errorf("Render() = %v, want nil", nodes)
	}
}
