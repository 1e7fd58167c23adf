package builder

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"

	"github.com/shwimple/shwimple/pkg/dom"
)

// trace returns a step that records name in order and appends a marker to
// the body.
func trace(name string, order *[]string) Step {
	return Func(func(doc *dom.Document) *dom.Document {
		*order = append(*order, name)
		doc.Body.AppendChild(dom.NewNode("p", name))
		return doc
	})
}

func named(id string, order *[]string) BuildFunc {
	return BuildFunc{ID: id, Step: trace(id, order)}
}

func TestBuildEmpty(t *testing.T) {
	b := New()
	if doc := b.Build(); doc != nil {
		t.Errorf("Build() = %v, want nil", doc)
	}
	if html, ok := b.BuildAsString(); ok || html != "" {
		t.Errorf("BuildAsString() = %q, %v; want \"\", false", html, ok)
	}
}

func TestPipelineOrder(t *testing.T) {
	var order []string
	b := New()
	b.AddRenderFunction(trace("F1", &order))
	b.AddRenderFunction(trace("F2", &order))
	b.AddRenderFunction(trace("F3", &order))

	if b.Build() == nil {
		t.Fatal("Build() = nil")
	}
	if diff := cmp.Diff([]string{"F1", "F2", "F3"}, order); diff != "" {
		t.Errorf("order (-want +got):\n%s", diff)
	}
}

func TestStepCanReplaceDocument(t *testing.T) {
	b := New()
	b.AddRenderFunction(Func(func(*dom.Document) *dom.Document {
		return dom.NewEmpty()
	}))
	b.AddRenderFunction(Func(func(*dom.Document) *dom.Document {
		return nil
	}))

	html, ok := b.BuildAsString()
	if !ok {
		t.Fatal("BuildAsString() not ok")
	}
	if want := "<html><head></head><body></body></html>"; html != want {
		t.Errorf("got %q, want %q", html, want)
	}
}

func TestIDs(t *testing.T) {
	var order []string
	b := New()

	generated := b.AddRenderFunction(trace("a", &order))
	if _, err := uuid.Parse(generated); err != nil {
		t.Errorf("generated id %q is not a uuid: %v", generated, err)
	}

	if got := b.AddRenderFunction(named("hero", &order)); got != "hero" {
		t.Errorf("explicit id = %q, want hero", got)
	}

	dup := b.AddRenderFunction(named("hero", &order))
	if dup == "hero" {
		t.Error("duplicate id was not replaced")
	}

	ids := b.IDs()
	seen := map[string]bool{}
	for _, id := range ids {
		if seen[id] {
			t.Errorf("id %q is not unique", id)
		}
		seen[id] = true
	}
	if b.Len() != 3 || len(ids) != 3 {
		t.Errorf("Len() = %d, len(IDs()) = %d, want 3", b.Len(), len(ids))
	}
}

func TestAddRenderFunctionAt(t *testing.T) {
	tests := []struct {
		name  string
		index int
		want  []string
	}{
		{"front", 0, []string{"x", "a", "b"}},
		{"middle", 1, []string{"a", "x", "b"}},
		{"end", 2, []string{"a", "b", "x"}},
		{"past end clamps", 10, []string{"a", "b", "x"}},
		{"negative clamps", -3, []string{"x", "a", "b"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var order []string
			b := New()
			b.AddRenderFunction(named("a", &order))
			b.AddRenderFunction(named("b", &order))
			b.AddRenderFunctionAt(named("x", &order), tt.index)

			if diff := cmp.Diff(tt.want, b.IDs()); diff != "" {
				t.Errorf("IDs (-want +got):\n%s", diff)
			}
			b.Build()
			if diff := cmp.Diff(tt.want, order); diff != "" {
				t.Errorf("order (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRelativeInsertion(t *testing.T) {
	tests := []struct {
		name    string
		after   bool
		locator string
		want    []string
		success bool
	}{
		{"before first", false, "a", []string{"x", "a", "b", "c"}, true},
		{"before middle", false, "b", []string{"a", "x", "b", "c"}, true},
		{"before last", false, "c", []string{"a", "b", "x", "c"}, true},
		{"after first", true, "a", []string{"a", "x", "b", "c"}, true},
		{"after last", true, "c", []string{"a", "b", "c", "x"}, true},
		{"before unknown", false, "zzz", []string{"a", "b", "c"}, false},
		{"after unknown", true, "zzz", []string{"a", "b", "c"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var order []string
			b := New()
			for _, id := range []string{"a", "b", "c"} {
				b.AddRenderFunction(named(id, &order))
			}

			var res Result
			if tt.after {
				res = b.TryAddRenderFunctionAfterFuncID(named("x", &order), tt.locator)
			} else {
				res = b.TryAddRenderFunctionBeforeFuncID(named("x", &order), tt.locator)
			}

			if res.Success != tt.success {
				t.Errorf("Success = %v, want %v", res.Success, tt.success)
			}
			if res.ID != "x" {
				t.Errorf("ID = %q, want x", res.ID)
			}
			if diff := cmp.Diff(tt.want, b.IDs()); diff != "" {
				t.Errorf("IDs (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFailedInsertionStillAssignsID(t *testing.T) {
	b := New()
	res := b.TryAddRenderFunctionBeforeFuncID(Func(func(d *dom.Document) *dom.Document { return d }), "missing")
	if res.Success {
		t.Error("Success = true for empty pipeline")
	}
	if res.ID == "" {
		t.Error("ID is empty")
	}
	if b.Len() != 0 {
		t.Errorf("Len() = %d, want 0", b.Len())
	}
}

func TestBuildIsRepeatable(t *testing.T) {
	var order []string
	b := New(WithTitle("Repeat"), WithLayout(dom.LayoutDocs))
	b.AddRenderFunction(trace("once", &order))

	first, ok1 := b.BuildAsString()
	second, ok2 := b.BuildAsString()
	if !ok1 || !ok2 {
		t.Fatal("BuildAsString() not ok")
	}
	if first != second {
		t.Errorf("builds differ:\n%s\n%s", first, second)
	}
	if n := strings.Count(first, "<p>once</p>"); n != 1 {
		t.Errorf("marker appears %d times, want 1", n)
	}
	if !strings.Contains(first, "<title>Repeat</title>") {
		t.Errorf("missing title: %s", first)
	}
	if !strings.Contains(first, `id="aside-section"`) {
		t.Errorf("docs layout not applied: %s", first)
	}
}

func TestWithSeed(t *testing.T) {
	b := New(WithSeed(dom.NewEmpty))
	b.AddRenderFunction(Func(func(d *dom.Document) *dom.Document {
		d.Body.AppendChild(dom.NewText("hi"))
		return d
	}))

	html, _ := b.BuildAsString()
	if want := "<html><head></head><body>hi</body></html>"; html != want {
		t.Errorf("got %q, want %q", html, want)
	}
}

func TestNilBuildFuncStep(t *testing.T) {
	b := New(WithSeed(dom.NewEmpty))
	b.AddRenderFunction(BuildFunc{ID: "noop"})
	if b.Build() == nil {
		t.Error("Build() = nil")
	}
}
