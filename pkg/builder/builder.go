package builder

import (
	"log/slog"

	"github.com/google/uuid"

	"github.com/shwimple/shwimple/pkg/dom"
)

// Step transforms a Document. Steps may mutate the document in place and
// return it, or return a different Document that replaces it for the
// remaining steps.
type Step interface {
	Apply(doc *dom.Document) *dom.Document
}

// Func adapts an ordinary function to Step.
type Func func(doc *dom.Document) *dom.Document

// Apply calls f(doc).
func (f Func) Apply(doc *dom.Document) *dom.Document {
	return f(doc)
}

// BuildFunc is a Step with an identity in the pipeline.
type BuildFunc struct {
	ID   string
	Step Step
}

// Apply runs the wrapped step. A BuildFunc without a step leaves the
// document unchanged.
func (bf BuildFunc) Apply(doc *dom.Document) *dom.Document {
	if bf.Step == nil {
		return doc
	}
	return bf.Step.Apply(doc)
}

// Result reports the outcome of a relative insertion. ID is the id assigned
// to the step whether or not it was inserted.
type Result struct {
	Success bool
	ID      string
}

// Options configures a Builder.
type Options struct {
	// Title is the boilerplate title.
	Title string

	// Layout selects the boilerplate sections.
	Layout dom.Layout

	// Seed produces the starting Document for every build.
	// Default: dom.NewBoilerplate(Title, Layout)
	Seed func() *dom.Document

	// Logger receives debug output about pipeline edits.
	// Default: slog.Default()
	Logger *slog.Logger
}

// Option configures a Builder.
type Option func(*Options)

// WithTitle sets the boilerplate title.
func WithTitle(title string) Option {
	return func(o *Options) {
		o.Title = title
	}
}

// WithLayout sets the boilerplate layout.
func WithLayout(layout dom.Layout) Option {
	return func(o *Options) {
		o.Layout = layout
	}
}

// WithSeed replaces the boilerplate with a custom starting document.
// seed is called once per build and must return a new Document each time.
func WithSeed(seed func() *dom.Document) Option {
	return func(o *Options) {
		o.Seed = seed
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Options) {
		o.Logger = logger
	}
}

// Builder holds an ordered list of identified build steps and folds them
// over a freshly seeded Document on every Build. A Builder is not safe for
// concurrent use.
type Builder struct {
	opts  Options
	funcs []BuildFunc
}

// New creates an empty Builder.
func New(opts ...Option) *Builder {
	o := Options{Layout: dom.LayoutStandard}
	for _, opt := range opts {
		opt(&o)
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	if o.Seed == nil {
		title, layout := o.Title, o.Layout
		o.Seed = func() *dom.Document {
			return dom.NewBoilerplate(title, layout)
		}
	}
	return &Builder{opts: o}
}

// Len returns the number of build steps.
func (b *Builder) Len() int {
	return len(b.funcs)
}

// IDs returns the step ids in pipeline order.
func (b *Builder) IDs() []string {
	ids := make([]string, len(b.funcs))
	for i, bf := range b.funcs {
		ids[i] = bf.ID
	}
	return ids
}

// AddRenderFunction appends step to the pipeline and returns its id.
func (b *Builder) AddRenderFunction(step Step) string {
	bf := b.identify(step)
	b.funcs = append(b.funcs, bf)
	b.opts.Logger.Debug("build step added", "id", bf.ID, "index", len(b.funcs)-1)
	return bf.ID
}

// AddRenderFunctionAt inserts step at index, clamped to [0, Len()], and
// returns its id.
func (b *Builder) AddRenderFunctionAt(step Step, index int) string {
	bf := b.identify(step)
	index = max(0, min(index, len(b.funcs)))
	b.insertAt(index, bf)
	b.opts.Logger.Debug("build step added", "id", bf.ID, "index", index)
	return bf.ID
}

// TryAddRenderFunctionBeforeFuncID inserts step immediately before the step
// with id locatorID. Nothing is inserted when the locator is unknown.
func (b *Builder) TryAddRenderFunctionBeforeFuncID(step Step, locatorID string) Result {
	bf := b.identify(step)
	at := b.indexOf(locatorID)
	if at < 0 {
		b.opts.Logger.Debug("build step locator not found", "id", bf.ID, "locator", locatorID)
		return Result{ID: bf.ID}
	}
	b.insertAt(at, bf)
	return Result{Success: true, ID: bf.ID}
}

// TryAddRenderFunctionAfterFuncID inserts step immediately after the step
// with id locatorID. Nothing is inserted when the locator is unknown.
func (b *Builder) TryAddRenderFunctionAfterFuncID(step Step, locatorID string) Result {
	bf := b.identify(step)
	at := b.indexOf(locatorID)
	if at < 0 {
		b.opts.Logger.Debug("build step locator not found", "id", bf.ID, "locator", locatorID)
		return Result{ID: bf.ID}
	}
	b.insertAt(at+1, bf)
	return Result{Success: true, ID: bf.ID}
}

// Build seeds a new Document and applies every step in order. It returns nil
// when the pipeline is empty. A step returning nil leaves the current
// document in place.
func (b *Builder) Build() *dom.Document {
	if len(b.funcs) == 0 {
		return nil
	}
	doc := b.opts.Seed()
	for _, bf := range b.funcs {
		if next := bf.Apply(doc); next != nil {
			doc = next
		}
	}
	return doc
}

// BuildAsString builds and serializes the page. ok is false when the
// pipeline is empty or the result cannot be serialized.
func (b *Builder) BuildAsString() (string, bool) {
	doc := b.Build()
	if doc == nil {
		return "", false
	}
	return doc.HTML()
}

// identify wraps step as a BuildFunc with a unique id. A BuildFunc keeps its
// own id unless it is empty or already taken.
func (b *Builder) identify(step Step) BuildFunc {
	bf, ok := step.(BuildFunc)
	if !ok {
		if p, isPtr := step.(*BuildFunc); isPtr && p != nil {
			bf, ok = *p, true
		}
	}
	if !ok {
		bf = BuildFunc{Step: step}
	}
	if bf.ID == "" || b.indexOf(bf.ID) >= 0 {
		bf.ID = uuid.NewString()
	}
	return bf
}

func (b *Builder) indexOf(id string) int {
	for i, bf := range b.funcs {
		if bf.ID == id {
			return i
		}
	}
	return -1
}

func (b *Builder) insertAt(i int, bf BuildFunc) {
	b.funcs = append(b.funcs, BuildFunc{})
	copy(b.funcs[i+1:], b.funcs[i:])
	b.funcs[i] = bf
}
