package pagefile

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/shwimple/shwimple"
	"github.com/shwimple/shwimple/el"
	"github.com/shwimple/shwimple/internal/errors"
	"github.com/shwimple/shwimple/pkg/builder"
	"github.com/shwimple/shwimple/pkg/dom"
)

// Extensions are the recognised page file extensions in lookup order.
var Extensions = []string{".yaml", ".yml", ".json"}

// File is a parsed page file.
type File struct {
	Title  string    `yaml:"title"`
	Layout string    `yaml:"layout"`
	Head   []Element `yaml:"head"`
	Main   []Element `yaml:"main"`
	Body   []Element `yaml:"body"`

	path string
}

// Element describes one node and its subtree.
type Element struct {
	Tag       string            `yaml:"tag"`
	ID        string            `yaml:"id"`
	Class     string            `yaml:"class"`
	ClassList []string          `yaml:"classList"`
	Attrs     map[string]string `yaml:"attrs"`
	Data      map[string]any    `yaml:"data"`
	Aria      map[string]any    `yaml:"aria"`

	Text     string `yaml:"text"`
	Raw      string `yaml:"raw"`
	Sanitize string `yaml:"sanitize"`
	Markdown string `yaml:"markdown"`
	HTML     string `yaml:"html"`

	Children []Element `yaml:"children"`
}

// Load reads and validates the page file at path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New("E201").
			WithDetail("Cannot read " + path).
			Wrap(err)
	}
	f, err := parse(data, path)
	if err != nil {
		return nil, err
	}
	f.path = path
	return f, nil
}

// Parse decodes and validates a page file held in memory.
func Parse(data []byte) (*File, error) {
	return parse(data, "")
}

func parse(data []byte, path string) (*File, error) {
	f := &File{}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(f); err != nil && !stderrors.Is(err, io.EOF) {
		coded := errors.New("E202").WithDetail(err.Error()).Wrap(err)
		if path != "" {
			coded.WithLocationFromError(path, err)
		}
		return nil, coded
	}
	if err := f.validate(path); err != nil {
		return nil, err
	}
	return f, nil
}

// Path returns the file the page was loaded from, or "".
func (f *File) Path() string {
	return f.path
}

// Name returns the page name: the file name without extension.
func (f *File) Name() string {
	base := filepath.Base(f.path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// LayoutOr returns the file's layout, or fallback when it names none.
func (f *File) LayoutOr(fallback dom.Layout) dom.Layout {
	if strings.TrimSpace(f.Layout) == "" {
		return fallback
	}
	layout, _ := dom.ParseLayout(f.Layout)
	return layout
}

// Page compiles the file into a page. fallback is used when the file names
// no layout; opts are applied after the title and layout.
//
// Every render mounts fresh copies of the compiled nodes, so the page can be
// rendered any number of times.
func (f *File) Page(fallback dom.Layout, opts ...builder.Option) (*shwimple.Page, error) {
	head, err := compileAll(f.Head)
	if err != nil {
		return nil, f.locate(err)
	}
	main, err := compileAll(f.Main)
	if err != nil {
		return nil, f.locate(err)
	}
	body, err := compileAll(f.Body)
	if err != nil {
		return nil, f.locate(err)
	}

	opts = append([]builder.Option{
		builder.WithTitle(f.Title),
		builder.WithLayout(f.LayoutOr(fallback)),
	}, opts...)

	return shwimple.NewPage(builder.New(opts...),
		shwimple.Head(shwimple.Define("head", clones(head))),
		shwimple.Main(shwimple.Define("main", clones(main))),
		shwimple.Body(shwimple.Define("body", clones(body))),
	), nil
}

func (f *File) locate(err error) error {
	var coded *errors.Error
	if f.path != "" && stderrors.As(err, &coded) && coded.Location == nil {
		coded.Location = &errors.Location{File: f.path}
	}
	return err
}

// clones yields deep copies of nodes on every render.
func clones(nodes []*dom.Node) shwimple.Component {
	return shwimple.ComponentFunc(func(*shwimple.Context) []*dom.Node {
		out := make([]*dom.Node, len(nodes))
		for i, n := range nodes {
			out[i] = n.Clone()
		}
		return out
	})
}

func compileAll(elems []Element) ([]*dom.Node, error) {
	nodes := make([]*dom.Node, 0, len(elems))
	for i := range elems {
		n, err := elems[i].Node()
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}
	return nodes, nil
}

// Node compiles the element into a node tree.
func (e *Element) Node() (*dom.Node, error) {
	var args []any

	attrs := el.Merge(e.Attrs, el.DataAttrs(e.Data), el.AriaAttrs(e.Aria))
	if e.ID != "" || e.Class != "" || len(e.ClassList) > 0 || len(attrs) > 0 {
		args = append(args, el.Props{
			ID:        e.ID,
			ClassName: e.Class,
			ClassList: e.ClassList,
			Attrs:     attrs,
		})
	}

	switch {
	case e.Text != "":
		args = append(args, el.Text(e.Text))
	case e.Raw != "":
		args = append(args, el.Raw(e.Raw))
	case e.Sanitize != "":
		args = append(args, el.Sanitized(e.Sanitize))
	case e.Markdown != "":
		n, err := el.Markdown(e.Markdown)
		if err != nil {
			return nil, errors.New("E205").Wrap(err)
		}
		args = append(args, n)
	case e.HTML != "":
		nodes, err := el.Parse(e.HTML)
		if err != nil {
			return nil, errors.New("E206").Wrap(err)
		}
		args = append(args, nodes)
	}

	for i := range e.Children {
		child, err := e.Children[i].Node()
		if err != nil {
			return nil, err
		}
		args = append(args, child)
	}

	return el.El(e.Tag, args...), nil
}

// contentFields lists the content fields set on e.
func (e *Element) contentFields() []string {
	var set []string
	for _, f := range []struct {
		name, value string
	}{
		{"text", e.Text},
		{"raw", e.Raw},
		{"sanitize", e.Sanitize},
		{"markdown", e.Markdown},
		{"html", e.HTML},
	} {
		if f.value != "" {
			set = append(set, f.name)
		}
	}
	return set
}

func (f *File) validate(path string) error {
	err := f.check()
	if err == nil {
		return nil
	}
	if path != "" {
		err.Location = &errors.Location{File: path}
	}
	return err
}

func (f *File) check() *errors.Error {
	if _, ok := dom.ParseLayout(f.Layout); !ok {
		return errors.New("E207").
			WithDetail(fmt.Sprintf("Unknown layout %q. Layouts are standard, docs and landing.", f.Layout)).
			WithExample("layout: docs")
	}
	sections := []struct {
		name  string
		elems []Element
	}{
		{"head", f.Head},
		{"main", f.Main},
		{"body", f.Body},
	}
	for _, s := range sections {
		for i := range s.elems {
			if err := validateElement(&s.elems[i], fmt.Sprintf("%s[%d]", s.name, i)); err != nil {
				return err
			}
		}
	}
	return nil
}

func validateElement(e *Element, at string) *errors.Error {
	if strings.TrimSpace(e.Tag) == "" {
		return errors.New("E203").
			WithDetail("Element " + at + " has no tag.").
			WithExample("- tag: p\n  text: Hello")
	}
	if set := e.contentFields(); len(set) > 1 {
		return errors.New("E204").
			WithDetail(fmt.Sprintf("Element %s (%s) sets %s.", at, e.Tag, strings.Join(set, " and "))).
			WithSuggestion("Move extra content into children")
	}
	for i := range e.Children {
		if err := validateElement(&e.Children[i], fmt.Sprintf("%s.children[%d]", at, i)); err != nil {
			return err
		}
	}
	return nil
}

// LoadDir loads every page file in dir, sorted by file name. Files with the
// same name and different extensions are loaded once, preferring the first
// extension in Extensions.
func LoadDir(dir string) ([]*File, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.New("E201").
			WithDetail("Cannot read pages directory " + dir).
			Wrap(err)
	}

	chosen := make(map[string]string)
	for _, entry := range entries {
		if entry.IsDir() || !IsPageFile(entry.Name()) {
			continue
		}
		name := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
		if prev, ok := chosen[name]; ok && extRank(prev) <= extRank(entry.Name()) {
			continue
		}
		chosen[name] = entry.Name()
	}

	names := make([]string, 0, len(chosen))
	for _, file := range chosen {
		names = append(names, file)
	}
	sort.Strings(names)

	files := make([]*File, 0, len(names))
	for _, name := range names {
		f, err := Load(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		files = append(files, f)
	}
	return files, nil
}

// Lookup finds the page file for name in dir. Names containing path
// separators or starting with a dot are rejected.
func Lookup(dir, name string) (string, bool) {
	if name == "" || strings.HasPrefix(name, ".") || strings.ContainsAny(name, `/\`) {
		return "", false
	}
	for _, ext := range Extensions {
		path := filepath.Join(dir, name+ext)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, true
		}
	}
	return "", false
}

// IsPageFile reports whether name has a page file extension.
func IsPageFile(name string) bool {
	return extRank(name) < len(Extensions)
}

func extRank(name string) int {
	ext := strings.ToLower(filepath.Ext(name))
	for i, e := range Extensions {
		if ext == e {
			return i
		}
	}
	return len(Extensions)
}
