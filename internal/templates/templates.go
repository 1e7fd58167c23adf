package templates

import (
	"bytes"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/template"

	"github.com/shwimple/shwimple/internal/errors"
)

// Config contains template configuration.
type Config struct {
	// ProjectName is the name of the project.
	ProjectName string

	// Title is the title of the generated index page.
	Title string
}

// Template represents a project template.
type Template struct {
	// Name is the template name.
	Name string

	// Description describes the template.
	Description string

	// Files is a map of relative paths to file contents.
	Files map[string]string
}

// Available templates.
var templates = map[string]*Template{
	"minimal": minimalTemplate(),
	"docs":    docsTemplate(),
	"landing": landingTemplate(),
}

// DefaultTemplate is used when no template is named.
const DefaultTemplate = "minimal"

// Get returns a template by name.
func Get(name string) (*Template, error) {
	tmpl, ok := templates[name]
	if !ok {
		return nil, errors.New("E504").
			WithDetail("Template '" + name + "' not found").
			WithSuggestion("Available templates: docs, landing, minimal")
	}
	return tmpl, nil
}

// List returns all available template names, sorted.
func List() []string {
	names := make([]string, 0, len(templates))
	for name := range templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Paths returns the template's relative file paths, sorted.
func (t *Template) Paths() []string {
	paths := make([]string, 0, len(t.Files))
	for p := range t.Files {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Create generates a project from the template and returns the written
// paths relative to dir.
func (t *Template) Create(dir string, cfg Config) ([]string, error) {
	if cfg.Title == "" {
		cfg.Title = cfg.ProjectName
	}

	paths := t.Paths()
	for _, relPath := range paths {
		// Execute template
		tmpl, err := template.New(relPath).Parse(t.Files[relPath])
		if err != nil {
			return nil, errors.Newf(errors.CategoryCLI, "invalid template %s: %v", relPath, err)
		}

		var buf bytes.Buffer
		if err := tmpl.Execute(&buf, cfg); err != nil {
			return nil, errors.Newf(errors.CategoryCLI, "template execute error %s: %v", relPath, err)
		}

		// Write file
		fullPath := filepath.Join(dir, relPath)
		if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
			return nil, errors.New("E503").Wrap(err)
		}

		if err := os.WriteFile(fullPath, buf.Bytes(), 0644); err != nil {
			return nil, errors.New("E503").Wrap(err)
		}
	}

	return paths, nil
}

const configFile = `# shwimple project configuration
pages: pages
output: dist
layout: {{.Layout}}

server:
  host: localhost
  port: 3000
  reload: true

publish:
  bucket: ""
  prefix: ""
  region: us-east-1
  concurrency: 4

log:
  level: info
  format: text
`

// replaceLayout fills the layout before the project template pass.
func replaceLayout(s, layout string) string {
	return strings.ReplaceAll(s, "{{.Layout}}", layout)
}

// minimalTemplate returns the minimal template.
func minimalTemplate() *Template {
	return &Template{
		Name:        "minimal",
		Description: "One standard page with a nav bar",
		Files: map[string]string{
			"shwimple.yaml": replaceLayout(configFile, "standard"),
			"pages/index.yaml": `title: {{printf "%q" .Title}}
main:
  - tag: h1
    text: {{printf "%q" .Title}}
  - tag: p
    text: Edit pages/index.yaml and the page reloads.
`,
		},
	}
}

// docsTemplate returns the documentation site template.
func docsTemplate() *Template {
	return &Template{
		Name:        "docs",
		Description: "Documentation pages with a sidebar layout",
		Files: map[string]string{
			"shwimple.yaml": replaceLayout(configFile, "docs"),
			"pages/index.yaml": `title: {{printf "%q" .Title}}
head:
  - tag: meta
    attrs: {name: description, content: {{printf "%q" (print .ProjectName " documentation")}}}
main:
  - tag: h1
    text: {{printf "%q" .Title}}
  - tag: div
    class: prose
    markdown: |
      Welcome to the **{{.ProjectName}}** docs.

      - [Getting started](/getting-started)
`,
			"pages/getting-started.yaml": `title: Getting started
main:
  - tag: h1
    text: Getting started
  - tag: div
    class: prose
    markdown: |
      Run ` + "`shwimple serve`" + ` and open http://localhost:3000.
`,
		},
	}
}

// landingTemplate returns the landing page template.
func landingTemplate() *Template {
	return &Template{
		Name:        "landing",
		Description: "A focused landing page without navigation",
		Files: map[string]string{
			"shwimple.yaml": replaceLayout(configFile, "landing"),
			"pages/index.yaml": `title: {{printf "%q" .Title}}
main:
  - tag: section
    id: hero
    classList: [hero, centered]
    children:
      - tag: h1
        text: {{printf "%q" .Title}}
      - tag: p
        text: Built with shwimple.
      - tag: a
        attrs: {href: "#start", role: button}
        text: Get started
`,
		},
	}
}
