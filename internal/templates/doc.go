// Package templates provides project scaffolding for shwimple init.
//
// # Available Templates
//
//   - minimal: One standard page with a nav bar
//   - docs: Documentation pages with a sidebar layout
//   - landing: A focused landing page without navigation
//
// # Usage
//
//	tmpl, err := templates.Get("docs")
//	if err != nil {
//	    return err
//	}
//	written, err := tmpl.Create(projectDir, templates.Config{ProjectName: "acme"})
//
// # Template Variables
//
//	{{.ProjectName}} - Name of the project
//	{{.Title}}       - Title of the index page (defaults to ProjectName)
package templates
