package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/shwimple/shwimple/internal/errors"
	"github.com/shwimple/shwimple/pkg/dom"
	"github.com/shwimple/shwimple/pkg/pagefile"
	"github.com/shwimple/shwimple/pkg/render"
)

// Output formats.
const (
	formatHTML     = "html"
	formatMarkdown = "md"
)

func buildCmd(a *app) *cobra.Command {
	var (
		format string
		pretty bool
	)

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Render every page into the output directory",
		Long: `Render every page file in the pages directory.

Each pages/<name>.yaml is written to <output>/<name>.html
(or .md with --format md).

Examples:
  shwimple build
  shwimple build --output public --pretty`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.load(); err != nil {
				return err
			}
			return runBuild(a, format, pretty)
		},
	}

	cmd.Flags().StringP("output", "o", "", "Output directory (default from config)")
	cmd.Flags().StringVarP(&format, "format", "f", formatHTML, "Output format (html, md)")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "Indent HTML output")
	a.bind("output", cmd.Flags().Lookup("output"))

	return cmd
}

func runBuild(a *app, format string, pretty bool) error {
	if err := checkFormat(format); err != nil {
		return err
	}

	renderer := render.NewRenderer(render.RendererConfig{Doctype: true, Pretty: pretty})
	files, err := pagefile.LoadDir(a.cfg.PagesPath())
	if err != nil {
		return err
	}

	outDir := a.cfg.OutputPath()
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return errors.New("E503").Wrap(err)
	}

	for _, f := range files {
		content, err := renderFile(f, a.cfg.ParsedLayout(), renderer, format)
		if err != nil {
			return err
		}
		path := filepath.Join(outDir, f.Name()+"."+format)
		if err := writeOutput(path, content); err != nil {
			return err
		}
		a.logger.Debug("rendered page", "page", f.Name(), "path", path)
	}

	success("Built %d page(s) into %s", len(files), outDir)
	return nil
}

// renderFile builds a page file and serializes it in format.
func renderFile(f *pagefile.File, fallback dom.Layout, r *render.Renderer, format string) (string, error) {
	page, err := f.Page(fallback)
	if err != nil {
		return "", err
	}
	doc := page.Render()
	if doc == nil {
		return "", errors.New("E303").WithDetail("Page " + f.Name() + " produced no document.")
	}
	if format == formatMarkdown {
		return r.Markdown(doc)
	}
	return r.RenderToString(doc)
}

func checkFormat(format string) error {
	switch format {
	case formatHTML, formatMarkdown:
		return nil
	}
	return errors.New("E502").
		WithDetail("Unknown format '" + format + "'").
		WithSuggestion("Use --format html or --format md")
}

func writeOutput(path, content string) error {
	if !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return errors.New("E503").
			WithDetail("Could not write " + path).
			Wrap(err)
	}
	return nil
}
