package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/shwimple/shwimple/internal/errors"
	"github.com/shwimple/shwimple/pkg/dom"
	"github.com/shwimple/shwimple/pkg/pagefile"
	"github.com/shwimple/shwimple/pkg/render"
)

type renderOptions struct {
	output  string
	format  string
	doctype bool
	pretty  bool
	void    bool
	layout  string
}

func renderCmd(a *app) *cobra.Command {
	var opts renderOptions

	cmd := &cobra.Command{
		Use:   "render <page>",
		Short: "Render one page file",
		Long: `Render a page file to HTML or Markdown.

<page> is a path to a page file or the name of a page in the
pages directory.

Examples:
  shwimple render pages/index.yaml
  shwimple render about --format md
  shwimple render index -o index.html --doctype --pretty`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.load(); err != nil {
				return err
			}
			return runRender(a, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Write to file instead of stdout")
	cmd.Flags().StringVarP(&opts.format, "format", "f", formatHTML, "Output format (html, md)")
	cmd.Flags().BoolVar(&opts.doctype, "doctype", false, "Prefix <!DOCTYPE html>")
	cmd.Flags().BoolVar(&opts.pretty, "pretty", false, "Indent HTML output")
	cmd.Flags().BoolVar(&opts.void, "void", false, "Omit closing tags of void elements")
	cmd.Flags().StringVar(&opts.layout, "layout", "", "Layout for pages that do not name one (standard, docs, landing)")

	return cmd
}

func runRender(a *app, page string, opts renderOptions) error {
	if err := checkFormat(opts.format); err != nil {
		return err
	}

	layout := a.cfg.ParsedLayout()
	if opts.layout != "" {
		parsed, ok := dom.ParseLayout(opts.layout)
		if !ok {
			return errors.New("E502").
				WithDetail("Unknown layout '" + opts.layout + "'").
				WithSuggestion("Use standard, docs or landing")
		}
		layout = parsed
	}

	path := page
	if _, err := os.Stat(path); err != nil {
		if found, ok := pagefile.Lookup(a.cfg.PagesPath(), page); ok {
			path = found
		}
	}
	f, err := pagefile.Load(path)
	if err != nil {
		return err
	}

	renderer := render.NewRenderer(render.RendererConfig{
		Doctype:      opts.doctype,
		VoidElements: opts.void,
		Pretty:       opts.pretty,
	})
	content, err := renderFile(f, layout, renderer, opts.format)
	if err != nil {
		return err
	}

	if opts.output != "" {
		if err := writeOutput(opts.output, content); err != nil {
			return err
		}
		success("Wrote %s", opts.output)
		return nil
	}
	_, err = io.WriteString(out, content+"\n")
	return err
}
