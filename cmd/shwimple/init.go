package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/shwimple/shwimple/internal/errors"
	"github.com/shwimple/shwimple/internal/templates"
)

func initCmd() *cobra.Command {
	var (
		template string
		title    string
	)

	cmd := &cobra.Command{
		Use:   "init [dir]",
		Short: "Create a new shwimple project",
		Long: `Create shwimple.yaml and a pages directory.

Templates:
  minimal   One standard page with a nav bar (default)
  docs      Documentation pages with a sidebar layout
  landing   A focused landing page without navigation

Examples:
  shwimple init
  shwimple init my-site --template=docs
  shwimple init my-site --title "Acme"`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			return runInit(dir, template, title)
		},
	}

	cmd.Flags().StringVarP(&template, "template", "t", templates.DefaultTemplate, "Project template (minimal, docs, landing)")
	cmd.Flags().StringVar(&title, "title", "", "Title of the index page (default is the directory name)")

	return cmd
}

func runInit(dir, templateName, title string) error {
	tmpl, err := templates.Get(templateName)
	if err != nil {
		return err
	}

	projectDir, err := filepath.Abs(dir)
	if err != nil {
		return err
	}
	if entries, err := os.ReadDir(projectDir); err == nil && len(entries) > 0 {
		return errors.New("E501").
			WithDetail("Directory '" + dir + "' is not empty").
			WithSuggestion("Choose a new directory: shwimple init my-site")
	}

	written, err := tmpl.Create(projectDir, templates.Config{
		ProjectName: filepath.Base(projectDir),
		Title:       title,
	})
	if err != nil {
		return err
	}

	success("Created %s project in %s", tmpl.Name, projectDir)
	for _, path := range written {
		info("%s", path)
	}
	fmt.Fprintln(out)
	info("Next steps:")
	if dir != "." {
		info("  cd %s", dir)
	}
	info("  shwimple serve")
	return nil
}
