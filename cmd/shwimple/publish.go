package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/shwimple/shwimple/pkg/pagefile"
	"github.com/shwimple/shwimple/pkg/publish"
	"github.com/shwimple/shwimple/pkg/render"
)

func publishCmd(a *app) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Upload rendered pages to S3",
		Long: `Render every page and upload it to an S3 bucket.

Objects are written as <prefix><name>.html. Credentials are read from
AWS_ACCESS_KEY_ID, AWS_SECRET_ACCESS_KEY and AWS_SESSION_TOKEN.
Set publish.endpoint for S3-compatible stores such as MinIO.

Examples:
  shwimple publish --bucket my-site
  shwimple publish --bucket my-site --prefix docs/ --dry-run`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.load(); err != nil {
				return err
			}
			return runPublish(cmd.Context(), a, dryRun)
		},
	}

	cmd.Flags().String("bucket", "", "Destination bucket")
	cmd.Flags().String("prefix", "", "Key prefix")
	cmd.Flags().String("region", "", "Bucket region")
	cmd.Flags().String("endpoint", "", "S3-compatible endpoint URL")
	cmd.Flags().Int("concurrency", 0, "Parallel uploads")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Render and list keys without uploading")
	for _, name := range []string{"bucket", "prefix", "region", "endpoint", "concurrency"} {
		a.bind("publish."+name, cmd.Flags().Lookup(name))
	}

	return cmd
}

// publishItems renders every page file as a full HTML document.
func publishItems(a *app) ([]publish.Item, error) {
	files, err := pagefile.LoadDir(a.cfg.PagesPath())
	if err != nil {
		return nil, err
	}

	renderer := render.NewRenderer(render.RendererConfig{Doctype: true})
	items := make([]publish.Item, 0, len(files))
	for _, f := range files {
		html, err := renderFile(f, a.cfg.ParsedLayout(), renderer, formatHTML)
		if err != nil {
			return nil, err
		}
		items = append(items, publish.Item{Name: f.Name(), HTML: html})
	}
	return items, nil
}

func runPublish(ctx context.Context, a *app, dryRun bool) error {
	cfg := a.cfg.Publish

	items, err := publishItems(a)
	if err != nil {
		return err
	}

	if dryRun {
		p := publish.New(nil, publish.Options{Prefix: cfg.Prefix})
		for _, item := range items {
			info("%s (%d bytes)", p.Key(item.Name), len(item.HTML))
		}
		success("Dry run: %d page(s) rendered, nothing uploaded", len(items))
		return nil
	}

	client := publish.NewS3Client(cfg.Region, cfg.Endpoint)
	p := publish.New(client, publish.Options{
		Bucket:      cfg.Bucket,
		Prefix:      cfg.Prefix,
		Concurrency: cfg.Concurrency,
		Logger:      a.logger,
	})
	report, err := p.Publish(ctx, items)
	if err != nil {
		return err
	}

	success("Published %d page(s) to s3://%s/%s in %s", len(report.Keys), cfg.Bucket, cfg.Prefix, report.Duration.Round(time.Millisecond))
	return nil
}
