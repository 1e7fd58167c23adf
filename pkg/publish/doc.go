// Package publish uploads rendered pages to S3 or an S3-compatible store.
//
//	client := publish.NewS3Client("eu-west-1", "")
//	p := publish.New(client, publish.Options{Bucket: "site", Prefix: "docs/"})
//	report, err := p.Publish(ctx, []publish.Item{{Name: "index", HTML: html}})
//
// Objects are written as docs/index.html with a text/html content type.
// Uploads run in parallel up to Options.Concurrency.
package publish
