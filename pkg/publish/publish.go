package publish

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"golang.org/x/sync/errgroup"

	"github.com/shwimple/shwimple/internal/errors"
)

// Defaults for published objects.
const (
	ContentTypeHTML    = "text/html; charset=utf-8"
	DefaultConcurrency = 4
	Extension          = ".html"
)

// Putter is the subset of *s3.Client used to upload pages.
type Putter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

var _ Putter = (*s3.Client)(nil)

// Options configures a Publisher.
type Options struct {
	// Bucket is the destination bucket. Required.
	Bucket string

	// Prefix is prepended to every object key, as is.
	Prefix string

	// Concurrency bounds parallel uploads. Default: 4
	Concurrency int

	// CacheControl is sent with every object when set.
	CacheControl string

	// Logger for upload progress. Default: slog.Default()
	Logger *slog.Logger
}

// Item is one rendered page.
type Item struct {
	// Name is the page name; the object key is Prefix + Name + ".html".
	Name string

	// HTML is the rendered document.
	HTML string
}

// Report summarizes a publish run.
type Report struct {
	// Keys are the uploaded object keys, sorted.
	Keys []string

	// Bytes is the total uploaded size.
	Bytes int64

	// Duration is the wall time of the run.
	Duration time.Duration
}

// Publisher uploads rendered pages to a bucket.
type Publisher struct {
	client Putter
	opts   Options
	logger *slog.Logger
}

// New creates a Publisher.
func New(client Putter, opts Options) *Publisher {
	if opts.Concurrency <= 0 {
		opts.Concurrency = DefaultConcurrency
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Publisher{
		client: client,
		opts:   opts,
		logger: opts.Logger.With("component", "publish", "bucket", opts.Bucket),
	}
}

// Key returns the object key for a page name.
func (p *Publisher) Key(name string) string {
	return p.opts.Prefix + name + Extension
}

// Publish uploads items with bounded concurrency. The first failure cancels
// the remaining uploads; keys uploaded before it are still reported.
func (p *Publisher) Publish(ctx context.Context, items []Item) (Report, error) {
	start := time.Now()
	if p.opts.Bucket == "" {
		return Report{}, errors.New("E301")
	}

	var (
		mu     sync.Mutex
		report Report
	)

	g, groupCtx := errgroup.WithContext(ctx)
	g.SetLimit(p.opts.Concurrency)

	for _, item := range items {
		if groupCtx.Err() != nil {
			break
		}
		g.Go(func() error {
			key := p.Key(item.Name)
			if err := p.put(groupCtx, key, item.HTML); err != nil {
				return errors.New("E302").
					WithDetail("Upload of " + key + " failed.").
					Wrap(err)
			}

			mu.Lock()
			report.Keys = append(report.Keys, key)
			report.Bytes += int64(len(item.HTML))
			mu.Unlock()

			p.logger.Debug("uploaded page", "key", key, "bytes", len(item.HTML))
			return nil
		})
	}

	err := g.Wait()
	if err == nil {
		err = ctx.Err()
	}
	sort.Strings(report.Keys)
	report.Duration = time.Since(start)
	if err != nil {
		return report, err
	}

	p.logger.Info("published pages", "count", len(report.Keys), "bytes", report.Bytes, "duration", report.Duration)
	return report, nil
}

func (p *Publisher) put(ctx context.Context, key, html string) error {
	input := &s3.PutObjectInput{
		Bucket:        aws.String(p.opts.Bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader([]byte(html)),
		ContentType:   aws.String(ContentTypeHTML),
		ContentLength: aws.Int64(int64(len(html))),
	}
	if p.opts.CacheControl != "" {
		input.CacheControl = aws.String(p.opts.CacheControl)
	}
	_, err := p.client.PutObject(ctx, input)
	return err
}

// NewS3Client creates an S3 client for region. A non-empty endpoint selects
// an S3-compatible service and enables path-style addressing. Credentials
// come from AWS_ACCESS_KEY_ID, AWS_SECRET_ACCESS_KEY and AWS_SESSION_TOKEN.
func NewS3Client(region, endpoint string) *s3.Client {
	opts := s3.Options{
		Region:      region,
		Credentials: aws.NewCredentialsCache(envCredentials()),
	}
	if endpoint != "" {
		opts.BaseEndpoint = aws.String(strings.TrimSuffix(endpoint, "/"))
		opts.UsePathStyle = true
	}
	return s3.New(opts)
}

func envCredentials() aws.CredentialsProvider {
	return aws.CredentialsProviderFunc(func(context.Context) (aws.Credentials, error) {
		creds := aws.Credentials{
			AccessKeyID:     os.Getenv("AWS_ACCESS_KEY_ID"),
			SecretAccessKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
			SessionToken:    os.Getenv("AWS_SESSION_TOKEN"),
			Source:          "Environment",
		}
		if creds.AccessKeyID == "" || creds.SecretAccessKey == "" {
			return aws.Credentials{}, errors.New("E304")
		}
		return creds, nil
	})
}
