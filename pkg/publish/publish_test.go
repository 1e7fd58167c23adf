package publish

import (
	"context"
	stderrors "errors"
	"io"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shwimple/shwimple/internal/errors"
)

type object struct {
	body         string
	contentType  string
	cacheControl string
	length       int64
}

type fakePutter struct {
	mu      sync.Mutex
	objects map[string]object
	bucket  string
	failKey string

	inFlight atomic.Int32
	peak     atomic.Int32
	block    chan struct{}
}

func newFakePutter() *fakePutter {
	return &fakePutter{objects: make(map[string]object)}
}

func (f *fakePutter) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	n := f.inFlight.Add(1)
	defer f.inFlight.Add(-1)
	for {
		peak := f.peak.Load()
		if n <= peak || f.peak.CompareAndSwap(peak, n) {
			break
		}
	}
	if f.block != nil {
		select {
		case <-f.block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	key := aws.ToString(in.Key)
	if key == f.failKey {
		return nil, stderrors.New("access denied")
	}
	body, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.bucket = aws.ToString(in.Bucket)
	f.objects[key] = object{
		body:         string(body),
		contentType:  aws.ToString(in.ContentType),
		cacheControl: aws.ToString(in.CacheControl),
		length:       aws.ToInt64(in.ContentLength),
	}
	return &s3.PutObjectOutput{}, nil
}

func TestPublish(t *testing.T) {
	fake := newFakePutter()
	p := New(fake, Options{Bucket: "site", Prefix: "docs/", CacheControl: "max-age=60"})

	report, err := p.Publish(context.Background(), []Item{
		{Name: "index", HTML: "<html></html>"},
		{Name: "about", HTML: "<html>about</html>"},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"docs/about.html", "docs/index.html"}, report.Keys)
	assert.Equal(t, int64(len("<html></html>")+len("<html>about</html>")), report.Bytes)
	assert.Equal(t, "site", fake.bucket)

	obj := fake.objects["docs/index.html"]
	assert.Equal(t, object{
		body:         "<html></html>",
		contentType:  "text/html; charset=utf-8",
		cacheControl: "max-age=60",
		length:       13,
	}, obj)
}

func TestPublishNoItems(t *testing.T) {
	report, err := New(newFakePutter(), Options{Bucket: "site"}).Publish(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, report.Keys)
}

func TestPublishRequiresBucket(t *testing.T) {
	_, err := New(newFakePutter(), Options{}).Publish(context.Background(), []Item{{Name: "index"}})

	var coded *errors.Error
	require.True(t, stderrors.As(err, &coded))
	assert.Equal(t, "E301", coded.Code)
}

func TestPublishUploadFailure(t *testing.T) {
	fake := newFakePutter()
	fake.failKey = "bad.html"
	p := New(fake, Options{Bucket: "site", Concurrency: 1})

	report, err := p.Publish(context.Background(), []Item{
		{Name: "good", HTML: "ok"},
		{Name: "bad", HTML: "no"},
	})

	var coded *errors.Error
	require.True(t, stderrors.As(err, &coded))
	assert.Equal(t, "E302", coded.Code)
	assert.Contains(t, coded.Detail, "bad.html")
	assert.Equal(t, []string{"good.html"}, report.Keys)
}

func TestPublishBoundsConcurrency(t *testing.T) {
	fake := newFakePutter()
	fake.block = make(chan struct{})
	p := New(fake, Options{Bucket: "site", Concurrency: 2})

	items := make([]Item, 6)
	for i := range items {
		items[i] = Item{Name: string(rune('a' + i)), HTML: "x"}
	}

	done := make(chan error, 1)
	go func() {
		_, err := p.Publish(context.Background(), items)
		done <- err
	}()

	require.Eventually(t, func() bool { return fake.inFlight.Load() == 2 }, time.Second, time.Millisecond)
	close(fake.block)
	require.NoError(t, <-done)
	assert.Equal(t, int32(2), fake.peak.Load())
	assert.Len(t, fake.objects, 6)
}

func TestPublishCancelled(t *testing.T) {
	fake := newFakePutter()
	fake.block = make(chan struct{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(fake, Options{Bucket: "site"}).Publish(ctx, []Item{{Name: "index"}})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestKey(t *testing.T) {
	tests := []struct {
		prefix string
		name   string
		want   string
	}{
		{"", "index", "index.html"},
		{"docs/", "index", "docs/index.html"},
		{"v1-", "about", "v1-about.html"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, New(nil, Options{Prefix: tt.prefix}).Key(tt.name))
		})
	}
}

func TestEnvCredentials(t *testing.T) {
	t.Setenv("AWS_ACCESS_KEY_ID", "")
	t.Setenv("AWS_SECRET_ACCESS_KEY", "")
	_, err := envCredentials().Retrieve(context.Background())
	var coded *errors.Error
	require.True(t, stderrors.As(err, &coded))
	assert.Equal(t, "E304", coded.Code)

	t.Setenv("AWS_ACCESS_KEY_ID", "AKID")
	t.Setenv("AWS_SECRET_ACCESS_KEY", "secret")
	creds, err := envCredentials().Retrieve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "AKID", creds.AccessKeyID)
}

func TestNewS3Client(t *testing.T) {
	client := NewS3Client("us-east-1", "http://localhost:9000/")
	opts := client.Options()
	assert.Equal(t, "us-east-1", opts.Region)
	assert.Equal(t, "http://localhost:9000", aws.ToString(opts.BaseEndpoint))
	assert.True(t, opts.UsePathStyle)
}
