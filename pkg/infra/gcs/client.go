package gcs

import (
	"context"
	"io"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/m-mizutani/goerr/v2"
	"github.com/mekorot/linker/pkg/domain/interfaces"
)

type client struct {
	gcsClient *storage.Client
}

// NewClient creates an ObjectStore backed by Google Cloud Storage. Credentials
// are resolved from the environment (Application Default Credentials).
func NewClient(ctx context.Context) (interfaces.ObjectStore, error) {
	gcsClient, err := storage.NewClient(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create GCS client")
	}

	return &client{
		gcsClient: gcsClient,
	}, nil
}

// Open returns a reader for the named object
func (c *client) Open(ctx context.Context, bucket, object string) (io.ReadCloser, error) {
	r, err := c.gcsClient.Bucket(bucket).Object(object).NewReader(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open GCS object",
			goerr.V("bucket", bucket), goerr.V("object", object))
	}
	return r, nil
}

// ParseURL splits a gs://bucket/path/to/object URL into bucket and object
func ParseURL(url string) (bucket, object string, err error) {
	rest, ok := strings.CutPrefix(url, "gs://")
	if !ok {
		return "", "", goerr.New("not a gs:// URL", goerr.V("url", url))
	}

	bucket, object, ok = strings.Cut(rest, "/")
	if !ok || bucket == "" || object == "" {
		return "", "", goerr.New("malformed gs:// URL", goerr.V("url", url))
	}
	return bucket, object, nil
}

// IsGSURL reports whether the path refers to an object in GCS
func IsGSURL(path string) bool {
	return strings.HasPrefix(path, "gs://")
}

// Fetch reads the whole object at a gs:// URL
func Fetch(ctx context.Context, store interfaces.ObjectStore, url string) ([]byte, error) {
	bucket, object, err := ParseURL(url)
	if err != nil {
		return nil, err
	}

	r, err := store.Open(ctx, bucket, object)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read GCS object", goerr.V("url", url))
	}
	return data, nil
}
