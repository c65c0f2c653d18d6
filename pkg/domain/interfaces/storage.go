package interfaces

import (
	"context"
	"io"
)

// ObjectStore fetches model assets from remote object storage
type ObjectStore interface {
	// Open returns a reader for the named object
	Open(ctx context.Context, bucket, object string) (io.ReadCloser, error)
}
