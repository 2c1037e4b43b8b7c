package ports

import (
	"context"
	"io"
)

// ObjectStorage is the blob store for vacation images.
type ObjectStorage interface {
	Upload(ctx context.Context, bucket, objectName, contentType string, reader io.Reader, size int64) (string, error)
}
