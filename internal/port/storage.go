package port

import (
	"context"
	"io"
)

// ObjectInfo describes a stored object and its attached metadata side-record.
// UserMetadata keys are normalised to lowercase by the gateway; every value is
// a string because that is all the store's metadata facility supports.
type ObjectInfo struct {
	SizeBytes    int64
	ContentType  string
	UserMetadata map[string]string
}

// Storage defines the remote asset store operations the pipeline needs. One
// instance is constructed per build invocation and injected; there is no
// package-global client.
//
// StatObject returns content.ErrObjectNotFound when the key is absent; callers
// treat that as a normal miss, anything else propagates. SaveObject must only
// ever be called after a miss on the same key: published objects are immutable.
type Storage interface {
	StatObject(ctx context.Context, objectKey string) (ObjectInfo, error)
	SaveObject(ctx context.Context, objectKey string, reader io.Reader, size int64, contentType string, userMetadata map[string]string) error
	PublicURL(objectKey string) string
}
