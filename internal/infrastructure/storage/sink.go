package storage

import (
	"context"
	"io"
)

// Sink is a destination for archived meeting attachments. Size may be -1 when
// unknown.
type Sink interface {
	Put(ctx context.Context, objectName string, r io.Reader, size int64, contentType string) error
	List(ctx context.Context, prefix string) ([]string, error)
	Name() string
}
