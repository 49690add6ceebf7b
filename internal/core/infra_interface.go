package core

import "context"

// ObjectClient stores blobs in a single object storage bucket.
type ObjectClient interface {
	PutObject(ctx context.Context, key string, data []byte, contentType string) error
	GetObject(ctx context.Context, key string) ([]byte, error)
	DeleteObject(ctx context.Context, key string) error
}

// PreviewStore holds the original bytes of an upload so the UI can show a
// thumbnail. Every reference returned by Put must be released exactly once.
type PreviewStore interface {
	Put(ctx context.Context, id, fileName, contentType string, data []byte) (ref string, err error)
	Open(ctx context.Context, ref string) ([]byte, error)
	Release(ctx context.Context, ref string) error
}
