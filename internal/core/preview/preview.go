package preview

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"sync"

	"github.com/markdave123-py/VisionOCR/internal/core"
)

var ErrReleased = errors.New("preview not found or already released")

var (
	_ core.PreviewStore = (*MemoryStore)(nil)
	_ core.PreviewStore = (*ObjectStore)(nil)
)

// MemoryStore keeps previews in process memory.
type MemoryStore struct {
	mu    sync.Mutex
	blobs map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{blobs: make(map[string][]byte)}
}

func (s *MemoryStore) Put(_ context.Context, id, _, _ string, data []byte) (string, error) {
	ref := "mem://" + id

	s.mu.Lock()
	defer s.mu.Unlock()

	s.blobs[ref] = append([]byte(nil), data...)
	return ref, nil
}

func (s *MemoryStore) Open(_ context.Context, ref string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, ok := s.blobs[ref]
	if !ok {
		return nil, ErrReleased
	}
	return data, nil
}

func (s *MemoryStore) Release(_ context.Context, ref string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.blobs[ref]; !ok {
		return ErrReleased
	}
	delete(s.blobs, ref)
	return nil
}

// Len returns the number of previews not yet released.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.blobs)
}

// ObjectStore keeps previews in an object storage bucket. The reference is
// the object key; releasing it deletes the object.
type ObjectStore struct {
	client core.ObjectClient
}

func NewObjectStore(client core.ObjectClient) *ObjectStore {
	return &ObjectStore{client: client}
}

func (s *ObjectStore) Put(ctx context.Context, id, fileName, contentType string, data []byte) (string, error) {
	key := objectKey(id, fileName)

	if err := s.client.PutObject(ctx, key, data, contentType); err != nil {
		return "", fmt.Errorf("store preview %s: %w", id, err)
	}
	return key, nil
}

func (s *ObjectStore) Open(ctx context.Context, ref string) ([]byte, error) {
	return s.client.GetObject(ctx, ref)
}

func (s *ObjectStore) Release(ctx context.Context, ref string) error {
	return s.client.DeleteObject(ctx, ref)
}

// objectKey creates a consistent key layout for previews.
func objectKey(id, fileName string) string {
	fileName = strings.TrimSpace(path.Base(strings.ReplaceAll(fileName, "\\", "/")))
	fileName = strings.ReplaceAll(fileName, " ", "_")
	if fileName == "" || fileName == "." || fileName == "/" {
		fileName = "upload"
	}
	return path.Join("previews", id, fileName)
}
