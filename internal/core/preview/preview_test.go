package preview

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMemoryStoreLifecycle(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	data := []byte{1, 2, 3}
	ref, err := s.Put(ctx, "abc", "scan.png", "image/png", data)
	require.NoError(t, err)
	require.Equal(t, 1, s.Len())

	data[0] = 9
	got, err := s.Open(ctx, ref)
	require.NoError(t, err)
	require.Equal(t, []byte{1, 2, 3}, got)

	require.NoError(t, s.Release(ctx, ref))
	require.Equal(t, 0, s.Len())

	_, err = s.Open(ctx, ref)
	require.ErrorIs(t, err, ErrReleased)
	require.ErrorIs(t, s.Release(ctx, ref), ErrReleased)
}

type fakeObjectClient struct {
	objects map[string][]byte
	failPut bool
}

func (f *fakeObjectClient) PutObject(_ context.Context, key string, data []byte, _ string) error {
	if f.failPut {
		return errors.New("boom")
	}
	f.objects[key] = data
	return nil
}

func (f *fakeObjectClient) GetObject(_ context.Context, key string) ([]byte, error) {
	data, ok := f.objects[key]
	if !ok {
		return nil, errors.New("no such key")
	}
	return data, nil
}

func (f *fakeObjectClient) DeleteObject(_ context.Context, key string) error {
	delete(f.objects, key)
	return nil
}

func TestObjectStoreLifecycle(t *testing.T) {
	ctx := context.Background()
	client := &fakeObjectClient{objects: map[string][]byte{}}
	s := NewObjectStore(client)

	ref, err := s.Put(ctx, "id-1", "my scan.jpg", "image/jpeg", []byte("img"))
	require.NoError(t, err)
	require.Equal(t, "previews/id-1/my_scan.jpg", ref)

	got, err := s.Open(ctx, ref)
	require.NoError(t, err)
	require.Equal(t, []byte("img"), got)

	require.NoError(t, s.Release(ctx, ref))
	require.Empty(t, client.objects)
}

func TestObjectStorePutFailure(t *testing.T) {
	s := NewObjectStore(&fakeObjectClient{objects: map[string][]byte{}, failPut: true})

	_, err := s.Put(context.Background(), "id-1", "a.png", "image/png", nil)
	require.Error(t, err)
}

func TestObjectKey(t *testing.T) {
	require.Equal(t, "previews/x/a.png", objectKey("x", "../../a.png"))
	require.Equal(t, "previews/x/a.png", objectKey("x", `C:\tmp\a.png`))
	require.Equal(t, "previews/x/upload", objectKey("x", ""))
}
