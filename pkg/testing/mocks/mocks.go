package mocks

import (
	"context"
	"fmt"

	derrors "github.com/ripixel/fitglue-diary/pkg/errors"
)

// --- Mock Storage ---
type MockBlobStore struct {
	WriteFunc func(ctx context.Context, bucket, object string, data []byte) error
	ReadFunc  func(ctx context.Context, bucket, object string) ([]byte, error)
}

func (m *MockBlobStore) Write(ctx context.Context, bucket, object string, data []byte) error {
	if m.WriteFunc != nil {
		return m.WriteFunc(ctx, bucket, object, data)
	}
	return nil
}

// Read reports every object as missing unless ReadFunc is set.
func (m *MockBlobStore) Read(ctx context.Context, bucket, object string) ([]byte, error) {
	if m.ReadFunc != nil {
		return m.ReadFunc(ctx, bucket, object)
	}
	return nil, derrors.ErrNotFound.WithMessage(fmt.Sprintf("%s/%s not found", bucket, object))
}

// --- In-memory Storage ---

// MemoryBlobStore keeps objects in a map keyed by "bucket/object".
type MemoryBlobStore struct {
	Objects map[string][]byte
}

func NewMemoryBlobStore() *MemoryBlobStore {
	return &MemoryBlobStore{Objects: map[string][]byte{}}
}

func (m *MemoryBlobStore) Write(_ context.Context, bucket, object string, data []byte) error {
	m.Objects[bucket+"/"+object] = append([]byte(nil), data...)
	return nil
}

func (m *MemoryBlobStore) Read(_ context.Context, bucket, object string) ([]byte, error) {
	data, ok := m.Objects[bucket+"/"+object]
	if !ok {
		return nil, derrors.ErrNotFound.WithMessage(fmt.Sprintf("%s/%s not found", bucket, object))
	}
	return data, nil
}
