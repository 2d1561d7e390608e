// Package storage reads and writes whole files on the local filesystem or in
// Google Cloud Storage.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"cloud.google.com/go/storage"

	derrors "github.com/ripixel/fitglue-diary/pkg/errors"
)

// BlobStore reads and writes whole objects. A missing object reads as
// derrors.ErrNotFound.
type BlobStore interface {
	Write(ctx context.Context, bucket, object string, data []byte) error
	Read(ctx context.Context, bucket, object string) ([]byte, error)
}

// --- Local Adapter ---

// LocalAdapter treats bucket as a directory and object as a path inside it.
type LocalAdapter struct{}

// Write replaces the file in one step: data goes to a temporary file in the
// same directory which is then renamed over the target. A failed write leaves
// the previous file untouched.
func (LocalAdapter) Write(_ context.Context, bucket, object string, data []byte) error {
	target := filepath.Join(bucket, filepath.FromSlash(object))
	dir := filepath.Dir(target)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return derrors.ErrStorageError.WithMessage("create directory " + dir).WithCause(err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(target)+".tmp-*")
	if err != nil {
		return derrors.ErrStorageError.WithMessage("create temp file").WithCause(err)
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		cleanup()
		return derrors.ErrStorageError.WithMessage("write " + target).WithCause(err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		cleanup()
		return derrors.ErrStorageError.WithMessage("sync " + target).WithCause(err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return derrors.ErrStorageError.WithMessage("close " + target).WithCause(err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		cleanup()
		return derrors.ErrStorageError.WithMessage("chmod " + target).WithCause(err)
	}
	if err := os.Rename(tmpName, target); err != nil {
		cleanup()
		return derrors.ErrStorageError.WithMessage("replace " + target).WithCause(err)
	}
	return nil
}

func (LocalAdapter) Read(_ context.Context, bucket, object string) ([]byte, error) {
	target := filepath.Join(bucket, filepath.FromSlash(object))
	data, err := os.ReadFile(target)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, derrors.ErrNotFound.WithMessage(target + " not found").WithCause(err)
	}
	if err != nil {
		return nil, derrors.ErrStorageError.WithMessage("read " + target).WithCause(err)
	}
	return data, nil
}

// --- Storage Adapter ---

// StorageAdapter reads and writes Cloud Storage objects.
type StorageAdapter struct {
	Client *storage.Client
}

func (a *StorageAdapter) Write(ctx context.Context, bucketName, objectName string, data []byte) error {
	wc := a.Client.Bucket(bucketName).Object(objectName).NewWriter(ctx)
	if _, err := wc.Write(data); err != nil {
		_ = wc.Close()
		return derrors.ErrStorageError.WithMessage(fmt.Sprintf("write gs://%s/%s", bucketName, objectName)).WithCause(err)
	}
	// The object only becomes visible once Close succeeds.
	if err := wc.Close(); err != nil {
		return derrors.ErrStorageError.WithMessage(fmt.Sprintf("commit gs://%s/%s", bucketName, objectName)).WithCause(err)
	}
	return nil
}

func (a *StorageAdapter) Read(ctx context.Context, bucketName, objectName string) ([]byte, error) {
	rc, err := a.Client.Bucket(bucketName).Object(objectName).NewReader(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) || errors.Is(err, storage.ErrBucketNotExist) {
		return nil, derrors.ErrNotFound.WithMessage(fmt.Sprintf("gs://%s/%s not found", bucketName, objectName)).WithCause(err)
	}
	if err != nil {
		return nil, derrors.ErrStorageError.WithMessage(fmt.Sprintf("open gs://%s/%s", bucketName, objectName)).WithCause(err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, derrors.ErrStorageError.WithMessage(fmt.Sprintf("read gs://%s/%s", bucketName, objectName)).WithCause(err)
	}
	return data, nil
}

// --- Locations ---

const gcsScheme = "gs://"

// Location names one file, either local or in a Cloud Storage bucket.
type Location struct {
	Remote bool
	Bucket string // directory for local files
	Object string
}

// ParseLocation accepts a filesystem path or a gs://bucket/object URL.
func ParseLocation(raw string) (Location, error) {
	if strings.HasPrefix(raw, gcsScheme) {
		rest := strings.TrimPrefix(raw, gcsScheme)
		bucket, object, ok := strings.Cut(rest, "/")
		if !ok || bucket == "" || object == "" {
			return Location{}, derrors.ErrValidation.WithMessage(fmt.Sprintf("%q must look like gs://bucket/object", raw))
		}
		return Location{Remote: true, Bucket: bucket, Object: object}, nil
	}
	if raw == "" {
		return Location{}, derrors.ErrValidation.WithMessage("empty path")
	}
	return Location{Bucket: filepath.Dir(raw), Object: filepath.Base(raw)}, nil
}

// Child treats l as a directory and returns the location of name inside it.
func (l Location) Child(name string) Location {
	if l.Remote {
		return Location{Remote: true, Bucket: l.Bucket, Object: path.Join(l.Object, name)}
	}
	return Location{Bucket: filepath.Join(l.Bucket, l.Object), Object: name}
}

func (l Location) String() string {
	if l.Remote {
		return gcsScheme + l.Bucket + "/" + l.Object
	}
	return filepath.Join(l.Bucket, l.Object)
}

// Router hands out the adapter for a location. The Cloud Storage client is
// created on first use, so purely local runs never need credentials.
type Router struct {
	local LocalAdapter

	mu     sync.Mutex
	client *storage.Client
	remote *StorageAdapter
}

// NewRouter creates a Router with no remote client yet.
func NewRouter() *Router {
	return &Router{}
}

// For returns the BlobStore serving loc.
func (r *Router) For(ctx context.Context, loc Location) (BlobStore, error) {
	if !loc.Remote {
		return r.local, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.remote == nil {
		client, err := storage.NewClient(ctx)
		if err != nil {
			return nil, derrors.ErrStorageError.WithMessage("storage init").WithCause(err)
		}
		r.client = client
		r.remote = &StorageAdapter{Client: client}
	}
	return r.remote, nil
}

// Read fetches the whole file at loc.
func (r *Router) Read(ctx context.Context, loc Location) ([]byte, error) {
	store, err := r.For(ctx, loc)
	if err != nil {
		return nil, err
	}
	return store.Read(ctx, loc.Bucket, loc.Object)
}

// Write replaces the whole file at loc.
func (r *Router) Write(ctx context.Context, loc Location, data []byte) error {
	store, err := r.For(ctx, loc)
	if err != nil {
		return err
	}
	return store.Write(ctx, loc.Bucket, loc.Object, data)
}

// Close releases the Cloud Storage client if one was created.
func (r *Router) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.client == nil {
		return nil
	}
	err := r.client.Close()
	r.client, r.remote = nil, nil
	return err
}
