package workoutlog

import (
	"bytes"
	"context"
	"errors"

	derrors "github.com/ripixel/fitglue-diary/pkg/errors"
	"github.com/ripixel/fitglue-diary/pkg/infrastructure/storage"
)

// Store is a log kept as one CSV file. Every mutation reads the whole file
// and writes it back; concurrent writers are not coordinated.
type Store struct {
	blobs  storage.BlobStore
	bucket string
	object string
}

// NewStore returns a Store for the file object in bucket.
func NewStore(blobs storage.BlobStore, bucket, object string) *Store {
	return &Store{blobs: blobs, bucket: bucket, object: object}
}

// Load returns every record in file order. A missing file is an empty log.
func (s *Store) Load(ctx context.Context) ([]Record, error) {
	data, err := s.blobs.Read(ctx, s.bucket, s.object)
	if errors.Is(err, derrors.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return Decode(bytes.NewReader(data))
}

// Save replaces the file with records.
func (s *Store) Save(ctx context.Context, records []Record) error {
	data, err := Marshal(records)
	if err != nil {
		return derrors.ErrInternal.WithMessage("encode log").WithCause(err)
	}
	return s.blobs.Write(ctx, s.bucket, s.object, data)
}

// Append adds records after the existing ones.
func (s *Store) Append(ctx context.Context, records ...Record) error {
	existing, err := s.Load(ctx)
	if err != nil {
		return err
	}
	return s.Save(ctx, append(existing, records...))
}
