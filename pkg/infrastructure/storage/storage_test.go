package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	derrors "github.com/ripixel/fitglue-diary/pkg/errors"
)

func TestLocalAdapter_WriteRead(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()
	var store LocalAdapter

	require.NoError(t, store.Write(ctx, dir, "nested/log.csv", []byte("first")))
	require.NoError(t, store.Write(ctx, dir, "nested/log.csv", []byte("second")))

	data, err := store.Read(ctx, dir, "nested/log.csv")
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))

	entries, err := os.ReadDir(filepath.Join(dir, "nested"))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files should not be left behind")
}

func TestLocalAdapter_ReadMissing(t *testing.T) {
	_, err := LocalAdapter{}.Read(context.Background(), t.TempDir(), "missing.csv")
	require.Error(t, err)
	assert.True(t, errors.Is(err, derrors.ErrNotFound))
}

func TestParseLocation(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    Location
		wantErr bool
	}{
		{
			name: "relative file",
			raw:  "fitness_data.csv",
			want: Location{Bucket: ".", Object: "fitness_data.csv"},
		},
		{
			name: "nested file",
			raw:  filepath.Join("out", "log.csv"),
			want: Location{Bucket: "out", Object: "log.csv"},
		},
		{
			name: "gcs object",
			raw:  "gs://gym-bucket/exports/fitness_data.csv",
			want: Location{Remote: true, Bucket: "gym-bucket", Object: "exports/fitness_data.csv"},
		},
		{name: "gcs without object", raw: "gs://gym-bucket", wantErr: true},
		{name: "gcs without bucket", raw: "gs:///x.csv", wantErr: true},
		{name: "empty", raw: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseLocation(tt.raw)
			if tt.wantErr {
				assert.Equal(t, derrors.CodeValidationError, derrors.GetCode(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLocation_Child(t *testing.T) {
	local, err := ParseLocation(filepath.Join("out", "fit"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("out", "fit", "2025-01-16.fit"), local.Child("2025-01-16.fit").String())

	remote, err := ParseLocation("gs://gym-bucket/fit")
	require.NoError(t, err)
	assert.Equal(t, "gs://gym-bucket/fit/2025-01-16.fit", remote.Child("2025-01-16.fit").String())
}

func TestRouter_LocalNeedsNoClient(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()
	r := NewRouter()
	defer r.Close()

	loc, err := ParseLocation(filepath.Join(dir, "a.csv"))
	require.NoError(t, err)

	require.NoError(t, r.Write(ctx, loc, []byte("x")))
	data, err := r.Read(ctx, loc)
	require.NoError(t, err)
	assert.Equal(t, "x", string(data))
	assert.Nil(t, r.client)
}
