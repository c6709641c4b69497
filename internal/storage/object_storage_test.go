package storage

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngHeader = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, 0x00, 0x00, 0x00, 0x0D, 0x49, 0x48, 0x44, 0x52}

func newTestStorage(t *testing.T) *ObjectStorage {
	t.Helper()
	s, err := NewObjectStorage(t.TempDir(), "http://localhost:8080/storage/", 1)
	require.NoError(t, err)
	require.NoError(t, s.EnsureBuckets("avatars", "resumes"))
	s.AllowTypes("resumes", "application/pdf")
	return s
}

func TestObjectStorage_UploadAndOverwrite(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	url, err := s.Upload(ctx, "avatars", "1700000000000-me.png", bytes.NewReader(append(pngHeader, 1, 2, 3)))
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/storage/avatars/1700000000000-me.png", url)

	second := append(append([]byte{}, pngHeader...), 9, 9)
	_, err = s.Upload(ctx, "avatars", "1700000000000-me.png", bytes.NewReader(second))
	require.NoError(t, err)

	stored, err := os.ReadFile(filepath.Join(s.Root(), "avatars", "1700000000000-me.png"))
	require.NoError(t, err)
	assert.Equal(t, second, stored)
}

func TestObjectStorage_ConcurrentUploadsToSamePath(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	payloads := make([][]byte, 8)
	for i := range payloads {
		payloads[i] = append(append([]byte{}, pngHeader...), bytes.Repeat([]byte{byte(i + 1)}, 64*1024)...)
	}

	var wg sync.WaitGroup
	errs := make([]error, len(payloads))
	for i, payload := range payloads {
		wg.Add(1)
		go func(i int, payload []byte) {
			defer wg.Done()
			_, errs[i] = s.Upload(ctx, "avatars", "1700000000000-me.png", bytes.NewReader(payload))
		}(i, payload)
	}
	wg.Wait()

	for _, err := range errs {
		require.NoError(t, err)
	}

	stored, err := os.ReadFile(filepath.Join(s.Root(), "avatars", "1700000000000-me.png"))
	require.NoError(t, err)
	assert.Contains(t, payloads, stored)

	entries, err := os.ReadDir(filepath.Join(s.Root(), "avatars"))
	require.NoError(t, err)
	for _, entry := range entries {
		assert.False(t, strings.HasPrefix(entry.Name(), ".upload-"), "временный файл остался: %s", entry.Name())
	}
}

func TestObjectStorage_RejectsWrongType(t *testing.T) {
	s := newTestStorage(t)

	_, err := s.Upload(context.Background(), "resumes", "cv.png", bytes.NewReader(pngHeader))
	assert.True(t, errors.Is(err, ErrUnsupportedType))

	_, err = s.Upload(context.Background(), "resumes", "cv.pdf", bytes.NewReader([]byte("%PDF-1.7\n%....")))
	assert.NoError(t, err)

	_, err = s.Upload(context.Background(), "avatars", "note.txt", bytes.NewReader([]byte("hello")))
	assert.True(t, errors.Is(err, ErrUnsupportedType))
}

func TestObjectStorage_MissingBucket(t *testing.T) {
	s := newTestStorage(t)

	_, err := s.Upload(context.Background(), "company-logos", "logo.png", bytes.NewReader(pngHeader))
	assert.True(t, errors.Is(err, ErrBucketNotFound))

	exists, err := s.BucketExists(context.Background(), "company-logos")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestObjectStorage_TooLarge(t *testing.T) {
	s := newTestStorage(t)

	big := append(append([]byte{}, pngHeader...), make([]byte, 1024*1024)...)
	_, err := s.Upload(context.Background(), "avatars", "big.png", bytes.NewReader(big))
	assert.True(t, errors.Is(err, ErrFileTooLarge))

	_, statErr := os.Stat(filepath.Join(s.Root(), "avatars", "big.png"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestObjectStorage_PathStaysInsideBucket(t *testing.T) {
	s := newTestStorage(t)

	target, err := s.resolve("avatars", "../../etc/passwd")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(s.Root(), "avatars", "etc", "passwd"), target)

	_, err = s.resolve("../avatars", "x.png")
	assert.True(t, errors.Is(err, ErrInvalidPath))

	_, err = s.resolve("avatars", "/")
	assert.True(t, errors.Is(err, ErrInvalidPath))
}

func TestObjectStorage_DeleteMissingIsNoop(t *testing.T) {
	s := newTestStorage(t)
	assert.NoError(t, s.Delete(context.Background(), "avatars", "absent.png"))
}

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "my_photo.png", SanitizeFilename("my photo.png"))
	assert.Equal(t, "passwd", SanitizeFilename("../../etc/passwd"))
	assert.Equal(t, "file", SanitizeFilename(""))
}
