package disk

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-kit/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveCreatesDirAndFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "public", "images")
	s := NewStorage(log.NewNopLogger())

	n, err := s.Save(context.Background(), dir, "photo.png", strings.NewReader("image"))
	require.NoError(t, err)
	assert.Equal(t, int64(5), n)

	data, err := os.ReadFile(filepath.Join(dir, "photo.png"))
	require.NoError(t, err)
	assert.Equal(t, "image", string(data))
}

func TestSaveOverwrites(t *testing.T) {
	dir := t.TempDir()
	s := NewStorage(log.NewNopLogger())

	_, err := s.Save(context.Background(), dir, "photo.png", strings.NewReader("a much longer first version"))
	require.NoError(t, err)
	_, err = s.Save(context.Background(), dir, "photo.png", strings.NewReader("second"))
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "photo.png"))
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))
}

type brokenReader struct{}

func (brokenReader) Read([]byte) (int, error) {
	return 0, errors.New("connection reset")
}

func TestSaveFailedWriteLeavesNoFile(t *testing.T) {
	dir := t.TempDir()
	s := NewStorage(log.NewNopLogger())

	_, err := s.Save(context.Background(), dir, "photo.png", brokenReader{})
	assert.Error(t, err)

	_, err = os.Stat(filepath.Join(dir, "photo.png"))
	assert.True(t, os.IsNotExist(err))
}

func TestSaveCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewStorage(log.NewNopLogger()).Save(ctx, t.TempDir(), "photo.png", strings.NewReader("x"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestOpenAndRemove(t *testing.T) {
	dir := t.TempDir()
	s := NewStorage(log.NewNopLogger())

	_, err := s.Save(context.Background(), dir, "photo.gif", strings.NewReader("gif"))
	require.NoError(t, err)

	body, err := s.Open(context.Background(), dir, "photo.gif")
	require.NoError(t, err)
	data, err := io.ReadAll(body)
	require.NoError(t, err)
	require.NoError(t, body.Close())
	assert.Equal(t, "gif", string(data))

	require.NoError(t, s.Remove(context.Background(), dir, "photo.gif"))
	require.NoError(t, s.Remove(context.Background(), dir, "photo.gif"), "removing a missing file is not an error")

	_, err = s.Open(context.Background(), dir, "photo.gif")
	assert.True(t, os.IsNotExist(err))
}
