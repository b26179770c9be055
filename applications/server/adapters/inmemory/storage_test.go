package inmemory

import (
	"context"
	"io"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/go-kit/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorage(t *testing.T) {
	s := NewStorage(log.NewNopLogger())
	ctx := context.Background()

	n, err := s.Save(ctx, "public/images", "photo.png", strings.NewReader("png"))
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	body, err := s.Open(ctx, "public/images/", "photo.png")
	require.NoError(t, err)
	data, err := io.ReadAll(body)
	require.NoError(t, err)
	assert.Equal(t, "png", string(data))

	require.NoError(t, s.Remove(ctx, "public/images", "photo.png"))

	_, err = s.Open(ctx, "public/images", "photo.png")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestStorageConcurrentSameName(t *testing.T) {
	s := NewStorage(log.NewNopLogger())
	ctx := context.Background()

	var wg sync.WaitGroup
	for _, v := range []string{"a", "b", "c", "d"} {
		wg.Add(1)
		go func(v string) {
			defer wg.Done()
			_, err := s.Save(ctx, "dir", "same.png", strings.NewReader(v))
			assert.NoError(t, err)
		}(v)
	}
	wg.Wait()

	body, err := s.Open(ctx, "dir", "same.png")
	require.NoError(t, err)
	data, err := io.ReadAll(body)
	require.NoError(t, err)
	assert.Contains(t, []string{"a", "b", "c", "d"}, string(data))
}
