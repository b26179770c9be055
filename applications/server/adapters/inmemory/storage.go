package inmemory

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"sync"

	"github.com/dustin/go-humanize"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/donmikel/imageupload/applications/server/interfaces"
)

type inMemoryStorage struct {
	dataByPath map[string][]byte
	log        log.Logger
	mutex      sync.RWMutex
}

func NewStorage(logger log.Logger) interfaces.Storage {
	return &inMemoryStorage{
		log:        logger,
		dataByPath: map[string][]byte{},
	}
}

func (m *inMemoryStorage) Save(ctx context.Context, dir, name string, body io.Reader) (int64, error) {
	data, err := io.ReadAll(body)
	if err != nil {
		return 0, err
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()

	p := path.Join(dir, name)
	m.dataByPath[p] = data

	level.Info(m.log).Log("msg", "file stored",
		"path", p,
		"storage", "memory",
		"size", humanize.Bytes(uint64(len(data))),
	)

	return int64(len(data)), nil
}

func (m *inMemoryStorage) Open(ctx context.Context, dir, name string) (io.ReadCloser, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	data, ok := m.dataByPath[path.Join(dir, name)]
	if !ok {
		return nil, fmt.Errorf("open %s: %w", path.Join(dir, name), os.ErrNotExist)
	}

	return io.NopCloser(bytes.NewReader(data)), nil
}

func (m *inMemoryStorage) Remove(ctx context.Context, dir, name string) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	delete(m.dataByPath, path.Join(dir, name))

	return nil
}
