package disk

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/donmikel/imageupload/applications/server/interfaces"
)

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

type diskStorage struct {
	log log.Logger
}

// NewStorage returns a Storage writing to the local filesystem. Files are
// truncated and rewritten in place, so concurrent writers of the same name
// race and the last one wins.
func NewStorage(logger log.Logger) interfaces.Storage {
	return &diskStorage{log: logger}
}

func (d *diskStorage) Save(ctx context.Context, dir, name string, body io.Reader) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return 0, fmt.Errorf("can't create destination dir: %w", err)
	}

	p := filepath.Join(dir, name)
	f, err := os.OpenFile(p, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, filePerm)
	if err != nil {
		return 0, fmt.Errorf("can't open file: %w", err)
	}

	n, err := io.Copy(f, body)
	if err != nil {
		f.Close()
		os.Remove(p)
		return 0, fmt.Errorf("can't write file: %w", err)
	}

	if err = f.Close(); err != nil {
		os.Remove(p)
		return 0, fmt.Errorf("can't close file: %w", err)
	}

	level.Info(d.log).Log("msg", "file stored",
		"path", p,
		"storage", "disk",
		"size", humanize.Bytes(uint64(n)),
	)

	return n, nil
}

func (d *diskStorage) Open(ctx context.Context, dir, name string) (io.ReadCloser, error) {
	f, err := os.Open(filepath.Join(dir, name))
	if err != nil {
		return nil, err
	}

	return f, nil
}

func (d *diskStorage) Remove(ctx context.Context, dir, name string) error {
	err := os.Remove(filepath.Join(dir, name))
	if err != nil && !os.IsNotExist(err) {
		return err
	}

	return nil
}
