package interfaces

import (
	"context"
	"io"
)

type Storage interface {
	Save(ctx context.Context, dir, name string, body io.Reader) (int64, error)
	Open(ctx context.Context, dir, name string) (io.ReadCloser, error)
	Remove(ctx context.Context, dir, name string) error
}
