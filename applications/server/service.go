package server

import (
	"context"
	"io"

	"github.com/donmikel/imageupload/applications/server/domain"
)

type UploadService interface {
	Upload(ctx context.Context, file domain.File) (domain.UploadedFile, error)
	Discard(ctx context.Context, file domain.UploadedFile) error
	Open(ctx context.Context, name string) (io.ReadCloser, error)
}
