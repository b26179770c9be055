package services

import (
	"context"
	"fmt"
	"io"
	"path"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/donmikel/imageupload/applications/server"
	"github.com/donmikel/imageupload/applications/server/domain"
	"github.com/donmikel/imageupload/applications/server/interfaces"
)

const defaultEncoding = "7bit"

type service struct {
	storage     interfaces.Storage
	filter      *Filter
	destination string
	logger      log.Logger
}

func NewService(storage interfaces.Storage, filter *Filter, destination string, logger log.Logger) server.UploadService {
	return &service{
		storage:     storage,
		filter:      filter,
		destination: destination,
		logger:      logger,
	}
}

// resolveDestination always returns the configured directory.
func (s *service) resolveDestination(domain.FileHeader) string {
	return s.destination
}

// resolveFilename keeps the client's name untouched. A later upload with
// the same name overwrites the earlier one.
func (s *service) resolveFilename(h domain.FileHeader) string {
	return h.OriginalName
}

func (s *service) Upload(ctx context.Context, file domain.File) (domain.UploadedFile, error) {
	h := file.Header
	if err := s.filter.Accepts(h.OriginalName); err != nil {
		level.Warn(s.logger).Log("msg", "file rejected by filter",
			"originalname", h.OriginalName,
		)
		return domain.UploadedFile{}, err
	}

	dir := s.resolveDestination(h)
	name := s.resolveFilename(h)

	size, err := s.storage.Save(ctx, dir, name, file.Body)
	if err != nil {
		return domain.UploadedFile{}, fmt.Errorf("can't store file: %w", err)
	}

	encoding := h.Encoding
	if encoding == "" {
		encoding = defaultEncoding
	}

	return domain.UploadedFile{
		FieldName:    h.FieldName,
		OriginalName: h.OriginalName,
		Encoding:     encoding,
		MimeType:     h.MimeType,
		Destination:  dir,
		FileName:     name,
		Path:         path.Join(dir, name),
		Size:         size,
	}, nil
}

func (s *service) Discard(ctx context.Context, file domain.UploadedFile) error {
	if err := s.storage.Remove(ctx, file.Destination, file.FileName); err != nil {
		return fmt.Errorf("can't remove file %s: %w", file.Path, err)
	}

	return nil
}

func (s *service) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	if name == "" || name != path.Base(name) {
		return nil, fmt.Errorf("invalid file name %q: %w", name, domain.ErrNotFound)
	}

	body, err := s.storage.Open(ctx, s.destination, name)
	if err != nil {
		return nil, fmt.Errorf("can't open file: %w", err)
	}

	return body, nil
}
