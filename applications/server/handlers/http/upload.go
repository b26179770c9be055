package http

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"path"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/gorilla/mux"

	"github.com/donmikel/imageupload/applications/server"
	"github.com/donmikel/imageupload/applications/server/domain"
)

const (
	sniffLen = 512
)

// NotSupportedHandler answers every request with 403 and a fixed text
// naming the method and route.
func NotSupportedHandler(route string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusForbidden)
		_, _ = fmt.Fprintf(w, "%s operation not supported on %s", r.Method, route)
	}
}

// PreflightHandler acknowledges CORS pre-flight requests with an empty 200.
func PreflightHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}
}

// UploadFileHandler accepts a multipart body carrying exactly one file under
// fieldName and replies with the stored file descriptor. Plain form values
// are skipped.
func UploadFileHandler(svc server.UploadService, fieldName string, logger log.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stored, err := receiveSingle(r, svc, fieldName)
		if err != nil {
			if stored != nil {
				if dErr := svc.Discard(r.Context(), *stored); dErr != nil {
					level.Error(logger).Log("msg", "can't discard stored file",
						"path", stored.Path,
						"err", dErr,
					)
				}
			}
			encodeError(w, err, logger)
			return
		}

		level.Info(logger).Log("msg", "image uploaded",
			"path", stored.Path,
			"mimetype", stored.MimeType,
			"size", stored.Size,
		)

		writeJSON(w, http.StatusOK, stored, logger)
	}
}

// receiveSingle walks the multipart body. On error it still returns the
// file stored so far so that the caller can discard it.
func receiveSingle(r *http.Request, svc server.UploadService, fieldName string) (*domain.UploadedFile, error) {
	mr, err := r.MultipartReader()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errMalformedBody, err)
	}

	var stored *domain.UploadedFile
	for {
		part, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var maxBytes *http.MaxBytesError
			if errors.As(err, &maxBytes) {
				return stored, err
			}
			return stored, fmt.Errorf("%w: %v", errMalformedBody, err)
		}

		if part.FileName() == "" {
			part.Close()
			continue
		}

		if part.FormName() != fieldName || stored != nil {
			part.Close()
			return stored, fmt.Errorf("%w: %s", domain.ErrUnexpectedField, part.FormName())
		}

		file, err := storePart(r.Context(), svc, part)
		part.Close()
		if err != nil {
			return stored, err
		}
		stored = &file
	}

	if stored == nil {
		return nil, fmt.Errorf("%w under field %s", domain.ErrNoFile, fieldName)
	}

	return stored, nil
}

func storePart(ctx context.Context, svc server.UploadService, part *multipart.Part) (domain.UploadedFile, error) {
	header := domain.FileHeader{
		FieldName:    part.FormName(),
		OriginalName: part.FileName(),
		Encoding:     part.Header.Get("Content-Transfer-Encoding"),
		MimeType:     part.Header.Get("Content-Type"),
	}

	var body io.Reader = part
	// A declared type is reported as sent, even application/octet-stream.
	if header.MimeType == "" {
		br := bufio.NewReaderSize(part, sniffLen)
		head, _ := br.Peek(sniffLen)
		header.MimeType = mimetype.Detect(head).String()
		body = br
	}

	return svc.Upload(ctx, domain.File{Header: header, Body: body})
}

// ServeFileHandler streams a previously stored file back to the client.
func ServeFileHandler(svc server.UploadService, logger log.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := mux.Vars(r)["filename"]

		body, err := svc.Open(r.Context(), name)
		if err != nil {
			encodeError(w, err, logger)
			return
		}
		defer body.Close()

		if ct := mime.TypeByExtension(path.Ext(name)); ct != "" {
			w.Header().Set("Content-Type", ct)
		}

		if _, err = io.Copy(w, body); err != nil {
			level.Error(logger).Log("msg", "error body copy", "err", err)
		}
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}, logger log.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		level.Error(logger).Log("msg", "can't write response", "err", err)
	}
}
