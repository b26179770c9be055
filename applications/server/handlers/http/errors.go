package http

import (
	"errors"
	"io/fs"
	"net/http"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/donmikel/imageupload/applications/server/domain"
)

var errMalformedBody = errors.New("malformed multipart body")

// encodeError is the last stop for errors produced while handling a
// request. Client mistakes become 400 with their message, anything else is
// logged and reported as 500.
func encodeError(w http.ResponseWriter, err error, logger log.Logger) {
	var maxBytes *http.MaxBytesError

	switch {
	case errors.As(err, &maxBytes):
		writeErr(w, errors.New(http.StatusText(http.StatusRequestEntityTooLarge)), http.StatusRequestEntityTooLarge)
	case errors.Is(err, domain.ErrFileTypeRejected),
		errors.Is(err, domain.ErrUnexpectedField),
		errors.Is(err, domain.ErrNoFile),
		errors.Is(err, errMalformedBody):
		writeErr(w, rootErr(err), http.StatusBadRequest)
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, fs.ErrNotExist):
		writeErr(w, errors.New(http.StatusText(http.StatusNotFound)), http.StatusNotFound)
	default:
		level.Error(logger).Log("msg", "request failed", "err", err)
		writeErr(w, errors.New(http.StatusText(http.StatusInternalServerError)), http.StatusInternalServerError)
	}
}

// rootErr strips wrapping so clients see the sentinel message only.
func rootErr(err error) error {
	for _, sentinel := range []error{
		domain.ErrFileTypeRejected,
		domain.ErrUnexpectedField,
		domain.ErrNoFile,
		errMalformedBody,
	} {
		if errors.Is(err, sentinel) {
			return sentinel
		}
	}
	return err
}

func writeErr(w http.ResponseWriter, err error, status int) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(err.Error()))
}
