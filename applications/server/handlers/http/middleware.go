package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/google/uuid"

	"github.com/donmikel/imageupload/applications/server/auth"
)

type middleware func(http.Handler) http.Handler

// chain wraps h so that mws run in the given order before it.
func chain(h http.Handler, mws ...middleware) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}

const defaultAllowedHeaders = "Content-Type, Authorization"

// cors allows any origin.
func cors() middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", "*")
			next.ServeHTTP(w, r)
		})
	}
}

// corsWithOptions reflects the request origin only when it is whitelisted.
// Requests from other origins still reach next, the browser enforces the
// missing header. Pre-flight requests get the headers they asked for, or
// Content-Type and Authorization when they named none.
func corsWithOptions(whitelist []string) middleware {
	allowed := make(map[string]struct{}, len(whitelist))
	for _, o := range whitelist {
		allowed[o] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if _, ok := allowed[origin]; ok {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Add("Vary", "Origin")

				if r.Method == http.MethodOptions {
					w.Header().Add("Vary", "Access-Control-Request-Headers")
					headers := r.Header.Get("Access-Control-Request-Headers")
					if headers == "" {
						headers = defaultAllowedHeaders
					}
					w.Header().Set("Access-Control-Allow-Headers", headers)
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

func verifyUser(signer *auth.Signer, logger log.Logger) middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := signer.FromRequest(r)
			if err != nil {
				level.Debug(logger).Log("msg", "user verification failed", "err", err)
				writeErr(w, errors.New(http.StatusText(http.StatusUnauthorized)), http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.WithClaims(r.Context(), claims)))
		})
	}
}

var errNotAdmin = errors.New("You are not authorized to perform this operation!")

func verifyAdmin() middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := auth.FromContext(r.Context())
			if !ok || !claims.Admin {
				writeErr(w, errNotAdmin, http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// limitBody caps request bodies at maxSize bytes, zero means no limit. It
// has to see the server's own ResponseWriter so that hitting the limit
// closes the connection.
func limitBody(maxSize int64) middleware {
	return func(next http.Handler) http.Handler {
		if maxSize <= 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, maxSize)
			next.ServeHTTP(w, r)
		})
	}
}

// logging tags every request with an id and logs its outcome.
func logging(logger log.Logger) middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := uuid.NewString()
			w.Header().Set("X-Request-Id", id)

			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			begin := time.Now()
			next.ServeHTTP(rec, r)

			level.Info(logger).Log("msg", "request handled",
				"request_id", id,
				"method", r.Method,
				"path", r.URL.Path,
				"status", rec.status,
				"took", time.Since(begin),
			)
		})
	}
}
