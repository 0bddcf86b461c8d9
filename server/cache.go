package server

import (
	"bytes"
	"net/http"
	"yatube/monitoring"

	"github.com/felixge/httpsnoop"
)

// cachePage serves the stored body for key while it is fresh. Only 200
// responses are stored, and the key does not vary with the query string.
func (s *Server) cachePage(key string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if page, ok := s.pageCache.Get(ctx, key); ok {
			monitoring.PageCacheRequests.WithLabelValues("hit").Inc()
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			w.WriteHeader(http.StatusOK)
			w.Write(page)
			return
		}
		monitoring.PageCacheRequests.WithLabelValues("miss").Inc()

		var body bytes.Buffer
		status := http.StatusOK
		recorder := httpsnoop.Wrap(w, httpsnoop.Hooks{
			WriteHeader: func(writeHeader httpsnoop.WriteHeaderFunc) httpsnoop.WriteHeaderFunc {
				return func(code int) {
					status = code
					writeHeader(code)
				}
			},
			Write: func(write httpsnoop.WriteFunc) httpsnoop.WriteFunc {
				return func(b []byte) (int, error) {
					body.Write(b)
					return write(b)
				}
			},
		})

		next.ServeHTTP(recorder, r)

		if status == http.StatusOK {
			s.pageCache.Set(ctx, key, body.Bytes())
		}
	})
}
