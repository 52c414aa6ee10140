package api

import (
	"context"
	"crypto/subtle"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
)

// paneStats is what a handler learned about the pane it built. The request
// logger owns it and reports it once the handler returns.
type paneStats struct {
	relations int
	concepts  int
	regions   int
	seed      int64
	seeded    bool
}

type statsKey struct{}

// statsFrom returns the request's stats record, or a throwaway one when
// the handler runs without RequestLogger.
func statsFrom(ctx context.Context) *paneStats {
	if st, ok := ctx.Value(statsKey{}).(*paneStats); ok {
		return st
	}
	return &paneStats{}
}

// AuthMiddleware requires "Authorization: Bearer <apiKey>". The scheme is
// matched case-insensitively.
func AuthMiddleware(apiKey string, log *slog.Logger) func(http.Handler) http.Handler {
	want := []byte(apiKey)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " ")
			if !ok || !strings.EqualFold(scheme, "Bearer") {
				jsonError(w, "missing authorization", http.StatusUnauthorized)
				return
			}
			if subtle.ConstantTimeCompare([]byte(strings.TrimSpace(token)), want) != 1 {
				log.Warn("rejected api key",
					"path", r.URL.Path,
					"remote", r.RemoteAddr,
					"request_id", middleware.GetReqID(r.Context()),
				)
				jsonError(w, "invalid api key", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequestLogger logs one line per request: the HTTP outcome plus the size
// of the taxonomy and pane the handler worked on.
func RequestLogger(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			st := &paneStats{}
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(context.WithValue(r.Context(), statsKey{}, st)))

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			attrs := []any{
				"method", r.Method,
				"path", r.URL.Path,
				"status", status,
				"bytes", ww.BytesWritten(),
				"request_id", middleware.GetReqID(r.Context()),
				"duration_ms", time.Since(start).Milliseconds(),
			}
			if st.relations > 0 {
				attrs = append(attrs, "relations", st.relations, "concepts", st.concepts)
			}
			if st.seeded {
				attrs = append(attrs, "regions", st.regions, "seed", st.seed)
			}

			level := slog.LevelInfo
			if status >= http.StatusInternalServerError {
				level = slog.LevelError
			}
			log.Log(r.Context(), level, "request", attrs...)
		})
	}
}
