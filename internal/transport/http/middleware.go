package http

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"parish/internal/domain"
	"parish/internal/observability/metrics"
	"parish/internal/session"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// withMetrics records request counts and latency. Paths are recorded as
// route patterns, not raw URLs, to keep label cardinality bounded.
func withMetrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		pattern := ""
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			pattern = rctx.RoutePattern()
		}
		if pattern == "" {
			pattern = "unmatched"
		}
		metrics.HTTPRequestsTotal.WithLabelValues(r.Method, pattern, strconv.Itoa(ww.Status())).Inc()
		metrics.HTTPRequestDurationSeconds.WithLabelValues(r.Method, pattern).Observe(time.Since(start).Seconds())
	})
}

type sessionKey struct{}

// withSession re-derives the session from the signed cookie on every
// request and stores it in context. Invalid or absent cookies pass
// through as anonymous; it is RequireUser/RequireRole that reject.
func (h *Handler) withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if sess, err := h.sessions.FromRequest(r); err == nil {
			r = r.WithContext(context.WithValue(r.Context(), sessionKey{}, sess))
		}
		next.ServeHTTP(w, r)
	})
}

func sessionFrom(ctx context.Context) (*session.Session, bool) {
	s, ok := ctx.Value(sessionKey{}).(*session.Session)
	return s, ok
}

func requireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := sessionFrom(r.Context()); !ok {
			writeError(w, r, domain.ErrNoSession)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func requireRole(min domain.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, ok := sessionFrom(r.Context())
			if !ok {
				writeError(w, r, domain.ErrNoSession)
				return
			}
			if !sess.Role.AtLeast(min) {
				writeError(w, r, domain.ErrForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
