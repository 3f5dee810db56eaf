package httpapi

import (
	"fmt"
	"net/http"
	"runtime"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	mlog "github.com/BrandonDHaskell/makerspace-crm/internal/log"
)

const headerRequestID = "X-Request-ID"

// requestID reuses the caller's X-Request-ID or mints a new one.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(headerRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(headerRequestID, id)
		next.ServeHTTP(w, r.WithContext(mlog.ContextWithRequestID(r.Context(), id)))
	})
}

func requestLogger(logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			ev := mlog.WithContext(r.Context(), logger).Info()
			if status >= http.StatusInternalServerError {
				ev = mlog.WithContext(r.Context(), logger).Warn()
			}
			ev.Str(mlog.FieldMethod, r.Method).
				Str(mlog.FieldPath, r.URL.Path).
				Int(mlog.FieldStatus, status).
				Dur(mlog.FieldDuration, time.Since(start)).
				Str("remote_addr", r.RemoteAddr).
				Msg("http request")
		})
	}
}

// recoverer turns a handler panic into a logged 500.
func recoverer(logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				buf := make([]byte, 8192)
				buf = buf[:runtime.Stack(buf, false)]
				mlog.WithContext(r.Context(), logger).Error().
					Str(mlog.FieldMethod, r.Method).
					Str(mlog.FieldPath, r.URL.Path).
					Str("panic", fmt.Sprint(rec)).
					Str("stack", string(buf)).
					Msg("panic recovered in HTTP handler")
				writeError(w, http.StatusInternalServerError, "internal_error", "unexpected server error")
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// limitWrites applies a per-IP sliding window to mutating requests only;
// reads pass straight through.
func limitWrites(limit int, window time.Duration) func(http.Handler) http.Handler {
	limiter := httprate.Limit(
		limit,
		window,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Retry-After", fmt.Sprintf("%d", int(window.Seconds())))
			writeError(w, http.StatusTooManyRequests, "rate_limit_exceeded", "too many requests, try again later")
		}),
	)
	return func(next http.Handler) http.Handler {
		limited := limiter(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				next.ServeHTTP(w, r)
			default:
				limited.ServeHTTP(w, r)
			}
		})
	}
}
