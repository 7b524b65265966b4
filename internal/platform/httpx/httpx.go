// Package httpx holds the middleware stack and JSON helpers of the chargen
// HTTP surface.
package httpx

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"runtime/debug"
	"strings"
	"sync/atomic"
	"time"

	apperrors "github.com/louisbranch/glog-chargen/internal/platform/errors"
	"github.com/louisbranch/glog-chargen/internal/platform/id"
	"github.com/louisbranch/glog-chargen/internal/platform/requestctx"
)

// RequestIDHeader carries the correlation id of a request.
const RequestIDHeader = "X-Request-ID"

// Middleware decorates a handler.
type Middleware func(http.Handler) http.Handler

// middleware builds a Middleware from a function that sees the next handler.
// A nil next handler becomes NotFound.
func middleware(fn func(w http.ResponseWriter, r *http.Request, next http.Handler)) Middleware {
	return func(next http.Handler) http.Handler {
		if next == nil {
			next = http.NotFoundHandler()
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fn(w, r, next)
		})
	}
}

// Chain wraps handler so the first middleware runs outermost. Nil entries
// are skipped.
func Chain(handler http.Handler, mws ...Middleware) http.Handler {
	if handler == nil {
		handler = http.NotFoundHandler()
	}
	for i := len(mws) - 1; i >= 0; i-- {
		if mws[i] != nil {
			handler = mws[i](handler)
		}
	}
	return handler
}

// RequireMethod answers 405 with an Allow header for methods not listed.
// Listing GET also admits HEAD.
func RequireMethod(methods ...string) Middleware {
	allowed := map[string]bool{}
	for _, m := range methods {
		allowed[m] = true
	}
	if allowed[http.MethodGet] {
		allowed[http.MethodHead] = true
	}
	allow := strings.Join(methods, ", ")
	return middleware(func(w http.ResponseWriter, r *http.Request, next http.Handler) {
		if !allowed[r.Method] {
			w.Header().Set("Allow", allow)
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		next.ServeHTTP(w, r)
	})
}

var fallbackIDs atomic.Uint64

// RequestID keeps the caller's X-Request-ID or assigns one, echoes it on the
// response, and stores it in the request context.
func RequestID() Middleware {
	return middleware(func(w http.ResponseWriter, r *http.Request, next http.Handler) {
		rid := strings.TrimSpace(r.Header.Get(RequestIDHeader))
		if rid == "" {
			rid = newRequestID()
			r.Header.Set(RequestIDHeader, rid)
		}
		w.Header().Set(RequestIDHeader, rid)
		next.ServeHTTP(w, r.WithContext(requestctx.WithRequestID(r.Context(), rid)))
	})
}

func newRequestID() string {
	if v, err := id.NewID(); err == nil {
		return "chargen-" + v
	}
	return fmt.Sprintf("chargen-%d-%d", time.Now().UnixNano(), fallbackIDs.Add(1))
}

// RecoverPanic logs a handler panic with its stack and answers 500.
func RecoverPanic() Middleware {
	return middleware(func(w http.ResponseWriter, r *http.Request, next http.Handler) {
		defer func() {
			p := recover()
			if p == nil {
				return
			}
			log.Printf("panic recovered method=%s path=%s request_id=%s panic=%v stack=%s",
				r.Method, r.URL.Path, requestIDOf(r), p, strings.TrimSpace(string(debug.Stack())))
			w.WriteHeader(http.StatusInternalServerError)
		}()
		next.ServeHTTP(w, r)
	})
}

// LogRequests logs method, path, status and latency once a request completes.
func LogRequests() Middleware {
	return middleware(func(w http.ResponseWriter, r *http.Request, next http.Handler) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w}
		next.ServeHTTP(rec, r)
		log.Printf("http request method=%s path=%s status=%d duration=%s request_id=%s",
			r.Method, r.URL.Path, rec.Status(), time.Since(start).Round(time.Microsecond), requestIDOf(r))
	})
}

// statusRecorder remembers the first status written.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (w *statusRecorder) WriteHeader(status int) {
	if w.status == 0 {
		w.status = status
	}
	w.ResponseWriter.WriteHeader(status)
}

func (w *statusRecorder) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	return w.ResponseWriter.Write(b)
}

// Status is 200 when the handler wrote nothing explicit.
func (w *statusRecorder) Status() int {
	if w.status == 0 {
		return http.StatusOK
	}
	return w.status
}

func (w *statusRecorder) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

// requestIDOf prefers the context id set by RequestID over the raw header.
func requestIDOf(r *http.Request) string {
	if rid := requestctx.RequestIDFromContext(r.Context()); rid != "" {
		return rid
	}
	if rid := strings.TrimSpace(r.Header.Get(RequestIDHeader)); rid != "" {
		return rid
	}
	return "-"
}

// WriteJSON encodes payload as the response body with status.
func WriteJSON(w http.ResponseWriter, status int, payload any) error {
	if w == nil {
		return fmt.Errorf("response writer is required")
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(payload)
}

// StatusForError maps err to the HTTP status of its domain code. Uncoded
// errors are 500.
func StatusForError(err error) int {
	if err == nil {
		return http.StatusOK
	}
	return apperrors.GetCode(err).HTTPStatus()
}
