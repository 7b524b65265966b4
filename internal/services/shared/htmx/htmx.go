// Package htmx renders templ components for plain and HTMX requests.
package htmx

import (
	"net/http"
	"strings"

	"github.com/a-h/templ"
)

// RequestHeaderKey is the HTMX request header used to detect partial updates.
const RequestHeaderKey = "HX-Request"

// IsHTMXRequest reports whether the request was initiated by HTMX.
func IsHTMXRequest(r *http.Request) bool {
	if r == nil {
		return false
	}
	return strings.EqualFold(r.Header.Get(RequestHeaderKey), "true")
}

// RenderPage renders fragment for HTMX requests and full otherwise.
//
// A nil component falls back to the other one. HTMX only swaps 2xx
// responses, so HTMX requests always get 200 and error fragments still land.
func RenderPage(w http.ResponseWriter, r *http.Request, status int, fragment templ.Component, full templ.Component) {
	if status == 0 {
		status = http.StatusOK
	}
	target := full
	if IsHTMXRequest(r) {
		target = fragment
	}
	if target == nil {
		target = fragment
	}
	if target == nil {
		target = full
	}
	if target == nil {
		w.WriteHeader(status)
		return
	}
	if IsHTMXRequest(r) {
		status = http.StatusOK
	}
	templ.Handler(target, templ.WithStatus(status)).ServeHTTP(w, r)
}
