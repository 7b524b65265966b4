package htmx

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/a-h/templ"
)

func textComponent(body string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, body)
		return err
	})
}

func TestIsHTMXRequest(t *testing.T) {
	t.Run("missing_request_is_not_htmx", func(t *testing.T) {
		t.Parallel()
		if got := IsHTMXRequest(nil); got {
			t.Fatalf("IsHTMXRequest(nil) = true, want false")
		}
	})

	t.Run("true_request_is_htmx", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest(http.MethodGet, "/characters", nil)
		r.Header.Set(RequestHeaderKey, "TRUE")
		if got := IsHTMXRequest(r); !got {
			t.Fatalf("IsHTMXRequest(request) = false, want true")
		}
	})
}

func TestRenderPageForNonHTMXUsesFullRender(t *testing.T) {
	t.Parallel()
	r := httptest.NewRequest(http.MethodGet, "/characters", nil)
	w := httptest.NewRecorder()

	RenderPage(w, r, http.StatusOK, textComponent("<div>fragment</div>"), textComponent("<html>full</html>"))
	if got := w.Body.String(); got != "<html>full</html>" {
		t.Fatalf("rendered body = %q, want full page body", got)
	}
	if ct := w.Header().Get("Content-Type"); ct != "text/html; charset=utf-8" {
		t.Fatalf("content type = %q", ct)
	}
}

func TestRenderPageForHTMXUsesFragment(t *testing.T) {
	t.Parallel()
	r := httptest.NewRequest(http.MethodGet, "/characters", nil)
	r.Header.Set(RequestHeaderKey, "true")
	w := httptest.NewRecorder()

	RenderPage(w, r, http.StatusBadRequest, textComponent("<div>fragment</div>"), textComponent("<html>full</html>"))
	if got := w.Body.String(); got != "<div>fragment</div>" {
		t.Fatalf("rendered body = %q, want fragment", got)
	}
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
}

func TestRenderPageKeepsStatusForFullPage(t *testing.T) {
	t.Parallel()
	r := httptest.NewRequest(http.MethodGet, "/characters", nil)
	w := httptest.NewRecorder()

	RenderPage(w, r, http.StatusBadRequest, textComponent("fragment"), textComponent("full"))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestRenderPageFallsBackToAvailableComponent(t *testing.T) {
	t.Parallel()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()

	RenderPage(w, r, 0, textComponent("only fragment"), nil)
	if got := w.Body.String(); got != "only fragment" {
		t.Fatalf("rendered body = %q, want fragment fallback", got)
	}
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
}
