package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/louisbranch/glog-chargen/internal/platform/httpx"
	"github.com/louisbranch/glog-chargen/internal/services/chargen/domain/ruleset"
	"github.com/louisbranch/glog-chargen/internal/services/chargen/generation"
	"github.com/louisbranch/glog-chargen/internal/services/shared/htmx"
	"github.com/louisbranch/glog-chargen/internal/services/shared/i18nhttp"
)

type failingGenerator struct {
	err error
}

func (g failingGenerator) Generate(context.Context, generation.Request) (generation.Result, error) {
	return generation.Result{}, g.err
}

func newTestHandler(t *testing.T) http.Handler {
	t.Helper()
	rules, err := ruleset.Validate(ruleset.Config{
		Races:            []string{"Human", "Elf"},
		Classes:          []string{"Fighter", "Wizard"},
		WizardArchetypes: []string{"Necromancer", "Pyromancer"},
	})
	if err != nil {
		t.Fatalf("validate ruleset: %v", err)
	}
	svc := generation.NewService(rules, generation.WithSeedFunc(func() (int64, error) { return 4242, nil }))
	return NewHandler(svc)
}

type decodedResponse struct {
	Characters []struct {
		Level         int            `json:"level"`
		Class         string         `json:"class"`
		Race          string         `json:"race"`
		AbilityScores map[string]int `json:"ability_scores"`
	} `json:"characters"`
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	SeedUsed   *int64 `json:"seed_used"`
	SeedSource string `json:"seed_source"`
}

func postGenerate(t *testing.T, h http.Handler, body string, headers map[string]string) (*httptest.ResponseRecorder, decodedResponse) {
	t.Helper()
	return postGenerateTo(t, h, "/generate", body, headers)
}

func postGenerateTo(t *testing.T, h http.Handler, target, body string, headers map[string]string) (*httptest.ResponseRecorder, decodedResponse) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for key, value := range headers {
		req.Header.Set(key, value)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	var resp decodedResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response %q: %v", rr.Body.String(), err)
	}
	return rr, resp
}

func TestGenerateReturnsCharacters(t *testing.T) {
	rr, resp := postGenerate(t, newTestHandler(t), `{"level":3,"count":5}`, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	if !resp.Success || resp.Message != "Characters generated successfully" {
		t.Fatalf("success/message = %v/%q", resp.Success, resp.Message)
	}
	if len(resp.Characters) != 5 {
		t.Fatalf("len = %d, want 5", len(resp.Characters))
	}
	classes := map[string]bool{"Fighter": true, "Wizard (Necromancer)": true, "Wizard (Pyromancer)": true}
	for i, c := range resp.Characters {
		if c.Level != 3 {
			t.Fatalf("character %d level = %d", i, c.Level)
		}
		if c.Race != "Human" && c.Race != "Elf" {
			t.Fatalf("character %d race = %q", i, c.Race)
		}
		if !classes[c.Class] {
			t.Fatalf("character %d class = %q", i, c.Class)
		}
		if len(c.AbilityScores) != 6 {
			t.Fatalf("character %d ability scores = %v", i, c.AbilityScores)
		}
	}
	if resp.SeedUsed == nil || *resp.SeedUsed != 4242 || resp.SeedSource != "SERVER" {
		t.Fatalf("seed = %v/%q, want 4242/SERVER", resp.SeedUsed, resp.SeedSource)
	}
}

func TestGenerateWithClientSeedIsReproducible(t *testing.T) {
	h := newTestHandler(t)
	_, first := postGenerate(t, h, `{"level":2,"count":3,"seed":17}`, nil)
	_, second := postGenerate(t, h, `{"level":2,"count":3,"seed":17}`, nil)
	if first.SeedSource != "CLIENT" || first.SeedUsed == nil || *first.SeedUsed != 17 {
		t.Fatalf("seed = %v/%q, want 17/CLIENT", first.SeedUsed, first.SeedSource)
	}
	for i := range first.Characters {
		if first.Characters[i].Race != second.Characters[i].Race || first.Characters[i].Class != second.Characters[i].Class {
			t.Fatalf("character %d differs between seeded runs", i)
		}
	}
}

func TestGenerateValidationErrors(t *testing.T) {
	tcs := []struct {
		name    string
		target  string
		body    string
		headers map[string]string
		want    string
	}{
		{name: "level high", body: `{"level":11,"count":1}`, want: "Level must be between 1 and 10"},
		{name: "level zero", body: `{"level":0,"count":5}`, want: "Level must be between 1 and 10"},
		{name: "count zero", body: `{"level":1,"count":0}`, want: "Must generate at least 1 character"},
		{name: "count high", body: `{"level":1,"count":101}`, want: "Cannot generate more than 100 characters at once"},
		{name: "seed overflow", body: `{"level":1,"count":1,"seed":9223372036854775808}`, want: "Seed must fit in a signed 64-bit integer"},
		{name: "malformed", body: `{"level":`, want: "The request could not be read"},
		{name: "unknown field", body: `{"level":1,"count":1,"mood":"grim"}`, want: "The request could not be read"},
		{
			name:    "accept language",
			body:    `{"level":11,"count":1}`,
			headers: map[string]string{"Accept-Language": "pt-BR,pt;q=0.9"},
			want:    "O nível deve estar entre 1 e 10",
		},
		{name: "lang param", target: "/generate?lang=pt-BR", body: `{"level":1,"count":0}`, want: "É preciso gerar pelo menos 1 personagem"},
	}
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			target := tc.target
			if target == "" {
				target = "/generate"
			}
			rr, resp := postGenerateTo(t, newTestHandler(t), target, tc.body, tc.headers)
			if rr.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want %d", rr.Code, http.StatusBadRequest)
			}
			if resp.Success {
				t.Fatal("success = true, want false")
			}
			if resp.Message != tc.want {
				t.Fatalf("message = %q, want %q", resp.Message, tc.want)
			}
			if !strings.Contains(rr.Body.String(), `"characters":[]`) {
				t.Fatalf("expected empty characters array in %q", rr.Body.String())
			}
			if resp.SeedUsed != nil {
				t.Fatalf("seed_used = %d, want absent", *resp.SeedUsed)
			}
		})
	}
}

func TestGenerateInternalError(t *testing.T) {
	h := NewHandler(failingGenerator{err: errors.New("entropy unavailable")})
	rr, resp := postGenerate(t, h, `{"level":1,"count":1}`, nil)
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusInternalServerError)
	}
	if resp.Message != "Something went wrong" {
		t.Fatalf("message = %q", resp.Message)
	}
}

func TestGenerateRejectsOtherMethods(t *testing.T) {
	rr := httptest.NewRecorder()
	newTestHandler(t).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/generate", nil))
	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusMethodNotAllowed)
	}
	if rr.Header().Get("Allow") != http.MethodPost {
		t.Fatalf("Allow = %q, want %q", rr.Header().Get("Allow"), http.MethodPost)
	}
}

func TestRequestIDIsEchoed(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(httpx.RequestIDHeader, "req-1")
	rr := httptest.NewRecorder()
	newTestHandler(t).ServeHTTP(rr, req)
	if rr.Header().Get(httpx.RequestIDHeader) != "req-1" {
		t.Fatalf("request id = %q", rr.Header().Get(httpx.RequestIDHeader))
	}
}

func TestHealthz(t *testing.T) {
	rr := httptest.NewRecorder()
	newTestHandler(t).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), `"status":"ok"`) {
		t.Fatalf("healthz = %d %q", rr.Code, rr.Body.String())
	}
}

func TestUnknownPathIsNotFound(t *testing.T) {
	rr := httptest.NewRecorder()
	newTestHandler(t).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/static/app.js", nil))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusNotFound)
	}
}

func TestIndexRendersForm(t *testing.T) {
	rr := httptest.NewRecorder()
	newTestHandler(t).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	body := rr.Body.String()
	for _, want := range []string{"<!DOCTYPE html>", "GLOG v2 Character Generator", `name="level"`, `max="10"`, `<main id="results"></main>`} {
		if !strings.Contains(body, want) {
			t.Fatalf("index missing %q", want)
		}
	}
}

func TestIndexPersistsLanguageParam(t *testing.T) {
	rr := httptest.NewRecorder()
	newTestHandler(t).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/?lang=pt-BR", nil))
	if !strings.Contains(rr.Body.String(), "Gerador de Personagens GLOG v2") {
		t.Fatalf("expected Portuguese title in %q", rr.Body.String())
	}
	cookies := rr.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != i18nhttp.LangCookieName || cookies[0].Value != "pt-BR" {
		t.Fatalf("cookies = %v", cookies)
	}
}

func TestCharactersFragmentForHTMX(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/characters?level=2&count=3&seed=5", nil)
	req.Header.Set(htmx.RequestHeaderKey, "true")
	rr := httptest.NewRecorder()
	newTestHandler(t).ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	body := rr.Body.String()
	if strings.Contains(body, "<html") {
		t.Fatalf("fragment should not contain a document: %q", body)
	}
	for _, want := range []string{"3 character(s) generated", "Seed 5 (CLIENT)", "<h3>Character 3</h3>"} {
		if !strings.Contains(body, want) {
			t.Fatalf("fragment missing %q in %q", want, body)
		}
	}
}

func TestCharactersFullPage(t *testing.T) {
	rr := httptest.NewRecorder()
	newTestHandler(t).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/characters?level=4&count=2", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	body := rr.Body.String()
	for _, want := range []string{"<!DOCTYPE html>", `<main id="results">`, "Seed 4242 (SERVER)", `value="4"`} {
		if !strings.Contains(body, want) {
			t.Fatalf("page missing %q", want)
		}
	}
}

func TestCharactersErrors(t *testing.T) {
	tcs := []struct {
		name   string
		target string
		htmx   bool
		status int
		want   string
	}{
		{name: "level text", target: "/characters?level=abc", status: http.StatusBadRequest, want: "The request could not be read"},
		{name: "level range", target: "/characters?level=12&count=1", status: http.StatusBadRequest, want: "Level must be between 1 and 10"},
		{name: "seed", target: "/characters?level=1&count=1&seed=-4", status: http.StatusBadRequest, want: "Seed must fit in a signed 64-bit integer"},
		{name: "htmx fragment", target: "/characters?level=1&count=500", htmx: true, status: http.StatusOK, want: "Cannot generate more than 100 characters at once"},
	}
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tc.target, nil)
			if tc.htmx {
				req.Header.Set(htmx.RequestHeaderKey, "true")
			}
			rr := httptest.NewRecorder()
			newTestHandler(t).ServeHTTP(rr, req)
			if rr.Code != tc.status {
				t.Fatalf("status = %d, want %d", rr.Code, tc.status)
			}
			if !strings.Contains(rr.Body.String(), `class="error"`) || !strings.Contains(rr.Body.String(), tc.want) {
				t.Fatalf("expected error %q in %q", tc.want, rr.Body.String())
			}
		})
	}
}
