// Package httpapi serves character generation over HTTP: a JSON endpoint and
// a server-rendered HTML page.
package httpapi

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	apperrors "github.com/louisbranch/glog-chargen/internal/platform/errors"
	"github.com/louisbranch/glog-chargen/internal/platform/httpx"
	platformi18n "github.com/louisbranch/glog-chargen/internal/platform/i18n"
	"github.com/louisbranch/glog-chargen/internal/platform/random"
	"github.com/louisbranch/glog-chargen/internal/services/chargen/domain/character"
	"github.com/louisbranch/glog-chargen/internal/services/chargen/generation"
	"github.com/louisbranch/glog-chargen/internal/services/chargen/render"
	"github.com/louisbranch/glog-chargen/internal/services/shared/htmx"
	"github.com/louisbranch/glog-chargen/internal/services/shared/i18nhttp"
	"golang.org/x/text/language"
)

const maxRequestBytes = 1 << 16

// Generator is the generation surface the handlers need.
type Generator interface {
	Generate(ctx context.Context, req generation.Request) (generation.Result, error)
}

type generateRequest struct {
	Level int     `json:"level"`
	Count int     `json:"count"`
	Seed  *uint64 `json:"seed,omitempty"`
}

type generateResponse struct {
	Characters []character.Character `json:"characters"`
	Success    bool                  `json:"success"`
	Message    string                `json:"message"`
	SeedUsed   *int64                `json:"seed_used,omitempty"`
	SeedSource string                `json:"seed_source,omitempty"`
}

type handler struct {
	gen Generator
}

// NewHandler returns the HTTP routes backed by gen.
func NewHandler(gen Generator) http.Handler {
	h := &handler{gen: gen}
	mux := http.NewServeMux()
	mux.Handle("/{$}", httpx.Chain(http.HandlerFunc(h.handleIndex), httpx.RequireMethod(http.MethodGet)))
	mux.Handle("/characters", httpx.Chain(http.HandlerFunc(h.handleCharacters), httpx.RequireMethod(http.MethodGet)))
	mux.Handle("/generate", httpx.Chain(http.HandlerFunc(h.handleGenerate), httpx.RequireMethod(http.MethodPost)))
	mux.Handle("/healthz", httpx.Chain(http.HandlerFunc(handleHealth), httpx.RequireMethod(http.MethodGet)))
	return httpx.Chain(mux, httpx.RequestID(), httpx.LogRequests(), httpx.RecoverPanic())
}

func (h *handler) handleGenerate(w http.ResponseWriter, r *http.Request) {
	tag, _ := i18nhttp.ResolveTag(r)

	var req generateRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		h.writeGenerateError(w, r, tag, apperrors.Wrap(apperrors.CodeRequestMalformed, "decode generate request", err))
		return
	}

	result, err := h.gen.Generate(r.Context(), generation.Request{Level: req.Level, Count: req.Count, Seed: req.Seed})
	if err != nil {
		h.writeGenerateError(w, r, tag, err)
		return
	}

	seed := result.SeedUsed
	resp := generateResponse{
		Characters: result.Characters,
		Success:    true,
		Message:    platformi18n.Printer(tag).Sprintf("web.generate.success"),
		SeedUsed:   &seed,
		SeedSource: string(result.SeedSource),
	}
	if err := httpx.WriteJSON(w, http.StatusOK, resp); err != nil {
		log.Printf("write generate response request_id=%s err=%v", r.Header.Get(httpx.RequestIDHeader), err)
	}
}

func (h *handler) writeGenerateError(w http.ResponseWriter, r *http.Request, tag language.Tag, err error) {
	status := httpx.StatusForError(err)
	if status >= http.StatusInternalServerError {
		log.Printf("generate failed request_id=%s err=%v", r.Header.Get(httpx.RequestIDHeader), err)
	}
	resp := generateResponse{
		Characters: []character.Character{},
		Success:    false,
		Message:    apperrors.UserMessage(err, platformi18n.LocaleString(tag)),
	}
	if writeErr := httpx.WriteJSON(w, status, resp); writeErr != nil {
		log.Printf("write generate error request_id=%s err=%v", r.Header.Get(httpx.RequestIDHeader), writeErr)
	}
}

func (h *handler) handleIndex(w http.ResponseWriter, r *http.Request) {
	tag := h.resolveLanguage(w, r)
	view := h.pageView(r, tag, character.MinLevel, character.MinCount)
	view.Results = render.ResultsView{Empty: true}
	htmx.RenderPage(w, r, http.StatusOK, nil, render.Page(view, platformi18n.Printer(tag)))
}

func (h *handler) handleCharacters(w http.ResponseWriter, r *http.Request) {
	tag := h.resolveLanguage(w, r)
	loc := platformi18n.Printer(tag)
	query := r.URL.Query()

	level, levelErr := parseQueryInt(query.Get("level"), character.MinLevel)
	count, countErr := parseQueryInt(query.Get("count"), character.MinCount)
	view := h.pageView(r, tag, level, count)

	var (
		results render.ResultsView
		status  = http.StatusOK
		err     error
	)
	switch {
	case levelErr != nil:
		err = levelErr
	case countErr != nil:
		err = countErr
	}
	var seed *uint64
	if err == nil {
		seed, err = random.ParseSeed(query.Get("seed"))
	}
	if err == nil {
		var result generation.Result
		result, err = h.gen.Generate(r.Context(), generation.Request{Level: level, Count: count, Seed: seed})
		results = render.ResultsView{
			Characters: result.Characters,
			SeedUsed:   result.SeedUsed,
			SeedSource: string(result.SeedSource),
		}
	}
	if err != nil {
		status = httpx.StatusForError(err)
		if status >= http.StatusInternalServerError {
			log.Printf("generate failed request_id=%s err=%v", r.Header.Get(httpx.RequestIDHeader), err)
		}
		results = render.ResultsView{Error: apperrors.UserMessage(err, platformi18n.LocaleString(tag))}
	}
	view.Results = results
	htmx.RenderPage(w, r, status, render.Results(results, loc), render.Page(view, loc))
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	_ = httpx.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *handler) resolveLanguage(w http.ResponseWriter, r *http.Request) language.Tag {
	tag, persist := i18nhttp.ResolveTag(r)
	if persist {
		i18nhttp.SetLanguageCookie(w, tag)
	}
	return tag
}

func (h *handler) pageView(r *http.Request, tag language.Tag, level, count int) render.PageView {
	options := i18nhttp.BuildLanguageOptions(r, tag)
	links := make([]render.LanguageLink, 0, len(options))
	for _, option := range options {
		links = append(links, render.LanguageLink{Label: option.Label, URL: option.URL, Active: option.Active})
	}
	return render.PageView{
		Lang:      platformi18n.LocaleString(tag),
		Level:     level,
		Count:     count,
		MinLevel:  character.MinLevel,
		MaxLevel:  character.MaxLevel,
		MaxCount:  character.MaxCount,
		Languages: links,
	}
}

// parseQueryInt parses a form integer, using fallback when the value is blank.
func parseQueryInt(value string, fallback int) (int, error) {
	if value == "" {
		return fallback, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback, apperrors.Wrap(apperrors.CodeRequestMalformed, "parse query integer", err)
	}
	return parsed, nil
}
