// Package i18nhttp resolves the request language for HTTP handlers.
package i18nhttp

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	platformi18n "github.com/louisbranch/glog-chargen/internal/platform/i18n"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

const (
	LangParam      = "lang"
	LangCookieName = "glog_lang"
)

// LanguageOption is one entry of the page language switcher.
type LanguageOption struct {
	Tag    string
	Label  string
	URL    string
	Active bool
}

// cookieMaxAge keeps a language choice for a year.
const cookieMaxAge = 365 * 24 * time.Hour

// ResolveTag picks the language of r from the lang query param, then the
// glog_lang cookie, then Accept-Language. It reports true when the query
// param decided, so the caller can persist it with SetLanguageCookie.
func ResolveTag(r *http.Request) (language.Tag, bool) {
	if r == nil {
		return platformi18n.DefaultTag(), false
	}
	if tag, ok := platformi18n.ParseTag(r.URL.Query().Get(LangParam)); ok {
		return tag, true
	}
	if c, err := r.Cookie(LangCookieName); err == nil {
		if tag, ok := platformi18n.ParseTag(c.Value); ok {
			return tag, false
		}
	}
	return platformi18n.ResolveAcceptLanguage(r.Header.Get("Accept-Language")), false
}

// SetLanguageCookie remembers tag for later requests.
func SetLanguageCookie(w http.ResponseWriter, tag language.Tag) {
	if w == nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     LangCookieName,
		Value:    tag.String(),
		Path:     "/",
		MaxAge:   int(cookieMaxAge / time.Second),
		SameSite: http.SameSiteLaxMode,
	})
}

// BuildLanguageOptions lists the supported languages for the switcher.
// Each is labelled in its own language and links to the current page with
// only the lang param changed.
func BuildLanguageOptions(r *http.Request, active language.Tag) []LanguageOption {
	path, rawQuery := "/", ""
	if r != nil {
		path, rawQuery = r.URL.Path, r.URL.RawQuery
	}
	var options []LanguageOption
	for _, tag := range platformi18n.SupportedTags() {
		name := tag.String()
		label := display.Self.Name(tag)
		if label == "" {
			label = name
		}
		options = append(options, LanguageOption{
			Tag:    name,
			Label:  label,
			URL:    LanguageURL(path, rawQuery, name),
			Active: tag == active,
		})
	}
	return options
}

// LanguageURL rebuilds path and rawQuery with lang set to tag. A malformed
// query is dropped.
func LanguageURL(path, rawQuery, tag string) string {
	if path = strings.TrimSpace(path); path == "" {
		path = "/"
	}
	query, err := url.ParseQuery(rawQuery)
	if err != nil {
		query = url.Values{}
	}
	query.Set(LangParam, tag)
	u := url.URL{Path: path, RawQuery: query.Encode()}
	return u.String()
}
