package render

import (
	"context"
	"io"
	"strconv"
	"strings"

	"github.com/a-h/templ"
	"github.com/louisbranch/glog-chargen/internal/services/chargen/domain/character"
)

// PageView drives the full generator page.
type PageView struct {
	Lang      string
	Level     int
	Count     int
	MinLevel  int
	MaxLevel  int
	MaxCount  int
	Languages []LanguageLink
	Results   ResultsView
}

// LanguageLink is one entry in the language switcher.
type LanguageLink struct {
	Label  string
	URL    string
	Active bool
}

// ResultsView drives the generated characters fragment.
type ResultsView struct {
	Characters []character.Character
	SeedUsed   int64
	SeedSource string
	// Error is a user-facing message. When set, no characters are rendered.
	Error string
	// Empty marks a page rendered before any generation request.
	Empty bool
}

const pageStyle = `body{font-family:'Segoe UI',Tahoma,Geneva,Verdana,sans-serif;max-width:800px;margin:0 auto;padding:20px;background:linear-gradient(135deg,#667eea 0%,#764ba2 100%);min-height:100vh;color:#333}
.container{background:#fff;border-radius:15px;padding:30px;box-shadow:0 10px 30px rgba(0,0,0,.3)}
h1{text-align:center;color:#4a5568}
.form-group{margin-bottom:20px}
label{display:block;margin-bottom:8px;font-weight:600}
input{width:100%;padding:12px;border:2px solid #e2e8f0;border-radius:8px;font-size:16px}
button{background:#667eea;color:#fff;border:none;padding:15px 30px;border-radius:8px;font-size:18px;width:100%;cursor:pointer}
.character{background:#f7fafc;border:2px solid #e2e8f0;border-radius:10px;padding:20px;margin:15px 0}
.ability-scores{display:grid;grid-template-columns:repeat(3,1fr);gap:10px}
.ability{text-align:center;background:#fff;padding:10px;border-radius:6px;border:1px solid #e2e8f0}
.error{background:#fed7d7;color:#c53030;padding:15px;border-radius:8px;border-left:4px solid #e53e3e}
.languages a{margin-right:10px}`

// Page renders the complete HTML document.
func Page(view PageView, loc Localizer) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		title := loc.Sprintf("web.title")
		var b strings.Builder
		b.WriteString(`<!DOCTYPE html><html lang="` + templ.EscapeString(view.Lang) + `"><head>`)
		b.WriteString(`<meta charset="UTF-8"><meta name="viewport" content="width=device-width, initial-scale=1.0">`)
		b.WriteString(`<title>` + templ.EscapeString(title) + `</title>`)
		b.WriteString(`<style>` + pageStyle + `</style>`)
		b.WriteString(`<script src="https://unpkg.com/htmx.org@2.0.4" defer></script>`)
		b.WriteString(`</head><body><div class="container">`)
		b.WriteString(`<h1>` + templ.EscapeString(title) + `</h1>`)
		b.WriteString(`<form id="characterForm" method="get" action="/characters" hx-get="/characters" hx-target="#results" hx-swap="innerHTML">`)
		writeNumberField(&b, "level", loc.Sprintf("web.form.level", view.MinLevel, view.MaxLevel), view.Level, view.MinLevel, view.MaxLevel)
		writeNumberField(&b, "count", loc.Sprintf("web.form.count"), view.Count, 1, view.MaxCount)
		b.WriteString(`<button type="submit">` + templ.EscapeString(loc.Sprintf("web.form.submit")) + `</button></form>`)
		if _, err := io.WriteString(w, b.String()); err != nil {
			return err
		}
		b.Reset()

		if _, err := io.WriteString(w, `<main id="results">`); err != nil {
			return err
		}
		if err := Results(view.Results, loc).Render(ctx, w); err != nil {
			return err
		}
		b.WriteString(`</main>`)
		if len(view.Languages) > 0 {
			b.WriteString(`<nav class="languages">`)
			for _, link := range view.Languages {
				if link.Active {
					b.WriteString(`<strong>` + templ.EscapeString(link.Label) + `</strong>`)
					continue
				}
				b.WriteString(`<a href="` + templ.EscapeString(link.URL) + `">` + templ.EscapeString(link.Label) + `</a>`)
			}
			b.WriteString(`</nav>`)
		}
		b.WriteString(`</div></body></html>`)
		_, err := io.WriteString(w, b.String())
		return err
	})
}

// Results renders the generated characters, an error, or nothing.
func Results(view ResultsView, loc Localizer) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		switch {
		case view.Error != "":
			_, err := io.WriteString(w, `<div class="error" role="alert">`+templ.EscapeString(view.Error)+`</div>`)
			return err
		case view.Empty:
			return nil
		}

		var b strings.Builder
		b.WriteString(`<p class="summary">` + templ.EscapeString(loc.Sprintf("web.characters.count", len(view.Characters))))
		if view.SeedSource != "" {
			b.WriteString(` <span class="seed">` + templ.EscapeString(loc.Sprintf("web.character.seed", strconv.FormatInt(view.SeedUsed, 10), view.SeedSource)) + `</span>`)
		}
		b.WriteString(`</p>`)
		for i, c := range view.Characters {
			writeCharacter(&b, loc, i+1, c)
		}
		_, err := io.WriteString(w, b.String())
		return err
	})
}

func writeNumberField(b *strings.Builder, name, label string, value, minValue, maxValue int) {
	b.WriteString(`<div class="form-group"><label for="` + name + `">` + templ.EscapeString(label) + `</label>`)
	b.WriteString(`<input type="number" id="` + name + `" name="` + name + `" min="` + strconv.Itoa(minValue) + `" max="` + strconv.Itoa(maxValue) + `" value="` + strconv.Itoa(value) + `" required></div>`)
}

func writeCharacter(b *strings.Builder, loc Localizer, number int, c character.Character) {
	b.WriteString(`<div class="character">`)
	b.WriteString(`<h3>` + templ.EscapeString(loc.Sprintf("web.character.heading", number)) + `</h3>`)
	b.WriteString(`<div class="character-info">`)
	writeInfo(b, loc.Sprintf("web.character.level"), strconv.Itoa(c.Level))
	writeInfo(b, loc.Sprintf("web.character.race"), c.Race)
	writeInfo(b, loc.Sprintf("web.character.class"), c.Class.String())
	b.WriteString(`</div>`)
	b.WriteString(`<h4>` + templ.EscapeString(loc.Sprintf("ability.heading")) + `</h4><div class="ability-scores">`)
	for _, ability := range character.Abilities {
		b.WriteString(`<div class="ability"><div class="ability-name">` + templ.EscapeString(abilityLabel(loc, ability)) + `</div>`)
		b.WriteString(`<div class="ability-score">` + strconv.Itoa(c.AbilityScores.Score(ability)) + `</div></div>`)
	}
	b.WriteString(`</div></div>`)
}

func writeInfo(b *strings.Builder, label, value string) {
	b.WriteString(`<div class="info-item"><strong>` + templ.EscapeString(label) + `:</strong> ` + templ.EscapeString(value) + `</div>`)
}
