// Package report renders the scan results as a static HTML page or as
// JSON for downstream tooling.
package report

import (
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"net/url"
	"time"

	"github.com/citehunt/citehunt/internal/model"
)

const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Citehunt report</title>
<style>
body { font-family: Georgia, serif; max-width: 60em; margin: 2em auto; color: #222; }
h1 { border-bottom: 2px solid #a2a9b1; }
h2 { margin-top: 2em; }
.claim { margin: 1.5em 0; padding: 1em; background: #f8f9fa; border-left: 3px solid #a2a9b1; }
.claim-text { font-style: italic; }
.query { color: #555; font-size: 0.9em; }
.excerpt { margin: 0.8em 0 0 1em; padding: 0.6em; background: #fff; border: 1px solid #ddd; }
.similarity { color: #777; font-size: 0.85em; }
.summary { padding: 1em; background: #eaf3ff; }
footer { margin-top: 3em; color: #777; font-size: 0.85em; border-top: 1px solid #ddd; }
</style>
</head>
<body>
<h1>Unsourced claims and candidate sources</h1>
{{if .Summary}}<div class="summary">{{.Summary}}</div>{{end}}
{{range .Articles}}
<h2><a href="{{.URL}}">{{.Title}}</a></h2>
{{range .Claims}}
<div class="claim">
<p class="claim-text">{{.Text}}</p>
<p class="query">query: {{.Query}} &mdash; <a href="{{.SearchLink}}">search the web</a></p>
{{range .Excerpts}}
<div class="excerpt">
<a href="{{.URL}}">{{if .Name}}{{.Name}}{{else}}{{.URL}}{{end}}</a>
<span class="similarity">similarity {{printf "%.3f" .Similarity}}</span>
<p>{{.Excerpt}}</p>
</div>
{{end}}
</div>
{{end}}
{{end}}
{{if .IncludeFooter}}<footer>Generated by citehunt on {{.Generated}}.</footer>{{end}}
</body>
</html>
`

// Renderer writes run results in the configured output formats.
type Renderer struct {
	tmpl          *template.Template
	includeFooter bool
	now           func() time.Time
}

// NewRenderer creates a renderer.
func NewRenderer(includeFooter bool) (*Renderer, error) {
	tmpl, err := template.New("report").Parse(pageTemplate)
	if err != nil {
		return nil, fmt.Errorf("parse report template: %w", err)
	}
	return &Renderer{
		tmpl:          tmpl,
		includeFooter: includeFooter,
		now:           time.Now,
	}, nil
}

type articleView struct {
	Title  string
	URL    string
	Claims []model.ClaimResult
}

type pageData struct {
	Summary       string
	Articles      []articleView
	IncludeFooter bool
	Generated     string
}

// RenderHTML writes the HTML report for a run.
func (r *Renderer) RenderHTML(w io.Writer, run model.RunResult) error {
	data := pageData{
		Summary:       run.Summary,
		IncludeFooter: r.includeFooter,
		Generated:     r.now().Format("2006-01-02 15:04"),
	}
	for _, article := range run.Articles {
		data.Articles = append(data.Articles, articleView{
			Title:  article.Title,
			URL:    ArticleURL(run.BaseURL, article.ID),
			Claims: article.Claims,
		})
	}

	if err := r.tmpl.Execute(w, data); err != nil {
		return fmt.Errorf("render report: %w", err)
	}
	return nil
}

// RenderJSON writes the run as indented JSON.
func (r *Renderer) RenderJSON(w io.Writer, run model.RunResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(run); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return nil
}

// ArticleURL builds a permanent link to an article by page id, using
// the dump's base URL when one was found.
func ArticleURL(baseURL, id string) string {
	origin := "https://en.wikipedia.org"
	if baseURL != "" {
		if parsed, err := url.Parse(baseURL); err == nil && parsed.Host != "" {
			origin = parsed.Scheme + "://" + parsed.Host
		}
	}
	return origin + "/?curid=" + url.QueryEscape(id)
}
