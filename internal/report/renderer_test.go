package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/citehunt/citehunt/internal/model"
)

func sampleRun() model.RunResult {
	return model.RunResult{
		BaseURL: "https://en.wikipedia.org/wiki/Main_Page",
		Articles: []model.ArticleResult{
			{
				ID:    "11",
				Title: "Boiling point",
				Claims: []model.ClaimResult{
					{
						ID:         "11-1",
						Text:       "Water boils at one hundred degrees at sea level.",
						Query:      "boiling point water degrees",
						SearchLink: "https://google.com/search?q=boiling+point",
						Excerpts: []model.ScoredExcerpt{
							{
								URL:        "http://example.org/water",
								Name:       "Water facts",
								Excerpt:    "Water boils at one hundred degrees.",
								Similarity: 0.91,
							},
						},
					},
				},
			},
		},
		Summary: "One article with one unsourced claim.",
	}
}

func TestRenderHTML(t *testing.T) {
	renderer, err := NewRenderer(true)
	if err != nil {
		t.Fatalf("NewRenderer failed: %v", err)
	}

	var buf bytes.Buffer
	if err := renderer.RenderHTML(&buf, sampleRun()); err != nil {
		t.Fatalf("RenderHTML failed: %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"Boiling point",
		"https://en.wikipedia.org/?curid=11",
		"Water boils at one hundred degrees at sea level.",
		"boiling point water degrees",
		"http://example.org/water",
		"0.910",
		"One article with one unsourced claim.",
		"Generated by citehunt",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q", want)
		}
	}
}

func TestRenderHTML_NoFooter(t *testing.T) {
	renderer, err := NewRenderer(false)
	if err != nil {
		t.Fatalf("NewRenderer failed: %v", err)
	}

	var buf bytes.Buffer
	if err := renderer.RenderHTML(&buf, sampleRun()); err != nil {
		t.Fatalf("RenderHTML failed: %v", err)
	}
	if strings.Contains(buf.String(), "Generated by citehunt") {
		t.Error("footer rendered despite being disabled")
	}
}

func TestRenderHTML_EscapesMarkup(t *testing.T) {
	renderer, err := NewRenderer(false)
	if err != nil {
		t.Fatalf("NewRenderer failed: %v", err)
	}

	run := sampleRun()
	run.Articles[0].Claims[0].Text = `<script>alert("x")</script>`

	var buf bytes.Buffer
	if err := renderer.RenderHTML(&buf, run); err != nil {
		t.Fatalf("RenderHTML failed: %v", err)
	}
	if strings.Contains(buf.String(), "<script>alert") {
		t.Error("claim text not escaped")
	}
}

func TestRenderJSON(t *testing.T) {
	renderer, err := NewRenderer(false)
	if err != nil {
		t.Fatalf("NewRenderer failed: %v", err)
	}

	var buf bytes.Buffer
	if err := renderer.RenderJSON(&buf, sampleRun()); err != nil {
		t.Fatalf("RenderJSON failed: %v", err)
	}

	var decoded model.RunResult
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid JSON output: %v", err)
	}
	if len(decoded.Articles) != 1 || decoded.Articles[0].ID != "11" {
		t.Errorf("decoded run = %+v", decoded)
	}
}

func TestArticleURL(t *testing.T) {
	tests := []struct {
		base string
		id   string
		want string
	}{
		{"https://en.wikipedia.org/wiki/Main_Page", "42", "https://en.wikipedia.org/?curid=42"},
		{"https://de.wikipedia.org/wiki/Wikipedia:Hauptseite", "7", "https://de.wikipedia.org/?curid=7"},
		{"", "42", "https://en.wikipedia.org/?curid=42"},
	}
	for _, tt := range tests {
		if got := ArticleURL(tt.base, tt.id); got != tt.want {
			t.Errorf("ArticleURL(%q, %q) = %q, want %q", tt.base, tt.id, got, tt.want)
		}
	}
}
