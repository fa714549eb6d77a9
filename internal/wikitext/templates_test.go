package wikitext

import (
	"reflect"
	"testing"
)

var cnSet = CitationSet([]string{"citation needed", "cn", "fact"})

func TestRewrite_CitationMarker(t *testing.T) {
	got := Rewrite("Water boils at 100 degrees.{{cn}} More text.", cnSet, "quote", "text")
	want := "Water boils at 100 degrees." + Marker + " More text."
	if got != want {
		t.Errorf("Rewrite = %q, want %q", got, want)
	}
}

func TestRewrite_CitationNeededWithParams(t *testing.T) {
	got := Rewrite("Claim.{{Citation needed|date=May 2017}} Next.", cnSet, "quote", "text")
	want := "Claim." + Marker + " Next."
	if got != want {
		t.Errorf("Rewrite = %q, want %q", got, want)
	}
}

func TestRewrite_NestedTemplateIsOneSpan(t *testing.T) {
	// The inner template belongs to the outer span; the whole thing is
	// one unknown template and is dropped.
	got := Rewrite("x{{outer|{{inner}}|p}}y", cnSet, "quote", "text")
	if got != "xy" {
		t.Errorf("Rewrite = %q, want %q", got, "xy")
	}
}

func TestRewrite_QuoteParam(t *testing.T) {
	got := Rewrite("He declared:{{cn}}\n{{quote|text=Exact Words|author=X}}", cnSet, "quote", "text")
	want := "He declared:" + Marker + "\nExact Words"
	if got != want {
		t.Errorf("Rewrite = %q, want %q", got, want)
	}
}

func TestRewrite_QuoteFallback(t *testing.T) {
	got := Rewrite("{{quote|Some words}}", cnSet, "quote", "text")
	want := "\nSome words"
	if got != want {
		t.Errorf("Rewrite = %q, want %q", got, want)
	}
}

func TestRewrite_NoTemplates(t *testing.T) {
	text := "Plain paragraph with {single} braces."
	if got := Rewrite(text, cnSet, "quote", "text"); got != text {
		t.Errorf("Rewrite changed template-free text: %q", got)
	}
}

func TestTemplateSpans(t *testing.T) {
	spans := templateSpans("a{{x}}b{{y|{{z}}}}c")
	if len(spans) != 2 {
		t.Fatalf("expected 2 spans, got %d", len(spans))
	}
	if spans[0].start != 1 || spans[0].end != 5 {
		t.Errorf("first span = %+v", spans[0])
	}
	if spans[1].start != 7 || spans[1].end != 17 {
		t.Errorf("second span = %+v", spans[1])
	}
}

func TestIdentifier(t *testing.T) {
	tests := []struct {
		template string
		want     string
	}{
		{"{{cn}}", "cn"},
		{"{{Citation needed|date=May 2017}}", "citation needed"},
		{"{{ Fact }}", "fact"},
	}
	for _, tt := range tests {
		if got := identifier(tt.template); got != tt.want {
			t.Errorf("identifier(%q) = %q, want %q", tt.template, got, tt.want)
		}
	}
}

func TestQuoteText(t *testing.T) {
	tests := []struct {
		template string
		want     string
	}{
		{"{{quote|text=Exact Words|author=X}}", "Exact Words"},
		{"{{quote|Text=Capital Param}}", "Capital Param"},
		{"{{quote|Some words}}", "Some words"},
	}
	for _, tt := range tests {
		if got := quoteText(tt.template, "text"); got != tt.want {
			t.Errorf("quoteText(%q) = %q, want %q", tt.template, got, tt.want)
		}
	}
}

func TestCitationSet(t *testing.T) {
	set := CitationSet([]string{"Citation Needed", " cn "})
	want := map[string]bool{"citation needed": true, "cn": true}
	if !reflect.DeepEqual(set, want) {
		t.Errorf("CitationSet = %v, want %v", set, want)
	}
}
