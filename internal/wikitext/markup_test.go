package wikitext

import (
	"strings"
	"testing"
)

func TestCleanMarkup_Links(t *testing.T) {
	got := CleanMarkup("The [[United States|US]] borders [[Canada]].")
	want := "The US borders Canada."
	if got != want {
		t.Errorf("CleanMarkup = %q, want %q", got, want)
	}
}

func TestCleanMarkup_PluralLink(t *testing.T) {
	// '[[socialist]]s' must survive as one word.
	got := CleanMarkup("Many [[socialist]]s agreed.")
	want := "Many socialists agreed."
	if got != want {
		t.Errorf("CleanMarkup = %q, want %q", got, want)
	}
}

func TestCleanMarkup_Footnotes(t *testing.T) {
	got := CleanMarkup(`Known fact.<ref name="src">Smith 2001</ref> More text.`)
	want := "Known fact. More text."
	if got != want {
		t.Errorf("CleanMarkup = %q, want %q", got, want)
	}
}

func TestCleanMarkup_Comments(t *testing.T) {
	got := CleanMarkup("Before<!-- hidden\nnote -->After")
	want := "BeforeAfter"
	if got != want {
		t.Errorf("CleanMarkup = %q, want %q", got, want)
	}
}

func TestCleanMarkup_ExternalURL(t *testing.T) {
	got := CleanMarkup("See [http://example.org the project site] for details.")
	if strings.Contains(got, "http") {
		t.Errorf("URL survived cleanup: %q", got)
	}
	if !strings.Contains(got, "the project site") {
		t.Errorf("link description lost: %q", got)
	}
}

func TestCleanMarkup_Category(t *testing.T) {
	got := CleanMarkup("Text.[[Category:Chemistry]]")
	want := "Text."
	if got != want {
		t.Errorf("CleanMarkup = %q, want %q", got, want)
	}
}

func TestStripLanguageLinks(t *testing.T) {
	got := StripLanguageLinks("Body text.\n[[de:Artikel]]\n[[fr:Article]]")
	want := "Body text."
	if got != want {
		t.Errorf("StripLanguageLinks = %q, want %q", got, want)
	}
}

func TestPlainTextWithMarkers(t *testing.T) {
	markup := "Water boils at 100 degrees.{{cn}}<ref>old</ref> It freezes at [[zero]].{{infobox|x=1}}"
	got := PlainTextWithMarkers(markup, cnSet, "quote", "text")
	want := "Water boils at 100 degrees." + Marker + " It freezes at zero."
	if got != want {
		t.Errorf("PlainTextWithMarkers = %q, want %q", got, want)
	}
}
