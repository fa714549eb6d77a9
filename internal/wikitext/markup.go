package wikitext

import (
	"regexp"
	"strings"
)

// Markup patterns remaining after template rewriting. Wiki markup is
// recursive, so instead of a recursive grammar the cleanup runs in a
// loop, inner-most expressions first, for as long as something changes.
var (
	reComment   = regexp.MustCompile(`(?s)<!--.*?-->`)
	reFootnote  = regexp.MustCompile(`(?s)<ref([> ].*?)(</ref>|/>)`)
	reLangLinks = regexp.MustCompile(`(\n\[\[[a-z][a-z][\w-]*:[^:\]]+\]\])+$`)
	reURL       = regexp.MustCompile(`\[(\w+)://(.*?)(( (.*?))|())\]`)
	reLink      = regexp.MustCompile(`(?s)\[([^][]*)\|([^][]*)\]`)
	reNowiki    = regexp.MustCompile(`(?s)<nowiki([> ].*?)(</nowiki>|/>)`)
	reMath      = regexp.MustCompile(`(?s)<math([> ].*?)(</math>|/>)`)
	reTag       = regexp.MustCompile(`(?s)<(.*?)>`)
	reTableLine = regexp.MustCompile(`\n(\{\||\|-|\|\})[^\n]*`)
	reTableCell = regexp.MustCompile(`\n[|!]([^\n|]*\|)*([^\n|]*)`)
	reCategory  = regexp.MustCompile(`\[\[[cC]ategory:[^][]*\]\]`)
	reFile      = regexp.MustCompile(`\[\[([fF]ile:|[iI]mage)[^]]*(\]\])`)
)

const maxCleanupPasses = 3

// StripLanguageLinks removes the trailing inter-language link list.
func StripLanguageLinks(text string) string {
	return reLangLinks.ReplaceAllString(text, "")
}

// CleanMarkup reduces template-rewritten markup to plain text: comments,
// footnotes, files, math, tags, categories and table markup are removed;
// URLs and wiki links keep their descriptions.
func CleanMarkup(text string) string {
	text = reFile.ReplaceAllString(text, "")

	for pass := 0; pass < maxCleanupPasses; pass++ {
		old := text
		text = reComment.ReplaceAllString(text, "")
		text = reFootnote.ReplaceAllString(text, "")
		text = reNowiki.ReplaceAllString(text, "")
		text = reMath.ReplaceAllString(text, "")
		text = reTag.ReplaceAllString(text, "")
		text = reCategory.ReplaceAllString(text, "")
		text = reURL.ReplaceAllString(text, "$3")
		text = reLink.ReplaceAllString(text, "$2")
		// Table markup: each cell on its own line, then strip
		// formatting lines and keep cell content.
		text = strings.ReplaceAll(text, "||", "\n|")
		text = reTableLine.ReplaceAllString(text, "\n")
		text = reTableCell.ReplaceAllString(text, "\n$2")
		text = strings.ReplaceAll(text, "[]", "")
		if text == old {
			break
		}
	}

	// Promote remaining markup to plain text so '[[socialist]]s' style
	// fragments tokenize as single words.
	text = strings.ReplaceAll(text, "[", "")
	text = strings.ReplaceAll(text, "]", "")
	return text
}

// PlainTextWithMarkers converts raw article markup into plain text with
// citation-needed templates replaced by the Marker sentinel and quote
// templates inlined.
func PlainTextWithMarkers(markup string, citationNames map[string]bool, quoteName, quoteTextParam string) string {
	text := StripLanguageLinks(markup)
	text = Rewrite(text, citationNames, quoteName, quoteTextParam)
	return CleanMarkup(text)
}
