package wikitext

import "strings"

// Marker is the literal sentinel substituted for citation-needed
// templates in rewritten article text.
const Marker = "$$CNMARK$$"

// span is the inclusive byte range of one template, delimiters included.
type span struct {
	start, end int
}

// templateSpans scans markup left to right and returns the non-overlapping
// top-level template spans in document order.
//
// Templates nest arbitrarily, so the scanner keeps an open/close brace
// count instead of a regular expression: a template opens on two
// consecutive '{' characters and closes when the counts balance.
func templateSpans(s string) []span {
	var spans []span

	inTemplate := false
	nOpen, nClose := 0, 0
	start := 0
	var prev byte

	for i := 0; i < len(s); i++ {
		c := s[i]
		if !inTemplate && c == '{' && prev == '{' {
			start = i - 1
			inTemplate = true
			nOpen, nClose = 1, 0
		}
		if inTemplate {
			switch c {
			case '{':
				nOpen++
			case '}':
				nClose++
			}
			if nOpen == nClose {
				spans = append(spans, span{start: start, end: i})
				inTemplate = false
			}
		}
		prev = c
	}

	return spans
}

// identifier returns the classification key of a template: its first
// pipe-delimited segment, lower-cased, brace-stripped and trimmed.
func identifier(template string) string {
	first := strings.SplitN(strings.ToLower(template), "|", 2)[0]
	first = strings.ReplaceAll(first, "{", "")
	first = strings.ReplaceAll(first, "}", "")
	return strings.TrimSpace(first)
}

// quoteText extracts the quote body from a quote template.
//
// The pipe-delimited parts are searched for a "<textParam>=" parameter
// (matched case-insensitively). When none exists, everything after the
// template identifier is returned instead, which may include stray
// metadata.
func quoteText(template, textParam string) string {
	parts := strings.Split(template, "|")
	needle := strings.ToLower(textParam) + "="

	quote := ""
	for _, part := range parts {
		if idx := strings.Index(strings.ToLower(part), needle); idx >= 0 {
			quote = part[idx+len(needle):]
		}
	}

	if quote == "" && len(parts) > 1 {
		quote = strings.Join(parts[1:], "")
	}

	quote = strings.TrimRight(quote, "}")
	return strings.TrimSpace(quote)
}

// isNewlineRun reports whether a literal segment consists of newlines only.
func isNewlineRun(s string) bool {
	if s == "" {
		return false
	}
	return strings.Trim(s, "\n") == ""
}

// Rewrite replaces templates in markup: citation-needed templates become
// the Marker sentinel, quote templates are inlined as their quote text on
// a fresh line, and every other template is dropped. Literal text between
// templates passes through unchanged; markup without templates is
// returned as-is.
func Rewrite(markup string, citationNames map[string]bool, quoteName, quoteTextParam string) string {
	spans := templateSpans(markup)
	if len(spans) == 0 {
		return markup
	}

	var out []string
	prevEnd := -1

	for _, sp := range spans {
		out = append(out, markup[prevEnd+1:sp.start])
		template := markup[sp.start : sp.end+1]

		switch id := identifier(template); {
		case citationNames[id]:
			out = append(out, Marker)
		case id == quoteName:
			// Quotes start their own line: collapse any run of
			// newline-only segments accumulated so far into one.
			for len(out) > 0 && isNewlineRun(out[len(out)-1]) {
				out = out[:len(out)-1]
			}
			out = append(out, "\n", quoteText(template, quoteTextParam))
		}

		prevEnd = sp.end
	}

	out = append(out, markup[spans[len(spans)-1].end+1:])
	return strings.Join(out, "")
}

// CitationSet builds the lookup set for Rewrite from configured template
// names.
func CitationSet(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, name := range names {
		set[strings.ToLower(strings.TrimSpace(name))] = true
	}
	return set
}
