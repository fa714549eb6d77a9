// Package content reduces fetched HTML to an ordered sequence of
// boilerplate-stripped plain-text paragraphs.
package content

import (
	"strings"

	"golang.org/x/net/html"
)

// Paragraph acceptance thresholds: short blocks and link-dense blocks
// are navigation or chrome, not content.
const (
	minParagraphChars = 25
	maxLinkDensity    = 0.5
)

// Extractor turns raw HTML into content paragraphs.
type Extractor struct{}

// NewExtractor creates a new content extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// blockTags are the elements treated as paragraph boundaries.
var blockTags = map[string]bool{
	"p": true, "li": true, "blockquote": true, "pre": true,
	"td": true, "dd": true, "dt": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
}

// skipTags are subtrees that never contain content.
var skipTags = map[string]bool{
	"script": true, "style": true, "noscript": true, "iframe": true,
	"nav": true, "header": true, "footer": true, "aside": true,
	"form": true, "select": true, "option": true,
}

// Paragraphs extracts content paragraphs from htmlContent in document
// order. Blocks that are too short or dominated by link text are
// dropped as boilerplate.
func (e *Extractor) Paragraphs(htmlContent string) ([]string, error) {
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return nil, err
	}

	var paragraphs []string

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if skipTags[n.Data] {
				return
			}
			if blockTags[n.Data] {
				text, linkChars := blockText(n)
				text = strings.Join(strings.Fields(text), " ")
				if acceptable(text, linkChars) {
					paragraphs = append(paragraphs, text)
				}
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return paragraphs, nil
}

// blockText collects the visible text of a block node and the number of
// characters that sit inside anchors.
func blockText(n *html.Node) (string, int) {
	var buf strings.Builder
	linkChars := 0

	var walk func(n *html.Node, inLink bool)
	walk = func(n *html.Node, inLink bool) {
		if n.Type == html.ElementNode {
			if skipTags[n.Data] {
				return
			}
			if n.Data == "a" {
				inLink = true
			}
		}
		if n.Type == html.TextNode {
			text := strings.TrimSpace(n.Data)
			if text != "" {
				buf.WriteString(text)
				buf.WriteString(" ")
				if inLink {
					linkChars += len(text)
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c, inLink)
		}
	}
	walk(n, false)

	return buf.String(), linkChars
}

func acceptable(text string, linkChars int) bool {
	if len(text) < minParagraphChars {
		return false
	}
	return float64(linkChars)/float64(len(text)) <= maxLinkDensity
}
