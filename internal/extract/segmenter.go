// Package extract turns marker-annotated article text into discrete
// claims needing a source.
package extract

import (
	"strings"

	"github.com/citehunt/citehunt/internal/model"
	"github.com/citehunt/citehunt/internal/wikitext"
)

// Claims shorter than this carry too little signal on their own.
const minClaimLength = 15

// Segmenter extracts claims from marker-annotated article text.
type Segmenter struct{}

// NewSegmenter creates a new claim segmenter.
func NewSegmenter() *Segmenter {
	return &Segmenter{}
}

// Extract walks the newline-delimited paragraphs of markedText and
// returns the claims around each citation-needed marker, in paragraph
// order.
//
// Up to 3 claims inside one paragraph are joined, as they are likely
// semantically connected: the first is kept by itself, the second gets
// the first prepended, the third gets both. A ':' close to the left of a
// marker means the substantiating text follows it (usually a quote, a
// list or the next paragraph); such claims are marked Forward. Everything
// else is marked Backward.
func (s *Segmenter) Extract(markedText, title string) []model.Claim {
	lines := strings.Split(markedText, "\n")

	var claims []model.Claim
	for lineNo, line := range lines {
		if !strings.Contains(line, wikitext.Marker) {
			continue
		}

		segments := strings.Split(line, wikitext.Marker)

		// The final segment has no marker after it and only serves as
		// trailing context for the claim before it.
		for k := 0; k < len(segments)-1; k++ {
			segment := segments[k]
			if len(segment) < minClaimLength {
				continue
			}

			var claim model.Claim
			if strings.Contains(lastChars(segment, 4), ":") {
				claim = s.forwardClaim(segment, segments, k, lines, lineNo)
			} else {
				claim = s.backwardClaim(segments, k)
			}

			claim.Title = title
			claim.ArticleText = markedText
			claims = append(claims, claim)
		}
	}

	return claims
}

// forwardClaim builds a Forward-direction claim: the last sentence before
// the marker plus whatever follows it (a quote-sized trailing segment,
// a list continuation, or the next paragraph).
func (s *Segmenter) forwardClaim(segment string, segments []string, k int, lines []string, lineNo int) model.Claim {
	text := segment
	if sents := wikitext.SplitSentences(segment); len(sents) > 0 {
		text = sents[len(sents)-1]
	}

	if len(segments[k+1]) > 5 {
		// A large trailing segment is probably a quote or an example.
		text += segments[k+1]
	} else if lineNo+1 < len(lines) {
		if strings.Contains(lines[lineNo+1], "*") {
			// A list follows; take every consecutive list line.
			for i := lineNo + 1; i < len(lines) && strings.Contains(lines[i], "*"); i++ {
				text += lines[i]
			}
		} else {
			text += " " + lines[lineNo+1]
		}
	}

	return model.Claim{Text: text, Direction: model.DirectionForward}
}

// backwardClaim builds a Backward-direction claim by merging the segment
// with up to two immediately preceding segments of the same paragraph.
func (s *Segmenter) backwardClaim(segments []string, k int) model.Claim {
	var b strings.Builder
	for _, i := range []int{k - 2, k - 1, k} {
		if i >= 0 {
			b.WriteString(segments[i])
		}
	}
	return model.Claim{Text: b.String(), Direction: model.DirectionBackward}
}

// lastChars returns at most the final n bytes of s.
func lastChars(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}
