package model

// Direction indicates where the text supporting a claim sits relative to
// the citation-needed marker.
type Direction string

const (
	// DirectionBackward means the claim text precedes the marker.
	DirectionBackward Direction = "backward"
	// DirectionForward means the substantiating text follows the marker,
	// typically a quote, list or the next paragraph.
	DirectionForward Direction = "forward"
)

func (d Direction) String() string {
	return string(d)
}

// Claim is a text segment flagged as needing a source.
//
// Created by the segmenter; Query is attached exactly once by the query
// synthesizer and the claim is never mutated afterward.
type Claim struct {
	Title       string    `json:"title"`     // Owning article title
	Text        string    `json:"text"`      // Claim text, possibly multi-sentence
	Direction   Direction `json:"direction"` // Backward or Forward
	ArticleText string    `json:"-"`         // Full marked article text, read-only
	Query       string    `json:"query,omitempty"`
}
