package model

// Article is a single page read from a Wikipedia dump.
// Immutable once produced by the corpus reader.
type Article struct {
	ID    string `json:"id"`    // Opaque page identifier from the dump
	Title string `json:"title"` // Article title
	Text  string `json:"text"`  // Raw wiki markup
}
