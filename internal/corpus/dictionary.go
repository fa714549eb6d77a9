package corpus

import (
	"bufio"
	"compress/bzip2"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
)

// Dictionary maps tokens to ids and per-token document frequencies over a
// corpus. It is built once, before the finder runs, and read-only after.
type Dictionary struct {
	tokenIDs map[string]int
	docFreqs map[int]int
	numDocs  int
}

// NewDictionary creates an empty dictionary.
func NewDictionary() *Dictionary {
	return &Dictionary{
		tokenIDs: make(map[string]int),
		docFreqs: make(map[int]int),
	}
}

// TokenID returns the id of a token, if present.
func (d *Dictionary) TokenID(token string) (int, bool) {
	id, ok := d.tokenIDs[token]
	return id, ok
}

// DocFreq returns the number of documents a token appears in, or 0 for
// unknown tokens.
func (d *Dictionary) DocFreq(token string) int {
	id, ok := d.tokenIDs[token]
	if !ok {
		return 0
	}
	return d.docFreqs[id]
}

// NumDocs returns the number of documents the dictionary was built from.
func (d *Dictionary) NumDocs() int {
	return d.numDocs
}

// Len returns the vocabulary size.
func (d *Dictionary) Len() int {
	return len(d.tokenIDs)
}

// AddDocument registers one document's tokens, incrementing the document
// frequency of each distinct token once.
func (d *Dictionary) AddDocument(tokens []string) {
	seen := make(map[string]bool, len(tokens))
	for _, token := range tokens {
		if seen[token] {
			continue
		}
		seen[token] = true

		id, ok := d.tokenIDs[token]
		if !ok {
			id = len(d.tokenIDs)
			d.tokenIDs[token] = id
		}
		d.docFreqs[id]++
	}
	d.numDocs++
}

// SaveAsText persists the dictionary as a word-id mapping file: a
// document-count header line followed by "id<TAB>token<TAB>docfreq"
// lines sorted by token.
func (d *Dictionary) SaveAsText(path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create dictionary file: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close dictionary file: %w", closeErr)
		}
	}()

	w := bufio.NewWriter(f)
	if _, err := fmt.Fprintf(w, "%d\n", d.numDocs); err != nil {
		return fmt.Errorf("write dictionary header: %w", err)
	}

	tokens := make([]string, 0, len(d.tokenIDs))
	for token := range d.tokenIDs {
		tokens = append(tokens, token)
	}
	sort.Strings(tokens)

	for _, token := range tokens {
		id := d.tokenIDs[token]
		if _, err := fmt.Fprintf(w, "%d\t%s\t%d\n", id, token, d.docFreqs[id]); err != nil {
			return fmt.Errorf("write dictionary entry: %w", err)
		}
	}

	return w.Flush()
}

// LoadDictionary reads a persisted word-id mapping. Files ending in .bz2
// are decompressed transparently.
func LoadDictionary(path string) (*Dictionary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dictionary file: %w", err)
	}
	defer func() { _ = f.Close() }()

	var r io.Reader = f
	if strings.HasSuffix(path, ".bz2") {
		r = bzip2.NewReader(f)
	}

	return ReadDictionary(r)
}

// ReadDictionary parses the word-id mapping format from r.
func ReadDictionary(r io.Reader) (*Dictionary, error) {
	d := NewDictionary()

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)

	first := true
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		// The header line holds the corpus document count; older files
		// omit it and start directly with entries.
		if first {
			first = false
			if n, err := strconv.Atoi(line); err == nil {
				d.numDocs = n
				continue
			}
		}

		fields := strings.Split(line, "\t")
		if len(fields) != 3 {
			return nil, fmt.Errorf("malformed dictionary line: %q", line)
		}

		id, err := strconv.Atoi(fields[0])
		if err != nil {
			return nil, fmt.Errorf("malformed token id in %q: %w", line, err)
		}
		df, err := strconv.Atoi(fields[2])
		if err != nil {
			return nil, fmt.Errorf("malformed document frequency in %q: %w", line, err)
		}

		d.tokenIDs[fields[1]] = id
		d.docFreqs[id] = df
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read dictionary: %w", err)
	}

	return d, nil
}
