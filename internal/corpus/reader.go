package corpus

import (
	"compress/bzip2"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/citehunt/citehunt/internal/model"
)

// wikipediaBase matches the canonical Wikipedia host at the start of the
// dump's site-info base URL.
var wikipediaBase = regexp.MustCompile(`^https?://([a-z0-9-]+\.)*wikipedia\.org`)

// DumpReader streams articles out of a MediaWiki XML dump.
type DumpReader struct {
	namespaces map[string]bool
	baseURL    string
}

// NewDumpReader creates a reader restricted to the given namespaces.
// An empty list admits every namespace.
func NewDumpReader(namespaces []string) *DumpReader {
	set := make(map[string]bool, len(namespaces))
	for _, ns := range namespaces {
		set[strings.TrimSpace(ns)] = true
	}
	return &DumpReader{namespaces: set}
}

// BaseURL returns the site base URL found in the dump's metadata, if the
// site-info element has been reached. Best effort: empty when the dump
// carries none or the host is not a Wikipedia host.
func (r *DumpReader) BaseURL() string {
	return r.baseURL
}

// Open opens a dump file, decompressing bz2 archives transparently.
func Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dump: %w", err)
	}
	if strings.HasSuffix(path, ".bz2") {
		return struct {
			io.Reader
			io.Closer
		}{bzip2.NewReader(f), f}, nil
	}
	return f, nil
}

type siteInfo struct {
	Base string `xml:"base"`
}

type revision struct {
	Text string `xml:"text"`
}

type page struct {
	Title     string     `xml:"title"`
	NS        string     `xml:"ns"`
	ID        string     `xml:"id"`
	Redirect  *struct{}  `xml:"redirect"`
	Revisions []revision `xml:"revision"`
}

// ForEach decodes pages from src in document order, invoking fn for each
// article in an admitted namespace. A non-nil error from fn aborts the
// iteration and is returned.
func (r *DumpReader) ForEach(src io.Reader, fn func(article model.Article) error) error {
	dec := xml.NewDecoder(src)

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("decode dump: %w", err)
		}

		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}

		switch start.Name.Local {
		case "siteinfo":
			var si siteInfo
			if err := dec.DecodeElement(&si, &start); err != nil {
				return fmt.Errorf("decode siteinfo: %w", err)
			}
			if wikipediaBase.MatchString(si.Base) {
				r.baseURL = si.Base
			}
		case "page":
			var p page
			if err := dec.DecodeElement(&p, &start); err != nil {
				return fmt.Errorf("decode page: %w", err)
			}
			if !r.admits(p.NS) || p.Redirect != nil || len(p.Revisions) == 0 {
				continue
			}
			article := model.Article{
				ID:    p.ID,
				Title: p.Title,
				Text:  p.Revisions[len(p.Revisions)-1].Text,
			}
			if err := fn(article); err != nil {
				return err
			}
		}
	}
}

func (r *DumpReader) admits(ns string) bool {
	if len(r.namespaces) == 0 {
		return true
	}
	return r.namespaces[strings.TrimSpace(ns)]
}
