package corpus

import (
	"path/filepath"
	"strings"
	"testing"
)

func buildDictionary() *Dictionary {
	d := NewDictionary()
	d.AddDocument([]string{"water", "boils", "water"})
	d.AddDocument([]string{"water", "freezes"})
	d.AddDocument([]string{"iron", "melts"})
	return d
}

func TestDictionary_DocFreq(t *testing.T) {
	d := buildDictionary()

	if d.NumDocs() != 3 {
		t.Errorf("NumDocs = %d, want 3", d.NumDocs())
	}
	if d.Len() != 5 {
		t.Errorf("Len = %d, want 5", d.Len())
	}

	// Repeats within one document count once.
	if df := d.DocFreq("water"); df != 2 {
		t.Errorf("DocFreq(water) = %d, want 2", df)
	}
	if df := d.DocFreq("iron"); df != 1 {
		t.Errorf("DocFreq(iron) = %d, want 1", df)
	}
	if df := d.DocFreq("unknown"); df != 0 {
		t.Errorf("DocFreq(unknown) = %d, want 0", df)
	}
}

func TestDictionary_SaveAndLoad(t *testing.T) {
	d := buildDictionary()
	path := filepath.Join(t.TempDir(), "wordids.txt")

	if err := d.SaveAsText(path); err != nil {
		t.Fatalf("SaveAsText failed: %v", err)
	}

	loaded, err := LoadDictionary(path)
	if err != nil {
		t.Fatalf("LoadDictionary failed: %v", err)
	}

	if loaded.NumDocs() != d.NumDocs() {
		t.Errorf("NumDocs = %d, want %d", loaded.NumDocs(), d.NumDocs())
	}
	if loaded.Len() != d.Len() {
		t.Errorf("Len = %d, want %d", loaded.Len(), d.Len())
	}
	for _, token := range []string{"water", "boils", "freezes", "iron", "melts"} {
		if loaded.DocFreq(token) != d.DocFreq(token) {
			t.Errorf("DocFreq(%s) = %d, want %d", token, loaded.DocFreq(token), d.DocFreq(token))
		}
	}
}

func TestReadDictionary_NoHeader(t *testing.T) {
	// Older files start directly with entries.
	input := "0\twater\t2\n1\tboils\t1\n"
	d, err := ReadDictionary(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadDictionary failed: %v", err)
	}

	if d.NumDocs() != 0 {
		t.Errorf("NumDocs = %d, want 0 without a header", d.NumDocs())
	}
	if df := d.DocFreq("water"); df != 2 {
		t.Errorf("DocFreq(water) = %d, want 2", df)
	}
}

func TestReadDictionary_Malformed(t *testing.T) {
	if _, err := ReadDictionary(strings.NewReader("3\nnot a dictionary line\n")); err == nil {
		t.Fatal("expected error for malformed line")
	}
}
