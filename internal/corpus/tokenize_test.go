package corpus

import (
	"reflect"
	"testing"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		text string
		want []string
	}{
		{"Hello, World!", []string{"hello", "world"}},
		{"co-operate isn't 42 fine", []string{"co", "operate", "isn", "t", "fine"}},
		{"  \n\t ", []string{}},
		{"", []string{}},
		{"Çelik naïve", []string{"çelik", "naïve"}},
	}

	for _, tt := range tests {
		got := Tokenize(tt.text)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Tokenize(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}
