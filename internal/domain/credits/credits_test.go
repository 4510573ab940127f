package credits

import (
	"reflect"
	"testing"
)

func TestCanonical(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"tom hanks", "Tom Hanks"},
		{"TOM HANKS", "Tom Hanks"},
		{"  tom   hanks ", "Tom Hanks"},
		{"", ""},
	}
	for _, tc := range tests {
		if got := Canonical(tc.in); got != tc.want {
			t.Errorf("Canonical(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestSplit(t *testing.T) {
	tests := []struct {
		name  string
		field string
		delim string
		want  []string
	}{
		{"empty", "", ",", nil},
		{"blank", "   ", ",", nil},
		{"single", "John Lasseter", ",", []string{"John Lasseter"}},
		{"spaces trimmed", "Tom Hanks, Tim Allen", ",", []string{"Tom Hanks", "Tim Allen"}},
		{"empty entries dropped", "Tom Hanks,,", ",", []string{"Tom Hanks"}},
		{"duplicates dropped", "tom hanks,Tom Hanks", ",", []string{"Tom Hanks"}},
		{"custom delimiter", "Tom Hanks|Tim Allen", "|", []string{"Tom Hanks", "Tim Allen"}},
		{"default delimiter", "a b,c d", "", []string{"A B", "C D"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Split(tc.field, tc.delim)
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("Split(%q) = %v, want %v", tc.field, got, tc.want)
			}
		})
	}
}
