package textutil

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"trim and lower", "  Acme Corp ", "acme corp"},
		{"collapse whitespace", "hello\t \nworld", "hello world"},
		{"fullwidth folds", "ＨＥＬＬＯ", "hello"},
		{"empty", "", ""},
		{"only whitespace", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.input); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeComparable(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"punctuation stripped", "  Hello,   WORLD!!  ", "hello world"},
		{"number words unified", "fifty percent", "50 percent"},
		{"apostrophes removed", "don't stop", "dont stop"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeComparable(tt.input); got != tt.want {
				t.Errorf("NormalizeComparable(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeContains(t *testing.T) {
	if got := NormalizeContains("The  cat, SAT!"); got != "thecatsat" {
		t.Errorf("NormalizeContains() = %q, want %q", got, "thecatsat")
	}
}
