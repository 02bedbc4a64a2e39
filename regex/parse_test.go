package regex

import "testing"

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		pattern string
	}{
		{"(a"},
		{"a)"},
		{"[a"},
		{"[-]"}, // '-' with no preceding char inside a set
		{"*a"},
		{""},
	}
	for _, tt := range tests {
		if _, err := parse(tt.pattern); err == nil {
			t.Errorf("parse(%q): expected an error, got none", tt.pattern)
		}
	}
}

func TestParse_Concrete(t *testing.T) {
	root, err := parse(`"([^\\]|(\\"))*"`)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if root == nil {
		t.Fatalf("parse returned a nil tree")
	}
}
