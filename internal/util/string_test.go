package util

import "testing"

func TestTruncateWords(t *testing.T) {
	tests := []struct {
		name string
		in   string
		max  int
		want string
	}{
		{"empty", "", 20, ""},
		{"short", "Beef is meat", 20, "Beef is meat"},
		{"cut", "one two three four", 2, "one two"},
		{"collapses whitespace", "one  two\nthree", 3, "one two three"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TruncateWords(tt.in, tt.max); got != tt.want {
				t.Fatalf("TruncateWords(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
			}
		})
	}
}

func TestFirstRune(t *testing.T) {
	if got := FirstRune(""); got != "" {
		t.Fatalf("expected empty, got %q", got)
	}
	if got := FirstRune("beef"); got != "b" {
		t.Fatalf("expected b, got %q", got)
	}
	if got := FirstRune("éclair"); got != "é" {
		t.Fatalf("expected é, got %q", got)
	}
}

func TestSplitVerbatimKeepsWhitespace(t *testing.T) {
	got := SplitVerbatim("Tag1, Tag2 ,Tag3", ",")
	want := []string{"Tag1", " Tag2 ", "Tag3"}
	if len(got) != len(want) {
		t.Fatalf("expected %d tokens, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("token %d = %q, want %q", i, got[i], want[i])
		}
	}
	if SplitVerbatim("", ",") != nil {
		t.Fatalf("expected nil for empty input")
	}
}
