package main

import (
	"testing"
	"unicode/utf8"
)

func TestTruncate(t *testing.T) {
	cases := []struct {
		in   string
		max  int
		want string
	}{
		{"short", 40, "short"},
		{"exactly-ten", 11, "exactly-ten"},
		{"this name is much longer than the limit", 20, "this name is much..."},
		// Multi-byte product names must never be cut mid-rune.
		{"Kettenführung Öhlins Edition Spezial 450", 20, "Kettenführung Öhl..."},
	}
	for _, tc := range cases {
		got := truncate(tc.in, tc.max)
		if got != tc.want {
			t.Fatalf("truncate(%q, %d) = %q, want %q", tc.in, tc.max, got, tc.want)
		}
		if !utf8.ValidString(got) {
			t.Fatalf("truncate(%q, %d) produced invalid UTF-8 %q", tc.in, tc.max, got)
		}
	}
}
