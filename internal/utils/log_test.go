package utils

import "testing"

func TestTruncateForLog(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		limit  int
		expect string
	}{
		{name: "disabled", input: `{"verdict": "valid"}`, limit: 0, expect: ""},
		{name: "negative limit", input: "prompt", limit: -1, expect: ""},
		{name: "fits", input: "Senior engineer", limit: 20, expect: "Senior engineer"},
		{name: "exact", input: "Senior", limit: 6, expect: "Senior"},
		{name: "cut", input: "Senior engineer", limit: 6, expect: "Senior..."},
		{name: "trimmed before cut", input: "\n  verdict: gibberish  \n", limit: 7, expect: "verdict..."},
		{name: "counts runes", input: "Zürich Köln", limit: 6, expect: "Zürich..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := TruncateForLog(tt.input, tt.limit); got != tt.expect {
				t.Fatalf("expected %q, got %q", tt.expect, got)
			}
		})
	}
}
