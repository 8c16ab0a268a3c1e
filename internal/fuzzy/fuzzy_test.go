//nolint:testpackage // using package name 'fuzzy' to access unexported fields for testing
package fuzzy

import "testing"

func TestMatcher_FindBest(t *testing.T) {
	matcher := NewMatcher(2)

	tests := []struct {
		name       string
		input      string
		candidates []string
		expected   string
	}{
		{
			name:       "exact match excluded",
			input:      "help",
			candidates: []string{"help", "version", "verbose"},
			expected:   "",
		},
		{
			name:       "simple typo",
			input:      "hep",
			candidates: []string{"help", "version", "verbose"},
			expected:   "help",
		},
		{
			name:       "no good match",
			input:      "xyz",
			candidates: []string{"help", "version", "verbose"},
			expected:   "",
		},
		{
			name:       "too short",
			input:      "x",
			candidates: []string{"help", "version"},
			expected:   "",
		},
		{
			name:       "case insensitive",
			input:      "HEP",
			candidates: []string{"help", "version"},
			expected:   "help",
		},
		{
			name:       "multibyte runes count once",
			input:      "größe",
			candidates: []string{"grösse", "große"},
			expected:   "große",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := matcher.FindBest(tt.input, tt.candidates)
			if result != tt.expected {
				t.Errorf("FindBest(%q, %v) = %q, want %q", tt.input, tt.candidates, result, tt.expected)
			}
		})
	}
}

func TestDistance(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"abc", "", 3},
		{"kitten", "sitting", 3},
		{"verbose", "verbos", 1},
		{"née", "nee", 1},
		{"biuld", "build", 1},
	}
	for _, tt := range tests {
		if got := Distance(tt.a, tt.b); got != tt.want {
			t.Errorf("Distance(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestSpelling(t *testing.T) {
	spellings := []string{"-v", "--verbose", "-o", "--output", "--version"}

	tests := []struct {
		input string
		want  string
	}{
		{"--verbos", "--verbose"},
		{"--outptu", "--output"},
		{"--versoin", "--version"},
		{"--zzz", ""},
		{"-x", ""},
		// a long typo never suggests a short spelling
		{"--o", ""},
	}
	for _, tt := range tests {
		if got := Spelling(tt.input, spellings); got != tt.want {
			t.Errorf("Spelling(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestCommands(t *testing.T) {
	names := []string{"build", "bundle", "test", "tidy"}

	got := Commands("biuld", names, 3)
	if len(got) == 0 || got[0] != "build" {
		t.Fatalf("Commands(biuld) = %v, want build first", got)
	}

	got = Commands("tset", names, 1)
	if len(got) != 1 || got[0] != "test" {
		t.Errorf("Commands(tset) = %v, want [test]", got)
	}

	if got := Commands("deploy", names, 3); len(got) != 0 {
		t.Errorf("Commands(deploy) = %v, want none", got)
	}
}
