package slug

import "testing"

// TestGenerate exercises the slug generator with typical category titles,
// special characters, and boundary inputs.
func TestGenerate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "simple two words", input: "Hello World", want: "hello-world"},
		{name: "title with year", input: "Travel Notes 2026", want: "travel-notes-2026"},
		{name: "already lowercase", input: "already lowercase", want: "already-lowercase"},
		{name: "punctuation marks", input: "Food, Drink & Everything Else!", want: "food-drink-everything-else"},
		{name: "parentheses", input: "City Life (Moscow)", want: "city-life-moscow"},
		{name: "leading and trailing spaces", input: "  hello world  ", want: "hello-world"},
		{name: "multiple spaces collapsed", input: "hello    world", want: "hello-world"},
		{name: "hyphens and spaces mixed", input: "  --hello -- world--  ", want: "hello-world"},
		{name: "single hyphen preserved", input: "well-known fact", want: "well-known-fact"},
		{name: "empty string", input: "", want: ""},
		{name: "only special characters", input: "!@#$%^&*()", want: ""},
		{name: "single character", input: "A", want: "a"},
		{name: "date-like string", input: "2026-02-25", want: "2026-02-25"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Generate(tt.input)
			if got != tt.want {
				t.Errorf("Generate(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

// TestGenerate_Idempotent verifies that generating a slug from an already
// valid slug produces the same result.
func TestGenerate_Idempotent(t *testing.T) {
	slugs := []string{"hello-world", "travel-notes-2026", "a", "123"}

	for _, s := range slugs {
		t.Run(s, func(t *testing.T) {
			if got := Generate(s); got != s {
				t.Errorf("Generate(%q) = %q, want idempotent result %q", s, got, s)
			}
		})
	}
}
