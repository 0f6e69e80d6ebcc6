package markov

import (
	"reflect"
	"testing"
)

func TestDefaultTokenizer(t *testing.T) {
	testCases := []struct {
		name     string
		opts     []Option
		input    string
		expected []string
	}{
		{"runes", nil, "anna", []string{"a", "n", "n", "a"}},
		{"multibyte runes", nil, "zoë", []string{"z", "o", "ë"}},
		{"run grouping", []Option{WithRunGrouping(true)}, "anna", []string{"a", "nn", "a"}},
		{"run grouping at edges", []Option{WithRunGrouping(true)}, "llewelynn", []string{"ll", "e", "w", "e", "l", "y", "nn"}},
		{"split regex", []Option{WithSplitRegex(`[a-z]+`)}, "mary-jane", []string{"mary", "jane"}},
		{"split regex with runs", []Option{WithSplitRegex(`[a-z]+`), WithRunGrouping(true)}, "bo bo jo", []string{"bobo", "jo"}},
		{"empty", nil, "", []string{}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := NewDefaultTokenizer(tc.opts...).Tokens(tc.input)
			if len(got) == 0 && len(tc.expected) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tc.expected) {
				t.Errorf("Tokens(%q) = %q, want %q", tc.input, got, tc.expected)
			}
		})
	}
}

func TestRender(t *testing.T) {
	plain := NewDefaultTokenizer()
	dashed := NewDefaultTokenizer(WithSeparator("-"))

	testCases := []struct {
		name       string
		tokenizer  Tokenizer
		tokens     []string
		capitalize bool
		expected   string
	}{
		{"capitalized", plain, []string{"a", "nn", "a"}, true, "Anna"},
		{"lowercase", plain, []string{"a", "nn", "a"}, false, "anna"},
		{"multibyte first rune", plain, []string{"é", "m", "i", "l", "e"}, true, "Émile"},
		{"separator", dashed, []string{"mary", "jane"}, true, "Mary-jane"},
		{"empty", plain, nil, true, ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := render(tc.tokenizer, tc.tokens, tc.capitalize); got != tc.expected {
				t.Errorf("render() = %q, want %q", got, tc.expected)
			}
		})
	}
}

func TestVocabLookup(t *testing.T) {
	g := newTestGenerator(t, 2, "fish")
	tb := g.Table()

	id, ok := tb.VocabStr("f")
	if !ok {
		t.Fatal("VocabStr('f') not found")
	}
	if id == SOCTokenID || id == EOCTokenID {
		t.Errorf("expected a non-reserved ID for 'f', got %d", id)
	}

	text, ok := tb.VocabInt(id)
	if !ok || text != "f" {
		t.Errorf("VocabInt(%d) = %q, %v, want 'f'", id, text, ok)
	}
	if text, _ := tb.VocabInt(EOCTokenID); text != EOCTokenText {
		t.Errorf("expected EOC text %q, got %q", EOCTokenText, text)
	}
	if _, ok := tb.VocabInt(999); ok {
		t.Error("expected unknown ID to be missing")
	}
	if _, ok := tb.VocabStr("z"); ok {
		t.Error("expected unknown token to be missing")
	}
}

func TestNextTokens(t *testing.T) {
	g := newTestGenerator(t, 1, "ab", "ac")
	tb := g.Table()
	aID, _ := tb.VocabStr("a")

	tokens, totalFreq := tb.NextTokens([]int{aID})
	if totalFreq != 2 || len(tokens) != 2 {
		t.Fatalf("expected 2 tokens with total frequency 2 after 'a', got %+v (%d)", tokens, totalFreq)
	}

	// The returned slice is a copy.
	tokens[0].Freq = 100
	again, _ := tb.NextTokensKey(PrefixKey([]int{aID}))
	if again[0].Freq != 1 {
		t.Errorf("modifying NextTokens result changed the table: %+v", again)
	}

	// Test unseen prefix
	tokens, totalFreq = tb.NextTokens([]int{999})
	if len(tokens) != 0 || totalFreq != 0 {
		t.Error("expected no tokens for an unseen prefix")
	}
}

func TestPrefixKey(t *testing.T) {
	if got := PrefixKey([]int{0, 0, 12}); got != "0 0 12" {
		t.Errorf("PrefixKey() = %q, want %q", got, "0 0 12")
	}
	if got := PrefixKey(nil); got != "" {
		t.Errorf("PrefixKey(nil) = %q, want empty", got)
	}
}
