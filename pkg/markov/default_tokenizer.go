package markov

import (
	"regexp"
	"strings"
)

// DefaultTokenizer is a default implementation of the Tokenizer interface.
// By default every rune of a name is one symbol. A split regex can be set to
// use larger units, and run grouping merges runs of one repeated symbol into
// a single symbol, so that a double letter that only appears mid-name never
// starts a name and a letter is never repeated more often than the corpus
// shows. Its behavior can be customized with functional options.
type DefaultTokenizer struct {
	separator  string
	splitRegex *regexp.Regexp
	groupRuns  bool
}

// Option Is a function that configures a DefaultTokenizer.
type Option func(*DefaultTokenizer)

// WithSeparator Sets the string used for joining symbols during generation.
// Default: ""
func WithSeparator(sep string) Option {
	return func(t *DefaultTokenizer) {
		t.separator = sep
	}
}

// WithSplitRegex sets the regex used to find symbols in a name. Text not
// matched by the regex is ignored.
// Default: unset, every rune is a symbol.
func WithSplitRegex(splitRegex string) Option {
	return func(t *DefaultTokenizer) {
		t.splitRegex = regexp.MustCompile(splitRegex)
	}
}

// WithRunGrouping enables or disables merging runs of a repeated symbol.
// Default: false
func WithRunGrouping(enabled bool) Option {
	return func(t *DefaultTokenizer) {
		t.groupRuns = enabled
	}
}

// NewDefaultTokenizer creates a new tokenizer with default settings, which can be
// overridden by providing one or more Option functions.
func NewDefaultTokenizer(opts ...Option) *DefaultTokenizer {
	t := &DefaultTokenizer{}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Tokens splits name into symbols.
func (t *DefaultTokenizer) Tokens(name string) []string {
	var parts []string
	if t.splitRegex != nil {
		parts = t.splitRegex.FindAllString(name, -1)
	} else {
		parts = make([]string, 0, len(name))
		for _, r := range name {
			parts = append(parts, string(r))
		}
	}
	if !t.groupRuns {
		return parts
	}
	return groupRuns(parts)
}

// Separator Returns the configured separator string.
func (t *DefaultTokenizer) Separator(_, _ string) string {
	return t.separator
}

// groupRuns merges consecutive identical parts, e.g. [a n n a] -> [a nn a].
func groupRuns(parts []string) []string {
	out := make([]string, 0, len(parts))
	for i := 0; i < len(parts); {
		j := i + 1
		for j < len(parts) && parts[j] == parts[i] {
			j++
		}
		out = append(out, strings.Repeat(parts[i], j-i))
		i = j
	}
	return out
}
