package markov

import (
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Tokenizer is an interface that defines the contract for splitting a
// normalized name into the symbols the chain is built from. This allows the
// table and sampling logic to be independent of the tokenization strategy.
type Tokenizer interface {
	// Tokens returns the symbols of name in order. An empty result marks the
	// name as unusable for training.
	Tokens(name string) []string
	// Separator returns the string placed between two adjacent symbols when
	// a generated name is rendered.
	Separator(prev, current string) string
}

// NextTokens returns all tokens observed after the given prefix of token IDs,
// along with the sum of their frequencies. If the prefix was never observed,
// it returns a nil slice and a total frequency of 0. The returned slice is a
// copy and may be modified freely.
func (t *Table) NextTokens(prefix []int) ([]ChainToken, int) {
	return t.NextTokensKey(PrefixKey(prefix))
}

// NextTokensKey is like NextTokens but takes an already built prefix key.
func (t *Table) NextTokensKey(key string) ([]ChainToken, int) {
	c, ok := t.chains[key]
	if !ok {
		return nil, 0
	}
	return slices.Clone(c.tokens), c.total
}

// VocabStr looks up a token string in the vocabulary and returns its ID.
func (t *Table) VocabStr(token string) (int, bool) {
	id, ok := t.ids[token]
	return id, ok
}

// VocabInt looks up a token ID in the vocabulary and returns its text.
func (t *Table) VocabInt(id int) (string, bool) {
	if id < 0 || id >= len(t.vocab) {
		return "", false
	}
	return t.vocab[id], true
}

// render joins generated symbols into a name, optionally upper-casing the
// first rune.
func render(tokenizer Tokenizer, tokens []string, capitalize bool) string {
	var builder strings.Builder
	for i, text := range tokens {
		if i > 0 {
			builder.WriteString(tokenizer.Separator(tokens[i-1], text))
		}
		builder.WriteString(text)
	}
	name := builder.String()
	if !capitalize || name == "" {
		return name
	}
	r, size := utf8.DecodeRuneInString(name)
	return string(unicode.ToUpper(r)) + name[size:]
}
