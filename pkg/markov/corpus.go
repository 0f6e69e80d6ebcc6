package markov

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Sequence is one training name: its normalized text and its symbols.
type Sequence struct {
	Text   string
	Tokens []string
}

// Corpus is the cleaned set of training sequences loaded from sample names.
type Corpus struct {
	tokenizer Tokenizer
	sequences []Sequence
	names     map[string]struct{}
}

// LoadCorpus reads one candidate name per line from r. Lines are trimmed and
// lowercased, and lines left empty are skipped. It returns ErrEmptyCorpus if
// no usable line remains. A nil tokenizer selects NewDefaultTokenizer().
func LoadCorpus(r io.Reader, tokenizer Tokenizer) (*Corpus, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read corpus: %w", err)
	}
	return NewCorpus(lines, tokenizer)
}

// NewCorpus is like LoadCorpus but takes lines that are already split.
func NewCorpus(lines []string, tokenizer Tokenizer) (*Corpus, error) {
	if tokenizer == nil {
		tokenizer = NewDefaultTokenizer()
	}
	c := &Corpus{
		tokenizer: tokenizer,
		names:     make(map[string]struct{}),
	}
	for _, line := range lines {
		text := normalizeName(line)
		if text == "" {
			continue
		}
		tokens := tokenizer.Tokens(text)
		if len(tokens) == 0 {
			continue
		}
		c.sequences = append(c.sequences, Sequence{Text: text, Tokens: tokens})
		c.names[text] = struct{}{}
	}
	if len(c.sequences) == 0 {
		return nil, ErrEmptyCorpus
	}
	return c, nil
}

// Sequences returns the training sequences in input order.
func (c *Corpus) Sequences() []Sequence {
	return c.sequences
}

// Len returns the number of training sequences, duplicates included.
func (c *Corpus) Len() int {
	return len(c.sequences)
}

// Tokenizer returns the tokenizer the corpus was split with.
func (c *Corpus) Tokenizer() Tokenizer {
	return c.tokenizer
}

// Contains reports whether name matches a corpus line, ignoring case and
// surrounding whitespace.
func (c *Corpus) Contains(name string) bool {
	_, ok := c.names[normalizeName(name)]
	return ok
}

func normalizeName(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
