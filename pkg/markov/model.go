package markov

import "strconv"

// Table is an order-k transition table built from a corpus. Each key is a
// prefix of k token IDs and maps to every token observed to follow it, with
// frequencies. A Table also records how many sequences of each length it was
// built from. It is not modified after Build except by Prune.
type Table struct {
	order       int
	vocab       []string       // token_id -> token_text
	ids         map[string]int // token_text -> token_id
	chains      map[string]*chain
	lengths     []ChainToken // Id is a length in symbols, Freq the number of sequences
	lengthTotal int
	sequences   int
}

// chain holds the observed continuations of one prefix in first-seen order.
type chain struct {
	tokens []ChainToken
	total  int
}

func newTable(order int) *Table {
	return &Table{
		order:  order,
		vocab:  []string{SOCTokenText, EOCTokenText},
		ids:    map[string]int{SOCTokenText: SOCTokenID, EOCTokenText: EOCTokenID},
		chains: make(map[string]*chain),
	}
}

// Order returns the number of preceding tokens used as context.
func (t *Table) Order() int {
	return t.order
}

// PrefixKey builds the table key for a prefix of token IDs.
func PrefixKey(prefix []int) string {
	return string(appendPrefixKey(nil, prefix))
}

func appendPrefixKey(keyBuf []byte, prefix []int) []byte {
	for j, tokenID := range prefix {
		if j > 0 {
			keyBuf = append(keyBuf, ' ')
		}
		keyBuf = strconv.AppendInt(keyBuf, int64(tokenID), 10)
	}
	return keyBuf
}

// intern returns the ID of a token, adding it to the vocabulary if needed.
func (t *Table) intern(text string) int {
	if id, ok := t.ids[text]; ok {
		return id
	}
	id := len(t.vocab)
	t.vocab = append(t.vocab, text)
	t.ids[text] = id
	return id
}

// observe records one occurrence of next following the prefix key.
func (t *Table) observe(key string, next int) {
	c, ok := t.chains[key]
	if !ok {
		c = &chain{}
		t.chains[key] = c
	}
	c.total++
	for i := range c.tokens {
		if c.tokens[i].Id == next {
			c.tokens[i].Freq++
			return
		}
	}
	c.tokens = append(c.tokens, ChainToken{Id: next, Freq: 1})
}

func (t *Table) observeLength(n int) {
	t.lengthTotal++
	for i := range t.lengths {
		if t.lengths[i].Id == n {
			t.lengths[i].Freq++
			return
		}
	}
	t.lengths = append(t.lengths, ChainToken{Id: n, Freq: 1})
}
