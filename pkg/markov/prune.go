package markov

import "slices"

// Prune removes all chain links that have a frequency less than or equal to
// minFreq and returns how many were removed. Prefixes left without any link
// are removed too, and are treated as dead ends when sampling. This is
// useful for dropping rare, and often noisy, transitions from a large corpus.
func (t *Table) Prune(minFreq int) int {
	removed := 0
	for key, c := range t.chains {
		before := len(c.tokens)
		c.tokens = slices.DeleteFunc(c.tokens, func(token ChainToken) bool {
			if token.Freq <= minFreq {
				c.total -= token.Freq
				return true
			}
			return false
		})
		removed += before - len(c.tokens)
		if len(c.tokens) == 0 {
			delete(t.chains, key)
		}
	}
	return removed
}
