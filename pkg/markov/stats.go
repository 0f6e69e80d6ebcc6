package markov

// TableStats holds aggregated statistics for a transition table.
type TableStats struct {
	Order          int // The number of preceding tokens used as context
	Sequences      int // The number of training sequences the table was built from
	VocabSize      int // The number of unique tokens, start and end tokens included
	Contexts       int // The number of unique prefixes
	Transitions    int // The number of unique prefix->next_token links
	TotalFrequency int // The sum of frequencies of all links; the total number of trained transitions
	StartingTokens int // The number of unique tokens that can start a name
}

// Stats returns a snapshot of statistics for the table.
func (t *Table) Stats() TableStats {
	stats := TableStats{
		Order:     t.order,
		Sequences: t.sequences,
		VocabSize: len(t.vocab),
		Contexts:  len(t.chains),
	}
	for _, c := range t.chains {
		stats.Transitions += len(c.tokens)
		stats.TotalFrequency += c.total
	}
	if starters, ok := t.chains[PrefixKey(make([]int, t.order))]; ok {
		stats.StartingTokens = len(starters.tokens)
	}
	return stats
}
