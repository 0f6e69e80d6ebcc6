package markov

// Build aggregates the training sequences into an order-k transition table.
// Every sequence is padded with order start tokens and one end token, and
// each window of order tokens counts the token that follows it. Sequences
// shorter than order still contribute every padded window. The resulting
// frequencies do not depend on the order of sequences.
func Build(sequences []Sequence, order int) (*Table, error) {
	if order < 1 {
		return nil, &InvalidOrderError{Order: order}
	}

	t := newTable(order)
	ids := make([]int, 0, 16)
	for _, seq := range sequences {
		if len(seq.Tokens) == 0 {
			continue
		}
		ids = ids[:0]
		for _, text := range seq.Tokens {
			ids = append(ids, t.intern(text))
		}
		t.processSequence(ids)
	}

	if t.sequences == 0 {
		return nil, ErrEmptyCorpus
	}
	return t, nil
}

func (t *Table) processSequence(sequence []int) {
	fullSlice := make([]int, len(sequence)+t.order+1)
	copy(fullSlice[t.order:len(fullSlice)-1], sequence)
	fullSlice[len(fullSlice)-1] = EOCTokenID

	var keyBuf []byte
	for i := 0; i < len(sequence)+1; i++ { // Iterate len+1 to include the final EOC token.
		keyBuf = appendPrefixKey(keyBuf[:0], fullSlice[i:i+t.order])
		t.observe(string(keyBuf), fullSlice[i+t.order])
	}

	t.observeLength(len(sequence))
	t.sequences++
}
