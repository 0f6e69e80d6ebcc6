package markov

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"testing"
)

func TestBuild(t *testing.T) {
	c := newTestCorpus(t, "Ana", "Ann", "Anna")
	tb, err := Build(c.Sequences(), 2)
	if err != nil {
		t.Fatalf("Build() failed: %v", err)
	}

	aID, ok := tb.VocabStr("a")
	if !ok {
		t.Fatal("expected 'a' in vocabulary")
	}
	nID, _ := tb.VocabStr("n")

	testCases := []struct {
		name      string
		prefix    []int
		totalFreq int
		expected  []ChainToken
	}{
		{"start", []int{SOCTokenID, SOCTokenID}, 3, []ChainToken{{Id: aID, Freq: 3}}},
		{"after a", []int{SOCTokenID, aID}, 3, []ChainToken{{Id: nID, Freq: 3}}},
		{"a n", []int{aID, nID}, 3, []ChainToken{{Id: aID, Freq: 1}, {Id: nID, Freq: 2}}},
		{"n n", []int{nID, nID}, 2, []ChainToken{{Id: EOCTokenID, Freq: 1}, {Id: aID, Freq: 1}}},
		{"n a", []int{nID, aID}, 2, []ChainToken{{Id: EOCTokenID, Freq: 2}}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tokens, totalFreq := tb.NextTokens(tc.prefix)
			if totalFreq != tc.totalFreq {
				t.Errorf("expected total frequency of %d, got %d", tc.totalFreq, totalFreq)
			}
			if !reflect.DeepEqual(tokens, tc.expected) {
				t.Errorf("expected tokens %+v, got %+v", tc.expected, tokens)
			}
		})
	}
}

func TestBuildInvalidOrder(t *testing.T) {
	c := newTestCorpus(t, "Ana")
	for _, order := range []int{0, -1} {
		_, err := Build(c.Sequences(), order)
		if !errors.Is(err, ErrInvalidOrder) {
			t.Errorf("Build(order=%d): expected ErrInvalidOrder, got %v", order, err)
		}
		var orderErr *InvalidOrderError
		if !errors.As(err, &orderErr) || orderErr.Order != order {
			t.Errorf("Build(order=%d): expected *InvalidOrderError carrying the order, got %v", order, err)
		}
	}
}

func TestBuildEmpty(t *testing.T) {
	if _, err := Build(nil, 2); !errors.Is(err, ErrEmptyCorpus) {
		t.Errorf("expected ErrEmptyCorpus for no sequences, got %v", err)
	}
	if _, err := Build([]Sequence{{Text: ""}}, 2); !errors.Is(err, ErrEmptyCorpus) {
		t.Errorf("expected ErrEmptyCorpus for sequences without tokens, got %v", err)
	}
}

func TestBuildShortSequence(t *testing.T) {
	c := newTestCorpus(t, "a")
	tb, err := Build(c.Sequences(), 3)
	if err != nil {
		t.Fatalf("Build() failed: %v", err)
	}
	aID, _ := tb.VocabStr("a")

	tokens, _ := tb.NextTokens([]int{SOCTokenID, SOCTokenID, SOCTokenID})
	if !reflect.DeepEqual(tokens, []ChainToken{{Id: aID, Freq: 1}}) {
		t.Errorf("expected start prefix to lead to 'a', got %+v", tokens)
	}
	tokens, _ = tb.NextTokens([]int{SOCTokenID, SOCTokenID, aID})
	if !reflect.DeepEqual(tokens, []ChainToken{{Id: EOCTokenID, Freq: 1}}) {
		t.Errorf("expected padded prefix to lead to EOC, got %+v", tokens)
	}
	if got := tb.Stats().Contexts; got != 2 {
		t.Errorf("expected 2 contexts, got %d", got)
	}
}

func TestBuildCompleteness(t *testing.T) {
	c := newTestCorpus(t, sampleNames...)
	for order := 1; order <= 4; order++ {
		t.Run(fmt.Sprintf("Order%d", order), func(t *testing.T) {
			tb, err := Build(c.Sequences(), order)
			if err != nil {
				t.Fatalf("Build() failed: %v", err)
			}
			for _, seq := range c.Sequences() {
				padded := make([]int, order, order+len(seq.Tokens)+1)
				for _, text := range seq.Tokens {
					id, ok := tb.VocabStr(text)
					if !ok {
						t.Fatalf("token %q of %q missing from vocabulary", text, seq.Text)
					}
					padded = append(padded, id)
				}
				padded = append(padded, EOCTokenID)

				for i := 0; i+order < len(padded); i++ {
					tokens, _ := tb.NextTokens(padded[i : i+order])
					j := slices.IndexFunc(tokens, func(ct ChainToken) bool { return ct.Id == padded[i+order] })
					if j < 0 || tokens[j].Freq < 1 {
						t.Errorf("%q: window %v does not lead to %d", seq.Text, padded[i:i+order], padded[i+order])
					}
				}
			}
		})
	}
}

func TestBuildOrderIndependent(t *testing.T) {
	c := newTestCorpus(t, sampleNames...)
	forward, err := Build(c.Sequences(), 2)
	if err != nil {
		t.Fatalf("Build() failed: %v", err)
	}
	reversed := slices.Clone(c.Sequences())
	slices.Reverse(reversed)
	backward, err := Build(reversed, 2)
	if err != nil {
		t.Fatalf("Build() failed: %v", err)
	}
	if !reflect.DeepEqual(textChains(forward), textChains(backward)) {
		t.Error("expected the same frequencies regardless of sequence order")
	}
}

func BenchmarkBuild(b *testing.B) {
	corpus, err := NewCorpus(createBenchmarkCorpus(), NewDefaultTokenizer())
	if err != nil {
		b.Fatalf("NewCorpus() setup for benchmark failed: %v", err)
	}

	for _, order := range []int{1, 2, 3, 4, 5} {
		b.Run(fmt.Sprintf("Order%d", order), func(b *testing.B) {
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, err := Build(corpus.Sequences(), order); err != nil {
					b.Fatalf("Build() failed: %v", err)
				}
			}
		})
	}
}
