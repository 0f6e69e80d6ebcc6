package markov

import (
	"math"
	"math/rand/v2"
	"slices"
	"sort"
)

// ChainToken represents a potential next token in a Markov chain, including its
// unique ID and its frequency of occurrence after a given prefix.
type ChainToken struct {
	Id   int
	Freq int
}

const (
	defaultMaxLength = 20
	// attemptsPerName bounds sampling when a caller does not set WithMaxAttempts.
	attemptsPerName = 100
	// defaultStreamAttempts is the budget for a Stream with no requested count.
	defaultStreamAttempts = 10_000
)

// generateOptions Is used by the sampling and generation functions to configure default options.
type generateOptions struct {
	maxLength    int
	temperature  float64
	topK         int
	lengthTarget bool

	minLength        int
	capitalize       bool
	rejectCorpus     bool
	rejectDuplicates bool
	excluded         []string
	maxAttempts      int
	requested        int
}

// GenerateOption is a function that configures generation parameters. It's used
// as a variadic argument in Sample, Generate and Stream.
type GenerateOption func(*generateOptions)

func newGenerateOptions(opts []GenerateOption) *generateOptions {
	options := &generateOptions{
		maxLength:        defaultMaxLength,
		temperature:      1.0,
		minLength:        1,
		capitalize:       true,
		rejectCorpus:     true,
		rejectDuplicates: true,
	}
	for _, opt := range opts {
		opt(options)
	}
	return options
}

// WithMaxLength sets the maximum number of symbols in a generated name. A name
// that reaches it is returned truncated.
func WithMaxLength(n int) GenerateOption {
	return func(o *generateOptions) { o.maxLength = n }
}

// WithTemperature adjusts the randomness of the token selection.
// A value of 1.0 is standard weighted random selection.
// Values > 1.0 increase randomness (making less frequent tokens more likely).
// Values < 1.0 decrease randomness (making more frequent tokens even more likely).
// A value of 0 or less results in deterministic selection (always choosing the most frequent token).
func WithTemperature(t float64) GenerateOption {
	return func(o *generateOptions) { o.temperature = t }
}

// WithTopK restricts the token selection pool to the top `k` most frequent tokens
// at each step. A value of 0 disables Top-K sampling.
func WithTopK(k int) GenerateOption {
	return func(o *generateOptions) { o.topK = k }
}

// WithLengthTarget draws a target length from the lengths of the training
// names before each sample. The end token is ignored until the target is
// reached, and sampling stops once it is.
func WithLengthTarget(enabled bool) GenerateOption {
	return func(o *generateOptions) { o.lengthTarget = enabled }
}

// WithMinLength rejects generated names with fewer than n symbols.
func WithMinLength(n int) GenerateOption {
	return func(o *generateOptions) { o.minLength = n }
}

// WithCapitalize controls whether the first letter of every name is upper-cased.
func WithCapitalize(enabled bool) GenerateOption {
	return func(o *generateOptions) { o.capitalize = enabled }
}

// WithCorpusRejection controls whether names identical to a corpus entry
// (ignoring case) are rejected and resampled.
func WithCorpusRejection(enabled bool) GenerateOption {
	return func(o *generateOptions) { o.rejectCorpus = enabled }
}

// WithDuplicateRejection controls whether names already produced by the same
// call are rejected and resampled.
func WithDuplicateRejection(enabled bool) GenerateOption {
	return func(o *generateOptions) { o.rejectDuplicates = enabled }
}

// WithExcluded rejects the given names (ignoring case), for example names
// emitted by earlier runs.
func WithExcluded(names ...string) GenerateOption {
	return func(o *generateOptions) { o.excluded = append(o.excluded, names...) }
}

// WithMaxAttempts caps the total number of samples drawn by one call. The
// default is 100 attempts per requested name.
func WithMaxAttempts(n int) GenerateOption {
	return func(o *generateOptions) { o.maxAttempts = n }
}

// withRequested records how many names the caller wants, for the default
// attempt budget and error reporting.
func withRequested(n int) GenerateOption {
	return func(o *generateOptions) { o.requested = n }
}

// Sample draws a single name from the table and returns its symbols, with
// start and end tokens excluded. Sampling starts from a prefix of start
// tokens and stops when the end token is drawn, when the current prefix was
// never observed, or when the maximum length is reached.
func (t *Table) Sample(rng *rand.Rand, opts ...GenerateOption) []string {
	ids := t.sample(rng, newGenerateOptions(opts))
	tokens := make([]string, len(ids))
	for i, id := range ids {
		tokens[i] = t.vocab[id]
	}
	return tokens
}

// sample contains the main loop for generating a chain of token IDs.
func (t *Table) sample(rng *rand.Rand, options *generateOptions) []int {
	limit := options.maxLength
	if options.lengthTarget && t.lengthTotal > 0 {
		if target := weightedChoice(rng, t.lengths, t.lengthTotal); target < limit {
			limit = target
		}
	}

	prefix := make([]int, t.order)
	var generated []int
	var keyBuf []byte

	for len(generated) < limit {
		keyBuf = appendPrefixKey(keyBuf[:0], prefix)
		c, ok := t.chains[string(keyBuf)]
		if !ok { // Dead end in chain
			break
		}

		choices, totalFreq := c.tokens, c.total
		if options.lengthTarget {
			choices, totalFreq = withoutEOC(choices, totalFreq)
			if len(choices) == 0 {
				break
			}
		}

		nextToken := chooseNextToken(rng, choices, totalFreq, options)
		if nextToken == EOCTokenID {
			break
		}
		generated = append(generated, nextToken)
		prefix = append(prefix[1:], nextToken)
	}
	return generated
}

// withoutEOC drops the end token from choices, returning a new slice if needed.
func withoutEOC(choices []ChainToken, totalFreq int) ([]ChainToken, int) {
	i := slices.IndexFunc(choices, func(c ChainToken) bool { return c.Id == EOCTokenID })
	if i < 0 {
		return choices, totalFreq
	}
	filtered := slices.Delete(slices.Clone(choices), i, i+1)
	return filtered, totalFreq - choices[i].Freq
}

// chooseNextToken abstracts the token selection logic from the generation loop.
// It never modifies choices.
func chooseNextToken(rng *rand.Rand, choices []ChainToken, totalFreq int, options *generateOptions) int {
	var nextToken int

	// topK filtering
	if options.topK > 0 && options.topK < len(choices) {
		choices = slices.Clone(choices)
		sort.SliceStable(choices, func(i, j int) bool {
			return choices[i].Freq > choices[j].Freq
		})
		choices = choices[:options.topK]
		totalFreq = 0
		for _, choice := range choices {
			totalFreq += choice.Freq
		}
	}

	// temperature selection
	if options.temperature <= 0 { // Deterministic
		maxFreq := -1
		for _, choice := range choices {
			if choice.Freq > maxFreq {
				maxFreq = choice.Freq
				nextToken = choice.Id
			}
		}
	} else if options.temperature == 1.0 { // Standard weighted random
		nextToken = weightedChoice(rng, choices, totalFreq)
	} else { // Temperature-based sampling
		logProbabilities := make([]float64, len(choices))
		epsilon := math.Inf(-1)
		for i, choice := range choices {
			lp := math.Log(float64(choice.Freq)) / options.temperature
			logProbabilities[i] = lp
			if lp > epsilon {
				epsilon = lp
			}
		}
		var totalWeight float64
		weights := make([]float64, len(choices))
		for i, lp := range logProbabilities {
			w := math.Exp(lp - epsilon)
			weights[i] = w
			totalWeight += w
		}
		randChoice := rng.Float64() * totalWeight
		nextToken = choices[len(choices)-1].Id
		for i, choice := range choices {
			randChoice -= weights[i]
			if randChoice < 0 {
				nextToken = choice.Id
				break
			}
		}
	}
	return nextToken
}

// weightedChoice picks an Id with probability proportional to its Freq.
func weightedChoice(rng *rand.Rand, choices []ChainToken, totalFreq int) int {
	randChoice := rng.IntN(totalFreq)
	for _, choice := range choices {
		randChoice -= choice.Freq
		if randChoice < 0 {
			return choice.Id
		}
	}
	return choices[len(choices)-1].Id
}
