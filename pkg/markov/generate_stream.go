package markov

import (
	"context"
	"iter"
	"log/slog"
	"math/rand/v2"
	"slices"
)

// Generate samples names until count of them are accepted and returns them in
// the order they were accepted. By default names identical to a corpus entry
// and names repeated within the call are rejected. If the attempt budget runs
// out first it returns a *GenerationExhaustedError and no names.
func (g *Generator) Generate(ctx context.Context, count int, rng *rand.Rand, opts ...GenerateOption) ([]string, error) {
	if count < 1 {
		return nil, ErrInvalidCount
	}

	names := make([]string, 0, count)
	for name, err := range g.Stream(ctx, rng, append(slices.Clone(opts), withRequested(count))...) {
		if err != nil {
			return nil, err
		}
		names = append(names, name)
		if len(names) == count {
			break
		}
	}

	g.logger.InfoContext(ctx, "Generation completed",
		slog.Int("order", g.table.order),
		slog.Int("names_generated", len(names)),
	)
	return names, nil
}

// Stream returns a sequence of accepted names, produced one sample at a time
// as the consumer asks for them. It ends when the consumer stops, when the
// attempt budget is spent (yielding a *GenerationExhaustedError) or when ctx
// is done (yielding ctx.Err()). Stream does no work in the background.
func (g *Generator) Stream(ctx context.Context, rng *rand.Rand, opts ...GenerateOption) iter.Seq2[string, error] {
	options := newGenerateOptions(opts)

	maxAttempts := options.maxAttempts
	if maxAttempts <= 0 {
		if options.requested > 0 {
			maxAttempts = options.requested * attemptsPerName
		} else {
			maxAttempts = defaultStreamAttempts
		}
	}

	return func(yield func(string, error) bool) {
		excluded := make(map[string]struct{}, len(options.excluded))
		for _, name := range options.excluded {
			excluded[normalizeName(name)] = struct{}{}
		}
		seen := make(map[string]struct{})
		var tokens []string
		accepted := 0

		for attempts := 0; ; attempts++ {
			if err := ctx.Err(); err != nil {
				yield("", err)
				return
			}
			if attempts >= maxAttempts {
				g.logger.WarnContext(ctx, "Generation attempts exhausted",
					slog.Int("attempts", attempts),
					slog.Int("accepted", accepted),
					slog.Int("requested", options.requested),
				)
				yield("", &GenerationExhaustedError{
					Requested: options.requested,
					Accepted:  accepted,
					Attempts:  attempts,
				})
				return
			}

			ids := g.table.sample(rng, options)
			tokens = tokens[:0]
			for _, id := range ids {
				tokens = append(tokens, g.table.vocab[id])
			}
			name := render(g.corpus.tokenizer, tokens, options.capitalize)
			key := normalizeName(name)

			var reason string
			switch {
			case len(ids) < options.minLength:
				reason = "too_short"
			case options.rejectCorpus && g.corpus.Contains(key):
				reason = "in_corpus"
			case options.rejectDuplicates && contains(seen, key):
				reason = "duplicate"
			case contains(excluded, key):
				reason = "excluded"
			}
			if reason != "" {
				g.logger.DebugContext(ctx, "Generated name rejected",
					slog.String("name", name),
					slog.String("reason", reason),
				)
				continue
			}

			seen[key] = struct{}{}
			accepted++
			if !yield(name, nil) {
				return
			}
		}
	}
}

func contains(set map[string]struct{}, key string) bool {
	_, ok := set[key]
	return ok
}
