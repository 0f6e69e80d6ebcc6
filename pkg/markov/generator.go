package markov

import (
	"io"
	"log/slog"
)

const (
	// SOCTokenID is the reserved ID for the Start-Of-Chain token.
	SOCTokenID = 0
	// EOCTokenID is the reserved ID for the End-Of-Chain token.
	EOCTokenID = 1
	// SOCTokenText is the reserved text for the Start-Of-Chain token.
	SOCTokenText = "<SOC>"
	// EOCTokenText is the reserved text for the End-Of-Chain token.
	EOCTokenText = "<EOC>"
)

// Generator is the main entry point for generating names. It holds a corpus,
// the transition table built from it, and a logger.
type Generator struct {
	corpus *Corpus
	table  *Table
	logger *slog.Logger
}

// NewGenerator builds an order-k table from the corpus and returns a
// Generator for it. It returns an *InvalidOrderError if order is below 1.
func NewGenerator(corpus *Corpus, order int) (*Generator, error) {
	if corpus == nil {
		return nil, ErrEmptyCorpus
	}
	table, err := Build(corpus.Sequences(), order)
	if err != nil {
		return nil, err
	}
	return &Generator{
		corpus: corpus,
		table:  table,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}, nil
}

// Table returns the transition table used by the Generator.
func (g *Generator) Table() *Table {
	return g.table
}

// Corpus returns the corpus the Generator was built from.
func (g *Generator) Corpus() *Corpus {
	return g.corpus
}

// SetLogger sets the logger for the Generator. By default, all logs are discarded.
func (g *Generator) SetLogger(logger *slog.Logger) {
	if logger != nil {
		g.logger = logger
	}
}
