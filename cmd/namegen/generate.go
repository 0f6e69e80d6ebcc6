package main

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"os"
	"strings"
	"time"

	"github.com/CTAG07/namegen/pkg/history"
	"github.com/CTAG07/namegen/pkg/markov"
	"github.com/natefinch/atomic"
	"github.com/spf13/cobra"
)

//go:embed name_list.txt
var bundledNames string

// session is the state shared by every command run: the effective config and
// the logger built from it.
type session struct {
	config *Config
	logger *slog.Logger
}

func newSession(cmd *cobra.Command) (*session, error) {
	configPath, _ := cmd.Flags().GetString("config")
	config, err := LoadConfig(configPath, newLogger(cmd.ErrOrStderr(), "warn"))
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if err = applyFlags(cmd, config); err != nil {
		return nil, fmt.Errorf("invalid flags: %w", err)
	}
	if err = config.Validate(); err != nil {
		return nil, err
	}
	return &session{
		config: config,
		logger: newLogger(cmd.ErrOrStderr(), config.LogLevel),
	}, nil
}

// buildGenerator loads the corpus and builds the model, pruning it if asked.
func (s *session) buildGenerator() (*markov.Generator, error) {
	gen := s.config.Generate
	tokenizer := markov.NewDefaultTokenizer(markov.WithRunGrouping(gen.GroupRuns))

	corpus, err := loadCorpus(gen.CorpusPath, tokenizer)
	if err != nil {
		return nil, err
	}

	g, err := markov.NewGenerator(corpus, gen.Order)
	if err != nil {
		return nil, fmt.Errorf("error creating markov generator: %w", err)
	}
	g.SetLogger(s.logger)

	s.logger.Info("Model built",
		slog.String("corpus", corpusName(gen.CorpusPath)),
		slog.Int("names", corpus.Len()),
		slog.Int("order", gen.Order),
	)

	if gen.PruneBelow > 0 {
		removed := g.Table().Prune(gen.PruneBelow)
		s.logger.Info("Model pruned",
			slog.Int("min_frequency", gen.PruneBelow),
			slog.Int("chains_removed", removed),
		)
	}
	return g, nil
}

// openHistory opens the history store, or returns nil if none is configured.
func (s *session) openHistory() (*history.Store, func(), error) {
	if s.config.HistoryPath == "" {
		return nil, func() {}, nil
	}
	db, err := initDB(s.config.HistoryPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open history database: %w", err)
	}
	if err = history.SetupSchema(db); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("failed to setup history schema: %w", err)
	}
	store, err := history.NewStore(db)
	if err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("failed to prepare history store: %w", err)
	}
	store.SetLogger(s.logger)
	return store, func() {
		store.Close()
		if err := db.Close(); err != nil {
			s.logger.Error("Failed to close history database", "error", err)
		}
	}, nil
}

func loadCorpus(path string, tokenizer markov.Tokenizer) (*markov.Corpus, error) {
	if path == "" {
		return markov.LoadCorpus(strings.NewReader(bundledNames), tokenizer)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sample names: %w", err)
	}
	defer func(file *os.File) {
		_ = file.Close()
	}(file)

	corpus, err := markov.LoadCorpus(file, tokenizer)
	if errors.Is(err, markov.ErrEmptyCorpus) {
		return nil, fmt.Errorf("%s has no usable names: %w", path, err)
	}
	return corpus, err
}

func corpusName(path string) string {
	if path == "" {
		return "bundled"
	}
	return path
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	cfg := s.config.Generate

	g, err := s.buildGenerator()
	if err != nil {
		return err
	}

	store, closeStore, err := s.openHistory()
	if err != nil {
		return err
	}
	defer closeStore()

	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	s.logger.Debug("Random source seeded", slog.Uint64("seed", seed))
	rng := rand.New(rand.NewPCG(seed, seed))

	opts := []markov.GenerateOption{
		markov.WithMaxLength(cfg.MaxLength),
		markov.WithMinLength(cfg.MinLength),
		markov.WithTemperature(cfg.Temperature),
		markov.WithTopK(cfg.TopK),
		markov.WithLengthTarget(cfg.LengthTarget),
		markov.WithCapitalize(cfg.Capitalize),
		markov.WithCorpusRejection(cfg.RejectCorpus),
		markov.WithDuplicateRejection(cfg.RejectDuplicates),
		markov.WithMaxAttempts(cfg.MaxAttempts),
	}
	if store != nil {
		previous, err := store.Names(ctx)
		if err != nil {
			return fmt.Errorf("failed to read history: %w", err)
		}
		opts = append(opts, markov.WithExcluded(previous...))
	}

	names, err := g.Generate(ctx, cfg.Count, rng, opts...)
	if err != nil {
		if errors.Is(err, markov.ErrGenerationExhausted) {
			return fmt.Errorf("%w (try a larger sample list, a lower order, --allow-corpus or --allow-duplicates)", err)
		}
		return err
	}

	if err = writeNames(cmd.OutOrStdout(), s.config.OutputPath, names); err != nil {
		return fmt.Errorf("failed to write names: %w", err)
	}

	if store != nil {
		if err = store.Record(ctx, names); err != nil {
			return fmt.Errorf("failed to record history: %w", err)
		}
	}
	return nil
}

// writeNames writes one name per line to w, or atomically to path if set.
func writeNames(w io.Writer, path string, names []string) error {
	var buf bytes.Buffer
	for _, name := range names {
		buf.WriteString(name)
		buf.WriteByte('\n')
	}
	if path == "" {
		_, err := buf.WriteTo(w)
		return err
	}
	return atomic.WriteFile(path, &buf)
}
