package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show statistics of the model built from the sample names",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			g, err := s.buildGenerator()
			if err != nil {
				return err
			}

			stats := g.Table().Stats()
			w := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(w, "corpus:          %s\n", corpusName(s.config.Generate.CorpusPath))
			_, _ = fmt.Fprintf(w, "order:           %d\n", stats.Order)
			_, _ = fmt.Fprintf(w, "names:           %d\n", stats.Sequences)
			_, _ = fmt.Fprintf(w, "vocabulary:      %d\n", stats.VocabSize)
			_, _ = fmt.Fprintf(w, "contexts:        %d\n", stats.Contexts)
			_, _ = fmt.Fprintf(w, "transitions:     %d\n", stats.Transitions)
			_, _ = fmt.Fprintf(w, "total frequency: %d\n", stats.TotalFrequency)
			_, _ = fmt.Fprintf(w, "starting tokens: %d\n", stats.StartingTokens)
			return nil
		},
	}
}
