package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var errNoHistory = errors.New("no history database configured, use --history")

func newHistoryCmd() *cobra.Command {
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect or clear the history of generated names",
	}

	historyCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List previously generated names",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			store, closeStore, err := s.openHistory()
			if err != nil {
				return err
			}
			defer closeStore()
			if store == nil {
				return errNoHistory
			}

			entries, err := store.Entries(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to read history: %w", err)
			}
			for _, entry := range entries {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d\t%s\n", entry.Name, entry.Times, entry.FirstSeen.Format("2006-01-02"))
			}
			return nil
		},
	})

	historyCmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Forget all previously generated names",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			store, closeStore, err := s.openHistory()
			if err != nil {
				return err
			}
			defer closeStore()
			if store == nil {
				return errNoHistory
			}

			removed, err := store.Clear(cmd.Context())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "removed %d names\n", removed)
			return nil
		},
	})

	return historyCmd
}
