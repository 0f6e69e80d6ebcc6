package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

// newRootCmd builds the command tree. The root command generates names.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "namegen",
		Short: "Generate new names from a list of sample names",
		Long: `namegen - Markov chain name generator.

namegen learns which letters follow which in a list of sample names (one per
line) and samples new names with the same feel. Names copied from the sample
list and repeated names are rejected unless asked otherwise.

Examples:
  namegen                          # 25 names from the bundled list
  namegen -n 10 -p elves.txt       # 10 names from your own list
  namegen -k 3 --seed 42           # order-3 chain, reproducible output
  namegen --history names.db       # never repeat names across runs
  namegen stats -p elves.txt       # show model statistics`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runGenerate,
	}

	persistent := rootCmd.PersistentFlags()
	persistent.String("config", "", "Path of a JSON config file (created with defaults if missing)")
	persistent.String("log-level", "warn", "Log level: debug, info, warn or error")
	persistent.StringP("path", "p", "", "Path of the sample names (default: bundled list)")
	persistent.IntP("order", "k", 2, "Number of preceding letters used as context")
	persistent.Bool("runs", false, "Treat runs of a repeated letter as a single symbol")
	persistent.Int("prune", 0, "Drop transitions seen this many times or fewer")
	persistent.String("history", "", "SQLite file of previously generated names to exclude and extend")

	flags := rootCmd.Flags()
	flags.IntP("count", "n", 25, "Number of names to generate")
	flags.Uint64("seed", 0, "Random seed (0 picks one from the clock)")
	flags.Int("max-length", 20, "Maximum number of symbols in a name")
	flags.Int("min-length", 2, "Minimum number of symbols in a name")
	flags.Float64("temperature", 1.0, "Sampling temperature (<=0 always picks the most frequent letter)")
	flags.Int("top-k", 0, "Only sample from the k most frequent next letters (0 disables)")
	flags.Bool("length-target", false, "Draw each name's length from the sample lengths")
	flags.Int("max-attempts", 0, "Maximum samples drawn before giving up (default 100 per name)")
	flags.Bool("allow-corpus", false, "Allow names that appear in the sample list")
	flags.Bool("allow-duplicates", false, "Allow the same name more than once")
	flags.Bool("no-capitalize", false, "Keep generated names lowercase")
	flags.StringP("out", "o", "", "Write names to this file instead of stdout")

	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newHistoryCmd())
	rootCmd.AddCommand(newVersionCmd())
	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "namegen %s (commit %s, built %s)\n", Version, Commit, BuildDate)
		},
	}
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
