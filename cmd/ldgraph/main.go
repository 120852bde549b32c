package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/reoring/ldgraph"
)

var version = "0.1.0-dev"

// errReported marks failures whose details were already printed.
var errReported = errors.New("failed")

type globalFlags struct {
	config  string
	verbose bool
	color   string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintln(os.Stderr, color.RedString("error:"), err)
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var g globalFlags
	rootCmd := &cobra.Command{
		Use:   "ldgraph",
		Short: "Validate and load JSON-LD documents into a node graph",
		Long: `ldgraph checks documents written in a constrained JSON-LD dialect
(fixed vocabulary, no blank nodes, single-level containers) and loads them
into an in-memory graph keyed by @id.

JSON files and YAML streams (.yaml, .yml) are accepted.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(*cobra.Command, []string) {
			setupColor(g.color)
		},
	}
	rootCmd.PersistentFlags().StringVar(&g.config, "config", "", "YAML file with vocabulary, limits and language")
	rootCmd.PersistentFlags().BoolVarP(&g.verbose, "verbose", "v", false, "Log debug records to stderr")
	rootCmd.PersistentFlags().StringVar(&g.color, "color", "auto", "Colorize output: auto|always|never")

	checkCmd := &cobra.Command{
		Use:   "check <file>...",
		Short: "Validate documents as one batch without loading them",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opt, err := g.options()
			if err != nil {
				return err
			}
			return runCheck(cmd, opt, args)
		},
	}

	var ingest ingestFlags
	ingestCmd := &cobra.Command{
		Use:   "ingest <file>...",
		Short: "Load documents into a graph and print it as JSON",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opt, err := g.options()
			if err != nil {
				return err
			}
			return runIngest(cmd, opt, ingest, args)
		},
	}
	ingestCmd.Flags().BoolVar(&ingest.link, "link", false, "Synthesize inverse properties and reify @reverse blocks")
	ingestCmd.Flags().StringVar(&ingest.node, "node", "", "Print only the node with this @id")
	ingestCmd.Flags().BoolVar(&ingest.compact, "compact", false, "Print JSON without indentation")

	rootCmd.AddCommand(checkCmd, ingestCmd)
	return rootCmd
}

func (g globalFlags) options() (ldgraph.Options, error) {
	level := slog.LevelWarn
	if g.verbose {
		level = slog.LevelDebug
	}
	opt := ldgraph.Options{
		Logger: slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})),
	}
	if g.config == "" {
		return opt, nil
	}
	cfg, err := loadConfig(g.config)
	if err != nil {
		return opt, err
	}
	return cfg.apply(opt)
}

func setupColor(mode string) {
	switch mode {
	case "always":
		color.NoColor = false
	case "never":
		color.NoColor = true
	default:
		fd := os.Stdout.Fd()
		color.NoColor = os.Getenv("NO_COLOR") != "" || !(isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd))
	}
}
