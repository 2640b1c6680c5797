package main

import (
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/bastiangx/ngramserve/internal/utils"
	"github.com/bastiangx/ngramserve/pkg/config"
	"github.com/bastiangx/ngramserve/pkg/dictionary"
	"github.com/bastiangx/ngramserve/pkg/engine"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var (
	okStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("78"))
	warnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	keyStyle  = lipgloss.NewStyle().Bold(true)
)

func inspectCmd() *cobra.Command {
	var showRuntime bool
	cmd := &cobra.Command{
		Use:   "inspect [dir | word-file ngram-file]",
		Short: "Validate corpus files and print a summary",
		Args:  cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := loadConfig()
			if err != nil {
				return err
			}
			switch len(args) {
			case 1:
				words, ngrams, err := utils.FindDataFiles(args[0])
				if err != nil {
					return err
				}
				cfg.Data.WordFile, cfg.Data.NgramFile = words, ngrams
			case 2:
				cfg.Data.WordFile, cfg.Data.NgramFile = args[0], args[1]
			}

			opts, err := engineOptions(cfg)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			for _, f := range []struct {
				path   string
				format dictionary.FileFormat
			}{{opts.WordFile, dictionary.FormatDictionary}, {opts.NgramFile, dictionary.FormatTriples}} {
				if err := dictionary.ValidateFileFormat(f.path, f.format); err != nil {
					return err
				}
				fmt.Fprintf(out, "%s %s (%s)\n", okStyle.Render("ok"), f.path, f.format)
			}

			opts.BuildIndex = true
			start := time.Now()
			e, err := engine.Open(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer e.Close()
			printSummary(cmd, e, time.Since(start))

			if showRuntime {
				pr, err := utils.NewPathResolver(config.AppName)
				if err != nil {
					return err
				}
				printMap(cmd, pr.GetRuntimeInfo())
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&showRuntime, "runtime", false, "also print path resolution details")
	return cmd
}

func printSummary(cmd *cobra.Command, e *engine.Engine, took time.Duration) {
	out := cmd.OutOrStdout()
	table, store, spans := e.Table(), e.Store(), e.Spans()

	fmt.Fprintf(out, "%s %s words (%s entries scanned, ids up to capacity %s)\n",
		keyStyle.Render("dictionary:"),
		humanize.Comma(int64(table.Len())),
		humanize.Comma(int64(table.Scanned())),
		humanize.Comma(int64(table.Capacity())))
	fmt.Fprintf(out, "%s %s, %s records, %s spans\n",
		keyStyle.Render("triples:"),
		store, humanize.Comma(int64(store.Len())), humanize.Comma(int64(spans.Len())))
	if store.IsSorted() {
		fmt.Fprintf(out, "%s records are sorted by first word\n", okStyle.Render("ok"))
	} else {
		fmt.Fprintf(out, "%s records are not sorted by first word; indexed queries will be wrong, use --no-index\n",
			warnStyle.Render("warn"))
	}
	if table.Scanned() != table.Len() {
		fmt.Fprintf(out, "%s %d duplicate ids, the last entry of each was kept\n",
			warnStyle.Render("warn"), table.Scanned()-table.Len())
	}
	fmt.Fprintf(out, "%s %v\n", keyStyle.Render("loaded in:"), took)
}

func printMap(cmd *cobra.Command, m map[string]string) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(cmd.OutOrStdout(), "%-16s %s\n", k, m[k])
	}
	if len(keys) == 0 {
		fmt.Fprintln(os.Stderr, "no runtime info")
	}
}
