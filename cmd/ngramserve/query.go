package main

import (
	"github.com/bastiangx/ngramserve/internal/cli"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

func queryCmd() *cobra.Command {
	var (
		limit   int
		showIDs bool
	)
	cmd := &cobra.Command{
		Use:   "query",
		Short: "Explore the corpus in an interactive shell",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, cfg, _, err := openEngine(cmd.Context())
			if err != nil {
				return err
			}
			defer e.Close()

			if !cmd.Flags().Changed("limit") {
				limit = cfg.CLI.DefaultLimit
			}
			if !cmd.Flags().Changed("ids") {
				showIDs = cfg.CLI.ShowIDs
			}
			log.Debug("Input info:", "limit", limit, "showIDs", showIDs)

			return cli.NewInputHandler(e, limit, showIDs).Start()
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "l", 0, "maximum results to print (default from config)")
	cmd.Flags().BoolVar(&showIDs, "ids", false, "print word ids next to words")
	return cmd
}
