package main

import (
	"fmt"
	"os"

	"github.com/bastiangx/ngramserve/pkg/config"
	"github.com/bastiangx/ngramserve/pkg/engine"
	"github.com/bastiangx/ngramserve/pkg/server"
	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Answer msgpack requests on stdin/stdout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, cfg, path, err := openEngine(cmd.Context())
			if err != nil {
				return err
			}
			defer e.Close()

			showStartupInfo(e, path)
			srv := server.NewServer(e, cfg, path)
			if err := srv.Start(); err != nil {
				return fmt.Errorf("server: %w", err)
			}
			return nil
		},
	}
}

// showStartupInfo displays some basic info about the init process on
// stderr.
func showStartupInfo(e *engine.Engine, path string) {
	currentLevel := log.GetLevel()
	log.SetLevel(log.InfoLevel)
	defer log.SetLevel(currentLevel)

	stats := e.Stats()
	fmt.Fprintln(os.Stderr, "============")
	fmt.Fprintln(os.Stderr, " ngramserve ")
	fmt.Fprintln(os.Stderr, "============")
	log.Infof("Version: %s", Version)
	log.Infof("Process ID: [ %d ]", os.Getpid())
	log.Infof("config: ( %s )", config.GetActiveConfigPath(path))
	log.Infof("words: %s, triples: %s (%s)",
		humanize.Comma(int64(stats["words"])),
		humanize.Comma(int64(stats["triples"])),
		humanize.IBytes(uint64(stats["ngramFileBytes"])))
	log.Info("status: ready")
	fmt.Fprintln(os.Stderr, "============")
}
