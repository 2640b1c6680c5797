// Copyright 2025 The ngramserve Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main implements the ngramserve query server and interactive shell.

ngramserve answers frequency questions about word triples. It maps two
files produced offline, a word dictionary (word.bin) and a table of triple
frequencies sorted by first word (ngram3.bin), and queries them in place
without loading them into memory.

# Usage

Serve msgpack requests on stdin/stdout:

	ngramserve serve --words /corpus/word.bin --ngrams /corpus/ngram3.bin

Explore a corpus interactively:

	ngramserve query -d
	> freq the cat sat
	> follows the cat
	> suggest teh

Check a pair of files before deploying them:

	ngramserve inspect /corpus

# Configuration

Settings are read from ~/.config/ngramserve/config.toml, created with
defaults on first run:

	[data]
	word_file = "word.bin"
	ngram_file = "ngram3.bin"
	build_index = true
	word_index = true
	strict_capacity = false
	advise = "random"
	cache_size = 4096

	[server]
	max_results = 1000
	max_words = 64

	[cli]
	default_limit = 10
	show_ids = false

Relative data paths are looked up in the working directory, next to the
binary, in its data/ directory and in the config directory's data/.
Command line flags override the file.
*/
package main

import (
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/bastiangx/ngramserve/internal/logger"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

const (
	Version = "0.3.0"
	AppName = "ngramserve"
	gh      = "https://github.com/bastiangx/ngramserve"
)

// flags shared by every command
var (
	configPath string
	debugMode  bool
	wordFile   string
	ngramFile  string
	noIndex    bool
)

var (
	cleanupMu sync.Mutex
	cleanup   []func()
)

// onExit registers fn to run when the process is interrupted.
func onExit(fn func()) {
	cleanupMu.Lock()
	defer cleanupMu.Unlock()
	cleanup = append(cleanup, fn)
}

// sigHandler is a simple handler for OS signals to exit normally.
func sigHandler() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		cleanupMu.Lock()
		for _, fn := range cleanup {
			fn()
		}
		cleanupMu.Unlock()
		os.Exit(0)
	}()
}

func main() {
	sigHandler()

	rootCmd := &cobra.Command{
		Use:   AppName,
		Short: "Frequency queries over a mapped word-triple corpus",
		Long: `ngramserve maps a word dictionary and a triple frequency table and
answers freq, like and follows queries over them.

Commands:
  serve     msgpack IPC over stdin/stdout
  query     interactive shell
  inspect   validate and summarize corpus files
  version   show version information`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			logger.Setup(debugMode)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "path to config.toml")
	flags.BoolVarP(&debugMode, "debug", "d", false, "toggle debug logging")
	flags.StringVar(&wordFile, "words", "", "word dictionary file (overrides config)")
	flags.StringVar(&ngramFile, "ngrams", "", "triple frequency file (overrides config)")
	flags.BoolVar(&noIndex, "no-index", false, "skip the span index and scan linearly")

	rootCmd.AddCommand(serveCmd(), queryCmd(), inspectCmd(), versionCmd())

	if err := rootCmd.Execute(); err != nil {
		log.Errorf("%v", err)
		os.Exit(1)
	}
}
