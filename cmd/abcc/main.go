// Copyright (c) 2025 Michael D Henderson. All rights reserved.

// Package main implements the abcc CLI: a thin named-interface
// demonstration of the Compilation API (scan/parse/analyze/errors) over
// ABC and ABCT source files. It is the only place in this repository that
// configures logging; apart from it, only internal/config (abcc.json) and
// internal/cache (the sqlite file) touch the filesystem, and internal/abc*
// stays a synchronous, dependency-light library.
package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/maloquacious/semver"
	"github.com/spf13/cobra"

	"github.com/abctools/abcc/internal/config"
)

var (
	version = semver.Version{
		Major: 0,
		Minor: 1,
		Patch: 0,
		Build: semver.Commit(),
	}
	logger *slog.Logger
	cfg    *config.Config
)

func main() {
	var configPath string

	cmdRoot := &cobra.Command{
		Use:           "abcc",
		Short:         "ABC/ABCT compiler front-end",
		Long:          `Scan, parse, and analyze ABC notation and ABCT transformation scripts.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Root().PersistentFlags()
			logLevel, _ := flags.GetString("log-level")
			logSource, _ := flags.GetBool("log-source")
			debug, _ := flags.GetBool("debug")
			quiet, _ := flags.GetBool("quiet")
			if debug && quiet {
				return fmt.Errorf("--debug and --quiet are mutually exclusive")
			}
			var lvl slog.Level
			switch {
			case debug:
				lvl = slog.LevelDebug
			case quiet:
				lvl = slog.LevelError
			default:
				switch strings.ToLower(logLevel) {
				case "debug":
					lvl = slog.LevelDebug
				case "info":
					lvl = slog.LevelInfo
				case "warn", "warning":
					lvl = slog.LevelWarn
				case "error":
					lvl = slog.LevelError
				default:
					return fmt.Errorf("log-level: unknown value %q", logLevel)
				}
			}
			logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level:     lvl,
				AddSource: logSource || lvl == slog.LevelDebug,
			}))
			slog.SetDefault(logger)

			loaded, err := config.Load(configPath, debug)
			if err != nil {
				return err
			}
			cfg = loaded
			return nil
		},
	}
	cmdRoot.PersistentFlags().Bool("debug", false, "enable debug logging (same as --log-level=debug)")
	cmdRoot.PersistentFlags().Bool("quiet", false, "only log errors (same as --log-level=error)")
	cmdRoot.PersistentFlags().String("log-level", "error", "logging level (debug|info|warn|error)")
	cmdRoot.PersistentFlags().Bool("log-source", false, "add file and line numbers to log messages")
	cmdRoot.PersistentFlags().StringVar(&configPath, "config", "abcc.json", "path to configuration file")

	cmdRoot.AddCommand(cmdScan())
	cmdRoot.AddCommand(cmdParse())
	cmdRoot.AddCommand(cmdAnalyze())
	cmdRoot.AddCommand(cmdCheck())
	cmdRoot.AddCommand(cmdCache())
	cmdRoot.AddCommand(cmdVersion())

	if err := cmdRoot.Execute(); err != nil {
		log.Fatal(err)
		os.Exit(1)
	}
}

func cmdVersion() *cobra.Command {
	showBuildInfo := false
	cmd := &cobra.Command{
		Use:   "version",
		Short: "display the compiler's version number",
		RunE: func(cmd *cobra.Command, args []string) error {
			if showBuildInfo {
				fmt.Println(version.String())
				return nil
			}
			fmt.Println(version.Core())
			return nil
		},
	}
	cmd.Flags().BoolVar(&showBuildInfo, "build-info", showBuildInfo, "show build information")
	return cmd
}
