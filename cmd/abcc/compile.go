// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/abctools/abcc/internal/abcbeam"
	"github.com/abctools/abcc/internal/abclex"
	"github.com/abctools/abcc/internal/abcparse"
	"github.com/abctools/abcc/internal/abcsem"
	"github.com/abctools/abcc/internal/abctlex"
	"github.com/abctools/abcc/internal/abctok"
	"github.com/abctools/abcc/internal/abctparse"
	"github.com/abctools/abcc/internal/abcttok"
	"github.com/abctools/abcc/internal/cache"
	"github.com/abctools/abcc/internal/source"
)

// isAbct reports whether path names an ABCT transformation script rather
// than plain ABC notation, by extension.
func isAbct(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".abct")
}

func cmdScan() *cobra.Command {
	var input string
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "tokenize an ABC or ABCT file and print the token stream",
		RunE: func(cmd *cobra.Command, args []string) error {
			buf, err := os.ReadFile(input)
			if err != nil {
				return err
			}
			ctx := source.New()
			if isAbct(input) {
				tokens := abctlex.Scan(ctx, buf)
				for _, t := range tokens {
					fmt.Println(t.String())
				}
			} else {
				tokens := abclex.Scan(ctx, buf)
				for _, t := range tokens {
					fmt.Println(t.String())
				}
			}
			return reportErrors(ctx)
		},
	}
	cmd.Flags().StringVar(&input, "input", "", "file to scan")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}

func cmdParse() *cobra.Command {
	var input string
	cmd := &cobra.Command{
		Use:   "parse",
		Short: "parse an ABC or ABCT file and print the round-tripped source",
		RunE: func(cmd *cobra.Command, args []string) error {
			buf, err := os.ReadFile(input)
			if err != nil {
				return err
			}
			ctx := source.New()
			if isAbct(input) {
				tokens := abctlex.Scan(ctx, buf)
				prog := abctparse.Parse(ctx, tokens)
				fmt.Printf("parsed %d top-level statement(s)\n", len(prog.Stmts))
				fmt.Print(abcttok.Render(tokens))
			} else {
				tokens := abclex.Scan(ctx, buf)
				fs := abcparse.Parse(ctx, tokens)
				abcbeam.Group(ctx, fs)
				fmt.Printf("parsed %d top-level item(s)\n", len(fs.Items))
				fmt.Print(abctok.Render(tokens))
			}
			return reportErrors(ctx)
		},
	}
	cmd.Flags().StringVar(&input, "input", "", "file to parse")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}

func cmdAnalyze() *cobra.Command {
	var input string
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "run the semantic analyzer over an ABC file and report diagnostics",
		RunE: func(cmd *cobra.Command, args []string) error {
			buf, err := os.ReadFile(input)
			if err != nil {
				return err
			}
			if isAbct(input) {
				return fmt.Errorf("analyze: %s: semantic analysis is only defined for .abc files", input)
			}
			ctx := source.New()
			tokens := abclex.Scan(ctx, buf)
			fs := abcparse.Parse(ctx, tokens)
			abcbeam.Group(ctx, fs)
			data := abcsem.Analyze(ctx, fs)
			fmt.Printf("analyzed %d node(s) of semantic data\n", data.Len())
			return reportErrors(ctx)
		},
	}
	cmd.Flags().StringVar(&input, "input", "", "file to analyze")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}

// cmdCheck walks a directory (or a single file), compiling each ABC/ABCT
// file and reporting pass/fail per file, optionally memoizing results in
// the on-disk cache so an unchanged tree re-checks instantly.
func cmdCheck() *cobra.Command {
	var root string
	cmd := &cobra.Command{
		Use:   "check [path]",
		Short: "compile every ABC/ABCT file under a path and report errors",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				root = args[0]
			}
			if root == "" {
				root = "."
			}
			useColor := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())

			var store *cache.Store
			if cfg.Cache.Enabled {
				s, err := cache.Open(cfg.Cache.Path, cfg.Cache.MaxEntries)
				if err != nil {
					return fmt.Errorf("cache: %w", err)
				}
				defer func() { _ = s.Close() }()
				store = s
			}

			var total, failed int
			walkErr := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
				if err != nil {
					return err
				}
				if info.IsDir() {
					return nil
				}
				ext := strings.ToLower(filepath.Ext(path))
				if ext != ".abc" && ext != ".abct" {
					return nil
				}
				total++
				n, errs := checkFile(path, store)
				if n > 0 {
					failed++
				}
				printCheckResult(path, errs, useColor)
				return nil
			})
			if walkErr != nil {
				return walkErr
			}
			fmt.Printf("%d file(s) checked, %d with errors\n", total, failed)
			if failed > 0 {
				os.Exit(1)
			}
			return nil
		},
	}
	return cmd
}

func checkFile(path string, store *cache.Store) (int, []source.Record) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return 1, []source.Record{{Message: err.Error()}}
	}

	var hash string
	if store != nil {
		hash = cache.Hash(buf)
		if entry, ok, err := store.Get(hash); err == nil && ok && entry.SourceLen == len(buf) {
			return entry.ErrorCount, entry.Errors
		}
	}

	ctx := source.New()
	if isAbct(path) {
		tokens := abctlex.Scan(ctx, buf)
		_ = abctparse.Parse(ctx, tokens)
	} else {
		tokens := abclex.Scan(ctx, buf)
		fs := abcparse.Parse(ctx, tokens)
		abcbeam.Group(ctx, fs)
		abcsem.Analyze(ctx, fs)
	}
	errs := ctx.Errors().GetErrors()

	if store != nil {
		_ = store.Put(hash, cache.Entry{
			SourceLen:  len(buf),
			ErrorCount: len(errs),
			Errors:     errs,
			CompiledAt: time.Now().Unix(),
		})
	}
	return len(errs), errs
}

func printCheckResult(path string, errs []source.Record, useColor bool) {
	const (
		red   = "\x1b[31m"
		green = "\x1b[32m"
		reset = "\x1b[0m"
	)
	if len(errs) == 0 {
		if useColor {
			fmt.Printf("%sok%s   %s\n", green, reset, path)
		} else {
			fmt.Printf("ok    %s\n", path)
		}
		return
	}
	if useColor {
		fmt.Printf("%sFAIL%s %s (%d error(s))\n", red, reset, path, len(errs))
	} else {
		fmt.Printf("FAIL  %s (%d error(s))\n", path, len(errs))
	}
	for _, e := range errs {
		fmt.Printf("      %s\n", e.String())
	}
}

func reportErrors(ctx *source.Context) error {
	errs := ctx.Errors().GetErrors()
	for _, e := range errs {
		fmt.Fprintln(os.Stderr, e.String())
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s error(s)", strconv.Itoa(len(errs)))
	}
	return nil
}
