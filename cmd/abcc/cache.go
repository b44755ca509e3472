// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/abctools/abcc/internal/cache"
)

func cmdCache() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "inspect or clear the compilation cache",
	}
	cmd.AddCommand(cmdCacheStat())
	cmd.AddCommand(cmdCacheClear())
	return cmd
}

func cmdCacheStat() *cobra.Command {
	return &cobra.Command{
		Use:   "stat",
		Short: "report the number of cached entries and the database size",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cfg.Cache.Enabled {
				fmt.Println("cache is disabled")
				return nil
			}
			store, err := cache.Open(cfg.Cache.Path, cfg.Cache.MaxEntries)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()
			entries, size, err := store.Stat()
			if err != nil {
				return err
			}
			fmt.Printf("%s: %d entr(y/ies), %s\n", cfg.Cache.Path, entries, humanize.Bytes(uint64(size)))
			return nil
		},
	}
}

func cmdCacheClear() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "delete the compilation cache database",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := os.Remove(cfg.Cache.Path); err != nil && !os.IsNotExist(err) {
				return err
			}
			fmt.Printf("removed %s\n", cfg.Cache.Path)
			return nil
		},
	}
}
