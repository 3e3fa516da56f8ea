package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/scwtools/scwinv/internal/cache"
	"github.com/scwtools/scwinv/internal/config"
)

var watchCmd = &cobra.Command{
	Use:   "watch <source-file>",
	Short: "Re-run the inventory whenever the source file changes",
	Long: `Runs the inventory once, then watches the source file and re-runs with a
forced cache refresh on every change. Stops on SIGINT/SIGTERM.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sourcePath := args[0]
		ctx := cmd.Context()

		if err := runInventory(ctx, sourcePath, flagRefresh); err != nil {
			return err
		}

		watcher, err := config.NewSourceWatcher(mustAbs(sourcePath), func() {
			// Editing the source changes its cache key, so a plain
			// refresh is enough to leave no live entry behind.
			if err := runInventory(ctx, sourcePath, true); err != nil {
				log.Error().Err(err).Msg("Inventory re-run failed")
			}
		})
		if err != nil {
			return err
		}
		if err := watcher.Start(); err != nil {
			return err
		}
		defer watcher.Stop()

		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		select {
		case <-sigChan:
		case <-ctx.Done():
		}
		log.Info().Msg("Stopping inventory watch")
		return nil
	},
}

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the inventory cache",
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear <source-file>",
	Short: "Remove the cache entry for an inventory source",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(args[0])
		if err != nil {
			return err
		}

		store, err := cache.NewStore(cfg.CacheDir)
		if err != nil {
			return err
		}
		key, err := cache.KeyFor(cfg.SourcePath)
		if err != nil {
			return err
		}

		if err := store.Delete(key); err != nil {
			return err
		}
		fmt.Printf("Cleared cache entry for %s\n", cfg.SourcePath)
		return nil
	},
}

func init() {
	cacheCmd.AddCommand(cacheClearCmd)
}

func mustAbs(path string) string {
	resolved, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return resolved
}
