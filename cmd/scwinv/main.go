package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/scwtools/scwinv/internal/cache"
	"github.com/scwtools/scwinv/internal/config"
	"github.com/scwtools/scwinv/internal/inventory"
	"github.com/scwtools/scwinv/internal/logging"
	"github.com/scwtools/scwinv/internal/populator"
	"github.com/scwtools/scwinv/pkg/scaleway"
)

// Version information (set at build time with -ldflags)
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

var (
	flagLogLevel    string
	flagLogFormat   string
	flagRefresh     bool
	flagParallelism int
)

var rootCmd = &cobra.Command{
	Use:   "scwinv <source-file>",
	Short: "Scaleway host inventory",
	Long: `scwinv discovers Scaleway compute resources (instances and elastic metal
servers) across zones and prints a grouped host inventory as JSON, in the
external inventory script "--list" format.

The source file configures credentials, zone/tag filters, hostname
preferences and caching; its name must end in scaleway.yaml, scaleway.yml,
scw.yaml or scw.yml.

Known issue kept for backward compatibility: an explicit "zones" filter
also excludes instance records whose zone matches it after the query.
Leave "zones" unset to inventory all zones.`,
	Version: Version,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInventory(cmd.Context(), args[0], flagRefresh)
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("scwinv %s\n", Version)
		if BuildTime != "unknown" {
			fmt.Printf("Built: %s\n", BuildTime)
		}
		if GitCommit != "unknown" {
			fmt.Printf("Commit: %s\n", GitCommit)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&flagLogFormat, "log-format", "auto", "log format (auto, json, console)")
	rootCmd.PersistentFlags().IntVar(&flagParallelism, "parallelism", 0, "max concurrent zone queries (0 = default)")
	rootCmd.Flags().BoolVar(&flagRefresh, "refresh", false, "bypass the cache read and overwrite the entry")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(watchCmd)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// buildService loads the source file and assembles the pipeline behind it.
func buildService(sourcePath string) (*inventory.Service, *config.Config, string, error) {
	logging.Init(logging.Config{
		Format:    flagLogFormat,
		Level:     flagLogLevel,
		Component: "scwinv",
	})

	cfg, err := config.Load(sourcePath)
	if err != nil {
		return nil, nil, "", err
	}

	clientCfg, err := scaleway.ResolveConfig(scaleway.ClientConfig{
		AccessKey:     cfg.AccessKey,
		SecretKey:     cfg.SecretKey,
		APIURL:        cfg.APIURL,
		AllowInsecure: cfg.APIAllowInsecure,
		UserAgent:     cfg.UserAgent,
	}, cfg.ConfigFile, cfg.Profile)
	if err != nil {
		return nil, nil, "", err
	}

	client, err := scaleway.NewClient(clientCfg)
	if err != nil {
		return nil, nil, "", err
	}

	aggregator := inventory.NewAggregator(client, client)
	if flagParallelism > 0 {
		aggregator.SetParallelism(flagParallelism)
	}

	var store *cache.Store
	var key string
	if cfg.Cache {
		store, err = cache.NewStore(cfg.CacheDir)
		if err != nil {
			return nil, nil, "", err
		}
		key, err = cache.KeyFor(cfg.SourcePath)
		if err != nil {
			return nil, nil, "", err
		}
	}

	return inventory.NewService(aggregator, store, cfg.Cache), cfg, key, nil
}

func runInventory(ctx context.Context, sourcePath string, refresh bool) error {
	service, cfg, key, err := buildService(sourcePath)
	if err != nil {
		return err
	}

	filters := inventory.Filters{Zones: cfg.Zones, Tags: cfg.Tags}
	hosts, err := service.Hosts(ctx, filters, key, !refresh)
	if err != nil {
		return err
	}

	sink := populator.NewMemorySink()
	if err := populator.Populate(sink, hosts, cfg.Hostnames); err != nil {
		return err
	}

	output, err := sink.RenderList()
	if err != nil {
		return err
	}

	fmt.Println(string(output))
	log.Debug().Int("hosts", len(hosts)).Int("groups", len(sink.Groups())).Msg("Inventory populated")
	return nil
}
