package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/yi-nology/opsboard/biz/service/seed"
	"github.com/yi-nology/opsboard/pkg/config"
	"github.com/yi-nology/opsboard/pkg/database"
	"github.com/yi-nology/opsboard/pkg/storage"
)

// Maintenance tool for the demo dataset.
// Usage: go run script/reseed.go run --ops-data

var configPath string

func main() {
	root := &cobra.Command{
		Use:   "reseed",
		Short: "Seed data maintenance for opsboard",
		Long: `Rebuilds the opsboard demo dataset and manages seed catalogs.

Commands:
- run:             wipe and regenerate all dashboard tables
- publish-catalog: validate a catalog file and upload it to catalog storage
- match:           show which component each service name resolves to`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "config.yaml", "path to config file")

	root.AddCommand(newRunCmd(), newPublishCmd(), newMatchCmd())
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadCatalog(ctx context.Context, cfg *config.Config) (*seed.Catalog, error) {
	if cfg.Seed.CatalogKey == "" {
		return seed.DefaultCatalog()
	}
	store, err := storage.New(cfg.Storage)
	if err != nil {
		return nil, err
	}
	return seed.LoadCatalog(ctx, store, cfg.Seed.CatalogKey)
}

func newRunCmd() *cobra.Command {
	var (
		opsData    bool
		randomSeed uint64
		ifEmpty    bool
	)
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Wipe and regenerate the dashboard tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			db, err := database.Open(cfg.Database)
			if err != nil {
				return fmt.Errorf("open database: %w", err)
			}
			if err := database.Migrate(db); err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
			catalog, err := loadCatalog(ctx, cfg)
			if err != nil {
				return err
			}

			opts := seed.OptionsFromConfig(cfg.Seed)
			if cmd.Flags().Changed("ops-data") {
				opts.OpsData = opsData
			}
			if cmd.Flags().Changed("seed") {
				opts.RandomSeed = randomSeed
			}
			mode := config.SeedModeAlways
			if ifEmpty {
				mode = config.SeedModeIfEmpty
			}

			log.Printf("[Reseed] catalog %s, mode=%s, ops_data=%v, random_seed=%d",
				catalog.Version, mode, opts.OpsData, opts.RandomSeed)
			summary, err := seed.NewSeeder(db, catalog, opts).RunMode(ctx, mode)
			if err != nil {
				return err
			}
			out, err := json.MarshalIndent(summary, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}
	cmd.Flags().BoolVar(&opsData, "ops-data", false, "generate deployment configs and service instances")
	cmd.Flags().Uint64Var(&randomSeed, "seed", 42, "random seed")
	cmd.Flags().BoolVar(&ifEmpty, "if-empty", false, "skip when projects already exist")
	return cmd
}

func newPublishCmd() *cobra.Command {
	var (
		file string
		key  string
	)
	cmd := &cobra.Command{
		Use:   "publish-catalog",
		Short: "Validate a catalog and upload it to catalog storage",
		Long: `Validates a seed catalog and stores it under --key in the configured
storage backend. Set seed.catalog_key to the same key to use it.
Without --file the built-in catalog is published.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			data := seed.DefaultCatalogYAML()
			if file != "" {
				if data, err = os.ReadFile(file); err != nil {
					return err
				}
			}
			store, err := storage.New(cfg.Storage)
			if err != nil {
				return err
			}
			if err := seed.PublishCatalog(cmd.Context(), store, key, data); err != nil {
				return err
			}
			log.Printf("[Reseed] published catalog to %s storage as %q", cfg.Storage.Type, key)
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "catalog YAML file")
	cmd.Flags().StringVarP(&key, "key", "k", "catalogs/default.yaml", "object key")
	return cmd
}

func newMatchCmd() *cobra.Command {
	var projectType string
	cmd := &cobra.Command{
		Use:   "match [service-name...]",
		Short: "Resolve service names to components",
		Long: `Prints the component each service name resolves to for a project type.
Without arguments every service of every catalog project is resolved.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			catalog, err := loadCatalog(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			matcher := seed.NewMatcher(catalog.MatchRules)
			w := cmd.OutOrStdout()

			if len(args) > 0 {
				names := catalog.ComponentNames(projectType)
				if len(names) == 0 {
					return fmt.Errorf("no components for project type %q", projectType)
				}
				for _, svc := range args {
					printMatch(w, matcher, svc, names)
				}
				return nil
			}
			for _, p := range catalog.Projects {
				fmt.Fprintf(w, "# %s (%s)\n", p.Name, p.Type)
				names := catalog.ComponentNames(p.Type)
				for _, svc := range p.Services {
					printMatch(w, matcher, svc, names)
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&projectType, "type", "t", "trading", "project type whose components are searched")
	return cmd
}

func printMatch(w io.Writer, m *seed.Matcher, service string, components map[string]bool) {
	if comp, ok := m.ResolveIn(service, components); ok {
		fmt.Fprintf(w, "%-40s -> %s\n", service, comp)
		return
	}
	fmt.Fprintf(w, "%-40s -> (none)\n", service)
}
