// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed <corpus.yaml>",
	Short: "Load papers, authors, venues and citations into the graph",
	Long: `Seed reads a YAML corpus and upserts every paper into the graph database.
Re-seeding a paper replaces its authors, venue and outgoing citations.
Cited papers missing from the corpus are created as stubs.`,
	Args: cobra.ExactArgs(1),
	RunE: runSeed,
}

func runSeed(cmd *cobra.Command, args []string) error {
	store, err := openGraph()
	if err != nil {
		return err
	}
	defer store.Close()

	summary, err := store.LoadCorpus(context.Background(), args[0], os.Stdout)
	if err != nil {
		return err
	}
	logger.Info().Int("loaded", summary.Loaded).Int("failed", summary.Failed).Msg("corpus seeded")
	if summary.Failed > 0 {
		return fmt.Errorf("%d paper(s) failed to load", summary.Failed)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
