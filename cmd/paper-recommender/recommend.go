// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/paper-recommender/internal/recommend"
)

var recommendCmd = &cobra.Command{
	Use:   "recommend <user-id>",
	Short: "Print ranked paper recommendations for a user",
	Long: `Recommend runs the four graph signals for the user, merges and scores the
candidates, and prints the top results. Users with no usable signal get
trending papers with the reason "Trending in your field".

A failing signal is logged and skipped; the command still prints whatever
the remaining signals produced.`,
	Args: cobra.ExactArgs(1),
	RunE: runRecommend,
}

func runRecommend(cmd *cobra.Command, args []string) error {
	userID, err := parseUserID(args[0])
	if err != nil {
		return err
	}
	limit, _ := cmd.Flags().GetInt("limit")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	store, err := openGraph()
	if err != nil {
		return err
	}
	defer store.Close()

	recs := newEngine(store).Recommend(context.Background(), userID, limit)

	if jsonOutput {
		return recommend.FormatJSON(recs, os.Stdout)
	}
	recommend.FormatTable(recs, os.Stdout)
	return nil
}

func init() {
	recommendCmd.Flags().Int("limit", 0, "maximum number of recommendations (0 uses recommend.default_limit)")
	recommendCmd.Flags().Bool("json", false, "output recommendations as JSON")

	rootCmd.AddCommand(recommendCmd)
}
