// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/pdiddy/paper-recommender/internal/graph"
	"github.com/pdiddy/paper-recommender/pkg/types"
)

// --- like / unlike / view ---

var likeCmd = &cobra.Command{
	Use:   "like <user-id> <paper-id>",
	Short: "Record that a user liked a paper",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInteraction(args, (*graph.Store).Like, "liked", "already liked")
	},
}

var unlikeCmd = &cobra.Command{
	Use:   "unlike <user-id> <paper-id>",
	Short: "Remove a like",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInteraction(args, (*graph.Store).Unlike, "unliked", "not liked")
	},
}

var viewCmd = &cobra.Command{
	Use:   "view <user-id> <paper-id>",
	Short: "Record that a user viewed a paper",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInteraction(args, (*graph.Store).View, "viewed", "view refreshed")
	},
}

type interactionFunc func(*graph.Store, context.Context, int64, types.PaperID) (bool, error)

func runInteraction(args []string, fn interactionFunc, changedMsg, unchangedMsg string) error {
	userID, err := parseUserID(args[0])
	if err != nil {
		return err
	}
	paperID := types.PaperID(strings.TrimSpace(args[1]))

	store, err := openGraph()
	if err != nil {
		return err
	}
	defer store.Close()

	changed, err := fn(store, context.Background(), userID, paperID)
	if err != nil {
		return err
	}
	msg := unchangedMsg
	if changed {
		msg = changedMsg
	}
	fmt.Fprintf(os.Stdout, "%s: user %d, paper %s\n", msg, userID, paperID)
	return nil
}

// --- history ---

var historyCmd = &cobra.Command{
	Use:   "history <user-id>",
	Short: "List papers a user liked and viewed, most recent first",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistory,
}

func runHistory(cmd *cobra.Command, args []string) error {
	userID, err := parseUserID(args[0])
	if err != nil {
		return err
	}
	jsonOutput, _ := cmd.Flags().GetBool("json")

	store, err := openGraph()
	if err != nil {
		return err
	}
	defer store.Close()

	hist, err := store.History(context.Background(), userID)
	if err != nil {
		return err
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(hist)
	}

	if hist.IsEmpty() {
		fmt.Println("No history.")
		return nil
	}
	printIDs("Liked", hist.Liked)
	printIDs("Viewed", hist.Viewed)
	return nil
}

func printIDs(label string, ids []types.PaperID) {
	fmt.Fprintf(os.Stdout, "%s (%d)\n", label, len(ids))
	for _, id := range ids {
		fmt.Fprintf(os.Stdout, "  %s\n", id)
	}
}

// --- shared helpers ---

func parseUserID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid user id %q: must be a positive integer", raw)
	}
	return id, nil
}

func init() {
	historyCmd.Flags().Bool("json", false, "output history as JSON")

	rootCmd.AddCommand(likeCmd)
	rootCmd.AddCommand(unlikeCmd)
	rootCmd.AddCommand(viewCmd)
	rootCmd.AddCommand(historyCmd)
}
