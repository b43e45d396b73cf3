// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pdfmerge/internal/history"
	"github.com/pdiddy/pdfmerge/pkg/types"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List or clear recorded merges",
	Long: `History manages the local record of completed merges. Every successful
merge is stored in a small SQLite database unless history is disabled in the
config or the merge ran with --no-history.`,
}

// --- list subcommand ---

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show recent merges, newest first",
	RunE:  runHistoryList,
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")

	store, err := history.NewStore(historyConfig(cmd))
	if err != nil {
		return err
	}
	defer store.Close()

	entries, err := store.Recent(context.Background(), limit)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatHistoryOutput(entries, jsonOutput)
}

func formatHistoryOutput(entries []history.Entry, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	if len(entries) == 0 {
		fmt.Println("No merges recorded.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-4s  %-19s  %-5s  %-5s  %s\n",
		"ID", "Merged", "Files", "Pages", "Output")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 72))

	for _, e := range entries {
		fmt.Fprintf(os.Stdout, "%-4d  %-19s  %-5d  %-5d  %s\n",
			e.ID, e.MergedAt.Local().Format("2006-01-02 15:04:05"),
			len(e.Inputs), e.Pages, e.Output)
	}

	fmt.Fprintf(os.Stdout, "\n%d merges\n", len(entries))
	return nil
}

// --- clear subcommand ---

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all recorded merges",
	RunE:  runHistoryClear,
}

func runHistoryClear(cmd *cobra.Command, args []string) error {
	store, err := history.NewStore(historyConfig(cmd))
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Clear(context.Background()); err != nil {
		return err
	}
	fmt.Println("History cleared.")
	return nil
}

// --- shared helpers ---

func historyConfig(cmd *cobra.Command) types.HistoryConfig {
	cfg := loadConfig().History
	if dir, _ := cmd.Flags().GetString("history-dir"); dir != "" {
		cfg.Dir = dir
	}
	return cfg
}

func init() {
	// Shared flags on the parent command, inherited by subcommands.
	historyCmd.PersistentFlags().String("history-dir", "", "directory holding the history database")

	// List flags.
	historyListCmd.Flags().Int("limit", 20, "maximum merges to show (0 = configured maximum)")
	historyListCmd.Flags().Bool("json", false, "output entries as JSON")

	// Wire subcommands.
	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyClearCmd)

	rootCmd.AddCommand(historyCmd)
}
