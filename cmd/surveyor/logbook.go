package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/tekknoschtev/astral-surveyor/internal/discovery"
	"github.com/tekknoschtev/astral-surveyor/internal/types"
)

var (
	logbookCategory string
	logbookRarity   string
	logbookType     string
	logbookNotes    bool
	logbookSince    string
	logbookStats    bool
	logbookLimit    int
)

var logbookCmd = &cobra.Command{
	Use:   "logbook",
	Short: "Browse the discovery logbook",
	Long: `List discoveries from the save slot, newest first.

Filters combine with AND. Categories: all, stellar, planetary, exotic,
rare, notable. Use --stats for aggregate counts instead of a listing.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		found, err := app.Saves.LoadGame(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to load save: %v\n", err)
			os.Exit(1)
		}
		gray := color.New(color.FgHiBlack).SprintFunc()
		if !found {
			fmt.Printf("%s\n", gray("No save slot. Run 'surveyor explore' first."))
			return
		}

		entries := app.Discovery.Entries()
		if logbookStats {
			printStatistics(discovery.GenerateStatistics(entries))
			return
		}

		filter, err := buildLogbookFilter()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		matched := discovery.FilterDiscoveries(entries, filter)
		if len(matched) == 0 {
			fmt.Printf("%s\n", gray("No discoveries match."))
			return
		}
		if logbookLimit > 0 && len(matched) > logbookLimit {
			matched = matched[:logbookLimit]
		}

		for _, e := range matched {
			printLogbookEntry(e)
		}
		fmt.Printf("\n%d of %d discoveries\n", len(matched), len(entries))
	},
}

func buildLogbookFilter() (*discovery.Filter, error) {
	filter := &discovery.Filter{}
	if logbookCategory != "" {
		filter.Category = discovery.Category(logbookCategory)
	}
	if logbookRarity != "" {
		filter.Rarity = types.Rarity(logbookRarity)
	}
	if logbookType != "" {
		filter.ObjectType = types.ObjectType(logbookType)
	}
	if logbookNotes {
		yes := true
		filter.HasNotes = &yes
	}
	if logbookSince != "" {
		d, err := time.ParseDuration(logbookSince)
		if err != nil {
			return nil, fmt.Errorf("invalid --since duration: %w", err)
		}
		since := time.Now().Add(-d).UnixMilli()
		filter.Since = &since
	}
	return filter, nil
}

func printLogbookEntry(e *types.DiscoveryEntry) {
	marker := color.New(color.FgWhite).SprintFunc()
	switch e.Rarity {
	case types.RarityUncommon:
		marker = color.New(color.FgCyan).SprintFunc()
	case types.RarityRare:
		marker = color.New(color.FgYellow).SprintFunc()
	case types.RarityUltraRare:
		marker = color.New(color.FgMagenta, color.Bold).SprintFunc()
	}

	when := time.UnixMilli(e.Timestamp).Format("2006-01-02 15:04")
	fmt.Printf("%s %-28s %-24s %-10s %s\n", marker("●"), e.Name, e.Type, e.Rarity, when)
	gray := color.New(color.FgHiBlack).SprintFunc()
	fmt.Printf("  %s\n", gray(fmt.Sprintf("%s  %s", e.ID, e.ShareableURL)))
	if e.Notes != "" {
		fmt.Printf("  %s\n", gray(e.Notes))
	}
}

func printStatistics(stats discovery.Statistics) {
	cyan := color.New(color.FgCyan, color.Bold).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()

	fmt.Printf("\n%s\n\n", cyan("=== Discovery Statistics ==="))
	fmt.Printf("  Total:   %d\n", stats.Total)
	fmt.Printf("  Rare:    %d\n", stats.RareCount)
	fmt.Printf("  Notable: %d\n", stats.NotableCount)
	if stats.Total == 0 {
		fmt.Println()
		return
	}
	fmt.Printf("  First:   %s\n", time.UnixMilli(stats.FirstTimestamp).Format("2006-01-02 15:04"))
	fmt.Printf("  Latest:  %s\n", time.UnixMilli(stats.LastTimestamp).Format("2006-01-02 15:04"))

	fmt.Printf("\n%s\n", yellow("By Type:"))
	typeNames := make([]string, 0, len(stats.ByType))
	for t := range stats.ByType {
		typeNames = append(typeNames, string(t))
	}
	sort.Strings(typeNames)
	for _, t := range typeNames {
		fmt.Printf("  %-16s %d\n", t, stats.ByType[types.ObjectType(t)])
	}

	fmt.Printf("\n%s\n", yellow("By Rarity:"))
	for _, r := range []types.Rarity{types.RarityCommon, types.RarityUncommon, types.RarityRare, types.RarityUltraRare} {
		if n := stats.ByRarity[r]; n > 0 {
			fmt.Printf("  %-16s %d\n", r, n)
		}
	}
	fmt.Println()
}

func init() {
	rootCmd.AddCommand(logbookCmd)
	logbookCmd.Flags().StringVar(&logbookCategory, "category", "", "Filter by category (stellar, planetary, exotic, rare, notable)")
	logbookCmd.Flags().StringVar(&logbookRarity, "rarity", "", "Filter by rarity tier")
	logbookCmd.Flags().StringVar(&logbookType, "type", "", "Filter by object type")
	logbookCmd.Flags().BoolVar(&logbookNotes, "notes", false, "Only discoveries with notes")
	logbookCmd.Flags().StringVar(&logbookSince, "since", "", "Only discoveries newer than this (e.g. 24h)")
	logbookCmd.Flags().BoolVar(&logbookStats, "stats", false, "Show aggregate statistics instead of a listing")
	logbookCmd.Flags().IntVar(&logbookLimit, "limit", 0, "Maximum entries to show (0 = all)")
}
