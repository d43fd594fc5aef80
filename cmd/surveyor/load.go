package main

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Validate and summarize the save slot",
	Long: `Load the save slot, run structural validation and print a summary.

A save that fails validation is reported and left untouched on disk; the
running state is never partially overwritten.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		found, err := app.Saves.LoadGame(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: load failed: %v\n", err)
			os.Exit(1)
		}
		if !found {
			gray := color.New(color.FgHiBlack).SprintFunc()
			fmt.Printf("%s\n", gray("No save slot."))
			return
		}

		green := color.New(color.FgGreen).SprintFunc()
		fmt.Printf("%s Save is valid\n", green("✓"))
		fmt.Printf("  Universe:    %s (reset %d times)\n", app.Seeds.SeedString(), app.Seeds.ResetCount())
		fmt.Printf("  Position:    (%.0f, %.0f)\n", app.Ship.X(), app.Ship.Y())
		fmt.Printf("  Traveled:    %.0f au\n", app.Ship.DistanceTraveled())
		fmt.Printf("  Discoveries: %d\n", app.Discovery.Count())
	},
}

func init() {
	rootCmd.AddCommand(loadCmd)
}
