package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/tekknoschtev/astral-surveyor/internal/boundary"
	"github.com/tekknoschtev/astral-surveyor/internal/storage"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show universe, save slot and service health",
	Long:  `Display the universe seed, save slot state, discovery totals and service health.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		cyan := color.New(color.FgCyan, color.Bold).SprintFunc()
		yellow := color.New(color.FgYellow).SprintFunc()
		green := color.New(color.FgGreen).SprintFunc()
		red := color.New(color.FgRed).SprintFunc()
		gray := color.New(color.FgHiBlack).SprintFunc()

		fmt.Printf("\n%s\n\n", cyan("=== Astral Surveyor Status ==="))

		fmt.Printf("%s\n", yellow("Universe:"))
		fmt.Printf("  Seed:   %s\n", app.Seeds.SeedString())
		fmt.Printf("  Resets: %d\n", app.Seeds.ResetCount())
		fmt.Println()

		fmt.Printf("%s\n", yellow("Save Slot:"))
		env, found, err := app.Store.GetEnvelope(ctx, storage.KeySaveSlot)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to read save slot: %v\n", err)
			os.Exit(1)
		}
		if !found {
			fmt.Printf("  %s\n", gray("No save"))
		} else {
			savedAt := time.UnixMilli(env.Timestamp)
			fmt.Printf("  %s Saved %s (%v ago)\n", green("●"),
				savedAt.Format("2006-01-02 15:04:05"),
				time.Since(savedAt).Round(time.Second))
			if _, err := app.Saves.LoadGame(ctx); err != nil {
				fmt.Printf("  %s Save fails validation: %v\n", red("✗"), err)
			} else {
				fmt.Printf("  Position:    (%.0f, %.0f)\n", app.Ship.X(), app.Ship.Y())
				fmt.Printf("  Traveled:    %.0f au\n", app.Ship.DistanceTraveled())
				fmt.Printf("  Discoveries: %d\n", app.Discovery.Count())
			}
		}
		fmt.Println()

		fmt.Printf("%s\n", yellow("Services:"))
		storageState := green("available")
		if !app.Store.Available() {
			storageState = red("unavailable")
		}
		fmt.Printf("  Storage: %s\n", storageState)
		audioState := green("ready")
		if app.Audio.Silent() {
			audioState = gray("silent (no output device)")
		} else if app.Audio.IsMuted() {
			audioState = gray("muted")
		}
		fmt.Printf("  Audio:   %s\n", audioState)

		healthColor := green
		switch app.Errors.Health() {
		case boundary.HealthCritical:
			healthColor = red
		case boundary.HealthDegraded:
			healthColor = yellow
		}
		fmt.Printf("  Health:  %s (%d errors this run)\n",
			healthColor(string(app.Errors.Health())), app.Errors.TotalErrors())
		fmt.Println()
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
