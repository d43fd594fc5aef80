package main

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var saveCmd = &cobra.Command{
	Use:   "save",
	Short: "Write the current game state to the save slot",
	Long: `Collect the current game state and write it to the save slot.

Outside the explore shell this mostly matters after 'load' surgery or for
seeding a fresh universe: the snapshot is whatever state the process holds
when the command runs.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		if err := app.Saves.SaveGame(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "Error: save failed: %v\n", err)
			os.Exit(1)
		}

		green := color.New(color.FgGreen).SprintFunc()
		fmt.Printf("%s Saved universe %s at (%.0f, %.0f)\n",
			green("✓"), app.Seeds.SeedString(), app.Ship.X(), app.Ship.Y())
	},
}

func init() {
	rootCmd.AddCommand(saveCmd)
}
