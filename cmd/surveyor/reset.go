package main

import (
	"context"
	"fmt"
	"math/rand/v2"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var resetForce bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset the universe and clear every discovery",
	Long: `Delete the save slot, clear all discoveries and roll a new universe
seed. This is irreversible; the old universe can only be revisited by
remembering its seed string.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		if !resetForce {
			fmt.Printf("This deletes the save slot and every discovery. Type 'reset' to confirm: ")
			var answer string
			fmt.Scanln(&answer)
			if strings.TrimSpace(answer) != "reset" {
				fmt.Println("Aborted.")
				return
			}
		}

		oldSeed := app.Seeds.SeedString()

		app.Discovery.Clear()
		app.Chunks.ClearDiscovered()
		app.Logbook.ClearHistory()
		app.Seeds.ResetUniverse(rand.Uint64())
		app.Chunks.InvalidateCache()

		if err := app.Saves.DeleteSave(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to delete save: %v\n", err)
			os.Exit(1)
		}

		green := color.New(color.FgGreen).SprintFunc()
		fmt.Printf("%s Universe reset\n", green("✓"))
		fmt.Printf("  Old seed: %s\n", oldSeed)
		fmt.Printf("  New seed: %s\n", app.Seeds.SeedString())
	},
}

func init() {
	rootCmd.AddCommand(resetCmd)
	resetCmd.Flags().BoolVarP(&resetForce, "force", "f", false, "Skip the confirmation prompt")
}
