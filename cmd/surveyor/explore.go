package main

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/tekknoschtev/astral-surveyor/internal/shell"
)

var exploreNew bool

var exploreCmd = &cobra.Command{
	Use:   "explore",
	Short: "Start the interactive exploration shell",
	Long: `Start an interactive shell for flying the survey ship.

The shell resumes from the save slot when one exists. Moving the ship
surveys the surrounding space: objects close enough (or, for stars,
bright enough to see) are discovered, logged and classified by rarity.
Discoveries autosave in the background.

Type 'help' in the shell for available commands.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		if !exploreNew {
			found, err := app.Saves.LoadGame(ctx)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: failed to load save: %v\n", err)
				os.Exit(1)
			}
			if found {
				green := color.New(color.FgGreen).SprintFunc()
				fmt.Printf("%s Resumed: (%.0f, %.0f), %d discoveries\n",
					green("✓"), app.Ship.X(), app.Ship.Y(), app.Discovery.Count())
			}
		}

		sh, err := shell.New(&shell.Config{
			Ship:      app.Ship,
			Seeds:     app.Seeds,
			Chunks:    app.Chunks,
			Discovery: app.Discovery,
			Logbook:   app.Logbook,
			Saves:     app.Saves,
			Settings:  app.Settings,
			Logger:    app.Logger,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to create shell: %v\n", err)
			os.Exit(1)
		}

		if err := sh.Run(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(exploreCmd)
	exploreCmd.Flags().BoolVar(&exploreNew, "new", false, "Ignore the save slot and start fresh")
}
