package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	flagDataDir  string
	flagSettings string
	flagSeed     string
	flagMemory   bool

	// app is the composed service graph, built before every command runs.
	app *App
)

var rootCmd = &cobra.Command{
	Use:   "surveyor",
	Short: "Astral Surveyor - procedural space exploration",
	Long: `Astral Surveyor flies a survey ship through an infinite,
deterministically generated universe. The same seed always produces the
same stars, planets and anomalies; everything you discover is recorded in
a persistent logbook with rarity classification and shareable coordinates.

Run 'surveyor explore' for the interactive shell, or use the one-shot
commands (status, logbook, save, load) for scripted access to the same
save slot.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		a, err := buildApp(flagDataDir, flagSettings, flagSeed, flagMemory)
		if err != nil {
			return err
		}
		app = a
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if app != nil {
			app.Close()
		}
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "Data directory (default: user config dir)")
	rootCmd.PersistentFlags().StringVar(&flagSettings, "settings", "", "Settings file path (default: <data-dir>/settings.yaml)")
	rootCmd.PersistentFlags().StringVar(&flagSeed, "seed", "", "Universe seed (default: random)")
	rootCmd.PersistentFlags().BoolVar(&flagMemory, "in-memory", false, "Use in-memory storage (nothing persists)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
