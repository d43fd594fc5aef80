package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/tekknoschtev/astral-surveyor/internal/config"
	"github.com/tekknoschtev/astral-surveyor/internal/storage"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check installation and environment health",
	Long: `Run health checks to diagnose common configuration and environment
issues.

This command checks for:
- Data directory existence and writability
- Storage backend availability and save slot readability
- Settings file validity
- Audio output availability

Exit codes:
  0 - All checks passed
  1 - One or more checks failed`,
	Run: func(cmd *cobra.Command, args []string) {
		verbose, _ := cmd.Flags().GetBool("verbose")
		ctx := context.Background()

		green := color.New(color.FgGreen).SprintFunc()
		red := color.New(color.FgRed).SprintFunc()
		yellow := color.New(color.FgYellow).SprintFunc()
		cyan := color.New(color.FgCyan).SprintFunc()

		fmt.Printf("Running health checks...\n\n")

		var failures []string
		var warnings []string

		// Check 1: data directory
		fmt.Printf("%s Data directory\n", cyan("→"))
		if info, err := os.Stat(app.DataDir); err != nil {
			failures = append(failures, fmt.Sprintf("Data directory missing: %v", err))
			fmt.Printf("  %s Cannot access %s\n", red("✗"), app.DataDir)
			if verbose {
				fmt.Printf("    Error: %v\n", err)
			}
		} else if !info.IsDir() {
			failures = append(failures, "Data directory path is not a directory")
			fmt.Printf("  %s %s is not a directory\n", red("✗"), app.DataDir)
		} else {
			fmt.Printf("  %s %s\n", green("✓"), app.DataDir)
		}

		// Check 2: storage backend
		fmt.Printf("%s Storage backend\n", cyan("→"))
		if !app.Store.Available() {
			failures = append(failures, "Storage backend unavailable")
			fmt.Printf("  %s Storage unavailable\n", red("✗"))
		} else {
			fmt.Printf("  %s Storage available\n", green("✓"))
			env, found, err := app.Store.GetEnvelope(ctx, storage.KeySaveSlot)
			switch {
			case err != nil:
				failures = append(failures, fmt.Sprintf("Save slot unreadable: %v", err))
				fmt.Printf("  %s Save slot unreadable\n", red("✗"))
				if verbose {
					fmt.Printf("    Error: %v\n", err)
				}
			case !found:
				fmt.Printf("  %s No save slot yet (fresh install)\n", green("✓"))
			default:
				fmt.Printf("  %s Save slot present (version %s, saved %s)\n",
					green("✓"), env.Version, time.UnixMilli(env.Timestamp).Format("2006-01-02 15:04:05"))
				if _, err := app.Saves.LoadGame(ctx); err != nil {
					warnings = append(warnings, fmt.Sprintf("Save fails validation: %v", err))
					fmt.Printf("  %s Save fails validation\n", yellow("⚠"))
					if verbose {
						fmt.Printf("    Error: %v\n", err)
					}
				}
			}
		}

		// Check 3: settings file
		fmt.Printf("%s Settings\n", cyan("→"))
		if _, err := config.LoadSettings(app.SettingsPath); err != nil {
			failures = append(failures, fmt.Sprintf("Settings invalid: %v", err))
			fmt.Printf("  %s %s is invalid\n", red("✗"), app.SettingsPath)
			if verbose {
				fmt.Printf("    Error: %v\n", err)
			}
		} else {
			fmt.Printf("  %s %s\n", green("✓"), app.SettingsPath)
		}

		// Check 4: audio output
		fmt.Printf("%s Audio output\n", cyan("→"))
		if app.Audio.Silent() {
			warnings = append(warnings, "No audio output device, running silent")
			fmt.Printf("  %s No output device, audio is silent\n", yellow("⚠"))
		} else {
			fmt.Printf("  %s Audio device initialized\n", green("✓"))
		}

		// Persist the diagnostic log buffer alongside the save data so a
		// bug report can include it.
		if app.Store.Available() {
			if err := app.Ring.Persist(ctx, app.Store); err != nil {
				warnings = append(warnings, fmt.Sprintf("Could not persist log buffer: %v", err))
			}
		}

		fmt.Println()
		if len(failures) == 0 {
			fmt.Printf("%s All checks passed", green("✓"))
			if len(warnings) > 0 {
				fmt.Printf(" (%d warnings)", len(warnings))
			}
			fmt.Println()
			return
		}

		fmt.Printf("%s %d check(s) failed:\n", red("✗"), len(failures))
		for _, f := range failures {
			fmt.Printf("  - %s\n", f)
		}
		os.Exit(1)
	},
}

func init() {
	doctorCmd.Flags().BoolP("verbose", "v", false, "Show detailed diagnostic information")
	rootCmd.AddCommand(doctorCmd)
}
