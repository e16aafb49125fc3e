// Package cli implements the atomic command-line interface using Cobra.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "atomic",
	Short: "atomic — habit evaluation and intervention engine",
	Long: `atomic tracks per-app usage against daily limits, turns the results
into streaks, points, milestones, and rewards, and fires behavior-change
interventions on time-of-day and geofence triggers.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command. Called from main.go.
func Execute(version string) {
	rootCmd.Version = version

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
