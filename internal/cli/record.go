package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func init() {
	recordCmd.Flags().StringVar(&recordDay, "day", "", "Day to record (YYYY-MM-DD, default today)")
	rootCmd.AddCommand(recordCmd)
}

var recordDay string

var recordCmd = &cobra.Command{
	Use:   "record <app> <minutes>",
	Short: "Record a usage sample for an app",
	Long:  `Push a per-app usage sample. A later sample for the same day and app overwrites the earlier one.`,
	Args:  cobra.ExactArgs(2),
	RunE:  runRecord,
}

func runRecord(cmd *cobra.Command, args []string) error {
	minutes, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("minutes must be an integer: %w", err)
	}

	var resp struct {
		Day    string `json:"day"`
		App    string `json:"app"`
		Streak int    `json:"streak"`
	}
	body := map[string]interface{}{"day": recordDay, "app": args[0], "minutes": minutes}
	if err := postJSON("/api/usage", body, &resp); err != nil {
		return err
	}

	fmt.Printf("recorded %s: %d min on %s (streak: %d days)\n", resp.App, minutes, resp.Day, resp.Streak)
	return nil
}
