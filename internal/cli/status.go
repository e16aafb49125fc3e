package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(statusCmd)
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show streaks, points, and granted rewards",
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	var streaks struct {
		Streaks map[string]struct {
			Current int `json:"current"`
			Longest int `json:"longest"`
		} `json:"streaks"`
	}
	if err := getJSON("/api/streaks", &streaks); err != nil {
		return err
	}

	var rewards struct {
		Points  int      `json:"points"`
		Granted []string `json:"granted"`
	}
	if err := getJSON("/api/rewards", &rewards); err != nil {
		return err
	}

	fmt.Printf("points: %d\n", rewards.Points)

	if len(streaks.Streaks) > 0 {
		fmt.Println("streaks:")
		apps := make([]string, 0, len(streaks.Streaks))
		for app := range streaks.Streaks {
			apps = append(apps, app)
		}
		sort.Strings(apps)
		for _, app := range apps {
			s := streaks.Streaks[app]
			fmt.Printf("  %-20s %d days (longest %d)\n", app, s.Current, s.Longest)
		}
	}

	if len(rewards.Granted) > 0 {
		fmt.Println("rewards:")
		for _, r := range rewards.Granted {
			fmt.Printf("  %s\n", r)
		}
	}
	return nil
}
