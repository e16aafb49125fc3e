package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	checkinCmd.Flags().StringVar(&checkinDay, "day", "", "Day to evaluate (YYYY-MM-DD, default today)")
	rootCmd.AddCommand(checkinCmd)
}

var checkinDay string

var checkinCmd = &cobra.Command{
	Use:   "checkin",
	Short: "Run the daily evaluation now",
	Long: `Run the daily evaluation: award points for at/under-limit usage and
streaks, detect milestones, and sweep the reward catalog. The daemon also
runs this on its own at the configured check-in time.`,
	RunE: runCheckin,
}

func runCheckin(cmd *cobra.Command, args []string) error {
	var result struct {
		Day          string `json:"day"`
		PointsEarned int    `json:"points_earned"`
		Milestones   []struct {
			App   string `json:"app"`
			Label string `json:"label"`
		} `json:"milestones"`
		Rewards []string `json:"rewards"`
	}
	if err := postJSON("/api/checkin", map[string]string{"day": checkinDay}, &result); err != nil {
		return err
	}

	fmt.Printf("check-in %s: +%d points\n", result.Day, result.PointsEarned)
	for _, m := range result.Milestones {
		fmt.Printf("  milestone: %s (%s)\n", m.Label, m.App)
	}
	for _, r := range result.Rewards {
		fmt.Printf("  reward: %s\n", r)
	}
	return nil
}
