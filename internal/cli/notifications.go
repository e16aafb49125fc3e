package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	notificationsCmd.Flags().BoolVar(&notificationsAck, "ack", false, "Mark listed notifications as shown")
	rootCmd.AddCommand(notificationsCmd)
}

var notificationsAck bool

var notificationsCmd = &cobra.Command{
	Use:   "notifications",
	Short: "List pending notifications",
	RunE:  runNotifications,
}

func runNotifications(cmd *cobra.Command, args []string) error {
	var resp struct {
		Notifications []struct {
			ID    string `json:"id"`
			Title string `json:"title"`
			Body  string `json:"body"`
		} `json:"notifications"`
	}
	if err := getJSON("/api/notifications", &resp); err != nil {
		return err
	}

	if len(resp.Notifications) == 0 {
		fmt.Println("no pending notifications")
		return nil
	}

	for _, n := range resp.Notifications {
		fmt.Printf("%s: %s\n", n.Title, n.Body)
		if notificationsAck {
			if err := postJSON("/api/notifications/"+n.ID+"/shown", nil, nil); err != nil {
				return err
			}
		}
	}
	return nil
}
